package repository

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrNotFound     = errors.New("athlete not found")
	ErrDuplicate    = errors.New("athlete already in catalog")
	ErrInvalidLimit = errors.New("invalid catalog limit")
)
