package model

import "errors"

// Sentinel error kinds shared across the domain.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnknownCategory = errors.New("unknown category")
)
