package service

import "errors"

// Sentinel errors returned by the Service.
var (
	// ErrNotStarted indicates a call before Start.
	ErrNotStarted = errors.New("service not started")

	// ErrKeeper indicates a keeper that does not resolve to exactly one athlete.
	ErrKeeper = errors.New("keeper does not resolve to a single athlete")
)
