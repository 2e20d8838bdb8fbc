package loader

import "errors"

// Sentinel errors returned by the loader.
var (
	// ErrMalformedRecord indicates a data line that cannot be split into a
	// name and the configured number of stat columns.
	ErrMalformedRecord = errors.New("loader: malformed record")

	// ErrMalformedKeepers indicates an unreadable keeper roster file.
	ErrMalformedKeepers = errors.New("loader: malformed keepers file")
)
