package optimizer

import "errors"

// Sentinel errors returned by Solve.
var (
	// ErrInvalidBudget indicates a negative budget.
	ErrInvalidBudget = errors.New("optimizer: budget must be >= 0")

	// ErrTableTooLarge indicates N·(B+1) exceeds the configured cell cap or cannot be addressed at all.
	ErrTableTooLarge = errors.New("optimizer: table exceeds max cells")
)
