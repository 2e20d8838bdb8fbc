package optimizer

import "github.com/okian/draftkit/internal/domain/model"

// Option applies a configuration option to the Optimizer.
type Option func(*Optimizer)

// WithLimits sets the per-category count ceilings.
func WithLimits(limits map[model.Category]int) Option {
	return func(o *Optimizer) {
		o.limits = make(map[model.Category]int, len(limits))
		for c, l := range limits {
			o.limits[c] = l
		}
	}
}

// WithCategories sets the ceilings from a category configuration.
func WithCategories(cs model.Categories) Option {
	return WithLimits(cs.Limits())
}

// WithMaxCells caps the table size N·(B+1). Zero or negative disables the cap.
func WithMaxCells(n int64) Option {
	return func(o *Optimizer) {
		o.maxCells = n
	}
}
