package loader

import (
	"github.com/okian/draftkit/internal/domain/model"
	"github.com/okian/draftkit/internal/domain/pricing"
	"github.com/okian/draftkit/pkg/logger"
)

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithCategories sets the category rules used for parsing and pricing.
func WithCategories(cs model.Categories) Option {
	return func(l *Loader) {
		l.categories = make(model.Categories, len(cs))
		for c, cfg := range cs {
			l.categories[c] = cfg
		}
	}
}

// WithPricer overrides the weight based pricer derived from the categories.
func WithPricer(p pricing.Pricer) Option {
	return func(l *Loader) {
		if p != nil {
			l.pricer = p
		}
	}
}

// WithLogger sets the logger for skipped records and load summaries.
func WithLogger(log logger.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}
