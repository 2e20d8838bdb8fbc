package service

import (
	"github.com/okian/draftkit/internal/config"
	"github.com/okian/draftkit/internal/domain/model"
	"github.com/okian/draftkit/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBudget sets the total draft budget.
func WithBudget(budget int) Option {
	return func(s *Service) {
		if budget >= 0 {
			s.budget = budget
		}
	}
}

// WithCategories sets the per-category rules.
func WithCategories(cs model.Categories) Option {
	return func(s *Service) {
		if len(cs) > 0 {
			s.categories = cs
		}
	}
}

// WithMaxTableCells caps the optimizer table size.
func WithMaxTableCells(n int64) Option {
	return func(s *Service) {
		s.maxCells = n
	}
}

// WithDataFiles sets the projection file per category, loaded on Start.
func WithDataFiles(files map[model.Category]string) Option {
	return func(s *Service) {
		s.dataFiles = files
	}
}

// WithKeepersFile sets a keeper roster committed on Start.
func WithKeepersFile(path string) Option {
	return func(s *Service) {
		s.keepersFile = path
	}
}

// WithAthletes seeds the catalog on Start, in addition to any data files.
func WithAthletes(as []model.Athlete) Option {
	return func(s *Service) {
		s.seed = append(s.seed, as...)
	}
}

// WithConfig applies every draft setting from a loaded configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg == nil {
			return
		}
		for _, opt := range []Option{
			WithBudget(cfg.Budget),
			WithCategories(cfg.CategoryRules()),
			WithMaxTableCells(cfg.MaxTableCells),
			WithDataFiles(cfg.DataFileMap()),
			WithKeepersFile(cfg.KeepersFile),
		} {
			opt(s)
		}
	}
}
