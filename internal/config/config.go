// Package config defines service configuration structures and loading hooks.
//
// Configuration is layered: defaults from New, then an optional YAML file
// named by DRAFTKIT_CONFIG, then DRAFTKIT_* environment variables.
package config

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/okian/draftkit/internal/domain/model"
)

// CategoryConfig is the per-category roster rule as written in config files.
type CategoryConfig struct {
	// Limit is the most athletes of this category the optimizer may hold.
	Limit int `koanf:"limit"`

	// Weight normalizes points into cost: cost = points / weight.
	Weight float64 `koanf:"weight"`

	// Fields is the number of trailing stat columns in a data file line.
	Fields int `koanf:"fields"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogJSON switches log output to JSON lines.
	LogJSON bool `koanf:"log_json"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Budget is the total draft budget in whole units.
	Budget int `koanf:"budget"`

	// MaxTableCells caps athletes x (budget+1) for a single optimizer run.
	MaxTableCells int64 `koanf:"max_table_cells"`

	// CORSOrigins lists allowed origins for the HTTP API.
	CORSOrigins []string `koanf:"cors_origins"`

	// KeepersFile optionally names a YAML roster committed at startup.
	KeepersFile string `koanf:"keepers_file"`

	// DataFiles maps a category name to its projection file.
	DataFiles map[string]string `koanf:"data_files"`

	// Categories maps a category name to its rules. Entries replace the
	// defaults whole.
	Categories map[string]CategoryConfig `koanf:"categories"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:      "info",
		Addr:          ":9080",
		Budget:        200,
		MaxTableCells: 50_000_000,
		CORSOrigins:   []string{"*"},
		DataFiles:     map[string]string{},
		Categories: map[string]CategoryConfig{
			"QB": {Limit: 1, Weight: 11.9, Fields: 11},
			"RB": {Limit: 3, Weight: 4.38, Fields: 9},
			"WR": {Limit: 3, Weight: 3.7, Fields: 9},
			"TE": {Limit: 1, Weight: 4.0, Fields: 6},
		},
	}
}

// Validate checks the invariants the rest of the service relies on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.Budget < 0 {
		return fmt.Errorf("%w: budget must be >= 0, got %d", ErrInvalidConfig, c.Budget)
	}
	if len(c.Categories) == 0 {
		return fmt.Errorf("%w: at least one category is required", ErrInvalidConfig)
	}
	for name, cc := range c.Categories {
		switch {
		case cc.Limit < 0:
			return fmt.Errorf("%w: category %s: limit must be >= 0, got %d", ErrInvalidConfig, name, cc.Limit)
		case cc.Weight <= 0:
			return fmt.Errorf("%w: category %s: weight must be > 0, got %v", ErrInvalidConfig, name, cc.Weight)
		case cc.Fields < 2:
			return fmt.Errorf("%w: category %s: fields must be >= 2, got %d", ErrInvalidConfig, name, cc.Fields)
		}
	}
	rules := c.CategoryRules()
	for name := range c.DataFiles {
		if _, err := rules.Lookup(model.ParseCategory(name)); err != nil {
			return fmt.Errorf("%w: data file for unconfigured category %s", ErrInvalidConfig, name)
		}
	}
	return nil
}

// CategoryRules converts the configured categories into domain rules.
func (c *Config) CategoryRules() model.Categories {
	out := make(model.Categories, len(c.Categories))
	for name, cc := range c.Categories {
		out[model.ParseCategory(name)] = model.CategoryConfig{
			Limit:  cc.Limit,
			Weight: cc.Weight,
			Fields: cc.Fields,
		}
	}
	return out
}

// DataFileMap returns the projection files keyed by category.
func (c *Config) DataFileMap() map[model.Category]string {
	out := make(map[model.Category]string, len(c.DataFiles))
	for name, path := range c.DataFiles {
		out[model.ParseCategory(name)] = path
	}
	return out
}

// CategoryNames returns the configured category names in sorted order.
func (c *Config) CategoryNames() []string {
	out := make([]string, 0, len(c.Categories))
	for name := range c.Categories {
		out = append(out, string(model.ParseCategory(name)))
	}
	sort.Strings(out)
	return out
}
