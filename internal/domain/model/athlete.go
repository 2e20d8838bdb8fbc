// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// Category is a roster slot type, e.g. QB or WR.
type Category string

// Predeclared categories. Any other upper-case name may be configured.
const (
	QB Category = "QB"
	RB Category = "RB"
	WR Category = "WR"
	TE Category = "TE"
)

// ParseCategory normalizes a user supplied category name.
func ParseCategory(s string) Category {
	return Category(strings.ToUpper(strings.TrimSpace(s)))
}

// CategoryConfig holds the per-category roster rules.
type CategoryConfig struct {
	Limit  int     // max athletes of this category the optimizer may hold
	Weight float64 // cost normalization weight: cost = points / weight
	Fields int     // number of trailing columns in a raw record
}

// Categories maps each category to its configuration.
type Categories map[Category]CategoryConfig

// Lookup returns the configuration for c or ErrUnknownCategory.
func (cs Categories) Lookup(c Category) (CategoryConfig, error) {
	cfg, ok := cs[c]
	if !ok {
		return CategoryConfig{}, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	return cfg, nil
}

// Limits returns the per-category count ceilings.
func (cs Categories) Limits() map[Category]int {
	out := make(map[Category]int, len(cs))
	for c, cfg := range cs {
		out[c] = cfg.Limit
	}
	return out
}

// DefaultCategories returns the standard four-position configuration.
func DefaultCategories() Categories {
	return Categories{
		QB: {Limit: 1, Weight: 11.9, Fields: 11},
		RB: {Limit: 3, Weight: 4.38, Fields: 9},
		WR: {Limit: 3, Weight: 3.7, Fields: 9},
		TE: {Limit: 1, Weight: 4.0, Fields: 6},
	}
}

// Record is a raw athlete entry produced by a loader.
type Record struct {
	Name   string
	Team   string // team abbreviation
	Points float64
}

// Athlete is an immutable candidate. Identity is ID, never Name.
type Athlete struct {
	ID       uuid.UUID
	Name     string
	Team     string
	Category Category
	Cost     float64
	Points   float64
}

// NewAthlete validates and builds an athlete with a fresh identity.
func NewAthlete(name, team string, category Category, cost, points float64) (Athlete, error) {
	if !isFinite(cost) || cost <= 0 {
		return Athlete{}, fmt.Errorf("%w: cost must be > 0, got %v", ErrInvalidInput, cost)
	}
	if !isFinite(points) || points < 0 {
		return Athlete{}, fmt.Errorf("%w: points must be >= 0, got %v", ErrInvalidInput, points)
	}
	return Athlete{
		ID:       uuid.New(),
		Name:     name,
		Team:     team,
		Category: category,
		Cost:     cost,
		Points:   points,
	}, nil
}

// WithCost returns a copy of a carrying a different cost. The receiver is untouched.
func (a Athlete) WithCost(cost float64) Athlete {
	a.Cost = cost
	return a
}

// ValidatePrice reports whether price is a usable non-negative amount.
func ValidatePrice(price float64) error {
	if !isFinite(price) || price < 0 {
		return fmt.Errorf("%w: price must be a non-negative number, got %v", ErrInvalidInput, price)
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
