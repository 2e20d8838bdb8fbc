// Package repository holds the catalog of uncommitted athletes.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/okian/draftkit/internal/domain/model"
)

// Catalog provides read/write access to the pool of athletes not yet on the roster.
type Catalog interface {
	// Insert adds an athlete. Returns ErrDuplicate if the ID is already present.
	Insert(ctx context.Context, a model.Athlete) error

	// Remove deletes an athlete by ID and returns it.
	// Returns ErrNotFound if the athlete is not in the catalog.
	Remove(ctx context.Context, id uuid.UUID) (model.Athlete, error)

	// Get returns the athlete with the given ID or ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (model.Athlete, error)

	// Ascending returns every athlete ordered by cost asc, then name, then ID.
	Ascending(ctx context.Context) []model.Athlete

	// Cheapest returns up to n athletes in Ascending order.
	Cheapest(ctx context.Context, n int) ([]model.Athlete, error)

	// Count returns the number of athletes in the catalog.
	Count(ctx context.Context) int
}
