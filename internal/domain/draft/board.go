// Package draft moves athletes between the catalog and the committed roster.
//
// A Board owns one catalog and one roster. Every mutation resolves a name or
// an explicit athlete, then either moves it or reports why it could not. Name
// resolution never guesses: several matches come back as StatusAmbiguous and
// the caller retries with the athlete it wants.
package draft

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/draftkit/internal/adapters/repository"
	"github.com/okian/draftkit/internal/domain/lookup"
	"github.com/okian/draftkit/internal/domain/model"
	"github.com/okian/draftkit/internal/domain/optimizer"
	"github.com/okian/draftkit/internal/domain/roster"
	"github.com/okian/draftkit/pkg/logger"
)

// Status is the outcome of a roster mutation.
type Status int

// Mutation statuses.
const (
	StatusOK Status = iota
	StatusNotFound
	StatusAmbiguous
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not_found"
	case StatusAmbiguous:
		return "ambiguous"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome reports a mutation. Athlete is set for StatusOK, Matches for
// StatusAmbiguous. Reason explains StatusFailed.
type Outcome struct {
	Status  Status
	Athlete model.Athlete
	Price   float64
	Matches []model.Athlete
	Reason  string
}

// OK reports whether the mutation happened.
func (o Outcome) OK() bool { return o.Status == StatusOK }

// Board applies add and remove requests to a catalog and a roster.
// It is not safe for concurrent use.
type Board struct {
	catalog repository.Catalog
	roster  *roster.Roster
	log     logger.Logger
}

// NewBoard wires a board over catalog and r.
func NewBoard(catalog repository.Catalog, r *roster.Roster, opts ...Option) *Board {
	b := &Board{
		catalog: catalog,
		roster:  r,
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Catalog returns the underlying catalog.
func (b *Board) Catalog() repository.Catalog { return b.catalog }

// Roster returns the underlying roster.
func (b *Board) Roster() *roster.Roster { return b.roster }

// AddByName resolves name against the catalog and commits the unique match
// at price.
func (b *Board) AddByName(ctx context.Context, name string, price float64) (Outcome, error) {
	if err := model.ValidatePrice(price); err != nil {
		return Outcome{}, err
	}
	res := lookup.Resolve(name, b.catalog.Ascending(ctx))
	if out, done := unresolved(res); done {
		b.log.Debug(ctx, "add unresolved", logger.String("pattern", name), logger.String("status", out.Status.String()))
		return out, nil
	}
	return b.Add(ctx, res.Athlete, price)
}

// Add commits athlete a at price. The catalog copy of a is what lands on the
// roster. An athlete that is not in the catalog yields StatusFailed.
func (b *Board) Add(ctx context.Context, a model.Athlete, price float64) (Outcome, error) {
	if err := model.ValidatePrice(price); err != nil {
		return Outcome{}, err
	}

	taken, err := b.catalog.Remove(ctx, a.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return Outcome{Status: StatusFailed, Athlete: a, Reason: "athlete is not available in the catalog"}, nil
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("take %q from catalog: %w", a.Name, err)
	}

	b.roster.Append(taken, price)
	b.log.Info(ctx, "athlete added",
		logger.String("athlete", taken.Name),
		logger.String("category", string(taken.Category)),
		logger.Float64("price", price),
		logger.Float64("remaining", b.roster.Remaining()),
	)
	return Outcome{Status: StatusOK, Athlete: taken, Price: price}, nil
}

// RemoveByName resolves name against the committed roster and removes the
// unique match.
func (b *Board) RemoveByName(ctx context.Context, name string) (Outcome, error) {
	picks := b.roster.Picks()
	committed := make([]model.Athlete, len(picks))
	for i, p := range picks {
		committed[i] = p.Athlete
	}

	res := lookup.Resolve(name, committed)
	if out, done := unresolved(res); done {
		b.log.Debug(ctx, "remove unresolved", logger.String("pattern", name), logger.String("status", out.Status.String()))
		return out, nil
	}
	return b.Remove(ctx, res.Athlete)
}

// Remove takes a off the roster and returns its catalog entity to the
// catalog. The price paid stays spent.
func (b *Board) Remove(ctx context.Context, a model.Athlete) (Outcome, error) {
	pick, ok := b.roster.Get(a.ID)
	if !ok {
		return Outcome{Status: StatusFailed, Athlete: a, Reason: "athlete is not on the roster"}, nil
	}

	if err := b.catalog.Insert(ctx, pick.Athlete); err != nil {
		return Outcome{}, fmt.Errorf("return %q to catalog: %w", pick.Athlete.Name, err)
	}
	b.roster.Drop(pick.Athlete.ID)

	b.log.Info(ctx, "athlete removed",
		logger.String("athlete", pick.Athlete.Name),
		logger.Float64("price", pick.Price),
		logger.Float64("remaining", b.roster.Remaining()),
	)
	return Outcome{Status: StatusOK, Athlete: pick.Athlete, Price: pick.Price}, nil
}

// Commit adds the athletes an optimizer run proposed, each at its catalog
// cost and in solution order. It stops at the first outcome that is not OK
// and returns the outcomes so far.
func (b *Board) Commit(ctx context.Context, sol optimizer.Solution) ([]Outcome, error) {
	outs := make([]Outcome, 0, len(sol.Added))
	for _, a := range sol.Added {
		out, err := b.Add(ctx, a, a.Cost)
		if err != nil {
			return outs, err
		}
		outs = append(outs, out)
		if !out.OK() {
			break
		}
	}
	return outs, nil
}

func unresolved(res lookup.Result) (Outcome, bool) {
	switch res.Kind {
	case lookup.KindNotFound:
		return Outcome{Status: StatusNotFound}, true
	case lookup.KindAmbiguous:
		return Outcome{Status: StatusAmbiguous, Matches: res.Matches}, true
	default:
		return Outcome{}, false
	}
}
