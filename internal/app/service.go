// Package service wires the catalog, roster, draft board and optimizer into
// the operations exposed by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/draftkit/internal/adapters/loader"
	"github.com/okian/draftkit/internal/adapters/repository"
	"github.com/okian/draftkit/internal/domain/draft"
	"github.com/okian/draftkit/internal/domain/lookup"
	"github.com/okian/draftkit/internal/domain/model"
	"github.com/okian/draftkit/internal/domain/optimizer"
	"github.com/okian/draftkit/internal/domain/roster"
	"github.com/okian/draftkit/pkg/logger"
	"github.com/okian/draftkit/pkg/metrics"
)

const defaultMaxCells = 50_000_000

// RosterView is a consistent snapshot of the committed team and ledger.
type RosterView struct {
	Picks     []roster.Pick
	Points    float64
	Spent     float64
	Remaining float64
	Total     float64
	Counts    map[model.Category]int
	Limits    map[model.Category]int
}

// Service owns one draft: a catalog, a roster and the rules applied to them.
// All methods are safe for concurrent use.
type Service struct {
	mu sync.RWMutex

	// Configuration
	categories  model.Categories
	budget      int
	maxCells    int64
	dataFiles   map[model.Category]string
	keepersFile string
	seed        []model.Athlete

	// Components
	catalog   repository.Catalog
	roster    *roster.Roster
	board     *draft.Board
	optimizer *optimizer.Optimizer

	started bool
	logger  logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		categories: model.DefaultCategories(),
		budget:     200,
		maxCells:   defaultMaxCells,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the catalog from the configured sources and commits keepers.
// Calling Start on a started service is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger.Info(ctx, "starting draft service...", logger.Int("budget", s.budget))

	athletes := append([]model.Athlete(nil), s.seed...)
	if len(s.dataFiles) > 0 {
		l := loader.New(
			loader.WithCategories(s.categories),
			loader.WithLogger(s.logger.Named("loader")),
		)
		loaded, err := l.LoadFiles(ctx, s.dataFiles)
		if err != nil {
			return fmt.Errorf("load data files: %w", err)
		}
		athletes = append(athletes, loaded...)
	}

	catalog := repository.NewTreapCatalog(ctx, repository.WithCapacity(len(athletes)))
	for _, a := range athletes {
		if _, err := s.categories.Lookup(a.Category); err != nil {
			return fmt.Errorf("athlete %q: %w", a.Name, err)
		}
		if err := catalog.Insert(ctx, a); err != nil {
			return fmt.Errorf("insert %q: %w", a.Name, err)
		}
	}

	s.catalog = catalog
	s.roster = roster.New(float64(s.budget))
	s.board = draft.NewBoard(catalog, s.roster, draft.WithLogger(s.logger.Named("draft")))
	s.optimizer = optimizer.New(
		optimizer.WithCategories(s.categories),
		optimizer.WithMaxCells(s.maxCells),
	)

	if s.keepersFile != "" {
		if err := s.applyKeepers(ctx); err != nil {
			return err
		}
	}

	s.started = true
	s.updateRosterMetrics()
	s.logger.Info(ctx, "draft service started",
		logger.Int("athletes", catalog.Count(ctx)),
		logger.Int("keepers", s.roster.Len()),
		logger.Float64("remaining", s.roster.Remaining()),
	)
	return nil
}

func (s *Service) applyKeepers(ctx context.Context) error {
	keepers, err := loader.LoadKeepers(s.keepersFile)
	if err != nil {
		return err
	}
	for _, k := range keepers {
		out, err := s.board.AddByName(ctx, k.Name, k.Price)
		if err != nil {
			return fmt.Errorf("keeper %q: %w", k.Name, err)
		}
		if !out.OK() {
			return fmt.Errorf("%w: %q is %s (%d matches)", ErrKeeper, k.Name, out.Status, len(out.Matches))
		}
	}
	return nil
}

// Stop releases the draft state.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "draft service stopped")
}

// Categories returns the configured category rules.
func (s *Service) Categories() model.Categories {
	out := make(model.Categories, len(s.categories))
	for c, cfg := range s.categories {
		out[c] = cfg
	}
	return out
}

// Catalog lists available athletes cheapest first. An empty category lists
// all; limit <= 0 means no limit.
func (s *Service) Catalog(ctx context.Context, category model.Category, limit int) ([]model.Athlete, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	if category != "" {
		if _, err := s.categories.Lookup(category); err != nil {
			return nil, err
		}
	}

	if category == "" && limit > 0 {
		return s.catalog.Cheapest(ctx, limit)
	}

	all := s.catalog.Ascending(ctx)
	out := make([]model.Athlete, 0, len(all))
	for _, a := range all {
		if category != "" && a.Category != category {
			continue
		}
		out = append(out, a)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Lookup resolves pattern against the catalog.
func (s *Service) Lookup(ctx context.Context, pattern string) (lookup.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return lookup.Result{}, ErrNotStarted
	}
	res := lookup.Resolve(pattern, s.catalog.Ascending(ctx))
	metrics.RecordLookup(res.Kind.String())
	return res, nil
}

// Roster returns a snapshot of the committed team.
func (s *Service) Roster(_ context.Context) (RosterView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return RosterView{}, ErrNotStarted
	}
	return RosterView{
		Picks:     s.roster.Picks(),
		Points:    s.roster.Points(),
		Spent:     s.roster.Spent(),
		Remaining: s.roster.Remaining(),
		Total:     s.roster.Total(),
		Counts:    s.roster.CountByCategory(),
		Limits:    s.categories.Limits(),
	}, nil
}

// AddByName commits the unique catalog match of name at price.
func (s *Service) AddByName(ctx context.Context, name string, price float64) (draft.Outcome, error) {
	return s.mutate(ctx, "add", func(b *draft.Board) (draft.Outcome, error) {
		return b.AddByName(ctx, name, price)
	})
}

// Add commits the catalog athlete with id at price.
func (s *Service) Add(ctx context.Context, id uuid.UUID, price float64) (draft.Outcome, error) {
	return s.mutate(ctx, "add", func(b *draft.Board) (draft.Outcome, error) {
		return b.Add(ctx, model.Athlete{ID: id}, price)
	})
}

// RemoveByName removes the unique roster match of name. No refund.
func (s *Service) RemoveByName(ctx context.Context, name string) (draft.Outcome, error) {
	return s.mutate(ctx, "remove", func(b *draft.Board) (draft.Outcome, error) {
		return b.RemoveByName(ctx, name)
	})
}

// Remove removes the roster pick with id. No refund.
func (s *Service) Remove(ctx context.Context, id uuid.UUID) (draft.Outcome, error) {
	return s.mutate(ctx, "remove", func(b *draft.Board) (draft.Outcome, error) {
		a := model.Athlete{ID: id}
		if p, ok := b.Roster().Get(id); ok {
			a = p.Athlete
		}
		return b.Remove(ctx, a)
	})
}

func (s *Service) mutate(ctx context.Context, op string, fn func(*draft.Board) (draft.Outcome, error)) (draft.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return draft.Outcome{}, ErrNotStarted
	}

	out, err := fn(s.board)
	if err != nil {
		metrics.RecordRosterMutation(op, "error")
		metrics.RecordErrorByComponent("service", op)
		return out, err
	}
	metrics.RecordRosterMutation(op, out.Status.String())
	s.updateRosterMetrics()
	return out, nil
}

// BestTeam computes the best extension of the current roster with the
// remaining budget. Nothing is committed.
func (s *Service) BestTeam(ctx context.Context) (optimizer.Solution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return optimizer.Solution{}, ErrNotStarted
	}
	return s.solve(ctx)
}

// CommitBestTeam computes the best team and commits its additions at catalog
// cost in one step.
func (s *Service) CommitBestTeam(ctx context.Context) (optimizer.Solution, []draft.Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return optimizer.Solution{}, nil, ErrNotStarted
	}

	sol, err := s.solve(ctx)
	if err != nil {
		return optimizer.Solution{}, nil, err
	}
	outs, err := s.board.Commit(ctx, sol)
	for _, out := range outs {
		metrics.RecordRosterMutation("commit", out.Status.String())
	}
	s.updateRosterMetrics()
	if err != nil {
		return sol, outs, err
	}
	s.logger.Info(ctx, "best team committed",
		logger.Int("added", len(outs)),
		logger.Float64("points", sol.Points),
		logger.Float64("remaining", s.roster.Remaining()),
	)
	return sol, outs, nil
}

// solve runs the optimizer on a snapshot. Callers hold the lock.
func (s *Service) solve(ctx context.Context) (optimizer.Solution, error) {
	start := time.Now()
	catalog := s.catalog.Ascending(ctx)
	budget := wholeBudget(s.roster.Remaining())
	cells := int64(len(catalog)) * int64(budget+1)

	sol, err := s.optimizer.Solve(ctx, catalog, s.roster.Athletes(), budget)
	ms := float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		metrics.RecordSolve("error", ms, cells)
		metrics.RecordErrorLatency("optimizer", solveErrorType(err), ms)
		s.logger.Warn(ctx, "best team failed", logger.Error(err), logger.Int("budget", budget), logger.Int64("cells", cells))
		return optimizer.Solution{}, err
	}

	metrics.RecordSolve("ok", ms, cells)
	metrics.UpdateBestTeamPoints(sol.Points)
	s.logger.Debug(ctx, "best team computed",
		logger.Int("budget", budget),
		logger.Int("added", len(sol.Added)),
		logger.Float64("points", sol.Points),
		logger.Float64("took_ms", ms),
	)
	return sol, nil
}

// wholeBudget converts the ledger into table units. A negative ledger
// leaves nothing to spend.
func wholeBudget(remaining float64) int {
	if remaining <= 0 || math.IsNaN(remaining) {
		return 0
	}
	return int(remaining)
}

func solveErrorType(err error) string {
	switch {
	case errors.Is(err, optimizer.ErrTableTooLarge):
		return "table_too_large"
	case errors.Is(err, optimizer.ErrInvalidBudget):
		return "invalid_budget"
	case errors.Is(err, model.ErrUnknownCategory):
		return "unknown_category"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "internal"
	}
}

func (s *Service) updateRosterMetrics() {
	metrics.UpdateRoster(s.roster.Len(), s.roster.Spent(), s.roster.Remaining())
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":       s.started,
		"budget":        s.budget,
		"maxTableCells": s.maxCells,
		"categories":    len(s.categories),
	}
	if s.started {
		ctx := context.Background()
		stats["catalogSize"] = s.catalog.Count(ctx)
		stats["rosterSize"] = s.roster.Len()
		stats["spent"] = s.roster.Spent()
		stats["remainingBudget"] = s.roster.Remaining()
		stats["rosterPoints"] = s.roster.Points()
	}
	return stats
}
