package repository

import (
	"bytes"
	"context"
	"math"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/okian/draftkit/internal/domain/model"
	"github.com/okian/draftkit/pkg/metrics"
)

// Treap-based, in-memory Catalog implementation.
//
// Ordering: cost ASC, then name ASC, then ID bytes ASC (deterministic).
// In-order traversal yields the catalog from cheapest to most expensive,
// which is the iteration order the optimizer consumes.

// costScale controls fixed-point scaling from float64 so ties compare exactly.
const costScale = 1_000_000_000 // 9 decimal places

type costFP int64

func toFixedPoint(x float64) costFP {
	if math.IsNaN(x) {
		return 0
	}
	scaled := x * costScale
	if scaled > float64(math.MaxInt64) {
		return costFP(math.MaxInt64)
	}
	if scaled < float64(math.MinInt64) {
		return costFP(math.MinInt64)
	}
	return costFP(math.Round(scaled))
}

// record is the ID index entry; it keeps the full athlete plus its sort key.
type record struct {
	athlete model.Athlete
	cost    costFP
}

// treap node
type node struct {
	id    uuid.UUID
	name  string
	cost  costFP
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less returns true if key a iterates before key b.
func less(aCost costFP, aName string, aID uuid.UUID, bCost costFP, bName string, bID uuid.UUID) bool {
	if aCost != bCost {
		return aCost < bCost
	}
	if aName != bName {
		return aName < bName
	}
	return bytes.Compare(aID[:], bID[:]) < 0
}

func rotateRight(y *node) *node {
	x := y.left
	t2 := x.right
	x.right = y
	y.left = t2
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	t2 := y.left
	y.left = x
	x.right = t2
	fix(x)
	fix(y)
	return y
}

func insert(n, fresh *node) *node {
	if n == nil {
		return fresh
	}
	if less(fresh.cost, fresh.name, fresh.id, n.cost, n.name, n.id) {
		n.left = insert(n.left, fresh)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, fresh)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, cost costFP, name string, id uuid.UUID) *node {
	if n == nil {
		return nil
	}
	if id == n.id {
		// Merge children by rotating highest priority up until leaf.
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, cost, name, id)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, cost, name, id)
		}
	} else if less(cost, name, id, n.cost, n.name, n.id) {
		n.left = deleteNode(n.left, cost, name, id)
	} else {
		n.right = deleteNode(n.right, cost, name, id)
	}
	fix(n)
	return n
}

// collect appends up to limit athletes in ascending order.
func collect(n *node, limit int, byID map[uuid.UUID]record, out *[]model.Athlete) {
	if n == nil || len(*out) >= limit {
		return
	}
	collect(n.left, limit, byID, out)
	if len(*out) < limit {
		if rec, ok := byID[n.id]; ok {
			*out = append(*out, rec.athlete)
		}
	}
	if len(*out) < limit {
		collect(n.right, limit, byID, out)
	}
}

// TreapCatalog keeps athletes in a treap keyed by cost with an ID index.
type TreapCatalog struct {
	mu   sync.RWMutex
	root *node
	byID map[uuid.UUID]record
	seed uint64
}

// NewTreapCatalog constructs an empty catalog with configuration options.
func NewTreapCatalog(_ context.Context, opts ...Option) *TreapCatalog {
	s := &TreapCatalog{
		byID: make(map[uuid.UUID]record),
	}

	for _, opt := range opts {
		opt(s)
	}

	metrics.UpdateCatalogSize(0)
	return s
}

// priority hashes the ID so the treap stays balanced in expectation.
func (s *TreapCatalog) priority(id uuid.UUID) uint64 {
	d := xxhash.NewWithSeed(s.seed)
	_, _ = d.Write(id[:])
	return d.Sum64()
}

// Insert implements Catalog.Insert with O(log n) expected time.
func (s *TreapCatalog) Insert(ctx context.Context, a model.Athlete) error {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryLatency("insert", float64(time.Since(start).Microseconds())/1000)
	}()

	s.mu.Lock()
	if _, ok := s.byID[a.ID]; ok {
		s.mu.Unlock()
		metrics.RecordErrorByComponent("repository", "duplicate")
		return ErrDuplicate
	}
	cost := toFixedPoint(a.Cost)
	s.byID[a.ID] = record{athlete: a, cost: cost}
	s.root = insert(s.root, &node{id: a.ID, name: a.Name, cost: cost, prio: s.priority(a.ID), size: 1})
	count := len(s.byID)
	s.mu.Unlock()

	metrics.UpdateCatalogSize(count)
	return nil
}

// Remove implements Catalog.Remove with O(log n) expected time.
func (s *TreapCatalog) Remove(ctx context.Context, id uuid.UUID) (model.Athlete, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryLatency("remove", float64(time.Since(start).Microseconds())/1000)
	}()

	s.mu.Lock()
	rec, ok := s.byID[id]
	if !ok {
		s.mu.Unlock()
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.Athlete{}, ErrNotFound
	}
	delete(s.byID, id)
	s.root = deleteNode(s.root, rec.cost, rec.athlete.Name, id)
	count := len(s.byID)
	s.mu.Unlock()

	metrics.UpdateCatalogSize(count)
	return rec.athlete, nil
}

// Get returns a single athlete by ID.
func (s *TreapCatalog) Get(ctx context.Context, id uuid.UUID) (model.Athlete, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byID[id]
	if !ok {
		return model.Athlete{}, ErrNotFound
	}
	return rec.athlete, nil
}

// Ascending returns all athletes cheapest first.
func (s *TreapCatalog) Ascending(ctx context.Context) []model.Athlete {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Athlete, 0, len(s.byID))
	collect(s.root, len(s.byID), s.byID, &out)
	return out
}

// Cheapest returns up to n athletes cheapest first.
func (s *TreapCatalog) Cheapest(ctx context.Context, n int) ([]model.Athlete, error) {
	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Athlete, 0, min(n, len(s.byID)))
	collect(s.root, n, s.byID, &out)
	return out, nil
}

// Count returns the total number of athletes.
func (s *TreapCatalog) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
