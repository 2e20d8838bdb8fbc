package repository

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/google/uuid"

	"github.com/okian/draftkit/internal/domain/model"
)

func mustAthlete(t testing.TB, name string, cost float64) model.Athlete {
	t.Helper()
	a, err := model.NewAthlete(name, "FA", model.WR, cost, cost*3.7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return a
}

func TestTreapCatalog_BasicOperations(t *testing.T) {
	ctx := context.Background()
	store := NewTreapCatalog(ctx)

	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected count 0, got %d", count)
	}

	a := mustAthlete(t, "Calvin Johnson", 30)
	if err := store.Insert(ctx, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count := store.Count(ctx); count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}

	got, err := store.Get(ctx, a.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != a {
		t.Errorf("expected %+v, got %+v", a, got)
	}

	removed, err := store.Remove(ctx, a.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed.ID != a.ID {
		t.Errorf("removed wrong athlete: %s", removed.Name)
	}
	if count := store.Count(ctx); count != 0 {
		t.Errorf("expected count 0 after removal, got %d", count)
	}
}

func TestTreapCatalog_Errors(t *testing.T) {
	ctx := context.Background()
	store := NewTreapCatalog(ctx)
	a := mustAthlete(t, "Dez Bryant", 20)

	if err := store.Insert(ctx, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Insert(ctx, a); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
	if _, err := store.Remove(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Get(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Remove(ctx, a.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Remove(ctx, a.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double removal should be ErrNotFound, got %v", err)
	}
	if _, err := store.Cheapest(ctx, 0); !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("expected ErrInvalidLimit, got %v", err)
	}
}

func TestTreapCatalog_Ordering(t *testing.T) {
	ctx := context.Background()
	store := NewTreapCatalog(ctx)

	athletes := []model.Athlete{
		mustAthlete(t, "E", 50),
		mustAthlete(t, "B", 10),
		mustAthlete(t, "D", 30),
		mustAthlete(t, "A", 10),
		mustAthlete(t, "C", 20.5),
	}
	for _, a := range athletes {
		if err := store.Insert(ctx, a); err != nil {
			t.Fatalf("unexpected error inserting %s: %v", a.Name, err)
		}
	}

	got := store.Ascending(ctx)
	expectedOrder := []string{"A", "B", "C", "D", "E"}
	if len(got) != len(expectedOrder) {
		t.Fatalf("expected %d athletes, got %d", len(expectedOrder), len(got))
	}
	for i, name := range expectedOrder {
		if got[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, got[i].Name)
		}
	}

	top, err := store.Cheapest(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(top) != 2 || top[0].Name != "A" || top[1].Name != "B" {
		t.Errorf("unexpected cheapest: %+v", top)
	}

	all, err := store.Cheapest(ctx, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("expected 5 athletes, got %d", len(all))
	}
}

func TestTreapCatalog_SameNameDistinctIdentity(t *testing.T) {
	ctx := context.Background()
	store := NewTreapCatalog(ctx)

	a := mustAthlete(t, "Steve Smith", 10)
	b := mustAthlete(t, "Steve Smith", 10)
	if err := store.Insert(ctx, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Insert(ctx, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count := store.Count(ctx); count != 2 {
		t.Fatalf("expected 2 athletes, got %d", count)
	}

	if _, err := store.Remove(ctx, b.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	left := store.Ascending(ctx)
	if len(left) != 1 || left[0].ID != a.ID {
		t.Errorf("wrong athlete left behind: %+v", left)
	}
}

func TestTreapCatalog_RandomizedAgainstSort(t *testing.T) {
	ctx := context.Background()
	store := NewTreapCatalog(ctx, WithCapacity(500), WithPrioritySeed(7))
	rng := rand.New(rand.NewSource(1))

	live := make(map[uuid.UUID]model.Athlete)
	for i := 0; i < 500; i++ {
		a := mustAthlete(t, fmt.Sprintf("athlete-%03d", rng.Intn(50)), float64(1+rng.Intn(40))/2)
		if err := store.Insert(ctx, a); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		live[a.ID] = a
		if rng.Intn(3) == 0 {
			for id := range live {
				if _, err := store.Remove(ctx, id); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				delete(live, id)
				break
			}
		}
	}

	want := make([]model.Athlete, 0, len(live))
	for _, a := range live {
		want = append(want, a)
	}
	sort.Slice(want, func(i, j int) bool {
		ci, cj := toFixedPoint(want[i].Cost), toFixedPoint(want[j].Cost)
		return less(ci, want[i].Name, want[i].ID, cj, want[j].Name, want[j].ID)
	})

	got := store.Ascending(ctx)
	if len(got) != len(want) {
		t.Fatalf("expected %d athletes, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i].ID {
			t.Fatalf("position %d: expected %s, got %s", i, want[i].ID, got[i].ID)
		}
	}
	if nsize(store.root) != len(want) {
		t.Errorf("subtree size %d does not match count %d", nsize(store.root), len(want))
	}
}
