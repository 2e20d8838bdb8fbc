// Package roster tracks the committed team and the remaining budget.
//
// The ledger is append-only on the spending side: removing a pick never
// refunds its price. Callers that want a refund must model it themselves.
package roster

import (
	"github.com/google/uuid"

	"github.com/okian/draftkit/internal/domain/model"
)

// Pick is a committed athlete together with the price actually paid.
type Pick struct {
	Athlete model.Athlete // catalog entity as it was when committed
	Price   float64
}

// Committed returns the athlete as seen by the optimizer: cost is the price paid.
func (p Pick) Committed() model.Athlete {
	return p.Athlete.WithCost(p.Price)
}

// Roster is the ordered committed team plus the budget ledger.
// It is single-owner; callers serialize access.
type Roster struct {
	picks     []Pick
	total     float64
	remaining float64
}

// New creates an empty roster with the given total budget.
func New(budget float64) *Roster {
	return &Roster{total: budget, remaining: budget}
}

// Append commits a pick and charges its price. The remaining budget may go
// negative; enforcing a floor is the caller's job.
func (r *Roster) Append(a model.Athlete, price float64) {
	r.picks = append(r.picks, Pick{Athlete: a, Price: price})
	r.remaining -= price
}

// Drop removes the pick for id and returns it. The price is not refunded.
func (r *Roster) Drop(id uuid.UUID) (Pick, bool) {
	for i, p := range r.picks {
		if p.Athlete.ID == id {
			r.picks = append(r.picks[:i:i], r.picks[i+1:]...)
			return p, true
		}
	}
	return Pick{}, false
}

// Get returns the pick for id.
func (r *Roster) Get(id uuid.UUID) (Pick, bool) {
	for _, p := range r.picks {
		if p.Athlete.ID == id {
			return p, true
		}
	}
	return Pick{}, false
}

// Contains reports whether id is committed.
func (r *Roster) Contains(id uuid.UUID) bool {
	_, ok := r.Get(id)
	return ok
}

// Picks returns a copy of the committed picks in commit order.
func (r *Roster) Picks() []Pick {
	out := make([]Pick, len(r.picks))
	copy(out, r.picks)
	return out
}

// Athletes returns committed athletes with their cost set to the price paid.
func (r *Roster) Athletes() []model.Athlete {
	out := make([]model.Athlete, len(r.picks))
	for i, p := range r.picks {
		out[i] = p.Committed()
	}
	return out
}

// Points sums the projected points of the committed team.
func (r *Roster) Points() float64 {
	var sum float64
	for _, p := range r.picks {
		sum += p.Athlete.Points
	}
	return sum
}

// Spent sums the prices of the picks currently on the roster.
func (r *Roster) Spent() float64 {
	var sum float64
	for _, p := range r.picks {
		sum += p.Price
	}
	return sum
}

// Len returns the number of committed athletes.
func (r *Roster) Len() int { return len(r.picks) }

// Remaining returns the remaining budget.
func (r *Roster) Remaining() float64 { return r.remaining }

// Total returns the configured starting budget.
func (r *Roster) Total() float64 { return r.total }

// CountByCategory returns how many committed athletes each category holds.
func (r *Roster) CountByCategory() map[model.Category]int {
	out := make(map[model.Category]int)
	for _, p := range r.picks {
		out[p.Athlete.Category]++
	}
	return out
}
