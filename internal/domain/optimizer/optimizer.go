package optimizer

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/okian/draftkit/internal/domain/model"
)

// defaultMaxCells bounds N·(B+1) so a bad request cannot exhaust memory.
const defaultMaxCells = 50_000_000

// Solution is the best achievable extension of the committed roster.
type Solution struct {
	Points         float64         // baseline points + added points
	BaselinePoints float64         // points of the committed roster
	Team           []model.Athlete // baseline in roster order, then added athletes in catalog order
	Added          []model.Athlete // athletes the optimizer proposes to add
	AddedCost      float64         // sum of Added costs, never above Budget
	Budget         int             // integer budget the table was built for
}

// Optimizer holds the category limits applied by Solve.
type Optimizer struct {
	limits   map[model.Category]int
	maxCells int64
}

// New creates an optimizer. Without WithLimits/WithCategories every catalog
// athlete fails with model.ErrUnknownCategory.
func New(opts ...Option) *Optimizer {
	o := &Optimizer{
		limits:   make(map[model.Category]int),
		maxCells: defaultMaxCells,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Limits returns a copy of the configured ceilings.
func (o *Optimizer) Limits() map[model.Category]int {
	out := make(map[model.Category]int, len(o.limits))
	for c, l := range o.limits {
		out[c] = l
	}
	return out
}

// Solve runs the budgeted selection over catalog (in the given order) with
// baseline always included. The inputs are not modified.
func (o *Optimizer) Solve(ctx context.Context, catalog, baseline []model.Athlete, budget int) (Solution, error) {
	if budget < 0 {
		return Solution{}, fmt.Errorf("%w: got %d", ErrInvalidBudget, budget)
	}

	// Dense category index for the rolling count rows.
	cats := make([]model.Category, 0, len(o.limits))
	for c := range o.limits {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	catIdx := make(map[model.Category]int, len(cats))
	limits := make([]int32, len(cats))
	for i, c := range cats {
		catIdx[c] = i
		limits[i] = int32(o.limits[c])
	}

	itemCat := make([]int, len(catalog))
	for i, a := range catalog {
		ci, ok := catIdx[a.Category]
		if !ok {
			return Solution{}, fmt.Errorf("athlete %q: %w: %q", a.Name, model.ErrUnknownCategory, a.Category)
		}
		itemCat[i] = ci
	}

	sol := Solution{
		Team:   append([]model.Athlete(nil), baseline...),
		Budget: budget,
	}
	baseCounts := make([]int32, len(cats))
	for _, a := range baseline {
		sol.BaselinePoints += a.Points
		if ci, ok := catIdx[a.Category]; ok {
			baseCounts[ci]++
		}
	}
	sol.Points = sol.BaselinePoints

	n := len(catalog)
	if n == 0 {
		return sol, nil
	}

	nc := len(cats)
	cells, err := o.tableCells(n, nc, budget)
	if err != nil {
		return Solution{}, err
	}
	width := budget + 1
	prevPts := make([]float64, width)
	curPts := make([]float64, width)
	prevCnt := make([]int32, width*nc)
	curCnt := make([]int32, width*nc)
	for b := 0; b < width; b++ {
		prevPts[b] = sol.BaselinePoints
		copy(prevCnt[b*nc:(b+1)*nc], baseCounts)
	}
	took := newBitset(cells)

	for i, a := range catalog {
		if err := ctx.Err(); err != nil {
			return Solution{}, fmt.Errorf("solve cancelled at row %d: %w", i, err)
		}
		ci := itemCat[i]
		row := int64(i) * int64(width)

		for b := 0; b < width; b++ {
			// Skip by default.
			curPts[b] = prevPts[b]
			copy(curCnt[b*nc:(b+1)*nc], prevCnt[b*nc:(b+1)*nc])

			if a.Cost > float64(b) {
				continue
			}
			prev := int(float64(b) - a.Cost)
			if prevCnt[prev*nc+ci] >= limits[ci] {
				continue
			}
			withPts := prevPts[prev] + a.Points
			if withPts > prevPts[b] {
				curPts[b] = withPts
				copy(curCnt[b*nc:(b+1)*nc], prevCnt[prev*nc:(prev+1)*nc])
				curCnt[b*nc+ci]++
				took.set(row + int64(b))
			}
		}

		prevPts, curPts = curPts, prevPts
		prevCnt, curCnt = curCnt, prevCnt
	}

	// Walk the backpointers from (N-1, B).
	var added []model.Athlete
	b := budget
	for i := n - 1; i >= 0; i-- {
		if took.get(int64(i)*int64(width) + int64(b)) {
			added = append(added, catalog[i])
			b = int(float64(b) - catalog[i].Cost)
		}
	}
	for l, r := 0, len(added)-1; l < r; l, r = l+1, r-1 {
		added[l], added[r] = added[r], added[l]
	}

	sol.Points = prevPts[budget]
	sol.Added = added
	for _, a := range added {
		sol.AddedCost += a.Cost
	}
	sol.Team = append(sol.Team, added...)
	return sol, nil
}

// tableCells returns N·(B+1), failing with ErrTableTooLarge when it exceeds
// the cap or any of the row allocations would overflow an int.
func (o *Optimizer) tableCells(n, nc, budget int) (int64, error) {
	if budget >= math.MaxInt-1 {
		return 0, fmt.Errorf("%w: budget %d", ErrTableTooLarge, budget)
	}
	width := int64(budget) + 1
	if int64(n) > math.MaxInt64/width || (nc > 0 && int64(nc) > math.MaxInt/width) {
		return 0, fmt.Errorf("%w: %d x %d overflows", ErrTableTooLarge, n, width)
	}
	cells := int64(n) * width
	if o.maxCells > 0 && cells > o.maxCells {
		return 0, fmt.Errorf("%w: %d x %d = %d > %d", ErrTableTooLarge, n, width, cells, o.maxCells)
	}
	return cells, nil
}

// bitset is a flat N·(B+1) take/skip table.
type bitset []uint64

func newBitset(n int64) bitset {
	return make(bitset, (n+63)/64)
}

func (s bitset) set(i int64) { s[i>>6] |= 1 << (uint64(i) & 63) }

func (s bitset) get(i int64) bool { return s[i>>6]&(1<<(uint64(i)&63)) != 0 }
