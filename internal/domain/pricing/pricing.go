// Package pricing derives an athlete's monetary cost from projected points.
package pricing

import (
	"fmt"

	"github.com/okian/draftkit/internal/domain/model"
)

// Pricer computes the catalog cost of a raw record.
type Pricer interface {
	// Cost returns points normalized by the category weight.
	Cost(category model.Category, points float64) (float64, error)
}

// WeightedPricer implements Pricer as points / weight[category].
type WeightedPricer struct {
	weights map[model.Category]float64
}

// NewWeightedPricer creates a pricer with configuration options.
func NewWeightedPricer(opts ...Option) *WeightedPricer {
	p := &WeightedPricer{
		weights: make(map[model.Category]float64), // Will be set by options
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Cost computes points / weight. Categories without a positive weight are
// rejected with model.ErrUnknownCategory.
func (p *WeightedPricer) Cost(category model.Category, points float64) (float64, error) {
	weight, ok := p.weights[category]
	if !ok {
		return 0, fmt.Errorf("pricing %q: %w", category, model.ErrUnknownCategory)
	}
	return points / weight, nil
}

// SetWeight allows customization of a single category weight.
func (p *WeightedPricer) SetWeight(category model.Category, weight float64) {
	if weight > 0 {
		p.weights[category] = weight
	}
}

// Weight returns the configured weight for category.
func (p *WeightedPricer) Weight(category model.Category) (float64, bool) {
	w, ok := p.weights[category]
	return w, ok
}
