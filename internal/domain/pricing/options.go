package pricing

import "github.com/okian/draftkit/internal/domain/model"

// Option applies a configuration option to the WeightedPricer.
type Option func(*WeightedPricer)

// WithWeights sets category weights from a plain map.
func WithWeights(weights map[model.Category]float64) Option {
	return func(p *WeightedPricer) {
		// Copy the weights map to avoid external modifications
		p.weights = make(map[model.Category]float64, len(weights))
		for c, w := range weights {
			if w > 0 {
				p.weights[c] = w
			}
		}
	}
}

// WithCategories sets weights from a category configuration.
func WithCategories(cs model.Categories) Option {
	return func(p *WeightedPricer) {
		p.weights = make(map[model.Category]float64, len(cs))
		for c, cfg := range cs {
			if cfg.Weight > 0 {
				p.weights[c] = cfg.Weight
			}
		}
	}
}
