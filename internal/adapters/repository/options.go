package repository

import "github.com/google/uuid"

// Option applies a configuration option to the TreapCatalog.
type Option func(*TreapCatalog)

// WithCapacity pre-sizes the ID index for an expected catalog size.
func WithCapacity(n int) Option {
	return func(s *TreapCatalog) {
		if n > 0 {
			s.byID = make(map[uuid.UUID]record, n)
		}
	}
}

// WithPrioritySeed changes the treap shape without changing iteration order.
func WithPrioritySeed(seed uint64) Option {
	return func(s *TreapCatalog) {
		s.seed = seed
	}
}
