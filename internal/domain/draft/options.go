package draft

import "github.com/okian/draftkit/pkg/logger"

// Option applies a configuration option to the Board.
type Option func(*Board)

// WithLogger sets the logger for mutation events.
func WithLogger(l logger.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.log = l
		}
	}
}
