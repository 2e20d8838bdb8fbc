package api

const defaultMaxLimit = 1000

type serverConfig struct {
	maxLimit int
}

// Option configures the API server.
type Option func(*serverConfig)

// WithMaxLimit caps the limit accepted by GET /catalog.
func WithMaxLimit(n int) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxLimit = n
		}
	}
}
