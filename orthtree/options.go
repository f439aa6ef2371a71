package orthtree

import "go.uber.org/zap"

const (
	// DefaultCapacity is the number of records a node holds before it splits.
	DefaultCapacity = 8
	// DefaultReinsertThreshold is the depth a node must exceed for an update
	// to skip the descent from the root.
	DefaultReinsertThreshold = 3
)

type config struct {
	capacity  int
	threshold int
	preAlloc  int
	logger    *zap.Logger
}

// Option configures a Tree.
type Option func(*config)

// WithCapacity sets the split threshold: a node without children splits
// once it directly owns more than n records.
func WithCapacity(n int) Option {
	return func(c *config) {
		c.capacity = n
	}
}

// WithReinsertThreshold sets the minimum owner depth (exclusive) for the
// in-place re-insertion shortcut.
func WithReinsertThreshold(depth int) Option {
	return func(c *config) {
		c.threshold = depth
	}
}

// WithPreAlloc reserves room for n records in advance.
func WithPreAlloc(n int) Option {
	return func(c *config) {
		c.preAlloc = n
	}
}

// WithLogger makes the tree report splits, clears and resizes at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func newConfig(opts []Option) config {
	c := config{
		capacity:  DefaultCapacity,
		threshold: DefaultReinsertThreshold,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
