package die

import (
	"io"
	"log/slog"
)

// DefaultParallelism builds siblings one at a time.
const DefaultParallelism = 1

const panicParallelism = "die: WithParallelism: n must be >= 1"

// Option configures Build.
type Option func(*options)

type options struct {
	logger      *slog.Logger
	parallelism int
}

func defaultOptions() options {
	return options{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		parallelism: DefaultParallelism,
	}
}

// WithLogger sends advisory warnings to l. A nil logger keeps the default,
// which discards them.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithParallelism builds up to n siblings of each node concurrently.
// Panics if n < 1.
func WithParallelism(n int) Option {
	if n < 1 {
		panic(panicParallelism)
	}
	return func(o *options) { o.parallelism = n }
}
