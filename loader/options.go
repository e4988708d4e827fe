package loader

import (
	"io"
	"log/slog"
)

type options struct {
	logger *slog.Logger
}

// Option configures Decode and Load.
type Option func(*options)

// WithLogger sets the logger receiving incomplete-record warnings.
// A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
