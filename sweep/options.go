package sweep

import (
	"io"
	"log/slog"
	"math"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// DefaultPercent is the perturbation size in percent.
	DefaultPercent = 1.0
	// DefaultWorkers runs trials one at a time.
	DefaultWorkers = 1
)

const (
	panicPercent = "sweep: WithPercent requires 0 < p < 100"
	panicWorkers = "sweep: WithWorkers requires n >= 1"
)

type options struct {
	percent    float64
	workers    int
	registerer prometheus.Registerer
	logger     *slog.Logger
}

// Option configures Run.
type Option func(*options)

// WithPercent sets the perturbation size. It panics unless 0 < p < 100.
func WithPercent(p float64) Option {
	if math.IsNaN(p) || p <= 0 || p >= 100 {
		panic(panicPercent)
	}
	return func(o *options) { o.percent = p }
}

// WithWorkers bounds the number of concurrent trials. It panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkers)
	}
	return func(o *options) { o.workers = n }
}

// WithRegisterer registers the sweep collectors with r instead of a private
// registry. A nil r is ignored.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(o *options) {
		if r != nil {
			o.registerer = r
		}
	}
}

// WithLogger sets the logger for run and trial events. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		percent:    DefaultPercent,
		workers:    DefaultWorkers,
		registerer: prometheus.NewRegistry(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
