package dag

import (
	"io"

	"github.com/specialistvlad/workgrid/internal/metrics"
	"github.com/specialistvlad/workgrid/internal/progress"
)

// Option configures Plan and Run.
type Option func(*options)

type options struct {
	reporter progress.Reporter
	metrics  *metrics.Collector
	workers  int
	output   io.Writer
}

func newOptions(opts []Option) *options {
	o := &options{reporter: progress.Nop, workers: 1}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithReporter sends progress messages to r.
func WithReporter(r progress.Reporter) Option {
	return func(o *options) { o.reporter = progress.OrNop(r) }
}

// WithMetrics records engagement and build metrics on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(o *options) { o.metrics = c }
}

// WithWorkers builds up to n stations at once. Values below 2 keep the build
// sequential.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.workers = n
	}
}

// WithOutput routes the human-facing output of tools to w. When building
// concurrently, each station's output is held back and written to w in
// sequential build order.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.output = w }
}
