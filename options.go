package facetgo

import (
	"log/slog"

	"github.com/hupe1980/facetgo/codec"
	"github.com/hupe1980/facetgo/internal/recycler"
)

type options struct {
	codec       codec.Codec
	metrics     MetricsCollector
	logger      *Logger
	recycler    *recycler.Recycler
	concurrency int
}

// Option configures Engine behavior.
type Option func(*options)

// WithCodec configures the codec used to serialize facet payloads for
// the wire.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithRecycler configures the counting-map recycler shared by the
// engine's collectors. The default is the process-wide recycler.
func WithRecycler(r *recycler.Recycler) Option {
	return func(o *options) {
		if r != nil {
			o.recycler = r
		}
	}
}

// WithConcurrency bounds the number of query-shard pairs RunShards
// executes at once. Zero means no bound.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:    codec.Default,
		metrics:  NoopMetricsCollector{},
		logger:   NoopLogger(),
		recycler: recycler.Default,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
