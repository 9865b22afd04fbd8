package clusterq

import (
	"log/slog"

	"github.com/bgcdb/clusterq/codec"
	"github.com/bgcdb/clusterq/resource"
)

// options holds configuration for a Searcher.
type options struct {
	codec            codec.Codec
	metricsCollector MetricsCollector
	logger           *Logger
	resourceConfig   resource.Config
}

// Option configures a Searcher.
type Option func(*options)

// WithCodec sets the JSON codec used for requests and dataset shards.
// If c is nil, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			o.codec = codec.Default
			return
		}
		o.codec = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &clusterq.BasicMetricsCollector{}
//	s, _ := clusterq.New(st, clusterq.WithMetricsCollector(metrics))
//	// ... run searches ...
//	stats := metrics.GetStats()
//	fmt.Printf("Searches: %d, Avg latency: %dns\n", stats.SearchCount, stats.SearchAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := clusterq.NewJSONLogger(slog.LevelInfo)
//	s, _ := clusterq.New(st, clusterq.WithLogger(logger))
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

// WithResourceConfig bounds shard fetching in Open.
func WithResourceConfig(cfg resource.Config) Option {
	return func(o *options) {
		o.resourceConfig = cfg
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            codec.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
