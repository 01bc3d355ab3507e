package lcsgo

import (
	"log/slog"

	"github.com/hupe1980/lcsgo/blobstore"
	"github.com/hupe1980/lcsgo/classifier"
	"github.com/hupe1980/lcsgo/persistence"
	"github.com/hupe1980/lcsgo/population"
)

type options struct {
	updater          classifier.UpdateAlgorithm
	ids              classifier.IDSource
	control          population.ControlStrategy
	store            blobstore.BlobStore
	compression      persistence.Compression
	metricsCollector population.MetricsCollector
	logger           *Logger
}

// Option configures a System.
type Option func(*options)

// WithUpdateAlgorithm sets the algorithm that creates per-classifier
// update state.
func WithUpdateAlgorithm(u classifier.UpdateAlgorithm) Option {
	return func(o *options) {
		o.updater = u
	}
}

// WithIDSource sets the serial source. Share one source between systems
// whose classifiers must have distinct serials.
func WithIDSource(ids classifier.IDSource) Option {
	return func(o *options) {
		o.ids = ids
	}
}

// WithControlStrategy binds cs to every population created or opened by
// the System.
func WithControlStrategy(cs population.ControlStrategy) Option {
	return func(o *options) {
		o.control = cs
	}
}

// WithBlobStore sets the store used for checkpoints.
//
// Example:
//
//	store := blobstore.NewLocalStore("./checkpoints")
//	sys, _ := lcsgo.New(rep, lcsgo.WithBlobStore(store))
func WithBlobStore(s blobstore.BlobStore) Option {
	return func(o *options) {
		o.store = s
	}
}

// WithCompression selects the checkpoint body compression.
func WithCompression(c persistence.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithMetricsCollector configures a metrics collector for every population.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &population.BasicMetricsCollector{}
//	sys, _ := lcsgo.New(rep, lcsgo.WithMetricsCollector(metrics))
//	// ... train ...
//	stats := metrics.GetStats()
//	fmt.Printf("Adds: %d, merged: %d\n", stats.AddCount, stats.MergeCount)
func WithMetricsCollector(mc population.MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := lcsgo.NewJSONLogger(slog.LevelInfo)
//	sys, _ := lcsgo.New(rep, lcsgo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
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

func applyOptions(optFns []Option) options {
	o := options{
		compression:      persistence.CompressionNone,
		metricsCollector: population.NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = population.NoopMetricsCollector{}
	}
	return o
}
