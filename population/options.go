package population

import "log/slog"

// Option configures a ClassifierSet.
type Option func(*ClassifierSet)

// WithControlStrategy sets the strategy run after every add.
// A nil strategy disables population control.
func WithControlStrategy(cs ControlStrategy) Option {
	return func(s *ClassifierSet) {
		s.control = cs
	}
}

// WithLogger configures structured logging. Pass nil to disable logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *ClassifierSet) {
		s.logger = logger
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(s *ClassifierSet) {
		s.metrics = mc
	}
}
