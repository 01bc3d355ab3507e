package lcsgo

import "github.com/hupe1980/lcsgo/population"

// MetricsCollector receives population events. Implement it to integrate
// with monitoring systems; metrics/prom provides a Prometheus collector.
type MetricsCollector = population.MetricsCollector

// NoopMetricsCollector discards all events.
type NoopMetricsCollector = population.NoopMetricsCollector

// BasicMetricsCollector counts events in memory.
type BasicMetricsCollector = population.BasicMetricsCollector

// BasicMetricsStats is a snapshot of a BasicMetricsCollector.
type BasicMetricsStats = population.BasicMetricsStats
