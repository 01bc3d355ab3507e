package population

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting population metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordAdd is called after each AddClassifier. merged is true when an
	// existing entry absorbed the numerosity.
	RecordAdd(numerosity int, merged bool)

	// RecordDelete is called after each successful delete. removed is true
	// when the entry left the set, false when only its numerosity dropped.
	RecordDelete(removed bool)

	// RecordMatchSet is called after each GenerateMatchSet.
	// candidates is the source size, matched the size of the match set.
	RecordMatchSet(candidates, matched int, duration time.Duration)

	// RecordControl is called after each run of the control strategy.
	// deleted is the number of micro-classifiers it removed.
	RecordControl(deleted int, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAdd(int, bool)                    {}
func (NoopMetricsCollector) RecordDelete(bool)                      {}
func (NoopMetricsCollector) RecordMatchSet(int, int, time.Duration) {}
func (NoopMetricsCollector) RecordControl(int, time.Duration)       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// It is safe for concurrent use, so islands may share one.
type BasicMetricsCollector struct {
	AddCount          atomic.Int64
	MergeCount        atomic.Int64
	AddedNumerosity   atomic.Int64
	DeleteCount       atomic.Int64
	RemoveCount       atomic.Int64
	MatchSetCount     atomic.Int64
	MatchCandidates   atomic.Int64
	MatchedCount      atomic.Int64
	MatchTotalNanos   atomic.Int64
	ControlCount      atomic.Int64
	ControlDeleted    atomic.Int64
	ControlTotalNanos atomic.Int64
}

// RecordAdd implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAdd(numerosity int, merged bool) {
	b.AddCount.Add(1)
	b.AddedNumerosity.Add(int64(numerosity))
	if merged {
		b.MergeCount.Add(1)
	}
}

// RecordDelete implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDelete(removed bool) {
	b.DeleteCount.Add(1)
	if removed {
		b.RemoveCount.Add(1)
	}
}

// RecordMatchSet implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMatchSet(candidates, matched int, duration time.Duration) {
	b.MatchSetCount.Add(1)
	b.MatchCandidates.Add(int64(candidates))
	b.MatchedCount.Add(int64(matched))
	b.MatchTotalNanos.Add(duration.Nanoseconds())
}

// RecordControl implements MetricsCollector.
func (b *BasicMetricsCollector) RecordControl(deleted int, duration time.Duration) {
	b.ControlCount.Add(1)
	b.ControlDeleted.Add(int64(deleted))
	b.ControlTotalNanos.Add(duration.Nanoseconds())
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AddCount:        b.AddCount.Load(),
		MergeCount:      b.MergeCount.Load(),
		AddedNumerosity: b.AddedNumerosity.Load(),
		DeleteCount:     b.DeleteCount.Load(),
		RemoveCount:     b.RemoveCount.Load(),
		MatchSetCount:   b.MatchSetCount.Load(),
		MatchAvgNanos:   avg(b.MatchTotalNanos.Load(), b.MatchSetCount.Load()),
		MatchRatio:      ratio(b.MatchedCount.Load(), b.MatchCandidates.Load()),
		ControlCount:    b.ControlCount.Load(),
		ControlDeleted:  b.ControlDeleted.Load(),
		ControlAvgNanos: avg(b.ControlTotalNanos.Load(), b.ControlCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

func ratio(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole)
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AddCount        int64
	MergeCount      int64
	AddedNumerosity int64
	DeleteCount     int64
	RemoveCount     int64
	MatchSetCount   int64
	MatchAvgNanos   int64
	MatchRatio      float64
	ControlCount    int64
	ControlDeleted  int64
	ControlAvgNanos int64
}
