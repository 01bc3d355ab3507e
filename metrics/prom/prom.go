// Package prom exports population metrics to Prometheus.
package prom

import (
	"fmt"
	"time"

	"github.com/hupe1980/lcsgo/population"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector implements population.MetricsCollector on Prometheus
// counters and histograms.
type Collector struct {
	adds           *prometheus.CounterVec
	addedNum       prometheus.Counter
	deletes        *prometheus.CounterVec
	matchLatency   prometheus.Histogram
	matchRatio     prometheus.Histogram
	controlLatency prometheus.Histogram
	controlDeleted prometheus.Counter
}

var _ population.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers it with reg. A nil reg uses
// prometheus.DefaultRegisterer. constLabels (e.g. an island id) are attached
// to every series.
func New(reg prometheus.Registerer, namespace string, constLabels prometheus.Labels) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		adds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "classifier_adds_total",
			Help:        "Classifiers added to a population, by outcome.",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		addedNum: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "added_numerosity_total",
			Help:        "Micro-classifiers added to a population.",
			ConstLabels: constLabels,
		}),
		deletes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "classifier_deletes_total",
			Help:        "Micro-classifier deletions, by whether the entry was removed.",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		matchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "match_set_duration_seconds",
			Help:        "Latency of match set generation.",
			Buckets:     prometheus.ExponentialBuckets(1e-6, 4, 10),
			ConstLabels: constLabels,
		}),
		matchRatio: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "match_set_ratio",
			Help:        "Fraction of entries matching an instance.",
			Buckets:     prometheus.LinearBuckets(0.1, 0.1, 10),
			ConstLabels: constLabels,
		}),
		controlLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Name:        "control_duration_seconds",
			Help:        "Latency of population control runs.",
			Buckets:     prometheus.ExponentialBuckets(1e-6, 4, 10),
			ConstLabels: constLabels,
		}),
		controlDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "control_deleted_total",
			Help:        "Micro-classifiers deleted by population control.",
			ConstLabels: constLabels,
		}),
	}

	for _, m := range []prometheus.Collector{
		c.adds, c.addedNum, c.deletes, c.matchLatency, c.matchRatio, c.controlLatency, c.controlDeleted,
	} {
		if err := reg.Register(m); err != nil {
			return nil, fmt.Errorf("prom: register: %w", err)
		}
	}
	return c, nil
}

// MustNew is like New but panics on registration errors.
func MustNew(reg prometheus.Registerer, namespace string, constLabels prometheus.Labels) *Collector {
	c, err := New(reg, namespace, constLabels)
	if err != nil {
		panic(err)
	}
	return c
}

// RecordAdd implements population.MetricsCollector.
func (c *Collector) RecordAdd(numerosity int, merged bool) {
	outcome := "inserted"
	if merged {
		outcome = "merged"
	}
	c.adds.WithLabelValues(outcome).Inc()
	c.addedNum.Add(float64(numerosity))
}

// RecordDelete implements population.MetricsCollector.
func (c *Collector) RecordDelete(removed bool) {
	outcome := "decremented"
	if removed {
		outcome = "removed"
	}
	c.deletes.WithLabelValues(outcome).Inc()
}

// RecordMatchSet implements population.MetricsCollector.
func (c *Collector) RecordMatchSet(candidates, matched int, duration time.Duration) {
	c.matchLatency.Observe(duration.Seconds())
	if candidates > 0 {
		c.matchRatio.Observe(float64(matched) / float64(candidates))
	}
}

// RecordControl implements population.MetricsCollector.
func (c *Collector) RecordControl(deleted int, duration time.Duration) {
	c.controlLatency.Observe(duration.Seconds())
	c.controlDeleted.Add(float64(deleted))
}
