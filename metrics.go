package matchgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
type MetricsCollector interface {
	// RecordBuild is called after each rule-set compilation.
	// rules is the number of rule definitions, duration the total compile
	// plus freeze time, err is nil if successful.
	RecordBuild(rules int, duration time.Duration, err error)

	// RecordClassify is called after each classification.
	// matched is false for a no-match result, err is nil if successful.
	RecordClassify(duration time.Duration, matched bool, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordClassify(time.Duration, bool, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount         atomic.Int64
	BuildErrors        atomic.Int64
	BuildTotalNanos    atomic.Int64
	ClassifyCount      atomic.Int64
	ClassifyErrors     atomic.Int64
	ClassifyMatches    atomic.Int64
	ClassifyTotalNanos atomic.Int64
}

func (m *BasicMetricsCollector) RecordBuild(rules int, duration time.Duration, err error) {
	m.BuildCount.Add(1)
	m.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		m.BuildErrors.Add(1)
	}
}

func (m *BasicMetricsCollector) RecordClassify(duration time.Duration, matched bool, err error) {
	m.ClassifyCount.Add(1)
	m.ClassifyTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		m.ClassifyErrors.Add(1)
	}
	if matched {
		m.ClassifyMatches.Add(1)
	}
}

// AverageClassifyLatency returns the mean classification latency.
func (m *BasicMetricsCollector) AverageClassifyLatency() time.Duration {
	count := m.ClassifyCount.Load()
	if count == 0 {
		return 0
	}
	return time.Duration(m.ClassifyTotalNanos.Load() / count)
}
