package annrecall

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems.
type MetricsCollector interface {
	// RecordGroundTruth records a ground-truth computation over the given
	// number of queries.
	RecordGroundTruth(queries int, duration time.Duration, err error)

	// RecordEvaluate records a recall evaluation over the given number of
	// queries.
	RecordEvaluate(queries int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordGroundTruth(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordEvaluate(int, time.Duration, error)    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	GroundTruthCount      atomic.Int64
	GroundTruthErrors     atomic.Int64
	GroundTruthTotalNanos atomic.Int64
	EvaluateCount         atomic.Int64
	EvaluateErrors        atomic.Int64
	EvaluateTotalNanos    atomic.Int64
	QueriesScored         atomic.Int64
}

// RecordGroundTruth implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGroundTruth(queries int, duration time.Duration, err error) {
	b.GroundTruthCount.Add(1)
	b.GroundTruthTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.GroundTruthErrors.Add(1)
	}
}

// RecordEvaluate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEvaluate(queries int, duration time.Duration, err error) {
	b.EvaluateCount.Add(1)
	b.EvaluateTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.EvaluateErrors.Add(1)
	} else {
		b.QueriesScored.Add(int64(queries))
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		GroundTruthCount:    b.GroundTruthCount.Load(),
		GroundTruthErrors:   b.GroundTruthErrors.Load(),
		GroundTruthAvgNanos: avgNanos(b.GroundTruthTotalNanos.Load(), b.GroundTruthCount.Load()),
		EvaluateCount:       b.EvaluateCount.Load(),
		EvaluateErrors:      b.EvaluateErrors.Load(),
		EvaluateAvgNanos:    avgNanos(b.EvaluateTotalNanos.Load(), b.EvaluateCount.Load()),
		QueriesScored:       b.QueriesScored.Load(),
	}
}

func avgNanos(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	GroundTruthCount    int64
	GroundTruthErrors   int64
	GroundTruthAvgNanos int64
	EvaluateCount       int64
	EvaluateErrors      int64
	EvaluateAvgNanos    int64
	QueriesScored       int64
}
