package facetgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordFacet is called after each per-shard facet execution.
	// duration is the total time taken, err is nil if successful.
	RecordFacet(duration time.Duration, err error)

	// RecordShards is called after each shard fan-out run.
	// count is the number of query-shard pairs executed.
	RecordShards(count int, duration time.Duration, err error)

	// RecordShip is called after framing a facet for the coordinator.
	// frameBytes is the size of the produced frame.
	RecordShip(frameBytes int, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordFacet(time.Duration, error)       {}
func (NoopMetricsCollector) RecordShards(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordShip(int, error)                  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	FacetCount      atomic.Int64
	FacetErrors     atomic.Int64
	FacetTotalNanos atomic.Int64
	ShardRuns       atomic.Int64
	ShardPairs      atomic.Int64
	ShardErrors     atomic.Int64
	ShipCount       atomic.Int64
	ShipErrors      atomic.Int64
	ShipBytes       atomic.Int64
}

// RecordFacet implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFacet(duration time.Duration, err error) {
	b.FacetCount.Add(1)
	b.FacetTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FacetErrors.Add(1)
	}
}

// RecordShards implements MetricsCollector.
func (b *BasicMetricsCollector) RecordShards(count int, duration time.Duration, err error) {
	b.ShardRuns.Add(1)
	b.ShardPairs.Add(int64(count))
	if err != nil {
		b.ShardErrors.Add(1)
	}
}

// RecordShip implements MetricsCollector.
func (b *BasicMetricsCollector) RecordShip(frameBytes int, err error) {
	b.ShipCount.Add(1)
	b.ShipBytes.Add(int64(frameBytes))
	if err != nil {
		b.ShipErrors.Add(1)
	}
}
