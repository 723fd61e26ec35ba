// Package recycler provides pooled counting maps for facet aggregation.
// Uses sync.Pool so concurrently executing collectors can hand maps back
// and forth without a global lock; under contention the pool falls back
// to allocating a fresh map instead of blocking.
package recycler

import (
	"sync"
	"sync/atomic"
)

// DefaultMapCapacity is the initial capacity of fresh counting maps.
// Sized for a typical per-shard term cardinality to avoid early growth.
const DefaultMapCapacity = 1024

// Recycler hands out reusable counting maps (term -> occurrence count).
// A map acquired from the Recycler is owned exclusively by the caller
// until it is released; Release clears the map before pooling it, so an
// acquired map is always empty.
//
// The zero value is ready to use.
type Recycler struct {
	pool     sync.Pool
	acquires atomic.Int64
	releases atomic.Int64
}

// New creates an empty Recycler.
func New() *Recycler {
	return &Recycler{}
}

// AcquireCountMap returns an empty counting map, reusing a previously
// released one when available.
func (r *Recycler) AcquireCountMap() map[string]int {
	r.acquires.Add(1)
	if v := r.pool.Get(); v != nil {
		return v.(map[string]int)
	}
	return make(map[string]int, DefaultMapCapacity)
}

// ReleaseCountMap clears m and returns it to the pool. Releasing nil is
// a no-op, so abandonment paths can release unconditionally.
func (r *Recycler) ReleaseCountMap(m map[string]int) {
	if m == nil {
		return
	}
	r.releases.Add(1)
	clear(m)
	r.pool.Put(m)
}

// Stats reports cumulative acquire/release counts. Tests use it to
// assert that every acquired map was released exactly once.
type Stats struct {
	Acquires int64
	Releases int64
}

// Stats returns the current counters.
func (r *Recycler) Stats() Stats {
	return Stats{
		Acquires: r.acquires.Load(),
		Releases: r.releases.Load(),
	}
}

// Default is the process-wide recycler used by collectors that are not
// constructed with an explicit one.
var Default = New()
