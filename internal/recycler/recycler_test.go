package recycler

import (
	"strconv"
	"sync"
	"testing"
)

func TestRecycler_AcquireReturnsEmpty(t *testing.T) {
	r := New()

	m := r.AcquireCountMap()
	if len(m) != 0 {
		t.Errorf("Fresh map should be empty, got %d entries", len(m))
	}

	m["red"] = 5
	r.ReleaseCountMap(m)

	m2 := r.AcquireCountMap()
	defer r.ReleaseCountMap(m2)

	if len(m2) != 0 {
		t.Errorf("Recycled map should be cleared, got %d entries", len(m2))
	}
}

func TestRecycler_ReleaseNil(t *testing.T) {
	r := New()

	// Must not panic and must not count as a release.
	r.ReleaseCountMap(nil)

	stats := r.Stats()
	if stats.Releases != 0 {
		t.Errorf("Releasing nil should not be counted, got %d releases", stats.Releases)
	}
}

func TestRecycler_StatsBalance(t *testing.T) {
	r := New()

	maps := make([]map[string]int, 10)
	for i := range maps {
		maps[i] = r.AcquireCountMap()
	}
	for _, m := range maps {
		r.ReleaseCountMap(m)
	}

	stats := r.Stats()
	if stats.Acquires != 10 || stats.Releases != 10 {
		t.Errorf("Expected balanced 10/10, got %d/%d", stats.Acquires, stats.Releases)
	}
}

func TestRecycler_Concurrent(t *testing.T) {
	r := New()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m := r.AcquireCountMap()
				m[strconv.Itoa(n)] = j
				r.ReleaseCountMap(m)
			}
		}(i)
	}
	wg.Wait()

	stats := r.Stats()
	if stats.Acquires != stats.Releases {
		t.Errorf("Unbalanced under concurrency: %d acquires, %d releases", stats.Acquires, stats.Releases)
	}
}
