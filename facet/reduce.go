package facet

import (
	"sort"

	"github.com/hupe1980/facetgo/internal/queue"
)

// DefaultOrderedSetLimit is the requested-size threshold at which Reduce
// switches algorithms. Below it a fixed-capacity heap wins because heap
// overhead is negligible for small K; at or above it a size-capped
// ordered set with cheap bounded insert beats the heap's many
// insert/evict cycles. The two paths produce identical results, so the
// threshold is a performance tunable, not a semantic boundary.
const DefaultOrderedSetLimit = 5000

// Reducer turns a counting map into a bounded, ordered entry list.
// The zero value uses DefaultOrderedSetLimit.
type Reducer struct {
	// OrderedSetLimit overrides the algorithm-selection threshold.
	// Zero or negative means DefaultOrderedSetLimit.
	OrderedSetLimit int
}

// Reduce extracts the size best-ranked entries of counts under the
// comparator. The result length is min(size, distinct terms), strictly
// ordered best-first with no duplicate terms. An empty map yields nil.
func (r Reducer) Reduce(counts map[string]int, size int, cmp ComparatorType) []Entry {
	if len(counts) == 0 || size <= 0 {
		return nil
	}
	limit := r.OrderedSetLimit
	if limit <= 0 {
		limit = DefaultOrderedSetLimit
	}
	if size < limit {
		return reduceHeap(counts, size, cmp)
	}
	return reduceOrderedSet(counts, size, cmp)
}

// Reduce applies the zero-value Reducer.
func Reduce(counts map[string]int, size int, cmp ComparatorType) []Entry {
	return Reducer{}.Reduce(counts, size, cmp)
}

// reduceHeap keeps the size best entries in a bounded heap and drains it
// best-first.
func reduceHeap(counts map[string]int, size int, cmp ComparatorType) []Entry {
	pq := queue.NewBounded(min(size, len(counts)), cmp.Ahead)
	for term, count := range counts {
		pq.Insert(Entry{Term: term, Count: count})
	}
	return pq.Drain()
}

// reduceOrderedSet maintains a best-first sorted slice capped at size,
// evicting the current worst entry whenever an insert would overflow.
func reduceOrderedSet(counts map[string]int, size int, cmp ComparatorType) []Entry {
	ordered := make([]Entry, 0, min(size, len(counts)))
	for term, count := range counts {
		e := Entry{Term: term, Count: count}
		i := sort.Search(len(ordered), func(j int) bool { return cmp.Ahead(e, ordered[j]) })
		switch {
		case len(ordered) < size:
			ordered = append(ordered, Entry{})
			copy(ordered[i+1:], ordered[i:])
			ordered[i] = e
		case i < size:
			copy(ordered[i+1:], ordered[i:size-1])
			ordered[i] = e
		}
		// i == size on a full slice means e ranks behind every
		// retained entry; it is dropped.
	}
	return ordered
}
