// Package queue provides a fixed-capacity binary heap used for bounded
// top-K extraction. The heap keeps the capacity best-ranked items seen
// so far; the worst retained item sits at the root and is the first one
// evicted on overflow.
package queue

// Bounded is a capacity-limited heap over items of type T.
// Value-based storage for cache locality and zero per-item allocations.
//
// ahead(a, b) reports whether a ranks ahead of b; the ordering must be
// total over the inserted items.
type Bounded[T any] struct {
	ahead    func(a, b T) bool
	capacity int
	items    []T
}

// NewBounded creates a heap retaining at most capacity items under the
// given ranking.
func NewBounded[T any](capacity int, ahead func(a, b T) bool) *Bounded[T] {
	return &Bounded[T]{
		ahead:    ahead,
		capacity: capacity,
		items:    make([]T, 0, capacity),
	}
}

// Len returns the number of retained items.
func (b *Bounded[T]) Len() int { return len(b.items) }

// Insert adds item, evicting the currently worst retained item when the
// heap is full. It reports whether the item was retained.
func (b *Bounded[T]) Insert(item T) bool {
	if len(b.items) < b.capacity {
		b.items = append(b.items, item)
		b.siftUp(len(b.items) - 1)
		return true
	}
	if !b.ahead(item, b.items[0]) {
		return false
	}
	b.items[0] = item
	b.siftDown(0)
	return true
}

// Pop removes and returns the worst retained item.
func (b *Bounded[T]) Pop() (T, bool) {
	n := len(b.items)
	if n == 0 {
		var zero T
		return zero, false
	}
	root := b.items[0]
	last := b.items[n-1]
	var zero T
	b.items[n-1] = zero
	b.items = b.items[:n-1]
	if n-1 > 0 {
		b.items[0] = last
		b.siftDown(0)
	}
	return root, true
}

// Drain empties the heap into a best-first slice by popping in reverse.
func (b *Bounded[T]) Drain() []T {
	out := make([]T, len(b.items))
	for i := len(b.items) - 1; i >= 0; i-- {
		out[i], _ = b.Pop()
	}
	return out
}

// worse orders the heap: the root is the item every other retained item
// ranks ahead of.
func (b *Bounded[T]) worse(i, j int) bool {
	return b.ahead(b.items[j], b.items[i])
}

func (b *Bounded[T]) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !b.worse(i, p) {
			return
		}
		b.items[i], b.items[p] = b.items[p], b.items[i]
		i = p
	}
}

func (b *Bounded[T]) siftDown(i int) {
	n := len(b.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		worst := l
		r := l + 1
		if r < n && b.worse(r, l) {
			worst = r
		}
		if !b.worse(worst, i) {
			return
		}
		b.items[i], b.items[worst] = b.items[worst], b.items[i]
		i = worst
	}
}
