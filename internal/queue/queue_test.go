package queue

import (
	"math/rand"
	"sort"
	"testing"
)

func intAhead(a, b int) bool { return a > b }

func TestBounded_RetainsBest(t *testing.T) {
	b := NewBounded(3, intAhead)

	for _, v := range []int{5, 1, 9, 3, 7} {
		b.Insert(v)
	}

	got := b.Drain()
	want := []int{9, 7, 5}
	if len(got) != len(want) {
		t.Fatalf("Expected %d items, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Drain[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestBounded_InsertReportsRetention(t *testing.T) {
	b := NewBounded(2, intAhead)

	if !b.Insert(4) || !b.Insert(8) {
		t.Error("Inserts below capacity should be retained")
	}
	if b.Insert(1) {
		t.Error("Item worse than the root of a full heap should be dropped")
	}
	if !b.Insert(6) {
		t.Error("Item better than the root of a full heap should be retained")
	}
}

func TestBounded_UnderCapacity(t *testing.T) {
	b := NewBounded(10, intAhead)
	b.Insert(2)
	b.Insert(1)

	got := b.Drain()
	if len(got) != 2 || got[0] != 2 || got[1] != 1 {
		t.Errorf("Expected [2 1], got %v", got)
	}
}

func TestBounded_Empty(t *testing.T) {
	b := NewBounded(4, intAhead)

	if _, ok := b.Pop(); ok {
		t.Error("Pop on an empty heap should report false")
	}
	if got := b.Drain(); len(got) != 0 {
		t.Errorf("Drain on an empty heap should be empty, got %v", got)
	}
}

func TestBounded_MatchesSort(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 20; trial++ {
		n := 1 + rng.Intn(200)
		capacity := 1 + rng.Intn(50)

		values := make([]int, n)
		seen := make(map[int]bool, n)
		for i := range values {
			// Distinct values keep the ranking total.
			v := rng.Intn(100000)
			for seen[v] {
				v = rng.Intn(100000)
			}
			seen[v] = true
			values[i] = v
		}

		b := NewBounded(capacity, intAhead)
		for _, v := range values {
			b.Insert(v)
		}
		got := b.Drain()

		sorted := append([]int(nil), values...)
		sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
		if len(sorted) > capacity {
			sorted = sorted[:capacity]
		}

		if len(got) != len(sorted) {
			t.Fatalf("trial %d: expected %d items, got %d", trial, len(sorted), len(got))
		}
		for i := range sorted {
			if got[i] != sorted[i] {
				t.Fatalf("trial %d: Drain[%d] = %d, want %d", trial, i, got[i], sorted[i])
			}
		}
	}
}
