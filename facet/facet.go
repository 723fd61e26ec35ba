// Package facet defines the terms facet result model and its bounded
// top-K reduction.
//
// A TermsFacet is the immutable per-shard output of a terms collector:
// a bounded, ordered list of (term, count) entries plus a count of
// documents that held no value in any bound field. Per-shard facets are
// merged into a global ranking by a coordinating node; that reduction is
// outside this package.
package facet

import "fmt"

// Entry is a single ranked (term, count) pair in a terms facet.
type Entry struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// ComparatorType selects the ranking applied to facet entries. Its wire
// name travels with the facet so the coordinating node merges per-shard
// results under the same ordering.
type ComparatorType int

const (
	// Count ranks by descending count, ties broken by ascending term.
	Count ComparatorType = iota
	// ReverseCount ranks by ascending count, ties broken by ascending term.
	ReverseCount
	// Term ranks by ascending term.
	Term
	// ReverseTerm ranks by descending term.
	ReverseTerm
)

// Ahead reports whether a ranks ahead of b. The ordering is total for
// entries with distinct terms.
func (c ComparatorType) Ahead(a, b Entry) bool {
	switch c {
	case Count:
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Term < b.Term
	case ReverseCount:
		if a.Count != b.Count {
			return a.Count < b.Count
		}
		return a.Term < b.Term
	case Term:
		return a.Term < b.Term
	case ReverseTerm:
		return a.Term > b.Term
	default:
		return false
	}
}

// String returns the stable wire name of the comparator.
func (c ComparatorType) String() string {
	switch c {
	case Count:
		return "count"
	case ReverseCount:
		return "reverse_count"
	case Term:
		return "term"
	case ReverseTerm:
		return "reverse_term"
	default:
		return fmt.Sprintf("comparator(%d)", int(c))
	}
}

// ComparatorByName returns a comparator by its stable wire name.
func ComparatorByName(name string) (ComparatorType, bool) {
	switch name {
	case "count":
		return Count, true
	case "reverse_count":
		return ReverseCount, true
	case "term":
		return Term, true
	case "reverse_term":
		return ReverseTerm, true
	default:
		return 0, false
	}
}

// MarshalJSON encodes the comparator as its wire name.
func (c ComparatorType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON decodes a comparator from its wire name.
func (c *ComparatorType) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("facet: invalid comparator %s", data)
	}
	ct, ok := ComparatorByName(string(data[1 : len(data)-1]))
	if !ok {
		return fmt.Errorf("facet: unknown comparator %s", data)
	}
	*c = ct
	return nil
}

// TermsFacet is one shard's finalized terms facet. It is immutable once
// constructed and ready to be shipped to the coordinating merge step.
type TermsFacet struct {
	Name          string         `json:"name"`
	Comparator    ComparatorType `json:"comparator"`
	RequestedSize int            `json:"requested_size"`
	Entries       []Entry        `json:"entries"`
	Missing       int            `json:"missing"`
}
