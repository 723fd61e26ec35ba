// Package fielddata defines the columnar field-value collaborator the
// facet collectors read from: for each document, produce zero or more
// string values of a field, or signal absence. It also ships an
// in-memory reference implementation backed by roaring postings for
// tests and embedders without their own columnar store.
package fielddata

// Type selects the columnar representation of a field.
type Type int

const (
	// TypeString is the raw string representation. Fields without a
	// schema mapping fall back to it. Numeric and date representations
	// belong to their own facet variants and are out of scope here.
	TypeString Type = iota
)

// ValueFunc receives one distinct term during a full-vocabulary walk.
type ValueFunc func(term string)

// DocValueFunc receives one value held by a specific document.
type DocValueFunc func(docID uint32, term string)

// Source produces the values of a single field within one segment.
// A Source is bound to one collector at a time and is not called
// concurrently.
type Source interface {
	// ForEachValue visits every distinct term of the field in the
	// segment, independent of any query.
	ForEachValue(fn ValueFunc)

	// ForEachValueInDoc visits every value the document holds for the
	// field and returns the number of values visited. Zero means the
	// document has no value for this field.
	ForEachValueInDoc(docID uint32, fn DocValueFunc) int
}

// Segment is one immutable slice of an index shard. Documents within a
// segment are identified by dense ids in [0, MaxDoc).
type Segment interface {
	ID() uint64
	MaxDoc() uint32
}

// Cache resolves (type, segment, field) to a Source, typically memoizing
// per segment. Implementations must be safe for concurrent use across
// collectors.
type Cache interface {
	Load(t Type, seg Segment, field string) (Source, error)
}
