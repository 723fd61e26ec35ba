package fielddata

import (
	"fmt"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// MemorySegment is an in-memory Segment holding string doc values as a
// sorted term dictionary with roaring postings per term. It backs tests
// and small embedded indexes; production embedders bring their own
// columnar store behind the Cache interface.
type MemorySegment struct {
	id     uint64
	maxDoc uint32
	fields map[string]*memoryField
}

// NewMemorySegment creates an empty segment covering doc ids [0, maxDoc).
func NewMemorySegment(id uint64, maxDoc uint32) *MemorySegment {
	return &MemorySegment{
		id:     id,
		maxDoc: maxDoc,
		fields: make(map[string]*memoryField),
	}
}

// ID implements Segment.
func (s *MemorySegment) ID() uint64 { return s.id }

// MaxDoc implements Segment.
func (s *MemorySegment) MaxDoc() uint32 { return s.maxDoc }

// Add records values of field for the given document.
func (s *MemorySegment) Add(field string, docID uint32, values ...string) {
	f := s.fields[field]
	if f == nil {
		f = &memoryField{postings: make(map[string]*roaring.Bitmap)}
		s.fields[field] = f
	}
	for _, v := range values {
		f.add(v, docID)
	}
}

func (s *MemorySegment) source(field string) Source {
	if f, ok := s.fields[field]; ok {
		return f
	}
	return emptySource{}
}

// memoryField is the per-field columnar view: terms sorted, documents
// per term tracked in a roaring bitmap.
type memoryField struct {
	terms    []string
	postings map[string]*roaring.Bitmap
}

func (f *memoryField) add(term string, docID uint32) {
	bm, ok := f.postings[term]
	if !ok {
		bm = roaring.New()
		f.postings[term] = bm
		i := sort.SearchStrings(f.terms, term)
		f.terms = append(f.terms, "")
		copy(f.terms[i+1:], f.terms[i:])
		f.terms[i] = term
	}
	bm.Add(docID)
}

// ForEachValue implements Source; terms are visited in lexical order.
func (f *memoryField) ForEachValue(fn ValueFunc) {
	for _, t := range f.terms {
		fn(t)
	}
}

// ForEachValueInDoc implements Source.
func (f *memoryField) ForEachValueInDoc(docID uint32, fn DocValueFunc) int {
	n := 0
	for _, t := range f.terms {
		if f.postings[t].Contains(docID) {
			fn(docID, t)
			n++
		}
	}
	return n
}

// emptySource stands in for fields the segment never saw. Every document
// is missing the field; the vocabulary is empty.
type emptySource struct{}

func (emptySource) ForEachValue(ValueFunc) {}

func (emptySource) ForEachValueInDoc(uint32, DocValueFunc) int { return 0 }

// MemoryCache resolves sources directly from MemorySegments. It holds no
// state of its own, so it is trivially safe for concurrent use.
type MemoryCache struct{}

// Load implements Cache.
func (MemoryCache) Load(t Type, seg Segment, field string) (Source, error) {
	if t != TypeString {
		return nil, fmt.Errorf("fielddata: unsupported type %d for field [%s]", t, field)
	}
	ms, ok := seg.(*MemorySegment)
	if !ok {
		return nil, fmt.Errorf("fielddata: segment %d is not a memory segment", seg.ID())
	}
	return ms.source(field), nil
}
