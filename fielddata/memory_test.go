package fielddata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySegment_Vocabulary(t *testing.T) {
	seg := NewMemorySegment(1, 4)
	seg.Add("color", 0, "red")
	seg.Add("color", 1, "blue")
	seg.Add("color", 2, "red", "green")

	src, err := MemoryCache{}.Load(TypeString, seg, "color")
	require.NoError(t, err)

	var terms []string
	src.ForEachValue(func(term string) { terms = append(terms, term) })

	// Distinct terms, lexical order.
	assert.Equal(t, []string{"blue", "green", "red"}, terms)
}

func TestMemorySegment_DocValues(t *testing.T) {
	seg := NewMemorySegment(1, 4)
	seg.Add("color", 0, "red", "green")
	seg.Add("color", 1, "blue")

	src, err := MemoryCache{}.Load(TypeString, seg, "color")
	require.NoError(t, err)

	var got []string
	n := src.ForEachValueInDoc(0, func(docID uint32, term string) {
		assert.Equal(t, uint32(0), docID)
		got = append(got, term)
	})
	assert.Equal(t, 2, n)
	assert.ElementsMatch(t, []string{"red", "green"}, got)

	// Document 2 has no values; the callback must not fire.
	n = src.ForEachValueInDoc(2, func(uint32, string) { t.Fatal("unexpected value") })
	assert.Zero(t, n)
}

func TestMemorySegment_AbsentField(t *testing.T) {
	seg := NewMemorySegment(1, 4)
	seg.Add("color", 0, "red")

	src, err := MemoryCache{}.Load(TypeString, seg, "shape")
	require.NoError(t, err)

	src.ForEachValue(func(string) { t.Fatal("absent field should have no vocabulary") })
	assert.Zero(t, src.ForEachValueInDoc(0, nil))
}

func TestMemoryCache_Errors(t *testing.T) {
	seg := NewMemorySegment(1, 4)

	_, err := MemoryCache{}.Load(Type(99), seg, "color")
	assert.Error(t, err)

	_, err = MemoryCache{}.Load(TypeString, fakeSegment{}, "color")
	assert.Error(t, err)
}

type fakeSegment struct{}

func (fakeSegment) ID() uint64     { return 42 }
func (fakeSegment) MaxDoc() uint32 { return 0 }
