package collector

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/facetgo/facet"
	"github.com/hupe1980/facetgo/fielddata"
	"github.com/hupe1980/facetgo/script"
)

func TestValuePipeline_StageOrder(t *testing.T) {
	var evaluated []string
	p := &valuePipeline{
		excluded: map[string]struct{}{"spam": {}},
		pattern:  regexp.MustCompile(`\A(?:[a-z]+)\z`),
		script: &script.FuncScript{Fn: func(docID uint32, term string) script.Result {
			evaluated = append(evaluated, term)
			return script.Keep()
		}},
	}

	// Excluded values never reach later stages.
	_, ok := p.accept(0, "spam")
	assert.False(t, ok)
	assert.Empty(t, evaluated)

	// Pattern rejection also short-circuits the script.
	_, ok = p.accept(0, "HAM")
	assert.False(t, ok)
	assert.Empty(t, evaluated)

	out, ok := p.accept(0, "ham")
	assert.True(t, ok)
	assert.Equal(t, "ham", out)
	assert.Equal(t, []string{"ham"}, evaluated)
}

func TestValuePipeline_ScriptSubstitution(t *testing.T) {
	p := &valuePipeline{
		script: &script.FuncScript{Fn: func(docID uint32, term string) script.Result {
			return script.Replace(term + "!")
		}},
	}

	out, ok := p.accept(3, "red")
	require.True(t, ok)
	assert.Equal(t, "red!", out)
}

// Exclusion and pattern stages are pure predicates: the verdict for a
// value never depends on what was seen before it.
func TestValuePipeline_Purity(t *testing.T) {
	p := &valuePipeline{
		excluded: map[string]struct{}{"spam": {}},
		pattern:  regexp.MustCompile(`\A(?:h.*)\z`),
	}

	inputs := []string{"ham", "spam", "hot", "cold", "ham", "spam"}
	first := make(map[string]bool)
	for i, v := range inputs {
		_, ok := p.accept(uint32(i), v)
		if prev, seen := first[v]; seen {
			assert.Equal(t, prev, ok, "verdict for %q changed with visitation order", v)
		} else {
			first[v] = ok
		}
	}
}

func TestSetScorer_ReachesScript(t *testing.T) {
	seg := colorSegment()
	idx := viewOf(seg)

	s := &recordingScript{}
	c, err := NewTerms("colors", idx, []string{"color"}, 10, facet.Count, WithScript(s))
	require.NoError(t, err)
	defer c.Discard()

	c.SetScorer(constScorer(2.5))
	require.NoError(t, c.SetNextSegment(seg))

	assert.Equal(t, float32(2.5), s.score)
	assert.Equal(t, uint64(1), s.segment)
}

type constScorer float32

func (s constScorer) Score() float32 { return float32(s) }

type recordingScript struct {
	script.FuncScript
	score   float32
	segment uint64
}

func (r *recordingScript) SetScorer(s script.Scorer) { r.score = s.Score() }

func (r *recordingScript) SetNextSegment(seg fielddata.Segment) { r.segment = seg.ID() }
