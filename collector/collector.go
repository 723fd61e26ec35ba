// Package collector implements the scan-driven terms facet collector:
// it binds a set of fields within one index shard, counts their values
// as the external scan visits matching documents, and reduces the
// pooled counting map to a bounded top-K facet when the scan completes.
package collector

import (
	"fmt"

	"github.com/hupe1980/facetgo/facet"
	"github.com/hupe1980/facetgo/fielddata"
	"github.com/hupe1980/facetgo/internal/recycler"
	"github.com/hupe1980/facetgo/schema"
	"github.com/hupe1980/facetgo/script"
)

// Index is the per-shard view a collector is constructed against: the
// segments to walk and the collaborators to read them with.
type Index interface {
	Segments() []fielddata.Segment
	FieldData() fielddata.Cache
	// Schema may return nil; unmapped fields fall back to raw strings.
	Schema() schema.Resolver
}

// IndexView is a ready-made Index over explicit segments.
type IndexView struct {
	Segs   []fielddata.Segment
	Cache  fielddata.Cache
	Fields schema.Resolver
}

// Segments implements Index.
func (v IndexView) Segments() []fielddata.Segment { return v.Segs }

// FieldData implements Index.
func (v IndexView) FieldData() fielddata.Cache { return v.Cache }

// Schema implements Index.
func (v IndexView) Schema() schema.Resolver { return v.Fields }

type options struct {
	allTerms bool
	excluded []string
	pattern  string
	script   script.Script
	recycler *recycler.Recycler
	reducer  facet.Reducer
}

// Option configures a terms collector.
type Option func(*options)

// WithAllTerms pre-seeds a zero count for every distinct term of every
// bound field before the query-driven scan, so the facet reports the
// field's full vocabulary even for terms the query never hits.
func WithAllTerms() Option {
	return func(o *options) {
		o.allTerms = true
	}
}

// WithExcluded drops the given exact values from the count.
func WithExcluded(values ...string) Option {
	return func(o *options) {
		o.excluded = append(o.excluded, values...)
	}
}

// WithPattern keeps only values fully matched by the regular expression.
func WithPattern(expr string) Option {
	return func(o *options) {
		o.pattern = expr
	}
}

// WithScript filters or transforms each value through s. The script is
// rebound to the current segment, scorer, and document as the scan
// advances.
func WithScript(s script.Script) Option {
	return func(o *options) {
		o.script = s
	}
}

// WithRecycler overrides the counting-map recycler. Tests inject one to
// assert balanced acquire/release.
func WithRecycler(r *recycler.Recycler) Option {
	return func(o *options) {
		if r != nil {
			o.recycler = r
		}
	}
}

// WithReducer overrides the top-K reducer, e.g. to tune its
// algorithm-selection threshold.
func WithReducer(r facet.Reducer) Option {
	return func(o *options) {
		o.reducer = r
	}
}

// TermsCollector counts occurrences of string field values across the
// documents an external scan delivers, then reduces them to a bounded
// ranked facet. A collector is single-threaded from construction
// through finalization and must not be shared across goroutines; the
// recycler is the only resource it shares with other collectors.
type TermsCollector struct {
	name       string
	fields     []schema.Field
	size       int
	comparator facet.ComparatorType

	cache fielddata.Cache
	bound []fielddata.Source
	docFn fielddata.DocValueFunc

	agg     *termAggregator
	script  script.Script
	rec     *recycler.Recycler
	reducer facet.Reducer
}

// NewTerms builds a collector for one facet over one shard. Field names
// are resolved through the index schema once, falling back to raw string
// fields. The counting map is acquired here; with WithAllTerms the full
// vocabulary pre-scan also runs here, and its failure is fatal to the
// facet (the map is released and a PhaseError returned).
func NewTerms(name string, idx Index, fieldNames []string, size int, comparator facet.ComparatorType, optFns ...Option) (*TermsCollector, error) {
	o := options{recycler: recycler.Default}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}

	if size <= 0 {
		return nil, ErrInvalidSize
	}
	if len(fieldNames) == 0 {
		return nil, ErrNoFields
	}

	fields := make([]schema.Field, len(fieldNames))
	for i, n := range fieldNames {
		fields[i] = schema.ResolveOrDefault(idx.Schema(), n)
	}

	var pipeline *valuePipeline
	if len(o.excluded) > 0 || o.pattern != "" || o.script != nil {
		p := &valuePipeline{script: o.script}
		if len(o.excluded) > 0 {
			p.excluded = make(map[string]struct{}, len(o.excluded))
			for _, v := range o.excluded {
				p.excluded[v] = struct{}{}
			}
		}
		if o.pattern != "" {
			re, err := compilePattern(o.pattern)
			if err != nil {
				return nil, fmt.Errorf("facet [%s]: invalid pattern: %w", name, err)
			}
			p.pattern = re
		}
		pipeline = p
	}

	c := &TermsCollector{
		name:       name,
		fields:     fields,
		size:       size,
		comparator: comparator,
		cache:      idx.FieldData(),
		bound:      make([]fielddata.Source, len(fields)),
		agg: &termAggregator{
			counts:   o.recycler.AcquireCountMap(),
			pipeline: pipeline,
		},
		script:  o.script,
		rec:     o.recycler,
		reducer: o.reducer,
	}
	// Bind once so the per-document loop does not allocate a method value.
	c.docFn = c.agg.onDocValue

	if o.allTerms {
		if err := c.prescanAllTerms(idx); err != nil {
			c.Discard()
			return nil, err
		}
	}

	return c, nil
}

// prescanAllTerms seeds a zero count for every distinct term of every
// bound field across all segments, through the static path only.
func (c *TermsCollector) prescanAllTerms(idx Index) error {
	for _, f := range c.fields {
		for _, seg := range idx.Segments() {
			src, err := c.cache.Load(f.Type, seg, f.IndexName)
			if err != nil {
				return &PhaseError{Facet: c.name, Msg: "failed to load all terms", cause: err}
			}
			src.ForEachValue(c.agg.onValue)
		}
	}
	return nil
}

// Name returns the facet name the collector was constructed with.
func (c *TermsCollector) Name() string { return c.name }

// SetScorer forwards the scan's scorer to the script stage, if any, so
// scripts can read the current document's relevance score.
func (c *TermsCollector) SetScorer(s script.Scorer) {
	if c.script != nil {
		c.script.SetScorer(s)
	}
}

// SetNextSegment rebinds every field's value source for a new segment
// and, when a script stage exists, the script's document source.
func (c *TermsCollector) SetNextSegment(seg fielddata.Segment) error {
	for i, f := range c.fields {
		src, err := c.cache.Load(f.Type, seg, f.IndexName)
		if err != nil {
			return &PhaseError{
				Facet: c.name,
				Msg:   fmt.Sprintf("failed to load field [%s]", f.IndexName),
				cause: err,
			}
		}
		c.bound[i] = src
	}
	if c.script != nil {
		c.script.SetNextSegment(seg)
	}
	return nil
}

// Collect aggregates every value the document holds across the bound
// fields. A document with no raw value in any bound field counts as
// missing exactly once, regardless of how many fields are bound or how
// the pipeline filters its values.
func (c *TermsCollector) Collect(docID uint32) {
	found := 0
	for _, src := range c.bound {
		found += src.ForEachValueInDoc(docID, c.docFn)
	}
	if found == 0 {
		c.agg.onMissing(docID)
	}
}

// Facet reduces the counting map to the final bounded facet and returns
// the map to the recycler. The map is released exactly once, including
// on the empty path; the collector must not be reused afterwards.
func (c *TermsCollector) Facet() *facet.TermsFacet {
	counts := c.agg.counts
	c.agg.counts = nil
	entries := c.reducer.Reduce(counts, c.size, c.comparator)
	c.rec.ReleaseCountMap(counts)
	return &facet.TermsFacet{
		Name:          c.name,
		Comparator:    c.comparator,
		RequestedSize: c.size,
		Entries:       entries,
		Missing:       c.agg.missing,
	}
}

// Discard releases the counting map without producing a facet. Callers
// abandoning a collector mid-scan must call it on every exit path to
// avoid starving the recycler.
func (c *TermsCollector) Discard() {
	c.rec.ReleaseCountMap(c.agg.counts)
	c.agg.counts = nil
}
