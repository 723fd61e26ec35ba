package collector

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/facetgo/facet"
	"github.com/hupe1980/facetgo/fielddata"
	"github.com/hupe1980/facetgo/script"
)

// Scan pairs one segment with the documents the query matched in it.
// The match bitmap is iterated in ascending doc id order, the order the
// external scan engine delivers documents within a segment.
type Scan struct {
	Segment fielddata.Segment
	Matches *roaring.Bitmap
}

// Run drives a collector through the matched documents of each scan and
// finalizes the facet. On failure the collector's counting map is
// released before returning, so every exit path stays pool-balanced.
func Run(c *TermsCollector, scans []Scan, scorer script.Scorer) (*facet.TermsFacet, error) {
	if scorer != nil {
		c.SetScorer(scorer)
	}
	for _, s := range scans {
		if err := c.SetNextSegment(s.Segment); err != nil {
			c.Discard()
			return nil, err
		}
		if s.Matches == nil {
			continue
		}
		it := s.Matches.Iterator()
		for it.HasNext() {
			c.Collect(it.Next())
		}
	}
	return c.Facet(), nil
}
