// Package facetgo provides the in-process aggregation core of a
// distributed search engine's faceting subsystem.
//
// Given a query's matching documents within one index shard, a terms
// collector counts occurrences of string field values (optionally
// excluded, pattern-filtered, or script-transformed) and reduces them to
// a bounded top-K ranked facet, ready to be merged with equivalent
// results from other shards.
//
// # Quick Start
//
//	eng := facetgo.New()
//
//	seg := fielddata.NewMemorySegment(1, 3)
//	seg.Add("color", 0, "red")
//	seg.Add("color", 1, "blue")
//	seg.Add("color", 2, "red")
//
//	idx := collector.IndexView{
//	    Segs:  []fielddata.Segment{seg},
//	    Cache: fielddata.MemoryCache{},
//	}
//
//	matches := roaring.New()
//	matches.AddRange(0, 3)
//
//	f, _ := eng.CollectTerms(ctx, idx, facetgo.TermsRequest{
//	    Name:       "colors",
//	    Fields:     []string{"color"},
//	    Size:       10,
//	    Comparator: facet.Count,
//	}, []collector.Scan{{Segment: seg, Matches: matches}}, nil)
//
//	frame, _ := eng.ShipResult(requestID, f, nil)
//
// # Execution Model
//
// One collector runs per query-shard pair; Engine.RunShards fans the
// pairs out across goroutines. Each collector is single-threaded from
// construction through finalization. The only cross-collector shared
// state is the counting-map recycler, which never blocks: under
// contention it allocates a fresh map instead.
//
// Cross-shard merging of the per-shard facets into a global ranking is a
// coordinator concern and is out of scope here; ShipResult frames a
// finalized facet for that merge step.
package facetgo
