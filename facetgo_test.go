package facetgo

import (
	"context"
	"errors"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/facetgo/collector"
	"github.com/hupe1980/facetgo/facet"
	"github.com/hupe1980/facetgo/fielddata"
	"github.com/hupe1980/facetgo/internal/recycler"
	"github.com/hupe1980/facetgo/transport"
)

func testShard(id uint64, colors ...string) (collector.IndexView, []collector.Scan) {
	seg := fielddata.NewMemorySegment(id, uint32(len(colors)))
	for i, c := range colors {
		if c != "" {
			seg.Add("color", uint32(i), c)
		}
	}
	matches := roaring.New()
	matches.AddRange(0, uint64(len(colors)))

	idx := collector.IndexView{Segs: []fielddata.Segment{seg}, Cache: fielddata.MemoryCache{}}
	return idx, []collector.Scan{{Segment: seg, Matches: matches}}
}

func TestEngine_CollectTerms(t *testing.T) {
	eng := New()
	idx, scans := testShard(1, "red", "blue", "red", "")

	f, err := eng.CollectTerms(context.Background(), idx, TermsRequest{
		Name:       "colors",
		Fields:     []string{"color"},
		Size:       10,
		Comparator: facet.Count,
	}, scans, nil)
	require.NoError(t, err)

	assert.Equal(t, []facet.Entry{{Term: "red", Count: 2}, {Term: "blue", Count: 1}}, f.Entries)
	assert.Equal(t, 1, f.Missing)
}

func TestEngine_InvalidRequest(t *testing.T) {
	eng := New()
	idx, _ := testShard(1, "red")

	_, err := eng.NewCollector(idx, TermsRequest{Name: "colors", Fields: []string{"color"}})
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = eng.NewCollector(idx, TermsRequest{Name: "colors", Size: 5})
	assert.ErrorIs(t, err, ErrNoFields)
}

func TestEngine_RunShards(t *testing.T) {
	rec := recycler.New()
	eng := New(WithConcurrency(2), WithRecycler(rec))

	shards := make([]ShardFunc, 4)
	for i := range shards {
		idx, scans := testShard(uint64(i+1), "red", "blue")
		shards[i] = func(ctx context.Context) (*facet.TermsFacet, error) {
			return eng.CollectTerms(ctx, idx, TermsRequest{
				Name:       "colors",
				Fields:     []string{"color"},
				Size:       10,
				Comparator: facet.Count,
			}, scans, nil)
		}
	}

	results, err := eng.RunShards(context.Background(), shards...)
	require.NoError(t, err)
	require.Len(t, results, 4)
	for i, f := range results {
		require.NotNil(t, f, "shard %d", i)
		assert.Len(t, f.Entries, 2)
	}

	// Every collector returned its map.
	stats := rec.Stats()
	assert.Equal(t, stats.Acquires, stats.Releases)
	assert.Equal(t, int64(4), stats.Acquires)
}

func TestEngine_RunShardsPropagatesFailure(t *testing.T) {
	eng := New()
	boom := errors.New("shard offline")

	_, err := eng.RunShards(context.Background(),
		func(ctx context.Context) (*facet.TermsFacet, error) { return &facet.TermsFacet{}, nil },
		func(ctx context.Context) (*facet.TermsFacet, error) { return nil, boom },
	)
	assert.ErrorIs(t, err, boom)
}

func TestEngine_ShipAndRead(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	eng := New(WithMetricsCollector(metrics))

	f := &facet.TermsFacet{
		Name:          "colors",
		Comparator:    facet.Count,
		RequestedSize: 2,
		Entries:       []facet.Entry{{Term: "blue", Count: 5}, {Term: "red", Count: 5}},
		Missing:       1,
	}

	for _, opts := range []*transport.Options{nil, {Compress: true}} {
		frame, err := eng.ShipResult(99, f, opts)
		require.NoError(t, err)

		requestID, got, err := eng.ReadResult(frame, opts)
		require.NoError(t, err)
		assert.Equal(t, uint64(99), requestID)
		assert.Equal(t, f, got)
	}

	assert.Equal(t, int64(2), metrics.ShipCount.Load())
	assert.Positive(t, metrics.ShipBytes.Load())
}

func TestEngine_ShipError(t *testing.T) {
	eng := New()

	frame, err := eng.ShipError(7, errors.New("segment data corrupt"))
	require.NoError(t, err)

	requestID, f, err := eng.ReadResult(frame, nil)
	assert.Equal(t, uint64(7), requestID)
	assert.Nil(t, f)
	require.ErrorIs(t, err, ErrRemote)
	assert.Contains(t, err.Error(), "segment data corrupt")
}
