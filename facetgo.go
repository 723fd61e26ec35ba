package facetgo

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/facetgo/codec"
	"github.com/hupe1980/facetgo/collector"
	"github.com/hupe1980/facetgo/facet"
	"github.com/hupe1980/facetgo/internal/recycler"
	"github.com/hupe1980/facetgo/script"
	"github.com/hupe1980/facetgo/transport"
)

// Engine executes terms facets over index shards and frames the
// finalized results for the coordinating node. An Engine is safe for
// concurrent use; per-query state lives in the collectors it creates.
type Engine struct {
	codec       codec.Codec
	metrics     MetricsCollector
	logger      *Logger
	recycler    *recycler.Recycler
	concurrency int
}

// New creates an Engine.
func New(optFns ...Option) *Engine {
	o := applyOptions(optFns)
	return &Engine{
		codec:       o.codec,
		metrics:     o.metrics,
		logger:      o.logger,
		recycler:    o.recycler,
		concurrency: o.concurrency,
	}
}

// TermsRequest describes one terms facet to execute against a shard.
type TermsRequest struct {
	// Name identifies the facet in the result and in errors.
	Name string
	// Fields are the logical field names to count values of.
	Fields []string
	// Size bounds the number of returned entries.
	Size int
	// Comparator selects the ranking.
	Comparator facet.ComparatorType
	// AllTerms pre-seeds the full vocabulary at count zero.
	AllTerms bool
	// Excluded values are dropped from the count.
	Excluded []string
	// Pattern keeps only fully matching values when non-empty.
	Pattern string
	// Script filters or transforms each value when non-nil.
	Script script.Script
}

// NewCollector constructs a collector for req against one shard view.
// The caller owns the collector and must finalize it with Facet or
// Discard on every path.
func (e *Engine) NewCollector(idx collector.Index, req TermsRequest) (*collector.TermsCollector, error) {
	opts := []collector.Option{collector.WithRecycler(e.recycler)}
	if req.AllTerms {
		opts = append(opts, collector.WithAllTerms())
	}
	if len(req.Excluded) > 0 {
		opts = append(opts, collector.WithExcluded(req.Excluded...))
	}
	if req.Pattern != "" {
		opts = append(opts, collector.WithPattern(req.Pattern))
	}
	if req.Script != nil {
		opts = append(opts, collector.WithScript(req.Script))
	}

	c, err := collector.NewTerms(req.Name, idx, req.Fields, req.Size, req.Comparator, opts...)
	if err != nil {
		return nil, translateError(err)
	}
	return c, nil
}

// CollectTerms runs one facet over one shard: construct, drive the scan,
// finalize.
func (e *Engine) CollectTerms(ctx context.Context, idx collector.Index, req TermsRequest, scans []collector.Scan, scorer script.Scorer) (*facet.TermsFacet, error) {
	start := time.Now()

	c, err := e.NewCollector(idx, req)
	if err != nil {
		e.metrics.RecordFacet(time.Since(start), err)
		e.logger.LogFacet(ctx, req.Name, 0, 0, time.Since(start), err)
		return nil, err
	}

	f, err := collector.Run(c, scans, scorer)
	if err != nil {
		err = translateError(err)
		e.metrics.RecordFacet(time.Since(start), err)
		e.logger.LogFacet(ctx, req.Name, 0, 0, time.Since(start), err)
		return nil, err
	}

	e.metrics.RecordFacet(time.Since(start), nil)
	e.logger.LogFacet(ctx, req.Name, len(f.Entries), f.Missing, time.Since(start), nil)
	return f, nil
}

// ShardFunc produces one shard's finalized facet.
type ShardFunc func(ctx context.Context) (*facet.TermsFacet, error)

// RunShards executes one function per query-shard pair in parallel and
// returns the per-shard facets in shard order. The first failure cancels
// the remaining shards; merging the facets into a global ranking is the
// coordinator's concern.
func (e *Engine) RunShards(ctx context.Context, shards ...ShardFunc) ([]*facet.TermsFacet, error) {
	start := time.Now()
	results := make([]*facet.TermsFacet, len(shards))

	g, ctx := errgroup.WithContext(ctx)
	if e.concurrency > 0 {
		g.SetLimit(e.concurrency)
	}
	for i, fn := range shards {
		g.Go(func() error {
			f, err := fn(ctx)
			if err != nil {
				return err
			}
			results[i] = f
			return nil
		})
	}

	err := g.Wait()
	e.metrics.RecordShards(len(shards), time.Since(start), err)
	e.logger.LogShards(ctx, len(shards), time.Since(start), err)
	if err != nil {
		return nil, translateError(err)
	}
	return results, nil
}

// ShipResult serializes a finalized facet and frames it as a response to
// the coordinating node's request.
func (e *Engine) ShipResult(requestID uint64, f *facet.TermsFacet, opts *transport.Options) ([]byte, error) {
	payload, err := e.codec.Marshal(f)
	if err != nil {
		err = fmt.Errorf("encode facet [%s]: %w", f.Name, err)
		e.metrics.RecordShip(0, err)
		return nil, err
	}
	frame, err := transport.BuildResponse(requestID, payload, opts)
	if err != nil {
		e.metrics.RecordShip(0, err)
		return nil, err
	}
	e.metrics.RecordShip(len(frame), nil)
	e.logger.LogShip(context.Background(), requestID, len(frame), nil)
	return frame, nil
}

// ShipError frames a failed facet execution as an error response.
func (e *Engine) ShipError(requestID uint64, execErr error) ([]byte, error) {
	frame, err := transport.BuildErrorResponse(requestID, []byte(execErr.Error()))
	if err != nil {
		e.metrics.RecordShip(0, err)
		return nil, err
	}
	e.metrics.RecordShip(len(frame), nil)
	return frame, nil
}

// ReadResult decodes a facet response frame produced by ShipResult. A
// frame with the error flag set yields ErrRemote wrapping the shipped
// message.
func (e *Engine) ReadResult(frame []byte, opts *transport.Options) (uint64, *facet.TermsFacet, error) {
	resp, err := transport.ParseResponse(frame, opts)
	if err != nil {
		return 0, nil, err
	}
	if resp.Err {
		return resp.RequestID, nil, fmt.Errorf("%w: %s", ErrRemote, resp.Message)
	}
	var f facet.TermsFacet
	if err := e.codec.Unmarshal(resp.Message, &f); err != nil {
		return resp.RequestID, nil, fmt.Errorf("decode facet payload: %w", err)
	}
	return resp.RequestID, &f, nil
}
