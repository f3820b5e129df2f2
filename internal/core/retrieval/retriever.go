// Package retrieval implements the read path: entity search over the
// fulltext index, neighborhood expansion, supporting-chunk lookup and the
// per-question context assembly.
package retrieval

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"golang.org/x/sync/errgroup"

	"github.com/htic/graphrag/internal/core/model"
	"github.com/htic/graphrag/internal/driver"
	"github.com/htic/graphrag/internal/logger"
)

const (
	DefaultNeighborLimit = 20
	DefaultChunkLimit    = 5
)

type Retriever struct {
	Driver        driver.GraphDriver
	NeighborLimit int
	ChunkLimit    int
	Timeout       time.Duration
}

func NewRetriever(d driver.GraphDriver, neighborLimit, chunkLimit int, timeout time.Duration) *Retriever {
	if neighborLimit <= 0 {
		neighborLimit = DefaultNeighborLimit
	}
	if chunkLimit <= 0 {
		chunkLimit = DefaultChunkLimit
	}
	return &Retriever{
		Driver:        d,
		NeighborLimit: neighborLimit,
		ChunkLimit:    chunkLimit,
		Timeout:       timeout,
	}
}

// luceneEscaper neutralizes fulltext query syntax so a natural-language
// question (leading "?", slashes, unbalanced quotes) cannot surface as a
// store-side parse error.
var luceneEscaper = strings.NewReplacer(
	`\`, `\\`, `&&`, `\&&`, `||`, `\||`,
	`+`, `\+`, `-`, `\-`, `!`, `\!`,
	`(`, `\(`, `)`, `\)`, `{`, `\{`, `}`, `\}`,
	`[`, `\[`, `]`, `\]`, `^`, `\^`, `"`, `\"`,
	`~`, `\~`, `*`, `\*`, `?`, `\?`, `:`, `\:`, `/`, `\/`,
)

// SearchEntities ranks candidate entities for a free-text question by
// fulltext score, descending. No match is an empty list, not an error; a
// blank question never reaches the store.
func (r *Retriever) SearchEntities(ctx context.Context, query string, limit int) ([]model.EntityHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.EntityHit{}, nil
	}

	result, err := r.execute(ctx, driver.SearchEntitiesQuery, map[string]interface{}{
		"q":     luceneEscaper.Replace(query),
		"limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("entity search failed: %w", err)
	}

	hits := make([]model.EntityHit, 0, len(result))
	for _, rec := range result {
		entity, _ := rec.Get("entity")
		score, _ := rec.Get("score")
		hits = append(hits, model.EntityHit{
			Entity: asString(entity),
			Score:  asFloat(score),
		})
	}
	return hits, nil
}

// Expand returns edges incident to the entity in either direction, with
// provenance. Targets without a resolvable name come back empty and are left
// in; filtering is the caller's business.
func (r *Retriever) Expand(ctx context.Context, entity string, limit int) ([]model.Relation, error) {
	result, err := r.execute(ctx, driver.ExpandEntityQuery, map[string]interface{}{
		"entity": entity,
		"limit":  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("neighborhood expansion failed for %q: %w", entity, err)
	}

	neighbors := make([]model.Relation, 0, len(result))
	for _, rec := range result {
		source, _ := rec.Get("source")
		relation, _ := rec.Get("relation")
		target, _ := rec.Get("target")
		provenance, _ := rec.Get("provenance")
		neighbors = append(neighbors, model.Relation{
			Source:     asString(source),
			Relation:   asString(relation),
			Target:     asString(target),
			Provenance: asString(provenance),
		})
	}
	return neighbors, nil
}

// ChunksFor returns the passages in which the entity was extracted.
func (r *Retriever) ChunksFor(ctx context.Context, entity string, limit int) ([]model.ChunkRef, error) {
	result, err := r.execute(ctx, driver.ChunksForEntityQuery, map[string]interface{}{
		"entity": entity,
		"limit":  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("chunk lookup failed for %q: %w", entity, err)
	}

	chunks := make([]model.ChunkRef, 0, len(result))
	for _, rec := range result {
		chunkID, _ := rec.Get("chunk_id")
		text, _ := rec.Get("text")
		source, _ := rec.Get("source")
		chunks = append(chunks, model.ChunkRef{
			ChunkID: asString(chunkID),
			Text:    asString(text),
			Source:  asString(source),
		})
	}
	return chunks, nil
}

// Retrieve assembles one ContextBundle per candidate entity. Expansion and
// chunk lookup fan out concurrently per candidate; bundles land in
// rank-indexed slots so the returned order always mirrors the search
// ranking regardless of completion order. A failed expansion or lookup
// degrades that bundle to empty evidence instead of failing the question.
func (r *Retriever) Retrieve(ctx context.Context, question string, topKEntities int) ([]model.ContextBundle, error) {
	hits, err := r.SearchEntities(ctx, question, topKEntities)
	if err != nil {
		return nil, err
	}

	bundles := make([]model.ContextBundle, len(hits))

	g, gctx := errgroup.WithContext(ctx)
	for i, hit := range hits {
		g.Go(func() error {
			bundle := model.ContextBundle{
				Entity:    hit.Entity,
				Neighbors: []model.Relation{},
				Chunks:    []model.ChunkRef{},
			}

			neighbors, err := r.Expand(gctx, hit.Entity, r.NeighborLimit)
			if err != nil {
				logger.Warn("expansion degraded to empty evidence", "entity", hit.Entity, "error", err)
			} else {
				bundle.Neighbors = neighbors
			}

			chunks, err := r.ChunksFor(gctx, hit.Entity, r.ChunkLimit)
			if err != nil {
				logger.Warn("chunk lookup degraded to empty evidence", "entity", hit.Entity, "error", err)
			} else {
				bundle.Chunks = chunks
			}

			bundles[i] = bundle
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return bundles, nil
}

func (r *Retriever) execute(ctx context.Context, query string, params map[string]interface{}) ([]*neo4j.Record, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	result, err := r.Driver.ExecuteQuery(ctx, query, params)
	if err != nil {
		return nil, err
	}
	return result.Records, nil
}

func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}
