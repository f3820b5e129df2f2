// Package graph translates extracted facts and document metadata into
// idempotent merges against the graph store.
package graph

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/htic/graphrag/internal/core/model"
	"github.com/htic/graphrag/internal/driver"
	"github.com/htic/graphrag/internal/logger"
)

// ErrChunkNotFound reports a triplet whose chunk id does not resolve to a
// committed Chunk node. The write is skipped; the batch continues.
var ErrChunkNotFound = errors.New("chunk not found in graph")

// ErrFileNotFound reports a chunk whose owning File node is missing.
var ErrFileNotFound = errors.New("file not found in graph")

type Writer struct {
	Driver  driver.GraphDriver
	Timeout time.Duration
}

func NewWriter(d driver.GraphDriver, timeout time.Duration) *Writer {
	return &Writer{Driver: d, Timeout: timeout}
}

// UpsertFile find-or-creates the File node keyed by file_id and overwrites
// its descriptive properties. Safe to re-run.
func (w *Writer) UpsertFile(ctx context.Context, f model.FileMeta) error {
	params := map[string]interface{}{
		"file_id":     f.FileID,
		"name":        f.Name,
		"url":         f.URL,
		"description": f.Description,
	}

	_, err := w.execute(ctx, driver.UpsertFileQuery, params)
	if err != nil {
		return fmt.Errorf("failed to upsert file %s: %w", f.FileID, err)
	}
	return nil
}

// UpsertChunk find-or-creates the Chunk node keyed by chunk_id and the
// HAS_CHUNK edge from the named File, which must already exist.
func (w *Writer) UpsertChunk(ctx context.Context, c model.Chunk, owningFileName string) error {
	params := map[string]interface{}{
		"file_name": owningFileName,
		"chunk_id":  c.ID,
		"text":      c.Text,
		"source":    c.Source,
	}

	records, err := w.execute(ctx, driver.UpsertChunkQuery, params)
	if err != nil {
		return fmt.Errorf("failed to upsert chunk %s: %w", c.ID, err)
	}
	if records == 0 {
		return fmt.Errorf("chunk %s owned by %q: %w", c.ID, owningFileName, ErrFileNotFound)
	}
	return nil
}

// UpsertTriplet find-or-creates both Entity nodes, the RELATION edge carrying
// the full property tuple, and the containment edges from the owning Chunk.
// The chunk must already be committed.
func (w *Writer) UpsertTriplet(ctx context.Context, t model.Triplet) error {
	chunkID := t.ChunkID
	if chunkID == "" {
		var err error
		chunkID, err = model.ChunkIDFromTripletID(t.TripletID)
		if err != nil {
			return err
		}
	}

	params := map[string]interface{}{
		"chunk_id":   chunkID,
		"subject":    t.Subject,
		"object":     t.Object,
		"relation":   t.Relation,
		"triplet_id": t.TripletID,
		"source":     t.Source,
	}

	records, err := w.execute(ctx, driver.UpsertTripletQuery, params)
	if err != nil {
		return fmt.Errorf("failed to upsert triplet %s: %w", t.TripletID, err)
	}
	if records == 0 {
		return fmt.Errorf("triplet %s references chunk %s: %w", t.TripletID, chunkID, ErrChunkNotFound)
	}
	return nil
}

// Build commits the whole batch in dependency order: Files, then Chunks, then
// Triplets. A failed unit is logged and skipped; only context cancellation
// aborts the batch.
func (w *Writer) Build(ctx context.Context, files []model.FileMeta, chunks []model.Chunk, triplets []model.Triplet) error {
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.UpsertFile(ctx, f); err != nil {
			logger.Warn("skipping file write", "file", f.FileID, "error", err)
		}
	}

	for _, c := range chunks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.UpsertChunk(ctx, c, c.Source); err != nil {
			logger.Warn("skipping chunk write", "chunk", c.ID, "error", err)
		}
	}

	for _, t := range triplets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.UpsertTriplet(ctx, t); err != nil {
			logger.Warn("skipping triplet write", "triplet", t.TripletID, "error", err)
		}
	}

	return nil
}

func (w *Writer) execute(ctx context.Context, query string, params map[string]interface{}) (int, error) {
	if w.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.Timeout)
		defer cancel()
	}

	result, err := w.Driver.ExecuteQuery(ctx, query, params)
	if err != nil {
		return 0, err
	}
	return len(result.Records), nil
}
