package extraction

import (
	"context"
	"fmt"
	"time"

	"github.com/htic/graphrag/internal/core/common"
	"github.com/htic/graphrag/internal/core/model"
	"github.com/htic/graphrag/internal/llm"
	"github.com/htic/graphrag/internal/logger"
)

// record mirrors one element of the model's output array. Fields are
// validated explicitly; records missing any of them are rejected, not
// coerced.
type record struct {
	Subject  string `json:"subject"`
	Relation string `json:"relation"`
	Object   string `json:"object"`
}

// CheckpointFunc persists the full ledger after each processed chunk so a
// crash loses at most one chunk of work.
type CheckpointFunc func(triplets []model.Triplet) error

type Extractor struct {
	LLM     llm.Client
	Prompt  string
	Timeout time.Duration
}

func NewExtractor(client llm.Client, prompt string, timeout time.Duration) *Extractor {
	if prompt == "" {
		prompt = DefaultPrompt
	}
	return &Extractor{
		LLM:     client,
		Prompt:  prompt,
		Timeout: timeout,
	}
}

// ResumePoint returns the highest chunk sequence number referenced by any
// committed triplet, or -1 for an empty ledger. Resume is chunk-granular:
// every chunk at or below the watermark is treated as fully processed, even
// if it only yielded part of its triplets before a crash.
func ResumePoint(committed []model.Triplet) int {
	watermark := -1
	for _, t := range committed {
		seq, err := model.ChunkSequenceFromTripletID(t.TripletID)
		if err != nil {
			logger.Warn("ignoring triplet with malformed id in ledger", "triplet_id", t.TripletID)
			continue
		}
		if seq > watermark {
			watermark = seq
		}
	}
	return watermark
}

// Extract runs the generation call for every chunk past the resume point and
// appends the parsed triplets to the committed ledger. Generation errors and
// unparsable responses fail only the affected chunk; it stays unprocessed and
// is retried on the next full run. Chunks are processed strictly
// sequentially: the running global count in the triplet ids is only
// collision-free under a single writer.
func (e *Extractor) Extract(ctx context.Context, chunks []model.Chunk, committed []model.Triplet, checkpoint CheckpointFunc) ([]model.Triplet, error) {
	all := make([]model.Triplet, len(committed))
	copy(all, committed)

	watermark := ResumePoint(committed)

	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return all, err
		}

		if seq, err := chunk.Sequence(); err == nil && seq <= watermark {
			logger.Debug("skipping already processed chunk", "chunk", chunk.ID)
			continue
		}

		response, err := e.generate(ctx, chunk.Text)
		if err != nil {
			logger.Error("generation failed for chunk", "chunk", chunk.ID, "error", err)
			continue
		}

		records, err := common.ParseJSONArray[record](response)
		if err != nil {
			logger.Error("failed to parse triplets for chunk", "chunk", chunk.ID, "error", err)
			continue
		}

		appended := 0
		for i, r := range records {
			if r.Subject == "" || r.Relation == "" || r.Object == "" {
				logger.Warn("rejecting incomplete triplet record", "chunk", chunk.ID, "index", i)
				continue
			}
			all = append(all, model.Triplet{
				Subject:   r.Subject,
				Relation:  r.Relation,
				Object:    r.Object,
				Source:    chunk.Source,
				ChunkID:   chunk.ID,
				TripletID: model.NewTripletID(chunk.ID, i, len(all)+1),
			})
			appended++
		}

		if checkpoint != nil {
			if err := checkpoint(all); err != nil {
				// A failed checkpoint breaks resumability, so it is fatal
				// unlike per-chunk extraction errors.
				return all, fmt.Errorf("failed to checkpoint ledger after chunk %s: %w", chunk.ID, err)
			}
		}

		logger.Info("extracted triplets from chunk", "chunk", chunk.ID, "source", chunk.Source, "count", appended)
	}

	return all, nil
}

func (e *Extractor) generate(ctx context.Context, chunkText string) (string, error) {
	prompt := fmt.Sprintf(e.Prompt, chunkText)

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	return e.LLM.Generate(ctx, prompt)
}
