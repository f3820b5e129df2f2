// Package core wires the extraction, graph-build and retrieval subsystems
// into the two pipelines this system exposes: the offline ingest batch and
// the online question-answering path.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/htic/graphrag/internal/config"
	"github.com/htic/graphrag/internal/core/answer"
	"github.com/htic/graphrag/internal/core/extraction"
	"github.com/htic/graphrag/internal/core/graph"
	"github.com/htic/graphrag/internal/core/ledger"
	"github.com/htic/graphrag/internal/core/model"
	"github.com/htic/graphrag/internal/core/retrieval"
	"github.com/htic/graphrag/internal/driver"
	"github.com/htic/graphrag/internal/llm"
	"github.com/htic/graphrag/internal/logger"
)

type Pipeline struct {
	Driver    driver.GraphDriver
	LLM       llm.Client
	Extractor *extraction.Extractor
	Writer    *graph.Writer
	Retriever *retrieval.Retriever
	Config    *config.Config
}

func NewPipeline(d driver.GraphDriver, llmClient llm.Client, cfg *config.Config) *Pipeline {
	llmTimeout := time.Duration(cfg.LLM.TimeoutSeconds) * time.Second
	graphTimeout := time.Duration(cfg.Neo4j.TimeoutSeconds) * time.Second

	return &Pipeline{
		Driver:    d,
		LLM:       llmClient,
		Extractor: extraction.NewExtractor(llmClient, cfg.Extraction.Triplets, llmTimeout),
		Writer:    graph.NewWriter(d, graphTimeout),
		Retriever: retrieval.NewRetriever(d, cfg.Retrieval.NeighborLimit, cfg.Retrieval.ChunkLimit, graphTimeout),
		Config:    cfg,
	}
}

func (p *Pipeline) BuildIndices(ctx context.Context) error {
	return p.Driver.BuildIndices(ctx)
}

// Ingest runs the full write path: load the ledgers, extract triplets for
// every chunk past the resume point (checkpointing the ledger after each
// chunk), then merge files, chunks and triplets into the graph in that
// order.
func (p *Pipeline) Ingest(ctx context.Context) error {
	files, err := ledger.LoadFiles(p.Config.Pipeline.MetadataFile)
	if err != nil {
		return err
	}

	chunks, err := ledger.LoadChunks(p.Config.Pipeline.ChunkFile)
	if err != nil {
		return err
	}

	committed, err := ledger.LoadTriplets(p.Config.Pipeline.TripletFile)
	if err != nil {
		return err
	}

	if len(committed) > 0 {
		logger.Info("resuming extraction", "committed_triplets", len(committed),
			"resume_point", extraction.ResumePoint(committed))
	} else {
		logger.Info("starting fresh extraction", "chunks", len(chunks))
	}

	tripletFile := p.Config.Pipeline.TripletFile
	all, err := p.Extractor.Extract(ctx, chunks, committed, func(ts []model.Triplet) error {
		return ledger.SaveTriplets(tripletFile, ts)
	})
	if err != nil {
		return fmt.Errorf("extraction aborted: %w", err)
	}

	logger.Info("extraction complete", "total_triplets", len(all))

	if err := p.Writer.Build(ctx, files, chunks, all); err != nil {
		return fmt.Errorf("graph build aborted: %w", err)
	}

	logger.Info("graph build complete", "files", len(files), "chunks", len(chunks), "triplets", len(all))
	return nil
}

// Retrieve assembles the graph-grounded context bundles for a question.
// Side-effect free; identical calls against a static graph return identical
// bundle order.
func (p *Pipeline) Retrieve(ctx context.Context, question string, topKEntities int) ([]model.ContextBundle, error) {
	if topKEntities <= 0 {
		topKEntities = p.Config.Retrieval.TopKEntities
	}
	return p.Retriever.Retrieve(ctx, question, topKEntities)
}

// Answer retrieves context for the question and generates a grounded answer.
// Failures in either stage degrade to the apology result, never an error.
// The generation call runs under the configured LLM deadline so a stalled
// model cannot hold the request open.
func (p *Pipeline) Answer(ctx context.Context, question string, topKEntities int) answer.Result {
	bundles, err := p.Retrieve(ctx, question, topKEntities)
	if err != nil {
		return answer.Failed(err, 0)
	}

	if timeout := time.Duration(p.Config.LLM.TimeoutSeconds) * time.Second; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	return answer.Generate(ctx, p.LLM, p.Config.Answer.Grounded, question, bundles)
}
