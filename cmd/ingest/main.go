// Command ingest runs the offline write path: resumable triplet extraction
// over the chunk ledger followed by the idempotent graph build. Re-running
// it is always safe; already extracted chunks are skipped and already
// committed graph state is untouched.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/htic/graphrag/internal/config"
	"github.com/htic/graphrag/internal/core"
	"github.com/htic/graphrag/internal/driver"
	"github.com/htic/graphrag/internal/llm"
	"github.com/htic/graphrag/internal/logger"
)

func main() {
	cfgPath := flag.String("config", "config/config.toml", "path to config file")
	chunkFile := flag.String("chunks", "", "override chunk ledger path")
	tripletFile := flag.String("triplets", "", "override triplet ledger path")
	metadataFile := flag.String("metadata", "", "override file metadata path")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using defaults")
	}
	logger.Init(*debug)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Warn("could not load config file, using defaults", "path", *cfgPath, "error", err)
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	if *chunkFile != "" {
		cfg.Pipeline.ChunkFile = *chunkFile
	}
	if *tripletFile != "" {
		cfg.Pipeline.TripletFile = *tripletFile
	}
	if *metadataFile != "" {
		cfg.Pipeline.MetadataFile = *metadataFile
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := driver.NewNeo4jDriver(ctx, cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password)
	if err != nil {
		logger.Fatal("failed to connect to neo4j", "error", err)
	}
	defer d.Close(context.Background())

	if err := d.BuildIndices(ctx); err != nil {
		logger.Fatal("failed to build indices", "error", err)
	}

	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		logger.Fatal("failed to initialize llm client", "error", err)
	}

	p := core.NewPipeline(d, llmClient, cfg)

	if err := p.Ingest(ctx); err != nil {
		logger.Fatal("ingest failed", "error", err)
	}

	logger.Info("ingest complete")
}
