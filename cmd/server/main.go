package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/htic/graphrag/internal/config"
	"github.com/htic/graphrag/internal/core"
	"github.com/htic/graphrag/internal/driver"
	"github.com/htic/graphrag/internal/llm"
	"github.com/htic/graphrag/internal/logger"
	"github.com/htic/graphrag/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, using defaults")
	}
	logger.Init(os.Getenv("DEBUG") != "")

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Warn("could not load config file, using defaults", "path", cfgPath, "error", err)
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	ctx := context.Background()

	d, err := driver.NewNeo4jDriver(ctx, cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password)
	if err != nil {
		logger.Fatal("failed to connect to neo4j", "error", err)
	}
	defer d.Close(ctx)

	if err := d.BuildIndices(ctx); err != nil {
		logger.Fatal("failed to build indices", "error", err)
	}

	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		logger.Fatal("failed to initialize llm client", "error", err)
	}

	p := core.NewPipeline(d, llmClient, cfg)
	srv := server.New(p, cfg)
	r := srv.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("starting server", "port", port)
	if err := r.Run(":" + port); err != nil {
		logger.Fatal("server stopped", "error", err)
	}
}
