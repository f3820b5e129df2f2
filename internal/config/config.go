package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type Neo4jConfig struct {
	URI            string `toml:"uri"`
	User           string `toml:"user"`
	Password       string `toml:"password"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type PipelineConfig struct {
	ChunkFile    string `toml:"chunk_file"`
	TripletFile  string `toml:"triplet_file"`
	MetadataFile string `toml:"metadata_file"`
}

type RetrievalConfig struct {
	TopKEntities  int `toml:"topk_entities"`
	NeighborLimit int `toml:"neighbor_limit"`
	ChunkLimit    int `toml:"chunk_limit"`
}

type ExtractionPrompts struct {
	Triplets string `toml:"triplets"`
}

type AnswerPrompts struct {
	Grounded string `toml:"grounded"`
}

type Config struct {
	LLM        LLMConfig         `toml:"llm"`
	Neo4j      Neo4jConfig       `toml:"neo4j"`
	Pipeline   PipelineConfig    `toml:"pipeline"`
	Retrieval  RetrievalConfig   `toml:"retrieval"`
	Extraction ExtractionPrompts `toml:"extraction"`
	Answer     AnswerPrompts     `toml:"answer"`
}

// Default returns the configuration used when no config file is present:
// a local Ollama instance and a local Neo4j over bolt.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = "ollama"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "llama3"
	}
	if c.LLM.BaseURL == "" && c.LLM.Provider == "ollama" {
		c.LLM.BaseURL = "http://localhost:11434"
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = 120
	}
	if c.Neo4j.URI == "" {
		c.Neo4j.URI = "bolt://localhost:7687"
	}
	if c.Neo4j.User == "" {
		c.Neo4j.User = "neo4j"
	}
	if c.Neo4j.TimeoutSeconds <= 0 {
		c.Neo4j.TimeoutSeconds = 30
	}
	if c.Pipeline.ChunkFile == "" {
		c.Pipeline.ChunkFile = "essentials/all_chunks.json"
	}
	if c.Pipeline.TripletFile == "" {
		c.Pipeline.TripletFile = "essentials/knowledge_triplets.json"
	}
	if c.Pipeline.MetadataFile == "" {
		c.Pipeline.MetadataFile = "essentials/file_metadata.json"
	}
	if c.Retrieval.TopKEntities <= 0 {
		c.Retrieval.TopKEntities = 5
	}
	if c.Retrieval.NeighborLimit <= 0 {
		c.Retrieval.NeighborLimit = 20
	}
	if c.Retrieval.ChunkLimit <= 0 {
		c.Retrieval.ChunkLimit = 5
	}
}

// ApplyEnv overrides config values from environment variables so deployments
// can keep secrets out of the TOML file.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("NEO4J_URI"); v != "" {
		c.Neo4j.URI = v
	}
	if v := os.Getenv("NEO4J_USER"); v != "" {
		c.Neo4j.User = v
	}
	if v := os.Getenv("NEO4J_PASSWORD"); v != "" {
		c.Neo4j.Password = v
	}
}
