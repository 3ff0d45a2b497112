package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/flowlens/flowlens/internal/analyses"
	"github.com/flowlens/flowlens/internal/config"
	"github.com/flowlens/flowlens/internal/db"
	"github.com/flowlens/flowlens/internal/embeddings"
	"github.com/flowlens/flowlens/internal/enhancer"
	"github.com/flowlens/flowlens/internal/llm"
	"github.com/flowlens/flowlens/internal/vectordb"
)

// enhancerRPM caps LLM requests per minute during batch analysis.
const enhancerRPM = 60

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `flowlens init` to create a config file", err)
	}
	return cfg, nil
}

// vectorDir returns the directory where the vector store persists itself.
func vectorDir(cfg *config.Config) string {
	return filepath.Join(cfg.DataDir, "vectordb")
}

// createEmbedderFromConfig creates an embeddings.Embedder based on config.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	provider := cfg.EmbeddingProvider
	if provider == "" {
		provider = cfg.Provider
	}
	model := cfg.EmbeddingModel
	if model == "" {
		preset := config.GetPreset(provider, cfg.Quality)
		model = preset.EmbeddingModel
	}

	switch provider {
	case config.ProviderOllama:
		return embeddings.NewOllamaEmbedder(model, 768, ""), nil
	default:
		// Anthropic has no embeddings API, so OpenAI serves all non-Ollama setups.
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for %s embeddings", provider)
		}
		return embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(model)), nil
	}
}

// createLLMProviderFromConfig creates an LLM provider based on config settings.
func createLLMProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
	if err != nil {
		return nil, err
	}
	return llm.NewRateLimitedProvider(provider, enhancerRPM), nil
}

// newAnalysisService opens the local database and wires up the analysis
// service with whatever optional stages the config enables. Semantic search
// and enhancement degrade gracefully when their providers are unavailable,
// except that an explicitly enabled enhancer with no usable provider is an
// error.
func newAnalysisService(cfg *config.Config) (*analyses.Service, *db.DB, vectordb.VectorStore, error) {
	database, err := db.Open(filepath.Join(cfg.DataDir, "flowlens.db"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening database: %w", err)
	}

	var vectors vectordb.VectorStore
	if embedder, err := createEmbedderFromConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: semantic search disabled: %v\n", err)
	} else {
		store, err := vectordb.NewChromemStore(embedder)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: semantic search disabled: %v\n", err)
		} else {
			if err := store.Load(context.Background(), vectorDir(cfg)); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not load vector store: %v\n", err)
			}
			vectors = store
		}
	}

	// The enhancer is built whenever a provider is available so that
	// per-request enhancement keeps working with enhance off by default.
	var enh *enhancer.Enhancer
	if provider, err := createLLMProviderFromConfig(cfg); err != nil {
		if cfg.Enhance {
			database.Close()
			return nil, nil, nil, fmt.Errorf("creating LLM provider: %w", err)
		}
	} else {
		enh = enhancer.New(provider, cfg.Model, time.Duration(cfg.EnhanceTimeoutSeconds)*time.Second)
	}

	svc := analyses.NewService(analyses.NewStore(database), enh, vectors, enhancer.Mode(cfg.EnhanceMode))
	return svc, database, vectors, nil
}

// persistVectors saves the vector store to disk, logging rather than failing.
func persistVectors(vectors vectordb.VectorStore, cfg *config.Config) {
	if vectors == nil {
		return
	}
	if err := vectors.Persist(context.Background(), vectorDir(cfg)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not persist vector store: %v\n", err)
	}
}
