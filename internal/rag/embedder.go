package rag

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	openai "github.com/sashabaranov/go-openai"
)

// EmbedderConfig holds embedding configuration.
type EmbedderConfig struct {
	APIKey    string
	BaseURL   string // optional, defaults to the OpenAI endpoint
	Model     string // default text-embedding-3-small
	CacheSize int    // LRU entries, default 10000
}

// Embedder generates text embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type openaiEmbedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
	cache  *lru.Cache[string, []float32]
}

// NewEmbedder creates an OpenAI-backed embedder with an LRU cache.
func NewEmbedder(config EmbedderConfig) (Embedder, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("embedder: no API key configured")
	}
	if config.Model == "" {
		config.Model = string(openai.SmallEmbedding3)
	}
	if config.CacheSize <= 0 {
		config.CacheSize = 10000
	}

	cache, err := lru.New[string, []float32](config.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("embedder: create cache: %w", err)
	}

	cfg := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		cfg.BaseURL = config.BaseURL
	}

	return &openaiEmbedder{
		client: openai.NewClientWithConfig(cfg),
		model:  openai.EmbeddingModel(config.Model),
		cache:  cache,
	}, nil
}

func (e *openaiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if cached, ok := e.cache.Get(text); ok {
		return cached, nil
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: e.model,
		Input: []string{text},
	})
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embed: empty response")
	}

	embedding := resp.Data[0].Embedding
	e.cache.Add(text, embedding)
	return embedding, nil
}
