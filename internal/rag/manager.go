package rag

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Config holds retrieval configuration.
type Config struct {
	TavilyAPIKey string
	OpenAIAPIKey string

	EmbeddingBaseURL string
	EmbeddingModel   string

	PersistPath string
	Collection  string

	TopK             int // chunks returned per query, default 5
	MaxSearchResults int // web search hits per query, default 5
	FetchConcurrency int // parallel page fetches, default 3

	ChunkSize    int
	ChunkOverlap int
}

// ConfigFromEnv reads retrieval settings from GENMENTOR_* variables,
// falling back to the providers' conventional names for API keys.
func ConfigFromEnv() Config {
	cfg := Config{
		TavilyAPIKey: os.Getenv("GENMENTOR_TAVILY_API_KEY"),
		OpenAIAPIKey: os.Getenv("GENMENTOR_OPENAI_API_KEY"),
		PersistPath:  os.Getenv("GENMENTOR_RAG_DIR"),
	}
	if cfg.TavilyAPIKey == "" {
		cfg.TavilyAPIKey = os.Getenv("TAVILY_API_KEY")
	}
	if cfg.OpenAIAPIKey == "" {
		cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	}
	return cfg
}

// Splitter cuts document text into indexable pieces. *Chunker is the
// production implementation.
type Splitter interface {
	Split(text string) []string
}

// Manager composes search, fetch, chunking, and the vector store into
// the retrieval pipeline.
type Manager struct {
	searcher Searcher
	fetcher  Fetcher
	chunker  Splitter
	store    Store
	logger   *zap.Logger

	topK             int
	maxSearchResults int
	fetchConcurrency int
}

// NewManager wires the full pipeline from config. It fails only on
// construction problems (bad chunker config, missing embedding key);
// runtime search and fetch failures degrade per call.
func NewManager(cfg Config, logger *zap.Logger) (*Manager, error) {
	chunker, err := NewChunker(ChunkerConfig{ChunkSize: cfg.ChunkSize, ChunkOverlap: cfg.ChunkOverlap})
	if err != nil {
		return nil, fmt.Errorf("rag: %w", err)
	}
	embedder, err := NewEmbedder(EmbedderConfig{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.EmbeddingBaseURL,
		Model:   cfg.EmbeddingModel,
	})
	if err != nil {
		return nil, fmt.Errorf("rag: %w", err)
	}
	store, err := NewStore(StoreConfig{PersistPath: cfg.PersistPath, Collection: cfg.Collection}, embedder)
	if err != nil {
		return nil, fmt.Errorf("rag: %w", err)
	}
	return newManager(NewTavilySearcher(cfg.TavilyAPIKey), NewFetcher(), chunker, store, cfg, logger), nil
}

func newManager(searcher Searcher, fetcher Fetcher, chunker Splitter, store Store, cfg Config, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	if cfg.MaxSearchResults <= 0 {
		cfg.MaxSearchResults = 5
	}
	if cfg.FetchConcurrency <= 0 {
		cfg.FetchConcurrency = 3
	}
	return &Manager{
		searcher:         searcher,
		fetcher:          fetcher,
		chunker:          chunker,
		store:            store,
		logger:           logger,
		topK:             cfg.TopK,
		maxSearchResults: cfg.MaxSearchResults,
		fetchConcurrency: cfg.FetchConcurrency,
	}
}

// Document is a fetched page ready for indexing.
type Document struct {
	Title   string
	Source  string
	Content string
}

// Search runs the web search and fetches each hit's full text in
// parallel. A failed fetch falls back to the hit's snippet; one bad URL
// never aborts the batch.
func (m *Manager) Search(ctx context.Context, query string) ([]Document, error) {
	hits, err := m.searcher.Search(ctx, query, m.maxSearchResults)
	if err != nil {
		return nil, fmt.Errorf("rag search: %w", err)
	}
	if len(hits) == 0 {
		return nil, nil
	}

	docs := make([]Document, len(hits))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.fetchConcurrency)
	for i, hit := range hits {
		g.Go(func() error {
			content, err := m.fetcher.Fetch(gctx, hit.URL)
			if err != nil {
				m.logger.Warn("page fetch failed, using snippet",
					zap.String("url", hit.URL),
					zap.Error(err))
				content = hit.Snippet
			}
			mu.Lock()
			docs[i] = Document{Title: hit.Title, Source: hit.URL, Content: content}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("rag search: %w", err)
	}

	out := docs[:0]
	for _, d := range docs {
		if strings.TrimSpace(d.Content) != "" {
			out = append(out, d)
		}
	}
	return out, nil
}

// AddDocuments chunks and indexes documents into the store.
func (m *Manager) AddDocuments(ctx context.Context, docs []Document) error {
	var chunks []Chunk
	for _, doc := range docs {
		for _, piece := range m.chunker.Split(doc.Content) {
			chunks = append(chunks, Chunk{
				ID:      uuid.NewString(),
				Title:   doc.Title,
				Source:  doc.Source,
				Content: piece,
			})
		}
	}
	if len(chunks) == 0 {
		return nil
	}
	if err := m.store.Add(ctx, chunks); err != nil {
		return fmt.Errorf("rag index: %w", err)
	}
	m.logger.Debug("documents indexed",
		zap.Int("documents", len(docs)),
		zap.Int("chunks", len(chunks)))
	return nil
}

// Retrieve returns the topK most similar indexed chunks.
func (m *Manager) Retrieve(ctx context.Context, query string) ([]Chunk, error) {
	chunks, err := m.store.Query(ctx, query, m.topK)
	if err != nil {
		return nil, fmt.Errorf("rag retrieve: %w", err)
	}
	return chunks, nil
}

// Invoke composes search, index, and retrieve. It never returns an
// error: every stage's failure degrades to fewer (possibly zero)
// chunks, because drafting proceeds with or without fresh context.
func (m *Manager) Invoke(ctx context.Context, query string) []Chunk {
	docs, err := m.Search(ctx, query)
	if err != nil {
		m.logger.Warn("retrieval search degraded", zap.String("query", query), zap.Error(err))
	}
	if len(docs) > 0 {
		if err := m.AddDocuments(ctx, docs); err != nil {
			m.logger.Warn("retrieval indexing degraded", zap.String("query", query), zap.Error(err))
		}
	}

	chunks, err := m.Retrieve(ctx, query)
	if err != nil {
		m.logger.Warn("retrieval query degraded", zap.String("query", query), zap.Error(err))
		return nil
	}
	return chunks
}

// FormatChunks renders chunks for prompt inclusion as
// "[i] title | source" headers over the chunk text.
func FormatChunks(chunks []Chunk) string {
	if len(chunks) == 0 {
		return ""
	}
	var b strings.Builder
	for i, c := range chunks {
		fmt.Fprintf(&b, "[%d] %s | %s\n%s\n\n", i+1, c.Title, c.Source, c.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}
