package rag

import (
	"context"
	"fmt"
	"path/filepath"

	chromem "github.com/philippgille/chromem-go"
)

// Chunk is one indexed piece of a fetched document.
type Chunk struct {
	ID         string
	Title      string
	Source     string
	Content    string
	Similarity float32
}

// Store is a similarity-searchable chunk index.
type Store interface {
	// Add indexes chunks. Chunk ids must be unique per document.
	Add(ctx context.Context, chunks []Chunk) error

	// Query returns the topK most similar chunks for the query text.
	Query(ctx context.Context, query string, topK int) ([]Chunk, error)

	// Count returns the number of indexed chunks.
	Count() int
}

// StoreConfig holds vector store configuration.
type StoreConfig struct {
	PersistPath string // empty for in-memory
	Collection  string // default "genmentor"
}

type chromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
}

// NewStore creates a chromem-backed Store. The embedder generates
// vectors for both indexing and querying.
func NewStore(config StoreConfig, embedder Embedder) (Store, error) {
	if config.Collection == "" {
		config.Collection = "genmentor"
	}

	var db *chromem.DB
	var err error
	if config.PersistPath != "" {
		db, err = chromem.NewPersistentDB(filepath.Join(config.PersistPath, "chromem.gob"), false)
		if err != nil {
			return nil, fmt.Errorf("create persistent DB: %w", err)
		}
	} else {
		db = chromem.NewDB()
	}

	embeddingFunc := func(ctx context.Context, text string) ([]float32, error) {
		return embedder.Embed(ctx, text)
	}
	collection, err := db.GetOrCreateCollection(config.Collection, nil, embeddingFunc)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &chromemStore{db: db, collection: collection}, nil
}

func (s *chromemStore) Add(ctx context.Context, chunks []Chunk) error {
	for _, chunk := range chunks {
		err := s.collection.AddDocument(ctx, chromem.Document{
			ID:      chunk.ID,
			Content: chunk.Content,
			Metadata: map[string]string{
				"title":  chunk.Title,
				"source": chunk.Source,
			},
		})
		if err != nil {
			return fmt.Errorf("add chunk %s: %w", chunk.ID, err)
		}
	}
	return nil
}

func (s *chromemStore) Query(ctx context.Context, query string, topK int) ([]Chunk, error) {
	if topK <= 0 {
		topK = 5
	}
	if count := s.collection.Count(); count < topK {
		if count == 0 {
			return nil, nil
		}
		topK = count
	}

	results, err := s.collection.Query(ctx, query, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}

	chunks := make([]Chunk, 0, len(results))
	for _, r := range results {
		chunks = append(chunks, Chunk{
			ID:         r.ID,
			Title:      r.Metadata["title"],
			Source:     r.Metadata["source"],
			Content:    r.Content,
			Similarity: r.Similarity,
		})
	}
	return chunks, nil
}

func (s *chromemStore) Count() int {
	return s.collection.Count()
}
