package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	hits []SearchHit
	err  error
}

func (f *fakeSearcher) Search(_ context.Context, _ string, _ int) ([]SearchHit, error) {
	return f.hits, f.err
}

type fakeFetcher struct {
	mu      sync.Mutex
	pages   map[string]string
	failing map[string]bool
	calls   []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()
	if f.failing[url] {
		return "", errors.New("connection refused")
	}
	return f.pages[url], nil
}

type paragraphSplitter struct{}

func (paragraphSplitter) Split(text string) []string {
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// memoryStore ranks by naive substring overlap; good enough to observe
// pipeline behavior without embeddings.
type memoryStore struct {
	mu     sync.Mutex
	chunks []Chunk
	addErr error
}

func (m *memoryStore) Add(_ context.Context, chunks []Chunk) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chunks = append(m.chunks, chunks...)
	return nil
}

func (m *memoryStore) Query(_ context.Context, query string, topK int) ([]Chunk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Chunk
	for _, c := range m.chunks {
		if strings.Contains(strings.ToLower(c.Content), strings.ToLower(query)) {
			out = append(out, c)
		}
		if len(out) == topK {
			break
		}
	}
	return out, nil
}

func (m *memoryStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.chunks)
}

func testManager(searcher Searcher, fetcher Fetcher, store Store) *Manager {
	return newManager(searcher, fetcher, paragraphSplitter{}, store, Config{}, nil)
}

func TestSearchIsolatesFetchFailures(t *testing.T) {
	searcher := &fakeSearcher{hits: []SearchHit{
		{Title: "One", URL: "https://a.example", Snippet: "snippet one"},
		{Title: "Two", URL: "https://b.example", Snippet: "snippet two"},
		{Title: "Three", URL: "https://c.example", Snippet: "snippet three"},
	}}
	fetcher := &fakeFetcher{
		pages: map[string]string{
			"https://a.example": "full text one",
			"https://c.example": "full text three",
		},
		failing: map[string]bool{"https://b.example": true},
	}
	m := testManager(searcher, fetcher, &memoryStore{})

	docs, err := m.Search(context.Background(), "pandas basics")
	require.NoError(t, err)
	require.Len(t, docs, 3)

	assert.Equal(t, "full text one", docs[0].Content)
	assert.Equal(t, "snippet two", docs[1].Content, "failed fetch falls back to the search snippet")
	assert.Equal(t, "full text three", docs[2].Content)
	assert.Len(t, fetcher.calls, 3)
}

func TestAddDocumentsChunksAndIndexes(t *testing.T) {
	store := &memoryStore{}
	m := testManager(&fakeSearcher{}, &fakeFetcher{}, store)

	err := m.AddDocuments(context.Background(), []Document{
		{Title: "Doc", Source: "https://a.example", Content: "first part\n\nsecond part"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, store.Count())
	for _, c := range store.chunks {
		assert.NotEmpty(t, c.ID)
		assert.Equal(t, "Doc", c.Title)
		assert.Equal(t, "https://a.example", c.Source)
	}
}

func TestInvokeNeverErrors(t *testing.T) {
	t.Run("search failure degrades to empty", func(t *testing.T) {
		m := testManager(&fakeSearcher{err: errors.New("no API key")}, &fakeFetcher{}, &memoryStore{})
		chunks := m.Invoke(context.Background(), "anything")
		assert.Empty(t, chunks)
	})

	t.Run("index failure still queries existing chunks", func(t *testing.T) {
		store := &memoryStore{}
		require.NoError(t, store.Add(context.Background(), []Chunk{
			{ID: "1", Title: "Old", Source: "s", Content: "previously indexed pandas notes"},
		}))
		store.addErr = errors.New("disk full")

		searcher := &fakeSearcher{hits: []SearchHit{{Title: "New", URL: "https://a.example", Snippet: "pandas"}}}
		m := testManager(searcher, &fakeFetcher{pages: map[string]string{"https://a.example": "fresh pandas text"}}, store)

		chunks := m.Invoke(context.Background(), "pandas")
		require.Len(t, chunks, 1)
		assert.Equal(t, "Old", chunks[0].Title)
	})

	t.Run("happy path returns indexed context", func(t *testing.T) {
		searcher := &fakeSearcher{hits: []SearchHit{{Title: "Guide", URL: "https://a.example", Snippet: "pandas"}}}
		fetcher := &fakeFetcher{pages: map[string]string{"https://a.example": "pandas dataframe guide"}}
		m := testManager(searcher, fetcher, &memoryStore{})

		chunks := m.Invoke(context.Background(), "pandas")
		require.NotEmpty(t, chunks)
		assert.Equal(t, "Guide", chunks[0].Title)
	})
}

func TestFormatChunks(t *testing.T) {
	assert.Empty(t, FormatChunks(nil))

	got := FormatChunks([]Chunk{
		{Title: "Guide", Source: "https://a.example", Content: "body"},
		{Title: "Ref", Source: "https://b.example", Content: "more"},
	})
	assert.Contains(t, got, "[1] Guide | https://a.example\nbody")
	assert.Contains(t, got, "[2] Ref | https://b.example\nmore")
}

func TestHTMLToText(t *testing.T) {
	html := `<html><head><title>Pandas Guide</title><script>var x=1;</script></head>
<body><nav>menu</nav><h2>Loading Data</h2>
<p>Use read_csv to load tabular data from disk into a DataFrame object.</p>
<ul><li>read_csv</li><li>read_parquet</li></ul></body></html>`

	text, err := htmlToText(html)
	require.NoError(t, err)
	assert.Contains(t, text, "# Pandas Guide")
	assert.Contains(t, text, "## Loading Data")
	assert.Contains(t, text, "read_csv to load tabular data")
	assert.Contains(t, text, "- read_parquet")
	assert.NotContains(t, text, "var x=1")
	assert.NotContains(t, text, "menu")
}

func TestTavilySearcherRequiresKey(t *testing.T) {
	s := NewTavilySearcher("")
	_, err := s.Search(context.Background(), "q", 3)
	require.Error(t, err)
}

func TestConfigDefaults(t *testing.T) {
	m := testManager(&fakeSearcher{}, &fakeFetcher{}, &memoryStore{})
	assert.Equal(t, 5, m.topK)
	assert.Equal(t, 5, m.maxSearchResults)
	assert.Equal(t, 3, m.fetchConcurrency)
}

func TestChunkerRejectsOverlapLargerThanSize(t *testing.T) {
	_, err := NewChunker(ChunkerConfig{ChunkSize: 10, ChunkOverlap: 20})
	require.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprintf("%d", 20))
}
