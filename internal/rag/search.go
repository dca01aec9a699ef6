// Package rag provides search-augmented retrieval: web search, per-URL
// full-text fetch with snippet fallback, token-based chunking, and a
// similarity-searchable vector store. The composed Invoke call degrades
// on partial failure instead of erroring, because content drafting must
// proceed even without fresh context.
package rag

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SearchHit is one web search result.
type SearchHit struct {
	Title   string
	URL     string
	Snippet string
}

// Searcher runs a web search.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]SearchHit, error)
}

const tavilyEndpoint = "https://api.tavily.com/search"

// tavilySearcher implements Searcher against the Tavily API.
type tavilySearcher struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewTavilySearcher creates a Searcher backed by Tavily.
func NewTavilySearcher(apiKey string) Searcher {
	return &tavilySearcher{
		apiKey:   apiKey,
		endpoint: tavilyEndpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type tavilyRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	SearchDepth string `json:"search_depth,omitempty"`
	MaxResults  int    `json:"max_results,omitempty"`
}

type tavilyResponse struct {
	Query   string `json:"query"`
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
}

func (t *tavilySearcher) Search(ctx context.Context, query string, maxResults int) ([]SearchHit, error) {
	if t.apiKey == "" {
		return nil, fmt.Errorf("tavily: no API key configured")
	}
	if maxResults <= 0 {
		maxResults = 5
	}

	body, err := json.Marshal(tavilyRequest{
		APIKey:      t.apiKey,
		Query:       query,
		SearchDepth: "basic",
		MaxResults:  maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("tavily: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("tavily: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("tavily: HTTP %d: %s", resp.StatusCode, raw)
	}

	var parsed tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("tavily: decode response: %w", err)
	}

	hits := make([]SearchHit, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		hits = append(hits, SearchHit{Title: r.Title, URL: r.URL, Snippet: r.Content})
	}
	return hits, nil
}
