package store

import (
	"context"
	"time"
)

// LLMRequestEvent records one model invocation for cost and latency
// auditing. Purpose identifies the pipeline stage that made the call.
type LLMRequestEvent struct {
	ID           string
	At           time.Time
	Provider     string
	Model        string
	Purpose      string
	Latency      time.Duration
	InputTokens  int
	OutputTokens int
	Success      bool
	ErrorMessage string
}

// EventRepo appends and queries LLM request events.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, ev LLMRequestEvent) error

	// RecentLLMRequests returns up to limit events, newest first.
	RecentLLMRequests(ctx context.Context, limit int) ([]LLMRequestEvent, error)
}

// NopEventRepo discards all events. Used when no database is configured.
type NopEventRepo struct{}

func (NopEventRepo) AppendLLMRequest(context.Context, LLMRequestEvent) error { return nil }

func (NopEventRepo) RecentLLMRequests(context.Context, int) ([]LLMRequestEvent, error) {
	return nil, nil
}
