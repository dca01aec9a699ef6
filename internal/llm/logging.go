package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/genmentor/genmentor/internal/store"
)

// LoggingProvider is a decorator that records every LLM request, both as
// a structured log line and as an event in the store.
type LoggingProvider struct {
	inner  Provider
	logger *zap.Logger
	events store.EventRepo
}

// WithLogging wraps a Provider with request logging.
func WithLogging(p Provider, logger *zap.Logger, events store.EventRepo) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	if events == nil {
		events = store.NopEventRepo{}
	}
	return &LoggingProvider{inner: p, logger: logger, events: events}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latency := time.Since(start)

	data := store.LLMRequestEvent{
		Provider: l.inner.ModelID(),
		Model:    l.inner.ModelID(),
		Purpose:  purpose,
		Latency:  latency,
		Success:  err == nil,
	}

	fields := []zap.Field{
		zap.String("purpose", purpose),
		zap.String("model", l.inner.ModelID()),
		zap.Duration("latency", latency),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		fields = append(fields,
			zap.Int("input_tokens", resp.Usage.InputTokens),
			zap.Int("output_tokens", resp.Usage.OutputTokens),
		)
	}

	if err != nil {
		data.ErrorMessage = err.Error()
		l.logger.Warn("llm request failed", append(fields, zap.Error(err))...)
	} else {
		l.logger.Debug("llm request", fields...)
	}

	// Record the event but don't fail the request if recording fails.
	if logErr := l.events.AppendLLMRequest(ctx, data); logErr != nil {
		l.logger.Warn("failed to record llm request event", zap.Error(logErr))
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
