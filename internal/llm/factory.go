package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/genmentor/genmentor/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, logger *zap.Logger, events store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → timeout → retry → logging → base.
	// The timeout is the budget for the whole call, retries included.
	logged := WithLogging(base, logger, events)
	retried := WithRetry(logged, cfg.Retry)

	return WithTimeout(retried, cfg.Timeout), nil
}
