package llm

import (
	"context"
	"time"
)

// TimeoutProvider is a decorator that bounds each Generate call,
// retries included, with a deadline.
type TimeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout wraps a Provider with a per-call deadline. A non-positive
// timeout returns the provider unwrapped.
func WithTimeout(p Provider, timeout time.Duration) Provider {
	if timeout <= 0 {
		return p
	}
	return &TimeoutProvider{inner: p, timeout: timeout}
}

func (t *TimeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Generate(ctx, req)
}

func (t *TimeoutProvider) ModelID() string {
	return t.inner.ModelID()
}
