package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedProvider returns responses computed from the call number.
type scriptedProvider struct {
	calls int
	fn    func(call int) (*Response, error)
}

func (p *scriptedProvider) Generate(_ context.Context, _ Request) (*Response, error) {
	p.calls++
	return p.fn(p.calls)
}

func (p *scriptedProvider) ModelID() string { return "scripted" }

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetryRecoversFromTransientFailure(t *testing.T) {
	inner := &scriptedProvider{fn: func(call int) (*Response, error) {
		if call < 3 {
			return nil, &ErrProviderUnavailable{Err: fmt.Errorf("connection refused")}
		}
		return &Response{Content: json.RawMessage(`ok`)}, nil
	}}

	resp, err := WithRetry(inner, fastRetryConfig()).Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage(`ok`), resp.Content)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryExhaustsAttempts(t *testing.T) {
	inner := &scriptedProvider{fn: func(int) (*Response, error) {
		return nil, &ErrProviderUnavailable{Err: fmt.Errorf("down")}
	}}

	_, err := WithRetry(inner, fastRetryConfig()).Generate(context.Background(), Request{})
	require.Error(t, err)
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryInvalidResponseGetsOneRetry(t *testing.T) {
	inner := &scriptedProvider{fn: func(int) (*Response, error) {
		return nil, &ErrInvalidResponse{Content: json.RawMessage(`{}`), Err: fmt.Errorf("missing field")}
	}}

	_, err := WithRetry(inner, fastRetryConfig()).Generate(context.Background(), Request{})
	require.Error(t, err)
	var invalid *ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, 2, inner.calls)
}

func TestRetryMaxTokensIsFatal(t *testing.T) {
	inner := &scriptedProvider{fn: func(int) (*Response, error) {
		return nil, &ErrMaxTokensExceeded{}
	}}

	_, err := WithRetry(inner, fastRetryConfig()).Generate(context.Background(), Request{})
	require.Error(t, err)
	assert.Equal(t, 1, inner.calls)
}

func TestRetryContextCancellationIsFatal(t *testing.T) {
	inner := &scriptedProvider{fn: func(int) (*Response, error) {
		return nil, fmt.Errorf("request aborted: %w", context.Canceled)
	}}

	_, err := WithRetry(inner, fastRetryConfig()).Generate(context.Background(), Request{})
	require.Error(t, err)
	assert.Equal(t, 1, inner.calls)
}

func TestRetryRateLimitHonorsRetryAfter(t *testing.T) {
	inner := &scriptedProvider{fn: func(call int) (*Response, error) {
		if call == 1 {
			return nil, &ErrRateLimit{RetryAfter: time.Millisecond, Err: fmt.Errorf("429")}
		}
		return &Response{Content: json.RawMessage(`ok`)}, nil
	}}

	resp, err := WithRetry(inner, fastRetryConfig()).Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage(`ok`), resp.Content)
	assert.Equal(t, 2, inner.calls)
}
