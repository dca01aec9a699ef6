// Package agent implements the prompted-task invoker shared by every
// pipeline stage: it binds variables into a task prompt template, sends
// a single-turn request to the LLM provider, and post-processes the
// text (think-block stripping, JSON extraction, schema validation).
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/genmentor/genmentor/internal/llm"
)

// Options configures post-processing of model output.
type Options struct {
	// ExcludeThink strips <think>...</think> blocks before parsing.
	ExcludeThink bool

	// JSONOutput extracts a JSON payload from the text and, when Schema
	// is set, validates it. When false, Invoke returns the raw text.
	JSONOutput bool

	// Schema, when set with JSONOutput, validates the extracted JSON
	// before it is returned.
	Schema *llm.Schema

	// MaxTokens for the underlying request. Default 4096.
	MaxTokens int

	// Temperature for the underlying request. Default 0 (deterministic).
	Temperature float64
}

// Agent binds a system prompt to a provider and invokes task prompts
// against it. Agents are stateless and safe for concurrent use.
type Agent struct {
	provider llm.Provider
	system   string
	opts     Options
}

// New creates an Agent with the given system prompt and options.
func New(provider llm.Provider, systemPrompt string, opts Options) *Agent {
	if opts.MaxTokens == 0 {
		opts.MaxTokens = 4096
	}
	return &Agent{provider: provider, system: systemPrompt, opts: opts}
}

// Invoke formats the task template with vars, runs a single-turn
// generation, and returns the post-processed payload. For JSON agents
// the result is the extracted (and schema-validated) JSON; for text
// agents it is the raw reply.
//
// Error taxonomy: *ErrMissingVariable is fatal and must not be retried;
// provider errors propagate for the caller's retry policy;
// *ErrMalformedOutput and *llm.ErrInvalidResponse carry the offending
// payload for diagnostics.
func (a *Agent) Invoke(ctx context.Context, taskTemplate string, vars map[string]any) (json.RawMessage, error) {
	task, err := Format(taskTemplate, vars)
	if err != nil {
		return nil, err
	}

	req := llm.Request{
		System: a.system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: task},
		},
		// Providers with native structured output enforce the schema at
		// the API level; ExtractJSON below still handles providers that
		// return the payload wrapped in prose or fences.
		Schema:      a.opts.Schema,
		MaxTokens:   a.opts.MaxTokens,
		Temperature: a.opts.Temperature,
	}

	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	text := string(resp.Content)
	if a.opts.ExcludeThink {
		text = StripThink(text)
	}

	if !a.opts.JSONOutput {
		return json.RawMessage(text), nil
	}

	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	if err := llm.ValidateJSON(a.opts.Schema, raw); err != nil {
		return nil, err
	}

	return raw, nil
}

// InvokeInto invokes the task and unmarshals the JSON payload into out.
func (a *Agent) InvokeInto(ctx context.Context, taskTemplate string, vars map[string]any, out any) error {
	raw, err := a.Invoke(ctx, taskTemplate, vars)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ErrMalformedOutput{
			Raw: string(raw),
			Err: fmt.Errorf("decode into %T: %w", out, err),
		}
	}
	return nil
}

// Chat runs a multi-turn conversation against the agent's system prompt
// and returns the raw text reply. Used by the tutor, which is the one
// consumer that is not single-turn.
func (a *Agent) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	req := llm.Request{
		System:      a.system,
		Messages:    messages,
		MaxTokens:   a.opts.MaxTokens,
		Temperature: a.opts.Temperature,
	}

	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		return "", err
	}

	text := string(resp.Content)
	if a.opts.ExcludeThink {
		text = StripThink(text)
	}
	return text, nil
}
