package agent

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestExtractJSON_Fenced(t *testing.T) {
	raw, err := ExtractJSON("```json\n{\"a\":1}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertA1(t, raw)
}

func TestExtractJSON_ProseWrapped(t *testing.T) {
	raw, err := ExtractJSON("prefix {\"a\":1} suffix")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertA1(t, raw)
}

func TestExtractJSON_Bare(t *testing.T) {
	raw, err := ExtractJSON("{\"a\":1}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertA1(t, raw)
}

func TestExtractJSON_TrailingComma(t *testing.T) {
	// Repairable output: models love trailing commas.
	raw, err := ExtractJSON("{\"a\": 1,}")
	if err != nil {
		t.Fatalf("expected repair to succeed, got %v", err)
	}
	assertA1(t, raw)
}

func TestExtractJSON_NotJSON(t *testing.T) {
	_, err := ExtractJSON("not json at all")
	var malformed *ErrMalformedOutput
	if !errors.As(err, &malformed) {
		t.Fatalf("expected ErrMalformedOutput, got %v", err)
	}
	if malformed.Raw != "not json at all" {
		t.Errorf("expected raw text preserved, got %q", malformed.Raw)
	}
}

func TestExtractJSON_ScalarIsRejected(t *testing.T) {
	if _, err := ExtractJSON("42"); err == nil {
		t.Fatal("expected error for scalar output")
	}
}

func TestStripThink(t *testing.T) {
	got := StripThink("<think>internal reasoning\nmore</think>\n{\"a\":1}")
	if got != "{\"a\":1}" {
		t.Errorf("expected think block removed, got %q", got)
	}

	// No think block: text passes through trimmed.
	if got := StripThink("  plain  "); got != "plain" {
		t.Errorf("got %q", got)
	}
}

func assertA1(t *testing.T, raw json.RawMessage) {
	t.Helper()
	var m map[string]int
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("result not parseable: %v", err)
	}
	if m["a"] != 1 {
		t.Errorf("expected a=1, got %v", m)
	}
}
