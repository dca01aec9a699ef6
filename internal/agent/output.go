package agent

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

var thinkRe = regexp.MustCompile(`(?s)<think>.*?</think>`)

// StripThink removes a delimited internal-reasoning block from model
// output. Reasoning-tuned models emit these even when asked not to.
func StripThink(text string) string {
	return strings.TrimSpace(thinkRe.ReplaceAllString(text, ""))
}

// ExtractJSON coerces model text into a JSON object. Models frequently
// wrap valid JSON in prose or code fences despite instructions, so the
// extraction runs a fallback chain:
//
//  1. strip a leading ```json fence and a trailing ``` fence,
//  2. parse directly,
//  3. parse the substring from the first '{' to the last '}',
//  4. run jsonrepair over that substring (trailing commas, bare keys),
//
// and returns *ErrMalformedOutput carrying the original text when every
// attempt fails. Partial data is never returned silently.
func ExtractJSON(text string) (json.RawMessage, error) {
	candidate := stripFences(text)

	if raw, ok := parseObject(candidate); ok {
		return raw, nil
	}

	start := strings.IndexByte(candidate, '{')
	end := strings.LastIndexByte(candidate, '}')
	if start < 0 || end <= start {
		return nil, &ErrMalformedOutput{
			Raw: text,
			Err: fmt.Errorf("no JSON object found in output"),
		}
	}

	inner := candidate[start : end+1]
	if raw, ok := parseObject(inner); ok {
		return raw, nil
	}

	repaired, err := jsonrepair.JSONRepair(inner)
	if err == nil {
		if raw, ok := parseObject(repaired); ok {
			return raw, nil
		}
	}

	return nil, &ErrMalformedOutput{
		Raw: text,
		Err: fmt.Errorf("output is not valid JSON"),
	}
}

func stripFences(text string) string {
	out := strings.TrimSpace(text)
	if strings.HasPrefix(out, "```json") {
		out = strings.TrimSpace(out[len("```json"):])
	} else if strings.HasPrefix(out, "```") {
		out = strings.TrimSpace(out[len("```"):])
	}
	if strings.HasSuffix(out, "```") {
		out = strings.TrimSpace(out[:len(out)-len("```")])
	}
	return out
}

// parseObject parses s as a JSON object (or array — the quiz and gap
// schemas are objects, but sub-agents occasionally return bare lists).
func parseObject(s string) (json.RawMessage, bool) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	switch v.(type) {
	case map[string]any, []any:
		return json.RawMessage(s), true
	default:
		return nil, false
	}
}
