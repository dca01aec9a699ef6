package agent

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Format substitutes named {placeholder} variables into a task prompt
// template. Doubled braces ({{ and }}) are literal braces, so templates
// can embed JSON examples. A placeholder with no binding returns
// *ErrMissingVariable.
//
// Non-string values are rendered as indented JSON so that structured
// payloads (profiles, paths, gap lists) read cleanly inside the prompt.
func Format(template string, vars map[string]any) (string, error) {
	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); i++ {
		c := template[i]
		switch c {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				b.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return "", fmt.Errorf("unterminated placeholder at offset %d", i)
			}
			name := template[i+1 : i+1+end]
			val, ok := vars[name]
			if !ok {
				return "", &ErrMissingVariable{Name: name}
			}
			b.WriteString(renderValue(val))
			i += end + 1
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				b.WriteByte('}')
				i++
				continue
			}
			b.WriteByte('}')
		default:
			b.WriteByte(c)
		}
	}

	return b.String(), nil
}

func renderValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.RawMessage:
		return string(t)
	case fmt.Stringer:
		return t.String()
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
