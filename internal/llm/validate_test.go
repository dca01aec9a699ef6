package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = &Schema{
	Name:        "validate-test-skill",
	Description: "A single skill assessment",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"skill_name": map[string]any{"type": "string"},
			"level": map[string]any{
				"type": "string",
				"enum": []string{"beginner", "intermediate", "advanced"},
			},
		},
		"required":             []string{"skill_name", "level"},
		"additionalProperties": false,
	},
}

func TestValidateJSONAccepts(t *testing.T) {
	err := ValidateJSON(testSchema, json.RawMessage(`{"skill_name":"SQL","level":"beginner"}`))
	assert.NoError(t, err)
}

func TestValidateJSONNilSchemaIsNoop(t *testing.T) {
	assert.NoError(t, ValidateJSON(nil, json.RawMessage(`not even json`)))
}

func TestValidateJSONRejectsMissingRequired(t *testing.T) {
	err := ValidateJSON(testSchema, json.RawMessage(`{"skill_name":"SQL"}`))
	var invalid *ErrInvalidResponse
	require.ErrorAs(t, err, &invalid)
	assert.JSONEq(t, `{"skill_name":"SQL"}`, string(invalid.Content))
}

func TestValidateJSONRejectsEnumViolation(t *testing.T) {
	err := ValidateJSON(testSchema, json.RawMessage(`{"skill_name":"SQL","level":"expert"}`))
	var invalid *ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
}

func TestValidateJSONRejectsUnknownField(t *testing.T) {
	err := ValidateJSON(testSchema, json.RawMessage(`{"skill_name":"SQL","level":"beginner","extra":1}`))
	var invalid *ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
}

func TestValidateJSONRejectsMalformedPayload(t *testing.T) {
	err := ValidateJSON(testSchema, json.RawMessage(`{"skill_name":`))
	var invalid *ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
}

func TestValidateJSONCachesCompiledSchema(t *testing.T) {
	payload := json.RawMessage(`{"skill_name":"SQL","level":"advanced"}`)
	require.NoError(t, ValidateJSON(testSchema, payload))

	_, ok := schemaCache.Load(testSchema.Name)
	assert.True(t, ok)
	assert.NoError(t, ValidateJSON(testSchema, payload))
}
