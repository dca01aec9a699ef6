package schedule

import "github.com/genmentor/genmentor/internal/llm"

// PathSchema defines the JSON schema shared by all three scheduling
// tasks.
var PathSchema = &llm.Schema{
	Name:        "learning-path",
	Description: "Ordered learning path of 1-10 sessions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"learning_path": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 10,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":         map[string]any{"type": "string"},
						"title":      map[string]any{"type": "string"},
						"abstract":   map[string]any{"type": "string"},
						"if_learned": map[string]any{"type": "boolean"},
						"associated_skills": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
						"desired_outcome_when_completed": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"name": map[string]any{"type": "string"},
									"level": map[string]any{
										"type": "string",
										"enum": []any{"beginner", "intermediate", "advanced"},
									},
								},
								"required":             []any{"name", "level"},
								"additionalProperties": false,
							},
						},
					},
					"required":             []any{"id", "title", "abstract", "if_learned", "associated_skills", "desired_outcome_when_completed"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"learning_path"},
		"additionalProperties": false,
	},
}
