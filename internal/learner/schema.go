package learner

import "github.com/genmentor/genmentor/internal/llm"

// ProfileSchema defines the JSON schema for both profile operations.
var ProfileSchema = &llm.Schema{
	Name:        "learner-profile",
	Description: "Learner profile with cognitive status, preferences, and behavioral patterns",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"learner_information": map[string]any{"type": "string"},
			"learning_goal":       map[string]any{"type": "string"},
			"cognitive_status": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"overall_progress": map[string]any{
						"type":    "integer",
						"minimum": 0,
						"maximum": 100,
					},
					"mastered_skills": map[string]any{
						// Models routinely emit null for a list they
						// dropped; the manager's reconciliation recovers
						// it, so null is accepted here.
						"type": []any{"array", "null"},
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"name": map[string]any{"type": "string"},
								"proficiency_level": map[string]any{
									"type": "string",
									"enum": []any{"beginner", "intermediate", "advanced"},
								},
							},
							"required":             []any{"name", "proficiency_level"},
							"additionalProperties": false,
						},
					},
					"in_progress_skills": map[string]any{
						"type": []any{"array", "null"},
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"name": map[string]any{"type": "string"},
								"required_proficiency_level": map[string]any{
									"type": "string",
									"enum": []any{"beginner", "intermediate", "advanced"},
								},
								"current_proficiency_level": map[string]any{
									"type": "string",
									"enum": []any{"unlearned", "beginner", "intermediate", "advanced"},
								},
							},
							"required":             []any{"name", "required_proficiency_level", "current_proficiency_level"},
							"additionalProperties": false,
						},
					},
				},
				"required":             []any{"overall_progress", "mastered_skills", "in_progress_skills"},
				"additionalProperties": false,
			},
			"learning_preferences": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"content_style":    map[string]any{"type": "string"},
					"activity_type":    map[string]any{"type": "string"},
					"additional_notes": map[string]any{"type": "string"},
				},
				"required":             []any{"content_style", "activity_type"},
				"additionalProperties": false,
			},
			"behavioral_patterns": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"system_usage_frequency":      map[string]any{"type": "string"},
					"session_duration_engagement": map[string]any{"type": "string"},
					"motivational_triggers":       map[string]any{"type": "string"},
					"additional_notes":            map[string]any{"type": "string"},
				},
				"required":             []any{"system_usage_frequency", "session_duration_engagement"},
				"additionalProperties": false,
			},
		},
		"required":             []any{"learner_information", "learning_goal", "cognitive_status", "learning_preferences", "behavioral_patterns"},
		"additionalProperties": false,
	},
}
