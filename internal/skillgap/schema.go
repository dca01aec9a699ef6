package skillgap

import "github.com/genmentor/genmentor/internal/llm"

var levelEnum = []any{"beginner", "intermediate", "advanced"}

var currentLevelEnum = []any{"unlearned", "beginner", "intermediate", "advanced"}

// RequirementsSchema defines the JSON schema for goal-to-skill mapping.
var RequirementsSchema = &llm.Schema{
	Name:        "skill-requirements",
	Description: "Skills required to achieve a learning goal",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"skill_requirements": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 10,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{
							"type":        "string",
							"description": "Precise name of the skill",
						},
						"required_level": map[string]any{
							"type": "string",
							"enum": levelEnum,
						},
					},
					"required":             []any{"name", "required_level"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"skill_requirements"},
		"additionalProperties": false,
	},
}

// GapsSchema defines the JSON schema for skill gap identification.
var GapsSchema = &llm.Schema{
	Name:        "skill-gaps",
	Description: "Per-skill comparison of required versus inferred current proficiency",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"skill_gaps": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 10,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{
							"type": "string",
						},
						"is_gap": map[string]any{
							"type": "boolean",
						},
						"required_level": map[string]any{
							"type": "string",
							"enum": levelEnum,
						},
						"current_level": map[string]any{
							"type": "string",
							"enum": currentLevelEnum,
						},
						"reason": map[string]any{
							"type":        "string",
							"description": "Why the current level was inferred (max 20 words)",
						},
						"level_confidence": map[string]any{
							"type": "string",
							"enum": []any{"low", "medium", "high"},
						},
					},
					"required":             []any{"name", "is_gap", "required_level", "current_level", "reason", "level_confidence"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"skill_gaps"},
		"additionalProperties": false,
	},
}

// RefinedGoalSchema defines the JSON schema for goal refinement.
var RefinedGoalSchema = &llm.Schema{
	Name:        "refined-goal",
	Description: "A sharpened version of the learner's stated goal",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"refined_goal": map[string]any{
				"type": "string",
			},
		},
		"required":             []any{"refined_goal"},
		"additionalProperties": false,
	},
}
