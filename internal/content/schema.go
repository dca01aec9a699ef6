package content

import "github.com/genmentor/genmentor/internal/llm"

// KnowledgePointsSchema defines the JSON schema for session exploration.
var KnowledgePointsSchema = &llm.Schema{
	Name:        "knowledge-points",
	Description: "Knowledge points for one learning session, typed foundational/practical/strategic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"knowledge_points": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{"type": "string"},
						"type": map[string]any{
							"type": "string",
							"enum": []any{"foundational", "practical", "strategic"},
						},
					},
					"required":             []any{"name", "type"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"knowledge_points"},
		"additionalProperties": false,
	},
}

// DraftSchema defines the JSON schema for one knowledge draft.
var DraftSchema = &llm.Schema{
	Name:        "knowledge-draft",
	Description: "Drafted markdown content for a single knowledge point",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":   map[string]any{"type": "string"},
			"content": map[string]any{"type": "string"},
		},
		"required":             []any{"title", "content"},
		"additionalProperties": false,
	},
}

// StructureSchema defines the JSON schema for the document wrapper.
var StructureSchema = &llm.Schema{
	Name:        "document-structure",
	Description: "Title, overview, and summary wrapper for a session document",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":    map[string]any{"type": "string"},
			"overview": map[string]any{"type": "string"},
			"summary":  map[string]any{"type": "string"},
		},
		"required":             []any{"title", "overview", "summary"},
		"additionalProperties": false,
	},
}

// QuizSchema defines the JSON schema for document quizzes.
var QuizSchema = &llm.Schema{
	Name:        "document-quiz",
	Description: "Quiz questions grouped by type",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"single_choice_questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question":       map[string]any{"type": "string"},
						"options":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"correct_option": map[string]any{"type": "integer"},
						"explanation":    map[string]any{"type": "string"},
					},
					"required":             []any{"question", "options", "correct_option"},
					"additionalProperties": false,
				},
			},
			"multiple_choice_questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question":        map[string]any{"type": "string"},
						"options":         map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"correct_options": map[string]any{"type": "array", "items": map[string]any{"type": "integer"}},
						"explanation":     map[string]any{"type": "string"},
					},
					"required":             []any{"question", "options", "correct_options"},
					"additionalProperties": false,
				},
			},
			"true_false_questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question":       map[string]any{"type": "string"},
						"correct_answer": map[string]any{"type": "boolean"},
						"explanation":    map[string]any{"type": "string"},
					},
					"required":             []any{"question", "correct_answer"},
					"additionalProperties": false,
				},
			},
			"short_answer_questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question":        map[string]any{"type": "string"},
						"expected_answer": map[string]any{"type": "string"},
						"explanation":     map[string]any{"type": "string"},
					},
					"required":             []any{"question", "expected_answer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"single_choice_questions", "multiple_choice_questions", "true_false_questions", "short_answer_questions"},
		"additionalProperties": false,
	},
}
