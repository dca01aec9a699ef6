// Package content implements the per-session document pipeline:
// explore knowledge points, draft each one (optionally search-augmented,
// sequentially or in parallel), integrate the wrapper, assemble the
// markdown document, and generate its quiz.
package content

import (
	"fmt"

	"github.com/genmentor/genmentor/internal/skillgap"
)

// KnowledgeType categorizes a knowledge point.
type KnowledgeType string

const (
	TypeFoundational KnowledgeType = "foundational"
	TypePractical    KnowledgeType = "practical"
	TypeStrategic    KnowledgeType = "strategic"
)

func (t KnowledgeType) Valid() bool {
	return t == TypeFoundational || t == TypePractical || t == TypeStrategic
}

// KnowledgePoint is one concept a session document must cover.
type KnowledgePoint struct {
	Name string        `json:"name"`
	Type KnowledgeType `json:"type"`
}

// KnowledgePoints is the explorer's payload.
type KnowledgePoints struct {
	KnowledgePoints []KnowledgePoint `json:"knowledge_points"`
}

// Validate checks non-emptiness and type enums.
func (k KnowledgePoints) Validate() error {
	if len(k.KnowledgePoints) == 0 {
		return &skillgap.ValidationError{Field: "knowledge_points", Message: "must be non-empty"}
	}
	for i, p := range k.KnowledgePoints {
		field := fmt.Sprintf("knowledge_points[%d]", i)
		if p.Name == "" {
			return &skillgap.ValidationError{Field: field + ".name", Message: "must be non-empty"}
		}
		if !p.Type.Valid() {
			return &skillgap.ValidationError{
				Field:   field + ".type",
				Message: fmt.Sprintf("invalid type %q", p.Type),
			}
		}
	}
	return nil
}

// KnowledgeDraft is the drafted markdown for one knowledge point.
type KnowledgeDraft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// DocumentStructure is the integrator's wrapper around the drafts.
type DocumentStructure struct {
	Title    string `json:"title"`
	Overview string `json:"overview"`
	Summary  string `json:"summary"`
}

// SingleChoiceQuestion has one correct option index.
type SingleChoiceQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	Explanation   string   `json:"explanation,omitempty"`
}

// MultipleChoiceQuestion has one or more correct option indices.
type MultipleChoiceQuestion struct {
	Question       string   `json:"question"`
	Options        []string `json:"options"`
	CorrectOptions []int    `json:"correct_options"`
	Explanation    string   `json:"explanation,omitempty"`
}

type TrueFalseQuestion struct {
	Question      string `json:"question"`
	CorrectAnswer bool   `json:"correct_answer"`
	Explanation   string `json:"explanation,omitempty"`
}

type ShortAnswerQuestion struct {
	Question       string `json:"question"`
	ExpectedAnswer string `json:"expected_answer"`
	Explanation    string `json:"explanation,omitempty"`
}

// DocumentQuiz holds the generated questions grouped by type.
type DocumentQuiz struct {
	SingleChoiceQuestions   []SingleChoiceQuestion   `json:"single_choice_questions"`
	MultipleChoiceQuestions []MultipleChoiceQuestion `json:"multiple_choice_questions"`
	TrueFalseQuestions      []TrueFalseQuestion      `json:"true_false_questions"`
	ShortAnswerQuestions    []ShortAnswerQuestion    `json:"short_answer_questions"`
}

// QuizCounts specifies how many questions of each type to generate.
type QuizCounts struct {
	SingleChoice   int `json:"single_choice_count"`
	MultipleChoice int `json:"multiple_choice_count"`
	TrueFalse      int `json:"true_false_count"`
	ShortAnswer    int `json:"short_answer_count"`
}

// DefaultQuizCounts matches the product default: three single-choice
// questions and nothing else.
func DefaultQuizCounts() QuizCounts {
	return QuizCounts{SingleChoice: 3}
}

func (q QuizCounts) total() int {
	return q.SingleChoice + q.MultipleChoice + q.TrueFalse + q.ShortAnswer
}

// Validate rejects negative counts and an all-zero request.
func (q QuizCounts) Validate() error {
	if q.SingleChoice < 0 || q.MultipleChoice < 0 || q.TrueFalse < 0 || q.ShortAnswer < 0 {
		return &skillgap.ValidationError{Field: "quiz_counts", Message: "counts must be non-negative"}
	}
	if q.total() == 0 {
		return &skillgap.ValidationError{Field: "quiz_counts", Message: "at least one question type must be requested"}
	}
	return nil
}

// Document is the assembled session document.
type Document struct {
	Structure DocumentStructure `json:"structure"`
	Points    KnowledgePoints   `json:"knowledge_points"`
	Drafts    []KnowledgeDraft  `json:"knowledge_drafts"`
	Markdown  string            `json:"markdown"`
}

// Result is the pipeline output: the document and, when requested, its
// quiz.
type Result struct {
	Document Document      `json:"document"`
	Quiz     *DocumentQuiz `json:"quiz,omitempty"`
}
