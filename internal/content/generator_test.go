package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genmentor/genmentor/internal/learner"
	"github.com/genmentor/genmentor/internal/llm"
	"github.com/genmentor/genmentor/internal/rag"
	"github.com/genmentor/genmentor/internal/schedule"
	"github.com/genmentor/genmentor/internal/skillgap"
)

func contentProfile() learner.Profile {
	return learner.Profile{
		LearnerInformation: "analyst",
		LearningGoal:       "Become a data analyst",
		LearningPreferences: learner.LearningPreferences{
			ContentStyle: "Concise summaries",
			ActivityType: "Interactive exercises",
		},
		BehavioralPatterns: learner.BehavioralPatterns{
			SystemUsageFrequency:      "daily",
			SessionDurationEngagement: "30 minutes",
		},
	}
}

func contentSession() schedule.Session {
	return schedule.Session{
		ID:               "Session 1",
		Title:            "Pandas Fundamentals",
		Abstract:         "Working with DataFrames.",
		AssociatedSkills: []string{"Pandas"},
		DesiredOutcomes:  []schedule.Outcome{{Name: "Pandas", Level: skillgap.LevelIntermediate}},
	}
}

func contentPath() schedule.Path {
	return schedule.Path{Sessions: []schedule.Session{contentSession()}}
}

var testPoints = []KnowledgePoint{
	{Name: "Alpha", Type: TypeFoundational},
	{Name: "Beta", Type: TypePractical},
	{Name: "Gamma", Type: TypeStrategic},
}

// draftReply answers drafter prompts with a draft derived from the
// knowledge point embedded in the request, so alignment is observable
// under nondeterministic completion order.
func draftReply(failing map[string]bool) func(req llm.Request) (json.RawMessage, error) {
	return func(req llm.Request) (json.RawMessage, error) {
		msg := req.Messages[0].Content
		for _, p := range testPoints {
			if !strings.Contains(msg, fmt.Sprintf("%q: %q", "name", p.Name)) {
				continue
			}
			if failing[p.Name] {
				return nil, &llm.ErrProviderUnavailable{Err: errors.New("boom")}
			}
			draft := KnowledgeDraft{Title: "Draft: " + p.Name, Content: "Body for " + p.Name}
			return json.Marshal(draft)
		}
		return nil, errors.New("no knowledge point in prompt")
	}
}

func TestDraftIndexAlignment(t *testing.T) {
	for _, parallel := range []bool{false, true} {
		name := "sequential"
		if parallel {
			name = "parallel"
		}
		t.Run(name, func(t *testing.T) {
			mock := llm.NewMockProvider()
			mock.Reply = draftReply(nil)
			gen := NewGenerator(mock, nil, Config{MaxWorkers: 2}, nil)

			drafts := gen.Draft(context.Background(), contentProfile(), contentSession(), testPoints, parallel)
			require.Len(t, drafts, len(testPoints))
			for i, p := range testPoints {
				assert.Equal(t, "Draft: "+p.Name, drafts[i].Title, "drafts[%d] must match points[%d]", i, i)
			}
		})
	}
}

func TestDraftIsolatesPerPointFailure(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.Reply = draftReply(map[string]bool{"Beta": true})
	gen := NewGenerator(mock, nil, Config{}, nil)

	drafts := gen.Draft(context.Background(), contentProfile(), contentSession(), testPoints, true)
	require.Len(t, drafts, 3)

	assert.Equal(t, "Draft: Alpha", drafts[0].Title)
	assert.Equal(t, "Beta", drafts[1].Title, "failed point falls back to a placeholder draft")
	assert.Contains(t, drafts[1].Content, "Content generation failed")
	assert.Contains(t, drafts[1].Content, "boom", "placeholder embeds the error")
	assert.Equal(t, "Draft: Gamma", drafts[2].Title)
}

type stubRetriever struct {
	lastQuery string
	chunks    []rag.Chunk
}

func (s *stubRetriever) Invoke(_ context.Context, query string) []rag.Chunk {
	s.lastQuery = query
	return s.chunks
}

func TestDraftOneUsesRetrievedContext(t *testing.T) {
	retriever := &stubRetriever{chunks: []rag.Chunk{
		{Title: "Pandas Docs", Source: "https://pandas.example", Content: "dataframe reference"},
	}}
	mock := llm.NewMockProvider()
	mock.Reply = draftReply(nil)
	gen := NewGenerator(mock, retriever, Config{}, nil)

	_, err := gen.DraftOne(context.Background(), contentProfile(), contentSession(), testPoints[0])
	require.NoError(t, err)

	assert.Equal(t, "Pandas Fundamentals Alpha", retriever.lastQuery, "query is session title + point name")
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "Pandas Docs | https://pandas.example")
}

func TestDraftOneWithoutRetrieverDegradesToNone(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.Reply = draftReply(nil)
	gen := NewGenerator(mock, nil, Config{}, nil)

	_, err := gen.DraftOne(context.Background(), contentProfile(), contentSession(), testPoints[0])
	require.NoError(t, err)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "**External Resources (for RAG)**:\nNone")
}

func quizJSON(single, multiple, trueFalse, short int) json.RawMessage {
	quiz := DocumentQuiz{
		SingleChoiceQuestions:   make([]SingleChoiceQuestion, 0, single),
		MultipleChoiceQuestions: make([]MultipleChoiceQuestion, 0, multiple),
		TrueFalseQuestions:      make([]TrueFalseQuestion, 0, trueFalse),
		ShortAnswerQuestions:    make([]ShortAnswerQuestion, 0, short),
	}
	for i := 0; i < single; i++ {
		quiz.SingleChoiceQuestions = append(quiz.SingleChoiceQuestions, SingleChoiceQuestion{
			Question:      fmt.Sprintf("SC %d?", i),
			Options:       []string{"a", "b", "c", "d"},
			CorrectOption: 0,
			Explanation:   "because",
		})
	}
	for i := 0; i < multiple; i++ {
		quiz.MultipleChoiceQuestions = append(quiz.MultipleChoiceQuestions, MultipleChoiceQuestion{
			Question:       fmt.Sprintf("MC %d?", i),
			Options:        []string{"a", "b", "c", "d"},
			CorrectOptions: []int{0, 2},
		})
	}
	for i := 0; i < trueFalse; i++ {
		quiz.TrueFalseQuestions = append(quiz.TrueFalseQuestions, TrueFalseQuestion{
			Question:      fmt.Sprintf("TF %d?", i),
			CorrectAnswer: true,
		})
	}
	for i := 0; i < short; i++ {
		quiz.ShortAnswerQuestions = append(quiz.ShortAnswerQuestions, ShortAnswerQuestion{
			Question:       fmt.Sprintf("SA %d?", i),
			ExpectedAnswer: "answer",
		})
	}
	raw, _ := json.Marshal(quiz)
	return raw
}

func TestQuizCountExactness(t *testing.T) {
	counts := QuizCounts{SingleChoice: 3, TrueFalse: 1}

	t.Run("exact counts accepted", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(3, 0, 1, 0)})
		gen := NewGenerator(mock, nil, Config{}, nil)

		quiz, err := gen.Quiz(context.Background(), contentProfile(), "# Doc", counts)
		require.NoError(t, err)
		assert.Len(t, quiz.SingleChoiceQuestions, 3)
		assert.Empty(t, quiz.MultipleChoiceQuestions)
		assert.Len(t, quiz.TrueFalseQuestions, 1)
		assert.Empty(t, quiz.ShortAnswerQuestions)
		assert.NotNil(t, quiz.MultipleChoiceQuestions, "zero count serializes as empty list, not null")
	})

	t.Run("count mismatch rejected", func(t *testing.T) {
		mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(2, 0, 1, 0)})
		gen := NewGenerator(mock, nil, Config{}, nil)

		_, err := gen.Quiz(context.Background(), contentProfile(), "# Doc", counts)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "requested 3")
	})

	t.Run("negative counts rejected", func(t *testing.T) {
		mock := llm.NewMockProvider()
		gen := NewGenerator(mock, nil, Config{}, nil)

		_, err := gen.Quiz(context.Background(), contentProfile(), "# Doc", QuizCounts{SingleChoice: -1})
		require.Error(t, err)
		assert.Zero(t, mock.CallCount())
	})
}

func TestCreateOrchestratesAllStages(t *testing.T) {
	pointsJSON, err := json.Marshal(KnowledgePoints{KnowledgePoints: testPoints})
	require.NoError(t, err)
	structureJSON, err := json.Marshal(DocumentStructure{
		Title:    "Pandas In Practice",
		Overview: "What this session covers.",
		Summary:  "Key takeaways.",
	})
	require.NoError(t, err)

	mock := llm.NewMockProvider()
	mock.Reply = func(req llm.Request) (json.RawMessage, error) {
		switch req.System {
		case explorerSystemPrompt:
			return pointsJSON, nil
		case drafterSystemPrompt:
			return draftReply(nil)(req)
		case integratorSystemPrompt:
			return structureJSON, nil
		case quizSystemPrompt:
			return quizJSON(3, 0, 0, 0), nil
		}
		return nil, errors.New("unexpected system prompt")
	}
	gen := NewGenerator(mock, nil, Config{}, nil)

	result, err := gen.Create(context.Background(), CreateRequest{
		Profile:  contentProfile(),
		Path:     contentPath(),
		Session:  contentSession(),
		Parallel: true,
		WithQuiz: true, // zero Counts falls back to the 3/0/0/0 default
	})
	require.NoError(t, err)

	assert.Len(t, result.Document.Drafts, 3)
	assert.Contains(t, result.Document.Markdown, "# Pandas In Practice")
	assert.Contains(t, result.Document.Markdown, "### Draft: Alpha")
	require.NotNil(t, result.Quiz)
	assert.Len(t, result.Quiz.SingleChoiceQuestions, 3)

	// explore + 3 drafts + integrate + quiz
	assert.Equal(t, 6, mock.CallCount())
}

func TestCreateSkipsQuizWhenNotRequested(t *testing.T) {
	pointsJSON, _ := json.Marshal(KnowledgePoints{KnowledgePoints: testPoints[:1]})
	structureJSON, _ := json.Marshal(DocumentStructure{Title: "T", Overview: "O", Summary: "S"})

	mock := llm.NewMockProvider()
	mock.Reply = func(req llm.Request) (json.RawMessage, error) {
		switch req.System {
		case explorerSystemPrompt:
			return pointsJSON, nil
		case drafterSystemPrompt:
			return draftReply(nil)(req)
		case integratorSystemPrompt:
			return structureJSON, nil
		}
		return nil, errors.New("unexpected system prompt")
	}
	gen := NewGenerator(mock, nil, Config{}, nil)

	result, err := gen.Create(context.Background(), CreateRequest{
		Profile: contentProfile(),
		Path:    contentPath(),
		Session: contentSession(),
	})
	require.NoError(t, err)
	assert.Nil(t, result.Quiz)
	assert.Equal(t, 3, mock.CallCount())
}
