package tutor

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genmentor/genmentor/internal/learner"
	"github.com/genmentor/genmentor/internal/llm"
	"github.com/genmentor/genmentor/internal/rag"
)

type stubRetriever struct {
	lastQuery string
	chunks    []rag.Chunk
}

func (s *stubRetriever) Invoke(_ context.Context, query string) []rag.Chunk {
	s.lastQuery = query
	return s.chunks
}

func testProfile() learner.Profile {
	return learner.Profile{
		LearningGoal: "Become proficient in data analysis with pandas",
		CognitiveStatus: learner.CognitiveStatus{
			OverallProgress: 25,
		},
	}
}

func TestChatForwardsHistoryAndAugmentsFinalTurn(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.Reply = func(req llm.Request) (json.RawMessage, error) {
		return json.RawMessage("Great question! Let's look at DataFrames."), nil
	}

	tut := New(mock, nil, nil)
	reply, err := tut.Chat(context.Background(), testProfile(), []Message{
		{Role: llm.RoleUser, Content: "What is a DataFrame?"},
		{Role: llm.RoleAssistant, Content: "A table-like structure."},
		{Role: llm.RoleUser, Content: "How do I filter rows?"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Great question! Let's look at DataFrames.", reply)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Equal(t, tutorSystemPrompt, req.System)

	require.Len(t, req.Messages, 3)
	assert.Equal(t, llm.RoleUser, req.Messages[0].Role)
	assert.Equal(t, "What is a DataFrame?", req.Messages[0].Content)
	assert.Equal(t, llm.RoleAssistant, req.Messages[1].Role)
	assert.Equal(t, "A table-like structure.", req.Messages[1].Content)

	final := req.Messages[2]
	assert.Equal(t, llm.RoleUser, final.Role)
	assert.Contains(t, final.Content, "How do I filter rows?")
	assert.Contains(t, final.Content, "pandas")
	assert.Contains(t, final.Content, "Relevant Context (documents, search, notes):\nNone")
}

func TestChatRetrievesForLatestMessage(t *testing.T) {
	retr := &stubRetriever{chunks: []rag.Chunk{
		{Title: "Pandas Filtering", Source: "https://pandas.example/filter", Content: "Use boolean masks."},
	}}
	mock := llm.NewMockProvider()
	mock.Reply = func(req llm.Request) (json.RawMessage, error) {
		return json.RawMessage("Use df[df.col > 0]."), nil
	}

	tut := New(mock, retr, nil)
	_, err := tut.Chat(context.Background(), testProfile(), []Message{
		{Role: llm.RoleUser, Content: "How do I filter rows?"},
		{Role: llm.RoleAssistant, Content: "With conditions."},
		{Role: llm.RoleUser, Content: "Show me boolean indexing"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Show me boolean indexing", retr.lastQuery)
	final := mock.Calls[0].Messages[len(mock.Calls[0].Messages)-1].Content
	assert.Contains(t, final, "Pandas Filtering | https://pandas.example/filter")
	assert.Contains(t, final, "Use boolean masks.")
}

func TestChatEmptyRetrievalDegradesToNone(t *testing.T) {
	retr := &stubRetriever{}
	mock := llm.NewMockProvider()
	mock.Reply = func(req llm.Request) (json.RawMessage, error) {
		return json.RawMessage("Happy to help!"), nil
	}

	tut := New(mock, retr, nil)
	_, err := tut.Chat(context.Background(), testProfile(), []Message{
		{Role: llm.RoleUser, Content: "Hello"},
	})
	require.NoError(t, err)
	final := mock.Calls[0].Messages[0].Content
	assert.Contains(t, final, "Relevant Context (documents, search, notes):\nNone")
}

func TestChatRejectsEmptyConversation(t *testing.T) {
	mock := llm.NewMockProvider()
	tut := New(mock, nil, nil)

	_, err := tut.Chat(context.Background(), testProfile(), nil)
	require.Error(t, err)
	assert.Zero(t, mock.CallCount())
}

func TestChatRejectsTrailingAssistantMessage(t *testing.T) {
	mock := llm.NewMockProvider()
	tut := New(mock, nil, nil)

	_, err := tut.Chat(context.Background(), testProfile(), []Message{
		{Role: llm.RoleUser, Content: "Hello"},
		{Role: llm.RoleAssistant, Content: "Hi there!"},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "last message must be from the user")
	assert.Zero(t, mock.CallCount())
}

func TestChatRejectsBlankReply(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.Reply = func(req llm.Request) (json.RawMessage, error) {
		return json.RawMessage("   \n"), nil
	}

	tut := New(mock, nil, nil)
	_, err := tut.Chat(context.Background(), testProfile(), []Message{
		{Role: llm.RoleUser, Content: "Hello"},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, "empty reply")
}
