// Package tutor is the conversational layer: a profile-aware chat agent
// that can pull retrieved context into its replies.
package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/genmentor/genmentor/internal/agent"
	"github.com/genmentor/genmentor/internal/learner"
	"github.com/genmentor/genmentor/internal/llm"
	"github.com/genmentor/genmentor/internal/rag"
)

const tutorSystemPrompt = `You are an AI tutor in a goal-oriented learning environment, dedicated to helping learners reach their objectives effectively and enjoyably. Your role involves guiding learners through personalized, engaging interactions. Here's how you approach each session:
1. **Goal-Focused Support**: Track each learner's specific goals and provide tailored responses that drive them closer to achieving these objectives. If they struggle with a concept or require further clarification, offer clear, step-by-step explanations.
2. **Engaging and Interactive Learning**: Adapt responses to align with the learner's preferred style, whether through practical examples, visual explanations, or interactive elements like quick quizzes. This helps reinforce understanding and keeps the learning experience dynamic.
3. **Personalized Progress Tracking**: Retain key details from past interactions to build on the learner's existing knowledge. This enables you to avoid redundancy and focus on advancing their skills effectively.
4. **Motivation and Encouragement**: Foster a positive and motivating atmosphere, celebrating their achievements and encouraging persistence. Use supportive language to keep learners engaged and confident in their progress.

Your purpose is to provide a supportive, adaptive, and goal-driven learning experience, maintaining a balance of professionalism and encouragement to enhance the learner's engagement and success.`

const tutorTurnPrompt = `Learner Profile (may be empty):
{learner_profile}

Relevant Context (documents, search, notes):
{external_resources}

Latest learner message:
{message}

Reply to the learner now. Do not include system text in your reply.`

// Message is one turn of the tutoring conversation.
type Message struct {
	Role    llm.Role `json:"role"`
	Content string   `json:"content"`
}

// Retriever supplies context for the latest user message. rag.Manager
// satisfies it; nil disables retrieval.
type Retriever interface {
	Invoke(ctx context.Context, query string) []rag.Chunk
}

// Tutor answers learner messages in free text.
type Tutor struct {
	agent     *agent.Agent
	retriever Retriever
	logger    *zap.Logger
}

func New(provider llm.Provider, retriever Retriever, logger *zap.Logger) *Tutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tutor{
		agent: agent.New(provider, tutorSystemPrompt, agent.Options{
			ExcludeThink: true,
		}),
		retriever: retriever,
		logger:    logger,
	}
}

// Chat replies to the conversation's latest message, which must be from
// the user. History is forwarded turn by turn; the final turn is
// augmented with the learner profile and, when a retriever is
// configured, context retrieved for that message. Retrieval failure
// degrades to an uncontexted reply.
func (t *Tutor) Chat(ctx context.Context, profile learner.Profile, messages []Message) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("chat: empty conversation")
	}
	last := messages[len(messages)-1]
	if last.Role != llm.RoleUser {
		return "", fmt.Errorf("chat: last message must be from the user, got %q", last.Role)
	}
	ctx = llm.WithPurpose(ctx, "tutor-chat")

	resources := "None"
	if t.retriever != nil {
		if query := strings.TrimSpace(last.Content); query != "" {
			if formatted := rag.FormatChunks(t.retriever.Invoke(ctx, query)); formatted != "" {
				resources = formatted
			}
		}
	}

	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", fmt.Errorf("chat: encode profile: %w", err)
	}

	finalTurn, err := agent.Format(tutorTurnPrompt, map[string]any{
		"learner_profile":    json.RawMessage(profileJSON),
		"external_resources": resources,
		"message":            last.Content,
	})
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}

	history := make([]llm.Message, 0, len(messages))
	for _, m := range messages[:len(messages)-1] {
		history = append(history, llm.Message{Role: m.Role, Content: m.Content})
	}
	history = append(history, llm.Message{Role: llm.RoleUser, Content: finalTurn})

	reply, err := t.agent.Chat(ctx, history)
	if err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", fmt.Errorf("chat: empty reply")
	}
	t.logger.Debug("tutor replied", zap.Int("history", len(messages)))
	return reply, nil
}
