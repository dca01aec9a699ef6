package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/genmentor/genmentor/internal/agent"
	"github.com/genmentor/genmentor/internal/learner"
	"github.com/genmentor/genmentor/internal/llm"
	"github.com/genmentor/genmentor/internal/rag"
	"github.com/genmentor/genmentor/internal/schedule"
)

// ContextRetriever supplies search-augmented context for drafting.
// rag.Manager satisfies it; a nil retriever degrades to drafting from
// the model's own knowledge.
type ContextRetriever interface {
	Invoke(ctx context.Context, query string) []rag.Chunk
}

// Config controls pipeline execution.
type Config struct {
	// MaxWorkers bounds concurrent drafting in parallel mode. Default 3.
	MaxWorkers int
}

// Generator runs the four-stage document pipeline.
type Generator struct {
	explorer   *agent.Agent
	drafter    *agent.Agent
	integrator *agent.Agent
	quizzer    *agent.Agent
	retriever  ContextRetriever
	logger     *zap.Logger
	maxWorkers int
}

func NewGenerator(provider llm.Provider, retriever ContextRetriever, cfg Config, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 3
	}
	return &Generator{
		explorer: agent.New(provider, explorerSystemPrompt, agent.Options{
			JSONOutput:   true,
			ExcludeThink: true,
			Schema:       KnowledgePointsSchema,
		}),
		drafter: agent.New(provider, drafterSystemPrompt, agent.Options{
			JSONOutput:   true,
			ExcludeThink: true,
			Schema:       DraftSchema,
			MaxTokens:    8192,
		}),
		integrator: agent.New(provider, integratorSystemPrompt, agent.Options{
			JSONOutput:   true,
			ExcludeThink: true,
			Schema:       StructureSchema,
		}),
		quizzer: agent.New(provider, quizSystemPrompt, agent.Options{
			JSONOutput:   true,
			ExcludeThink: true,
			Schema:       QuizSchema,
			MaxTokens:    8192,
		}),
		retriever:  retriever,
		logger:     logger,
		maxWorkers: cfg.MaxWorkers,
	}
}

// Explore identifies the knowledge points one session must cover,
// scoped against the rest of the path to avoid overlap.
func (g *Generator) Explore(ctx context.Context, profile learner.Profile, path schedule.Path, session schedule.Session) (KnowledgePoints, error) {
	ctx = llm.WithPurpose(ctx, "knowledge-explore")

	var points KnowledgePoints
	err := g.explorer.InvokeInto(ctx, explorerTaskPrompt, map[string]any{
		"learner_profile":  mustJSON(profile),
		"learning_path":    mustJSON(path),
		"learning_session": mustJSON(session),
	}, &points)
	if err != nil {
		return KnowledgePoints{}, fmt.Errorf("explore session: %w", err)
	}
	if err := points.Validate(); err != nil {
		return KnowledgePoints{}, fmt.Errorf("explore session: %w", err)
	}

	g.logger.Debug("knowledge points explored",
		zap.String("session", session.ID),
		zap.Int("count", len(points.KnowledgePoints)))
	return points, nil
}

// Draft produces one draft per knowledge point, index-aligned with the
// input. Parallel mode fans out up to MaxWorkers drafting tasks;
// results are keyed by input position, not completion order. In both
// modes a per-point failure yields a placeholder draft embedding the
// error instead of aborting the batch.
func (g *Generator) Draft(ctx context.Context, profile learner.Profile, session schedule.Session, points []KnowledgePoint, parallel bool) []KnowledgeDraft {
	drafts := make([]KnowledgeDraft, len(points))

	if !parallel {
		for i, point := range points {
			drafts[i] = g.draftOrFallback(ctx, profile, session, point)
		}
		return drafts
	}

	var g2 errgroup.Group
	g2.SetLimit(g.maxWorkers)
	for i, point := range points {
		g2.Go(func() error {
			drafts[i] = g.draftOrFallback(ctx, profile, session, point)
			return nil
		})
	}
	_ = g2.Wait() // tasks never return errors
	return drafts
}

func (g *Generator) draftOrFallback(ctx context.Context, profile learner.Profile, session schedule.Session, point KnowledgePoint) KnowledgeDraft {
	draft, err := g.DraftOne(ctx, profile, session, point)
	if err != nil {
		g.logger.Error("knowledge point drafting failed",
			zap.String("point", point.Name),
			zap.Error(err))
		return KnowledgeDraft{
			Title:   point.Name,
			Content: fmt.Sprintf("**%s**\n\nContent generation failed, please retry.\n\nError: %v", point.Name, err),
		}
	}
	return draft
}

// DraftOne drafts a single knowledge point, augmenting the prompt with
// retrieved context when a retriever is configured. Retrieval never
// blocks drafting: an empty result simply leaves the resources section
// blank.
func (g *Generator) DraftOne(ctx context.Context, profile learner.Profile, session schedule.Session, point KnowledgePoint) (KnowledgeDraft, error) {
	ctx = llm.WithPurpose(ctx, "knowledge-draft")

	resources := "None"
	if g.retriever != nil {
		query := strings.TrimSpace(session.Title + " " + point.Name)
		if formatted := rag.FormatChunks(g.retriever.Invoke(ctx, query)); formatted != "" {
			resources = formatted
		}
	}

	var draft KnowledgeDraft
	err := g.drafter.InvokeInto(ctx, drafterTaskPrompt, map[string]any{
		"learner_profile":    mustJSON(profile),
		"learning_session":   mustJSON(session),
		"knowledge_point":    mustJSON(point),
		"external_resources": resources,
	}, &draft)
	if err != nil {
		return KnowledgeDraft{}, err
	}
	if draft.Title == "" || draft.Content == "" {
		return KnowledgeDraft{}, fmt.Errorf("draft %q: empty title or content", point.Name)
	}
	return draft, nil
}

// Integrate produces the document wrapper from the points and drafts.
func (g *Generator) Integrate(ctx context.Context, profile learner.Profile, path schedule.Path, session schedule.Session, points KnowledgePoints, drafts []KnowledgeDraft) (DocumentStructure, error) {
	ctx = llm.WithPurpose(ctx, "document-integrate")

	var structure DocumentStructure
	err := g.integrator.InvokeInto(ctx, integratorTaskPrompt, map[string]any{
		"learner_profile":  mustJSON(profile),
		"learning_path":    mustJSON(path),
		"learning_session": mustJSON(session),
		"knowledge_points": mustJSON(points),
		"knowledge_drafts": mustJSON(drafts),
	}, &structure)
	if err != nil {
		return DocumentStructure{}, fmt.Errorf("integrate document: %w", err)
	}
	if structure.Title == "" {
		return DocumentStructure{}, fmt.Errorf("integrate document: empty title")
	}
	return structure, nil
}

// Quiz generates exactly the requested number of questions per type.
// A count mismatch is rejected, not padded or trimmed.
func (g *Generator) Quiz(ctx context.Context, profile learner.Profile, document string, counts QuizCounts) (DocumentQuiz, error) {
	if err := counts.Validate(); err != nil {
		return DocumentQuiz{}, fmt.Errorf("generate quiz: %w", err)
	}
	ctx = llm.WithPurpose(ctx, "document-quiz")

	var quiz DocumentQuiz
	err := g.quizzer.InvokeInto(ctx, quizTaskPrompt, map[string]any{
		"learner_profile":       mustJSON(profile),
		"learning_document":     document,
		"single_choice_count":   counts.SingleChoice,
		"multiple_choice_count": counts.MultipleChoice,
		"true_false_count":      counts.TrueFalse,
		"short_answer_count":    counts.ShortAnswer,
	}, &quiz)
	if err != nil {
		return DocumentQuiz{}, fmt.Errorf("generate quiz: %w", err)
	}

	if err := checkCount("single_choice_questions", len(quiz.SingleChoiceQuestions), counts.SingleChoice); err != nil {
		return DocumentQuiz{}, err
	}
	if err := checkCount("multiple_choice_questions", len(quiz.MultipleChoiceQuestions), counts.MultipleChoice); err != nil {
		return DocumentQuiz{}, err
	}
	if err := checkCount("true_false_questions", len(quiz.TrueFalseQuestions), counts.TrueFalse); err != nil {
		return DocumentQuiz{}, err
	}
	if err := checkCount("short_answer_questions", len(quiz.ShortAnswerQuestions), counts.ShortAnswer); err != nil {
		return DocumentQuiz{}, err
	}

	quiz.normalize()
	return quiz, nil
}

func checkCount(field string, got, want int) error {
	if got != want {
		return fmt.Errorf("generate quiz: %s: requested %d questions, got %d", field, want, got)
	}
	return nil
}

// normalize replaces nil question lists with empty ones so a zero count
// serializes as [] rather than null.
func (q *DocumentQuiz) normalize() {
	if q.SingleChoiceQuestions == nil {
		q.SingleChoiceQuestions = []SingleChoiceQuestion{}
	}
	if q.MultipleChoiceQuestions == nil {
		q.MultipleChoiceQuestions = []MultipleChoiceQuestion{}
	}
	if q.TrueFalseQuestions == nil {
		q.TrueFalseQuestions = []TrueFalseQuestion{}
	}
	if q.ShortAnswerQuestions == nil {
		q.ShortAnswerQuestions = []ShortAnswerQuestion{}
	}
}

// CreateRequest describes one pipeline run.
type CreateRequest struct {
	Profile  learner.Profile
	Path     schedule.Path
	Session  schedule.Session
	Parallel bool

	// WithQuiz enables stage four. Counts falls back to
	// DefaultQuizCounts when zero-valued.
	WithQuiz bool
	Counts   QuizCounts
}

// Create runs explore, draft, integrate, assemble, and optionally quiz.
func (g *Generator) Create(ctx context.Context, req CreateRequest) (Result, error) {
	points, err := g.Explore(ctx, req.Profile, req.Path, req.Session)
	if err != nil {
		return Result{}, err
	}

	drafts := g.Draft(ctx, req.Profile, req.Session, points.KnowledgePoints, req.Parallel)

	structure, err := g.Integrate(ctx, req.Profile, req.Path, req.Session, points, drafts)
	if err != nil {
		return Result{}, err
	}

	result := Result{Document: Document{
		Structure: structure,
		Points:    points,
		Drafts:    drafts,
		Markdown:  AssembleMarkdown(structure, points.KnowledgePoints, drafts),
	}}

	if req.WithQuiz {
		counts := req.Counts
		if counts.total() == 0 {
			counts = DefaultQuizCounts()
		}
		quiz, err := g.Quiz(ctx, req.Profile, result.Document.Markdown, counts)
		if err != nil {
			return Result{}, err
		}
		result.Quiz = &quiz
	}

	g.logger.Info("session document generated",
		zap.String("session", req.Session.ID),
		zap.Int("knowledge_points", len(points.KnowledgePoints)),
		zap.Bool("quiz", req.WithQuiz))
	return result, nil
}

// mustJSON renders v for prompt inclusion. The pipeline's own types
// always marshal; a failure here is a programmer error.
func mustJSON(v any) json.RawMessage {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(fmt.Sprintf("encode %T: %v", v, err))
	}
	return raw
}
