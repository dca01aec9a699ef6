package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"github.com/genmentor/genmentor/internal/agent"
	"github.com/genmentor/genmentor/internal/learner"
	"github.com/genmentor/genmentor/internal/llm"
)

// Scheduler runs the three path operations (create, refine, reschedule)
// against one shared prompt family.
type Scheduler struct {
	agent  *agent.Agent
	logger *zap.Logger
}

func NewScheduler(provider llm.Provider, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		agent: agent.New(provider, schedulerSystemPrompt, agent.Options{
			JSONOutput:   true,
			ExcludeThink: true,
			Schema:       PathSchema,
			MaxTokens:    8192,
		}),
		logger: logger,
	}
}

// Schedule creates a fresh path from the profile. desiredCount <= 0
// leaves the length to the generator within [1,10]. Every session in a
// fresh path must be unlearned; a learned session in the output is a
// contract violation.
func (s *Scheduler) Schedule(ctx context.Context, profile learner.Profile, desiredCount int) (Path, error) {
	if desiredCount > maxSessions {
		return Path{}, &ContractError{
			Op:     "schedule",
			Detail: fmt.Sprintf("desired_count %d exceeds the %d-session bound", desiredCount, maxSessions),
		}
	}
	ctx = llm.WithPurpose(ctx, "path-schedule")

	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return Path{}, fmt.Errorf("schedule path: encode profile: %w", err)
	}

	var path Path
	err = s.agent.InvokeInto(ctx, scheduleTaskPrompt, map[string]any{
		"learner_profile": json.RawMessage(profileJSON),
		"session_count":   countOrAuto(desiredCount),
	}, &path)
	if err != nil {
		return Path{}, fmt.Errorf("schedule path: %w", err)
	}
	if err := path.Validate(); err != nil {
		return Path{}, fmt.Errorf("schedule path: %w", err)
	}
	for _, sess := range path.Sessions {
		if sess.IfLearned {
			return Path{}, &ContractError{
				Op:     "schedule",
				Detail: fmt.Sprintf("fresh path marked session %q as learned", sess.ID),
			}
		}
	}
	if desiredCount > 0 && len(path.Sessions) != desiredCount {
		return Path{}, &ContractError{
			Op:     "schedule",
			Detail: fmt.Sprintf("requested %d sessions, got %d", desiredCount, len(path.Sessions)),
		}
	}

	s.logger.Debug("path scheduled", zap.Int("sessions", len(path.Sessions)))
	return path, nil
}

// Reflect refines the unlearned sessions of a path from qualitative
// feedback. Learned sessions must pass through unchanged; the result is
// diffed against the input and any mutation of a learned session is a
// contract violation.
func (s *Scheduler) Reflect(ctx context.Context, path Path, feedback string) (Path, error) {
	if err := path.Validate(); err != nil {
		return Path{}, fmt.Errorf("reflect path: %w", err)
	}
	ctx = llm.WithPurpose(ctx, "path-reflect")

	pathJSON, err := json.MarshalIndent(path, "", "  ")
	if err != nil {
		return Path{}, fmt.Errorf("reflect path: encode path: %w", err)
	}

	var refined Path
	err = s.agent.InvokeInto(ctx, reflectTaskPrompt, map[string]any{
		"learning_path": json.RawMessage(pathJSON),
		"feedback":      feedback,
	}, &refined)
	if err != nil {
		return Path{}, fmt.Errorf("reflect path: %w", err)
	}
	if err := refined.Validate(); err != nil {
		return Path{}, fmt.Errorf("reflect path: %w", err)
	}

	// Learned sessions must survive unchanged and keep their relative
	// order, so the learned subsequences are compared positionally.
	want := path.Learned()
	got := refined.Learned()
	if len(got) != len(want) {
		return Path{}, &ContractError{
			Op:     "reflect",
			Detail: fmt.Sprintf("refined path has %d learned sessions, want %d", len(got), len(want)),
		}
	}
	for i := range want {
		if got[i].ID != want[i].ID {
			return Path{}, &ContractError{
				Op:     "reflect",
				Detail: fmt.Sprintf("learned session %q reordered: position %d holds %q", want[i].ID, i, got[i].ID),
			}
		}
		if !reflect.DeepEqual(got[i], want[i]) {
			return Path{}, &ContractError{
				Op:     "reflect",
				Detail: fmt.Sprintf("learned session %q was modified", want[i].ID),
			}
		}
	}

	s.logger.Debug("path refined", zap.Int("sessions", len(refined.Sessions)))
	return refined, nil
}

// Reschedule rebuilds the path around its learned prefix. Learned
// sessions from the input are copied into the result verbatim, first
// and in order; the generator only contributes the replacement for the
// unlearned remainder. desiredCount <= 0 leaves the total length to the
// generator; a positive desiredCount is exact, and one smaller than the
// learned count is unsatisfiable.
func (s *Scheduler) Reschedule(ctx context.Context, path Path, profile learner.Profile, desiredCount int, feedback string) (Path, error) {
	if err := path.Validate(); err != nil {
		return Path{}, fmt.Errorf("reschedule path: %w", err)
	}
	learned := path.Learned()
	if desiredCount > 0 && desiredCount < len(learned) {
		return Path{}, &ContractError{
			Op: "reschedule",
			Detail: fmt.Sprintf("desired_count %d is below the %d learned sessions that must be preserved",
				desiredCount, len(learned)),
		}
	}
	if desiredCount > maxSessions {
		return Path{}, &ContractError{
			Op:     "reschedule",
			Detail: fmt.Sprintf("desired_count %d exceeds the %d-session bound", desiredCount, maxSessions),
		}
	}
	ctx = llm.WithPurpose(ctx, "path-reschedule")

	pathJSON, err := json.MarshalIndent(path, "", "  ")
	if err != nil {
		return Path{}, fmt.Errorf("reschedule path: encode path: %w", err)
	}
	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return Path{}, fmt.Errorf("reschedule path: encode profile: %w", err)
	}

	var generated Path
	err = s.agent.InvokeInto(ctx, rescheduleTaskPrompt, map[string]any{
		"learning_path":   json.RawMessage(pathJSON),
		"learner_profile": json.RawMessage(profileJSON),
		"session_count":   countOrAuto(desiredCount),
		"other_feedback":  orNone(feedback),
	}, &generated)
	if err != nil {
		return Path{}, fmt.Errorf("reschedule path: %w", err)
	}

	// Take only the generator's new material; learned sessions come
	// from the input, never from the model's echo of them.
	learnedIDs := make(map[string]bool, len(learned))
	for _, sess := range learned {
		learnedIDs[sess.ID] = true
	}
	var fresh []Session
	for _, sess := range generated.Sessions {
		if sess.IfLearned || learnedIDs[sess.ID] {
			continue
		}
		fresh = append(fresh, sess)
	}

	if desiredCount > 0 {
		need := desiredCount - len(learned)
		if len(fresh) < need {
			return Path{}, &ContractError{
				Op:     "reschedule",
				Detail: fmt.Sprintf("generator produced %d new sessions, need %d", len(fresh), need),
			}
		}
		fresh = fresh[:need]
	}

	result := Path{Sessions: append(append([]Session(nil), learned...), fresh...)}
	// Relabel the new sessions sequentially, skipping ids the preserved
	// learned sessions already hold.
	next := 1
	for i := len(learned); i < len(result.Sessions); i++ {
		id := fmt.Sprintf("Session %d", next)
		for learnedIDs[id] {
			next++
			id = fmt.Sprintf("Session %d", next)
		}
		next++
		result.Sessions[i].ID = id
	}
	if err := result.Validate(); err != nil {
		return Path{}, fmt.Errorf("reschedule path: %w", err)
	}

	s.logger.Debug("path rescheduled",
		zap.Int("learned", len(learned)),
		zap.Int("generated", len(fresh)))
	return result, nil
}

func countOrAuto(n int) string {
	if n <= 0 {
		return "-1"
	}
	return fmt.Sprintf("%d", n)
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return s
}
