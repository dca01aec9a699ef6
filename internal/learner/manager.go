package learner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/genmentor/genmentor/internal/agent"
	"github.com/genmentor/genmentor/internal/llm"
	"github.com/genmentor/genmentor/internal/skillgap"
)

// Manager creates and updates learner profiles.
type Manager struct {
	profiler *agent.Agent
	logger   *zap.Logger
}

func NewManager(provider llm.Provider, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		profiler: agent.New(provider, profilerSystemPrompt, agent.Options{
			JSONOutput:   true,
			ExcludeThink: true,
			Schema:       ProfileSchema,
		}),
		logger: logger,
	}
}

// Initialize builds the first profile from the goal, the learner's
// background, and the identified skill gaps. Gaps are categorized as
// mastered (is_gap false) or in-progress (is_gap true). The caller's
// goal text is carried into the result verbatim, overwriting any
// paraphrase the model produced.
func (m *Manager) Initialize(ctx context.Context, goal, background string, gaps skillgap.Gaps) (Profile, error) {
	if strings.TrimSpace(goal) == "" {
		return Profile{}, &skillgap.ValidationError{Field: "learning_goal", Message: "must be non-empty"}
	}
	ctx = llm.WithPurpose(ctx, "profile-init")

	gapsJSON, err := json.MarshalIndent(gaps, "", "  ")
	if err != nil {
		return Profile{}, fmt.Errorf("initialize profile: encode gaps: %w", err)
	}

	var profile Profile
	err = m.profiler.InvokeInto(ctx, initializeTaskPrompt, map[string]any{
		"learning_goal":       goal,
		"learner_information": background,
		"skill_gaps":          json.RawMessage(gapsJSON),
	}, &profile)
	if err != nil {
		return Profile{}, fmt.Errorf("initialize profile: %w", err)
	}

	profile.LearningGoal = goal
	if err := profile.Validate(); err != nil {
		return Profile{}, fmt.Errorf("initialize profile: %w", err)
	}

	m.logger.Debug("profile initialized",
		zap.Int("mastered", len(profile.CognitiveStatus.MasteredSkills)),
		zap.Int("in_progress", len(profile.CognitiveStatus.InProgressSkills)))
	return profile, nil
}

// Update revises the profile from new interactions and, optionally, a
// learned session. When the session is learned, the mastery promotion
// rule is enforced after generation: each session outcome raises the
// skill's current level, and a skill whose current level reaches its
// required level moves to the mastered list. This is the one validation
// the manager corrects post-hoc instead of rejecting, because dropping
// a promotion would lose recorded progress. Skills already mastered
// never revert. On any other validation failure the error propagates;
// the unmodified input is never returned as a result.
func (m *Manager) Update(ctx context.Context, profile Profile, interactions, background string, session *SessionUpdate) (Profile, error) {
	ctx = llm.WithPurpose(ctx, "profile-update")

	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return Profile{}, fmt.Errorf("update profile: encode profile: %w", err)
	}

	sessionInfo := any("None")
	if session != nil {
		sessionJSON, err := json.MarshalIndent(session, "", "  ")
		if err != nil {
			return Profile{}, fmt.Errorf("update profile: encode session: %w", err)
		}
		sessionInfo = json.RawMessage(sessionJSON)
	}

	var updated Profile
	err = m.profiler.InvokeInto(ctx, updateTaskPrompt, map[string]any{
		"learner_profile":      json.RawMessage(profileJSON),
		"learner_interactions": orNone(interactions),
		"learner_information":  orNone(background),
		"session_information":  sessionInfo,
	}, &updated)
	if err != nil {
		return Profile{}, fmt.Errorf("update profile: %w", err)
	}

	updated.LearningGoal = profile.LearningGoal

	// Corrections first: promotion and mastered-list reconciliation can
	// repair a dual-listed skill that strict validation would reject.
	if session != nil && session.IfLearned {
		m.enforcePromotions(&updated, profile, session)
	}
	keepMastered(&updated, profile)

	if err := updated.Validate(); err != nil {
		return Profile{}, fmt.Errorf("update profile: %w", err)
	}

	m.logger.Debug("profile updated",
		zap.Int("mastered", len(updated.CognitiveStatus.MasteredSkills)),
		zap.Int("in_progress", len(updated.CognitiveStatus.InProgressSkills)))
	return updated, nil
}

// enforcePromotions applies the learned session's outcomes to the
// cognitive status regardless of whether the model already did.
func (m *Manager) enforcePromotions(updated *Profile, prev Profile, session *SessionUpdate) {
	for _, outcome := range session.DesiredOutcomes {
		if updated.HasMastered(outcome.Name) {
			continue
		}

		idx := -1
		for i, s := range updated.CognitiveStatus.InProgressSkills {
			if strings.EqualFold(s.Name, outcome.Name) {
				idx = i
				break
			}
		}
		if idx < 0 {
			// The model dropped the skill entirely; recover its required
			// level from the previous profile.
			prevSkill, ok := findInProgress(prev, outcome.Name)
			if !ok {
				continue
			}
			prevSkill.CurrentProficiencyLevel = outcome.Level
			updated.CognitiveStatus.InProgressSkills = append(updated.CognitiveStatus.InProgressSkills, prevSkill)
			idx = len(updated.CognitiveStatus.InProgressSkills) - 1
		}

		skill := &updated.CognitiveStatus.InProgressSkills[idx]
		if outcome.Level.Rank() > skill.CurrentProficiencyLevel.Rank() {
			skill.CurrentProficiencyLevel = outcome.Level
		}
		if skill.CurrentProficiencyLevel.Rank() >= skill.RequiredProficiencyLevel.Rank() {
			m.logger.Debug("promoting skill to mastered",
				zap.String("skill", skill.Name),
				zap.String("level", string(skill.CurrentProficiencyLevel)))
			updated.CognitiveStatus.MasteredSkills = append(updated.CognitiveStatus.MasteredSkills, MasteredSkill{
				Name:             skill.Name,
				ProficiencyLevel: skill.CurrentProficiencyLevel,
			})
			updated.CognitiveStatus.InProgressSkills = append(
				updated.CognitiveStatus.InProgressSkills[:idx],
				updated.CognitiveStatus.InProgressSkills[idx+1:]...)
		}
	}
}

// keepMastered re-adds mastered skills the model dropped. Mastery never
// reverts across updates.
func keepMastered(updated *Profile, prev Profile) {
	for _, s := range prev.CognitiveStatus.MasteredSkills {
		if updated.HasMastered(s.Name) {
			continue
		}
		updated.CognitiveStatus.MasteredSkills = append(updated.CognitiveStatus.MasteredSkills, s)
		for i, ip := range updated.CognitiveStatus.InProgressSkills {
			if strings.EqualFold(ip.Name, s.Name) {
				updated.CognitiveStatus.InProgressSkills = append(
					updated.CognitiveStatus.InProgressSkills[:i],
					updated.CognitiveStatus.InProgressSkills[i+1:]...)
				break
			}
		}
	}
}

func findInProgress(p Profile, name string) (InProgressSkill, bool) {
	for _, s := range p.CognitiveStatus.InProgressSkills {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return InProgressSkill{}, false
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return s
}
