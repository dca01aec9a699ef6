package skillgap

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/genmentor/genmentor/internal/agent"
	"github.com/genmentor/genmentor/internal/llm"
)

// Service runs the three-stage gap pipeline: refine the goal, map it to
// required skills, then compare them against the learner's background.
type Service struct {
	refiner    *agent.Agent
	mapper     *agent.Agent
	identifier *agent.Agent
	logger     *zap.Logger
}

func NewService(provider llm.Provider, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		refiner: agent.New(provider, refinerSystemPrompt, agent.Options{
			JSONOutput:   true,
			ExcludeThink: true,
			Schema:       RefinedGoalSchema,
		}),
		mapper: agent.New(provider, mapperSystemPrompt, agent.Options{
			JSONOutput:   true,
			ExcludeThink: true,
			Schema:       RequirementsSchema,
		}),
		identifier: agent.New(provider, identifierSystemPrompt, agent.Options{
			JSONOutput:   true,
			ExcludeThink: true,
			Schema:       GapsSchema,
		}),
		logger: logger,
	}
}

// RefineGoal sharpens a vague goal using the learner's background. The
// refined goal keeps the original intent.
func (s *Service) RefineGoal(ctx context.Context, goal, learnerInfo string) (string, error) {
	ctx = llm.WithPurpose(ctx, "goal-refine")

	var out struct {
		RefinedGoal string `json:"refined_goal"`
	}
	err := s.refiner.InvokeInto(ctx, refinerTaskPrompt, map[string]any{
		"learning_goal":       goal,
		"learner_information": learnerInfo,
	}, &out)
	if err != nil {
		return "", fmt.Errorf("refine goal: %w", err)
	}
	if out.RefinedGoal == "" {
		return "", fmt.Errorf("refine goal: empty refined_goal")
	}

	s.logger.Debug("goal refined",
		zap.String("original", goal),
		zap.String("refined", out.RefinedGoal))
	return out.RefinedGoal, nil
}

// MapRequirements derives the skills a goal demands. The result has
// between 1 and 10 uniquely named skills.
func (s *Service) MapRequirements(ctx context.Context, goal string) (Requirements, error) {
	ctx = llm.WithPurpose(ctx, "skill-requirements")

	var reqs Requirements
	err := s.mapper.InvokeInto(ctx, mapperTaskPrompt, map[string]any{
		"learning_goal": goal,
	}, &reqs)
	if err != nil {
		return Requirements{}, fmt.Errorf("map requirements: %w", err)
	}
	if err := reqs.Validate(); err != nil {
		return Requirements{}, fmt.Errorf("map requirements: %w", err)
	}

	s.logger.Debug("skill requirements mapped",
		zap.Int("count", len(reqs.SkillRequirements)))
	return reqs, nil
}

// IdentifyGaps compares each requirement against the learner's inferred
// proficiency. Requirements are passed through to the model as JSON so
// required levels are echoed rather than re-derived.
func (s *Service) IdentifyGaps(ctx context.Context, goal, learnerInfo string, reqs Requirements) (Gaps, error) {
	if err := reqs.Validate(); err != nil {
		return Gaps{}, fmt.Errorf("identify gaps: %w", err)
	}
	ctx = llm.WithPurpose(ctx, "skill-gaps")

	reqJSON, err := json.MarshalIndent(reqs, "", "  ")
	if err != nil {
		return Gaps{}, fmt.Errorf("identify gaps: encode requirements: %w", err)
	}

	var gaps Gaps
	err = s.identifier.InvokeInto(ctx, identifierTaskPrompt, map[string]any{
		"learning_goal":       goal,
		"learner_information": learnerInfo,
		"skill_requirements":  json.RawMessage(reqJSON),
	}, &gaps)
	if err != nil {
		return Gaps{}, fmt.Errorf("identify gaps: %w", err)
	}
	if err := gaps.Validate(); err != nil {
		return Gaps{}, fmt.Errorf("identify gaps: %w", err)
	}

	s.logger.Debug("skill gaps identified",
		zap.Int("count", len(gaps.SkillGaps)),
		zap.Int("open", countGaps(gaps)))
	return gaps, nil
}

// Identify runs the map and compare stages back to back and returns
// both the requirements and the resulting gap report.
func (s *Service) Identify(ctx context.Context, goal, learnerInfo string) (Requirements, Gaps, error) {
	reqs, err := s.MapRequirements(ctx, goal)
	if err != nil {
		return Requirements{}, Gaps{}, err
	}
	gaps, err := s.IdentifyGaps(ctx, goal, learnerInfo, reqs)
	if err != nil {
		return Requirements{}, Gaps{}, err
	}
	return reqs, gaps, nil
}

func countGaps(g Gaps) int {
	n := 0
	for _, gap := range g.SkillGaps {
		if gap.IsGap {
			n++
		}
	}
	return n
}
