// Package skillgap maps a learning goal to required skills and compares
// them against the learner's background to find gaps.
package skillgap

import (
	"fmt"
	"strings"
)

// Level is a proficiency level. "unlearned" is valid only as a current
// level; required levels start at beginner.
type Level string

const (
	LevelUnlearned    Level = "unlearned"
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Rank returns the fixed ordering used for gap detection:
// unlearned=0 < beginner=1 < intermediate=2 < advanced=3.
// Unknown levels rank -1.
func (l Level) Rank() int {
	switch l {
	case LevelUnlearned:
		return 0
	case LevelBeginner:
		return 1
	case LevelIntermediate:
		return 2
	case LevelAdvanced:
		return 3
	default:
		return -1
	}
}

// ValidRequired reports whether l is a valid required level.
func (l Level) ValidRequired() bool {
	return l == LevelBeginner || l == LevelIntermediate || l == LevelAdvanced
}

// ValidCurrent reports whether l is a valid current level.
func (l Level) ValidCurrent() bool {
	return l == LevelUnlearned || l.ValidRequired()
}

// Confidence expresses certainty in an inferred current level.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

func (c Confidence) Valid() bool {
	return c == ConfidenceLow || c == ConfidenceMedium || c == ConfidenceHigh
}

// SkillRequirement is one skill the goal demands, produced by Stage A.
type SkillRequirement struct {
	Name          string `json:"name"`
	RequiredLevel Level  `json:"required_level"`
}

// SkillGap compares one requirement against the learner's inferred
// proficiency, produced by Stage B.
type SkillGap struct {
	Name            string     `json:"name"`
	IsGap           bool       `json:"is_gap"`
	RequiredLevel   Level      `json:"required_level"`
	CurrentLevel    Level      `json:"current_level"`
	Reason          string     `json:"reason"`
	LevelConfidence Confidence `json:"level_confidence"`
}

// Requirements is the Stage A payload.
type Requirements struct {
	SkillRequirements []SkillRequirement `json:"skill_requirements"`
}

// Gaps is the Stage B payload.
type Gaps struct {
	SkillGaps []SkillGap `json:"skill_gaps"`
}

const (
	minSkills = 1
	maxSkills = 10

	maxReasonWords = 20
)

// ValidationError reports which field and rule an entity violated.
// Validation rejects the whole entity; there is no partial acceptance.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks list bounds, enum membership, and case-insensitive
// name uniqueness.
func (r Requirements) Validate() error {
	if n := len(r.SkillRequirements); n < minSkills || n > maxSkills {
		return &ValidationError{
			Field:   "skill_requirements",
			Message: fmt.Sprintf("must contain between %d and %d skills, got %d", minSkills, maxSkills, n),
		}
	}

	seen := make(map[string]bool, len(r.SkillRequirements))
	for i, req := range r.SkillRequirements {
		field := fmt.Sprintf("skill_requirements[%d]", i)
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return &ValidationError{Field: field + ".name", Message: "must be non-empty"}
		}
		key := strings.ToLower(name)
		if seen[key] {
			return &ValidationError{
				Field:   field + ".name",
				Message: fmt.Sprintf("duplicate skill name %q", req.Name),
			}
		}
		seen[key] = true
		if !req.RequiredLevel.ValidRequired() {
			return &ValidationError{
				Field:   field + ".required_level",
				Message: fmt.Sprintf("invalid level %q", req.RequiredLevel),
			}
		}
	}
	return nil
}

// Validate checks bounds, enums, uniqueness, the reason word cap, and
// the is_gap consistency invariant:
// is_gap == (rank(current) < rank(required)).
func (g Gaps) Validate() error {
	if n := len(g.SkillGaps); n < minSkills || n > maxSkills {
		return &ValidationError{
			Field:   "skill_gaps",
			Message: fmt.Sprintf("must contain between %d and %d skills, got %d", minSkills, maxSkills, n),
		}
	}

	seen := make(map[string]bool, len(g.SkillGaps))
	for i, gap := range g.SkillGaps {
		field := fmt.Sprintf("skill_gaps[%d]", i)
		name := strings.TrimSpace(gap.Name)
		if name == "" {
			return &ValidationError{Field: field + ".name", Message: "must be non-empty"}
		}
		key := strings.ToLower(name)
		if seen[key] {
			return &ValidationError{
				Field:   field + ".name",
				Message: fmt.Sprintf("duplicate skill name %q", gap.Name),
			}
		}
		seen[key] = true

		if !gap.RequiredLevel.ValidRequired() {
			return &ValidationError{
				Field:   field + ".required_level",
				Message: fmt.Sprintf("invalid level %q", gap.RequiredLevel),
			}
		}
		if !gap.CurrentLevel.ValidCurrent() {
			return &ValidationError{
				Field:   field + ".current_level",
				Message: fmt.Sprintf("invalid level %q", gap.CurrentLevel),
			}
		}
		if !gap.LevelConfidence.Valid() {
			return &ValidationError{
				Field:   field + ".level_confidence",
				Message: fmt.Sprintf("invalid confidence %q", gap.LevelConfidence),
			}
		}
		if words := len(strings.Fields(gap.Reason)); words > maxReasonWords {
			return &ValidationError{
				Field:   field + ".reason",
				Message: fmt.Sprintf("must be %d words or fewer, got %d", maxReasonWords, words),
			}
		}

		shouldBeGap := gap.CurrentLevel.Rank() < gap.RequiredLevel.Rank()
		if gap.IsGap != shouldBeGap {
			return &ValidationError{
				Field: field + ".is_gap",
				Message: fmt.Sprintf("required=%q current=%q implies is_gap=%v",
					gap.RequiredLevel, gap.CurrentLevel, shouldBeGap),
			}
		}
	}
	return nil
}
