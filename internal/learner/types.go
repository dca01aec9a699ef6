// Package learner maintains the evolving learner profile: cognitive
// status over the goal's skills, learning preferences, and behavioral
// patterns.
package learner

import (
	"fmt"
	"strings"

	"github.com/genmentor/genmentor/internal/skillgap"
)

// MasteredSkill is a skill whose required proficiency has been reached.
type MasteredSkill struct {
	Name             string         `json:"name"`
	ProficiencyLevel skillgap.Level `json:"proficiency_level"`
}

// InProgressSkill is a skill still below its required proficiency.
type InProgressSkill struct {
	Name                     string         `json:"name"`
	RequiredProficiencyLevel skillgap.Level `json:"required_proficiency_level"`
	CurrentProficiencyLevel  skillgap.Level `json:"current_proficiency_level"`
}

// CognitiveStatus tracks goal-relevant skill mastery.
type CognitiveStatus struct {
	OverallProgress  int               `json:"overall_progress"`
	MasteredSkills   []MasteredSkill   `json:"mastered_skills"`
	InProgressSkills []InProgressSkill `json:"in_progress_skills"`
}

// LearningPreferences captures how the learner likes content delivered.
type LearningPreferences struct {
	ContentStyle    string `json:"content_style"`
	ActivityType    string `json:"activity_type"`
	AdditionalNotes string `json:"additional_notes,omitempty"`
}

// BehavioralPatterns captures engagement and usage signals.
type BehavioralPatterns struct {
	SystemUsageFrequency      string `json:"system_usage_frequency"`
	SessionDurationEngagement string `json:"session_duration_engagement"`
	MotivationalTriggers      string `json:"motivational_triggers,omitempty"`
	AdditionalNotes           string `json:"additional_notes,omitempty"`
}

// Profile is the full learner model used to personalize every
// downstream stage.
type Profile struct {
	LearnerInformation  string              `json:"learner_information"`
	LearningGoal        string              `json:"learning_goal"`
	CognitiveStatus     CognitiveStatus     `json:"cognitive_status"`
	LearningPreferences LearningPreferences `json:"learning_preferences"`
	BehavioralPatterns  BehavioralPatterns  `json:"behavioral_patterns"`
}

// SkillOutcome is a target proficiency a session confers on completion.
type SkillOutcome struct {
	Name  string         `json:"name"`
	Level skillgap.Level `json:"level"`
}

// SessionUpdate is the slice of a learning-path session the profile
// update needs: identity, whether it was learned, and its outcomes.
type SessionUpdate struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	IfLearned       bool           `json:"if_learned"`
	DesiredOutcomes []SkillOutcome `json:"desired_outcome_when_completed"`
}

// Validate checks goal presence, progress bounds, level enums, and that
// no skill is listed as both mastered and in progress.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.LearningGoal) == "" {
		return &skillgap.ValidationError{Field: "learning_goal", Message: "must be non-empty"}
	}
	if p.CognitiveStatus.OverallProgress < 0 || p.CognitiveStatus.OverallProgress > 100 {
		return &skillgap.ValidationError{
			Field:   "cognitive_status.overall_progress",
			Message: fmt.Sprintf("must be in [0,100], got %d", p.CognitiveStatus.OverallProgress),
		}
	}
	for i, s := range p.CognitiveStatus.MasteredSkills {
		if !s.ProficiencyLevel.ValidRequired() {
			return &skillgap.ValidationError{
				Field:   fmt.Sprintf("cognitive_status.mastered_skills[%d].proficiency_level", i),
				Message: fmt.Sprintf("invalid level %q", s.ProficiencyLevel),
			}
		}
	}
	for i, s := range p.CognitiveStatus.InProgressSkills {
		field := fmt.Sprintf("cognitive_status.in_progress_skills[%d]", i)
		if p.HasMastered(s.Name) {
			return &skillgap.ValidationError{
				Field:   field + ".name",
				Message: fmt.Sprintf("skill %q listed as both mastered and in progress", s.Name),
			}
		}
		if !s.RequiredProficiencyLevel.ValidRequired() {
			return &skillgap.ValidationError{
				Field:   field + ".required_proficiency_level",
				Message: fmt.Sprintf("invalid level %q", s.RequiredProficiencyLevel),
			}
		}
		if !s.CurrentProficiencyLevel.ValidCurrent() {
			return &skillgap.ValidationError{
				Field:   field + ".current_proficiency_level",
				Message: fmt.Sprintf("invalid level %q", s.CurrentProficiencyLevel),
			}
		}
	}
	return nil
}

// HasMastered reports whether the profile lists name (case-insensitive)
// as mastered.
func (p Profile) HasMastered(name string) bool {
	for _, s := range p.CognitiveStatus.MasteredSkills {
		if strings.EqualFold(s.Name, name) {
			return true
		}
	}
	return false
}
