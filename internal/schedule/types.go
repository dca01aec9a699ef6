// Package schedule creates and maintains the ordered learning path:
// 1-10 sessions sequenced from foundational to advanced, each carrying
// the skills it advances and the proficiency it confers.
package schedule

import (
	"fmt"
	"strings"

	"github.com/genmentor/genmentor/internal/learner"
	"github.com/genmentor/genmentor/internal/skillgap"
)

// Outcome is a proficiency level a session confers on completion.
type Outcome struct {
	Name  string         `json:"name"`
	Level skillgap.Level `json:"level"`
}

// Session is one unit of the learning path.
type Session struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Abstract         string    `json:"abstract"`
	IfLearned        bool      `json:"if_learned"`
	AssociatedSkills []string  `json:"associated_skills"`
	DesiredOutcomes  []Outcome `json:"desired_outcome_when_completed"`
}

// ProfileUpdate converts the session into the shape the profile
// manager consumes after the session is learned.
func (s Session) ProfileUpdate() learner.SessionUpdate {
	outcomes := make([]learner.SkillOutcome, len(s.DesiredOutcomes))
	for i, o := range s.DesiredOutcomes {
		outcomes[i] = learner.SkillOutcome{Name: o.Name, Level: o.Level}
	}
	return learner.SessionUpdate{
		ID:              s.ID,
		Title:           s.Title,
		IfLearned:       s.IfLearned,
		DesiredOutcomes: outcomes,
	}
}

// Path is the ordered session sequence.
type Path struct {
	Sessions []Session `json:"learning_path"`
}

// Learned returns the learned sessions in input order.
func (p Path) Learned() []Session {
	var out []Session
	for _, s := range p.Sessions {
		if s.IfLearned {
			out = append(out, s)
		}
	}
	return out
}

const (
	minSessions = 1
	maxSessions = 10

	maxAbstractWords = 200
)

// Validate checks session count bounds, id uniqueness, and per-session
// field constraints.
func (p Path) Validate() error {
	if n := len(p.Sessions); n < minSessions || n > maxSessions {
		return &skillgap.ValidationError{
			Field:   "learning_path",
			Message: fmt.Sprintf("must contain between %d and %d sessions, got %d", minSessions, maxSessions, n),
		}
	}

	ids := make(map[string]bool, len(p.Sessions))
	for i, s := range p.Sessions {
		field := fmt.Sprintf("learning_path[%d]", i)
		if strings.TrimSpace(s.ID) == "" {
			return &skillgap.ValidationError{Field: field + ".id", Message: "must be non-empty"}
		}
		if ids[s.ID] {
			return &skillgap.ValidationError{
				Field:   field + ".id",
				Message: fmt.Sprintf("duplicate session id %q", s.ID),
			}
		}
		ids[s.ID] = true
		if strings.TrimSpace(s.Title) == "" {
			return &skillgap.ValidationError{Field: field + ".title", Message: "must be non-empty"}
		}
		if words := len(strings.Fields(s.Abstract)); words > maxAbstractWords {
			return &skillgap.ValidationError{
				Field:   field + ".abstract",
				Message: fmt.Sprintf("must be %d words or fewer, got %d", maxAbstractWords, words),
			}
		}
		for j, o := range s.DesiredOutcomes {
			if !o.Level.ValidRequired() {
				return &skillgap.ValidationError{
					Field:   fmt.Sprintf("%s.desired_outcome_when_completed[%d].level", field, j),
					Message: fmt.Sprintf("invalid level %q", o.Level),
				}
			}
		}
	}
	return nil
}

// ContractError reports a scheduler output that broke an operation's
// contract, e.g. a refined path that mutated a learned session.
type ContractError struct {
	Op     string
	Detail string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: contract violation: %s", e.Op, e.Detail)
}
