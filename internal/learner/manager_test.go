package learner

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genmentor/genmentor/internal/llm"
	"github.com/genmentor/genmentor/internal/skillgap"
)

func profileJSON(t *testing.T, p Profile) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	return raw
}

func baseProfile() Profile {
	return Profile{
		LearnerInformation: "Junior analyst with SQL experience.",
		LearningGoal:       "Become a data analyst",
		CognitiveStatus: CognitiveStatus{
			OverallProgress: 40,
			MasteredSkills: []MasteredSkill{
				{Name: "SQL", ProficiencyLevel: skillgap.LevelIntermediate},
			},
			InProgressSkills: []InProgressSkill{
				{
					Name:                     "X",
					RequiredProficiencyLevel: skillgap.LevelIntermediate,
					CurrentProficiencyLevel:  skillgap.LevelBeginner,
				},
			},
		},
		LearningPreferences: LearningPreferences{
			ContentStyle: "Concise summaries",
			ActivityType: "Interactive exercises",
		},
		BehavioralPatterns: BehavioralPatterns{
			SystemUsageFrequency:      "3 logins per week",
			SessionDurationEngagement: "30 minute sessions",
		},
	}
}

func TestInitializeRestoresGoalVerbatim(t *testing.T) {
	fromModel := baseProfile()
	fromModel.LearningGoal = "Become a well-rounded data analysis professional" // paraphrased

	mock := llm.NewMockProvider(llm.MockResponse{Content: profileJSON(t, fromModel)})
	mgr := NewManager(mock, nil)

	gaps := skillgap.Gaps{SkillGaps: []skillgap.SkillGap{
		{
			Name: "X", IsGap: true,
			RequiredLevel: skillgap.LevelIntermediate, CurrentLevel: skillgap.LevelBeginner,
			Reason: "Basics only.", LevelConfidence: skillgap.ConfidenceMedium,
		},
	}}

	profile, err := mgr.Initialize(context.Background(), "Become a data analyst", "resume", gaps)
	require.NoError(t, err)
	assert.Equal(t, "Become a data analyst", profile.LearningGoal)

	require.Len(t, mock.Calls, 1)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, `"X"`)
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "resume")
}

func TestInitializeRejectsEmptyGoal(t *testing.T) {
	mock := llm.NewMockProvider()
	mgr := NewManager(mock, nil)

	_, err := mgr.Initialize(context.Background(), "  ", "resume", skillgap.Gaps{})
	require.Error(t, err)
	assert.Zero(t, mock.CallCount())
}

func TestUpdateEnforcesMasteryPromotion(t *testing.T) {
	prev := baseProfile()

	// The model returns X still in progress at intermediate, failing to
	// promote it even though required is intermediate.
	fromModel := baseProfile()
	fromModel.CognitiveStatus.InProgressSkills[0].CurrentProficiencyLevel = skillgap.LevelIntermediate

	mock := llm.NewMockProvider(llm.MockResponse{Content: profileJSON(t, fromModel)})
	mgr := NewManager(mock, nil)

	session := &SessionUpdate{
		ID:        "Session 2",
		Title:     "Intermediate X Techniques",
		IfLearned: true,
		DesiredOutcomes: []SkillOutcome{
			{Name: "X", Level: skillgap.LevelIntermediate},
		},
	}

	updated, err := mgr.Update(context.Background(), prev, "completed the session quiz", "", session)
	require.NoError(t, err)

	assert.True(t, updated.HasMastered("X"))
	for _, s := range updated.CognitiveStatus.InProgressSkills {
		assert.NotEqual(t, "X", s.Name)
	}
}

func TestUpdatePromotesWhenModelDropsSkill(t *testing.T) {
	prev := baseProfile()

	fromModel := baseProfile()
	fromModel.CognitiveStatus.InProgressSkills = nil // model lost the skill

	mock := llm.NewMockProvider(llm.MockResponse{Content: profileJSON(t, fromModel)})
	mgr := NewManager(mock, nil)

	session := &SessionUpdate{
		ID:        "Session 1",
		IfLearned: true,
		DesiredOutcomes: []SkillOutcome{
			{Name: "X", Level: skillgap.LevelAdvanced},
		},
	}

	updated, err := mgr.Update(context.Background(), prev, "", "", session)
	require.NoError(t, err)
	assert.True(t, updated.HasMastered("X"))
}

func TestUpdateUnlearnedSessionDoesNotPromote(t *testing.T) {
	prev := baseProfile()
	fromModel := baseProfile()

	mock := llm.NewMockProvider(llm.MockResponse{Content: profileJSON(t, fromModel)})
	mgr := NewManager(mock, nil)

	session := &SessionUpdate{
		ID:        "Session 1",
		IfLearned: false,
		DesiredOutcomes: []SkillOutcome{
			{Name: "X", Level: skillgap.LevelIntermediate},
		},
	}

	updated, err := mgr.Update(context.Background(), prev, "", "", session)
	require.NoError(t, err)
	assert.False(t, updated.HasMastered("X"))
}

func TestUpdateMasteredSkillsNeverRevert(t *testing.T) {
	prev := baseProfile()

	fromModel := baseProfile()
	fromModel.CognitiveStatus.MasteredSkills = nil // model dropped SQL

	mock := llm.NewMockProvider(llm.MockResponse{Content: profileJSON(t, fromModel)})
	mgr := NewManager(mock, nil)

	updated, err := mgr.Update(context.Background(), prev, "some interactions", "", nil)
	require.NoError(t, err)
	assert.True(t, updated.HasMastered("SQL"))
}

func TestUpdateAcceptsNullSkillLists(t *testing.T) {
	// Hand-written payload: the model nulled both lists outright.
	raw := json.RawMessage(`{
		"learner_information": "Junior analyst with SQL experience.",
		"learning_goal": "Become a data analyst",
		"cognitive_status": {
			"overall_progress": 40,
			"mastered_skills": null,
			"in_progress_skills": null
		},
		"learning_preferences": {
			"content_style": "Concise summaries",
			"activity_type": "Interactive exercises"
		},
		"behavioral_patterns": {
			"system_usage_frequency": "3 logins per week",
			"session_duration_engagement": "30 minute sessions"
		}
	}`)
	mock := llm.NewMockProvider(llm.MockResponse{Content: raw})
	mgr := NewManager(mock, nil)

	updated, err := mgr.Update(context.Background(), baseProfile(), "", "", nil)
	require.NoError(t, err)
	assert.True(t, updated.HasMastered("SQL"))
}

func TestUpdateValidationFailureReturnsError(t *testing.T) {
	fromModel := baseProfile()
	fromModel.CognitiveStatus.OverallProgress = 140

	mock := llm.NewMockProvider(llm.MockResponse{Content: profileJSON(t, fromModel)})
	mgr := NewManager(mock, nil)

	_, err := mgr.Update(context.Background(), baseProfile(), "", "", nil)
	require.Error(t, err)
}

func TestProfileValidate(t *testing.T) {
	require.NoError(t, baseProfile().Validate())

	p := baseProfile()
	p.LearningGoal = ""
	assert.Error(t, p.Validate())

	p = baseProfile()
	p.CognitiveStatus.MasteredSkills[0].ProficiencyLevel = skillgap.LevelUnlearned
	assert.Error(t, p.Validate())

	p = baseProfile()
	p.CognitiveStatus.InProgressSkills[0].CurrentProficiencyLevel = "expert"
	assert.Error(t, p.Validate())

	p = baseProfile()
	p.CognitiveStatus.InProgressSkills = append(p.CognitiveStatus.InProgressSkills, InProgressSkill{
		Name:                     p.CognitiveStatus.MasteredSkills[0].Name,
		RequiredProficiencyLevel: skillgap.LevelAdvanced,
		CurrentProficiencyLevel:  skillgap.LevelIntermediate,
	})
	assert.Error(t, p.Validate())
}
