package skillgap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelRank(t *testing.T) {
	assert.Equal(t, 0, LevelUnlearned.Rank())
	assert.Equal(t, 1, LevelBeginner.Rank())
	assert.Equal(t, 2, LevelIntermediate.Rank())
	assert.Equal(t, 3, LevelAdvanced.Rank())
	assert.Equal(t, -1, Level("expert").Rank())
}

func TestRequirementsValidate(t *testing.T) {
	valid := Requirements{SkillRequirements: []SkillRequirement{
		{Name: "Pandas", RequiredLevel: LevelIntermediate},
		{Name: "SQL", RequiredLevel: LevelBeginner},
	}}
	require.NoError(t, valid.Validate())

	t.Run("empty list rejected", func(t *testing.T) {
		err := Requirements{}.Validate()
		require.Error(t, err)
	})

	t.Run("eleven skills rejected not truncated", func(t *testing.T) {
		var reqs Requirements
		for i := 0; i < 11; i++ {
			reqs.SkillRequirements = append(reqs.SkillRequirements, SkillRequirement{
				Name:          fmt.Sprintf("Skill %d", i),
				RequiredLevel: LevelBeginner,
			})
		}
		err := reqs.Validate()
		require.Error(t, err)
		// The slice is untouched: callers reject, they never trim.
		assert.Len(t, reqs.SkillRequirements, 11)
	})

	t.Run("duplicate names case-insensitive", func(t *testing.T) {
		reqs := Requirements{SkillRequirements: []SkillRequirement{
			{Name: "SQL", RequiredLevel: LevelBeginner},
			{Name: "sql", RequiredLevel: LevelAdvanced},
		}}
		var verr *ValidationError
		require.ErrorAs(t, reqs.Validate(), &verr)
		assert.Contains(t, verr.Message, "duplicate")
	})

	t.Run("unlearned is not a required level", func(t *testing.T) {
		reqs := Requirements{SkillRequirements: []SkillRequirement{
			{Name: "SQL", RequiredLevel: LevelUnlearned},
		}}
		require.Error(t, reqs.Validate())
	})
}

func validGap(name string, required, current Level) SkillGap {
	return SkillGap{
		Name:            name,
		IsGap:           current.Rank() < required.Rank(),
		RequiredLevel:   required,
		CurrentLevel:    current,
		Reason:          "Background suggests this level.",
		LevelConfidence: ConfidenceMedium,
	}
}

func TestGapsValidate(t *testing.T) {
	t.Run("is_gap must match level ranks", func(t *testing.T) {
		levels := []Level{LevelUnlearned, LevelBeginner, LevelIntermediate, LevelAdvanced}
		required := []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}
		for _, req := range required {
			for _, cur := range levels {
				consistent := validGap("X", req, cur)
				g := Gaps{SkillGaps: []SkillGap{consistent}}
				assert.NoError(t, g.Validate(), "required=%s current=%s", req, cur)

				flipped := consistent
				flipped.IsGap = !flipped.IsGap
				g = Gaps{SkillGaps: []SkillGap{flipped}}
				assert.Error(t, g.Validate(), "flipped is_gap required=%s current=%s", req, cur)
			}
		}
	})

	t.Run("reason capped at 20 words", func(t *testing.T) {
		gap := validGap("X", LevelAdvanced, LevelBeginner)
		gap.Reason = "one two three four five six seven eight nine ten " +
			"eleven twelve thirteen fourteen fifteen sixteen seventeen eighteen nineteen twenty twentyone"
		g := Gaps{SkillGaps: []SkillGap{gap}}
		var verr *ValidationError
		require.ErrorAs(t, g.Validate(), &verr)
		assert.Contains(t, verr.Field, "reason")
	})

	t.Run("invalid confidence", func(t *testing.T) {
		gap := validGap("X", LevelAdvanced, LevelBeginner)
		gap.LevelConfidence = "certain"
		require.Error(t, Gaps{SkillGaps: []SkillGap{gap}}.Validate())
	})

	t.Run("duplicate names rejected", func(t *testing.T) {
		g := Gaps{SkillGaps: []SkillGap{
			validGap("Go", LevelAdvanced, LevelBeginner),
			validGap("go", LevelBeginner, LevelUnlearned),
		}}
		require.Error(t, g.Validate())
	})
}
