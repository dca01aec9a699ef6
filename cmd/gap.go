package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/genmentor/genmentor/internal/skillgap"
)

var gapCmd = &cobra.Command{
	Use:   "gap",
	Short: "Identify skill gaps for a learning goal",
	Long: "Refines the learning goal, maps it to skill requirements, and\n" +
		"assesses the learner against them. Prints the gap report as JSON.",
	RunE: func(cmd *cobra.Command, args []string) error {
		goal, _ := cmd.Flags().GetString("goal")
		learnerFlag, _ := cmd.Flags().GetString("learner")
		refineOnly, _ := cmd.Flags().GetBool("refine-only")

		if goal == "" {
			return fmt.Errorf("--goal is required")
		}
		learnerInfo, err := readArg(learnerFlag)
		if err != nil {
			return err
		}

		a, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()

		if refineOnly {
			refined, err := a.SkillGaps.RefineGoal(ctx, goal, learnerInfo)
			if err != nil {
				return fmt.Errorf("refine goal: %w", err)
			}
			fmt.Println(refined)
			return nil
		}

		reqs, gaps, err := a.SkillGaps.Identify(ctx, goal, learnerInfo)
		if err != nil {
			return fmt.Errorf("identify gaps: %w", err)
		}
		return printJSON(struct {
			skillgap.Requirements
			skillgap.Gaps
		}{reqs, gaps})
	},
}

func init() {
	gapCmd.Flags().String("goal", "", "Learning goal (required)")
	gapCmd.Flags().String("learner", "", "Learner background, literal or @file")
	gapCmd.Flags().Bool("refine-only", false, "Only print the refined goal")
}
