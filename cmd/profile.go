package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/genmentor/genmentor/internal/learner"
	"github.com/genmentor/genmentor/internal/skillgap"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Initialize or update a learner profile",
}

var profileInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Build an initial learner profile from goal, background, and gaps",
	RunE: func(cmd *cobra.Command, args []string) error {
		goal, _ := cmd.Flags().GetString("goal")
		learnerFlag, _ := cmd.Flags().GetString("learner")
		gapsPath, _ := cmd.Flags().GetString("gaps")

		if goal == "" {
			return fmt.Errorf("--goal is required")
		}
		background, err := readArg(learnerFlag)
		if err != nil {
			return err
		}

		var gaps skillgap.Gaps
		if gapsPath != "" {
			if err := loadJSON(gapsPath, &gaps); err != nil {
				return err
			}
		}

		a, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		profile, err := a.Profiles.Initialize(cmd.Context(), goal, background, gaps)
		if err != nil {
			return fmt.Errorf("initialize profile: %w", err)
		}
		return printJSON(profile)
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update a profile from new interactions and session outcomes",
	RunE: func(cmd *cobra.Command, args []string) error {
		profilePath, _ := cmd.Flags().GetString("profile")
		interactionsFlag, _ := cmd.Flags().GetString("interactions")
		learnerFlag, _ := cmd.Flags().GetString("learner")
		sessionPath, _ := cmd.Flags().GetString("session")

		if profilePath == "" {
			return fmt.Errorf("--profile is required")
		}

		var profile learner.Profile
		if err := loadJSON(profilePath, &profile); err != nil {
			return err
		}
		interactions, err := readArg(interactionsFlag)
		if err != nil {
			return err
		}
		background, err := readArg(learnerFlag)
		if err != nil {
			return err
		}

		var session *learner.SessionUpdate
		if sessionPath != "" {
			session = &learner.SessionUpdate{}
			if err := loadJSON(sessionPath, session); err != nil {
				return err
			}
		}

		a, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		updated, err := a.Profiles.Update(cmd.Context(), profile, interactions, background, session)
		if err != nil {
			return fmt.Errorf("update profile: %w", err)
		}
		return printJSON(updated)
	},
}

func init() {
	profileInitCmd.Flags().String("goal", "", "Learning goal (required)")
	profileInitCmd.Flags().String("learner", "", "Learner background, literal or @file")
	profileInitCmd.Flags().String("gaps", "", "Path to skill gap report JSON")

	profileUpdateCmd.Flags().String("profile", "", "Path to current profile JSON (required)")
	profileUpdateCmd.Flags().String("interactions", "", "Recent learner interactions, literal or @file")
	profileUpdateCmd.Flags().String("learner", "", "Updated learner background, literal or @file")
	profileUpdateCmd.Flags().String("session", "", "Path to completed session JSON")

	profileCmd.AddCommand(profileInitCmd)
	profileCmd.AddCommand(profileUpdateCmd)
}
