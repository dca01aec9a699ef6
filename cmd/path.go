package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/genmentor/genmentor/internal/learner"
	"github.com/genmentor/genmentor/internal/schedule"
)

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Schedule, reflect on, and reschedule learning paths",
}

var pathScheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Generate a fresh learning path from a learner profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		profilePath, _ := cmd.Flags().GetString("profile")
		sessions, _ := cmd.Flags().GetInt("sessions")

		if profilePath == "" {
			return fmt.Errorf("--profile is required")
		}
		var profile learner.Profile
		if err := loadJSON(profilePath, &profile); err != nil {
			return err
		}

		a, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		path, err := a.Scheduler.Schedule(cmd.Context(), profile, sessions)
		if err != nil {
			return fmt.Errorf("schedule path: %w", err)
		}
		return printJSON(path)
	},
}

var pathReflectCmd = &cobra.Command{
	Use:   "reflect",
	Short: "Revise a path's upcoming sessions from learner feedback",
	RunE: func(cmd *cobra.Command, args []string) error {
		pathFile, _ := cmd.Flags().GetString("path")
		feedbackFlag, _ := cmd.Flags().GetString("feedback")

		if pathFile == "" {
			return fmt.Errorf("--path is required")
		}
		var path schedule.Path
		if err := loadJSON(pathFile, &path); err != nil {
			return err
		}
		feedback, err := readArg(feedbackFlag)
		if err != nil {
			return err
		}

		a, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		revised, err := a.Scheduler.Reflect(cmd.Context(), path, feedback)
		if err != nil {
			return fmt.Errorf("reflect on path: %w", err)
		}
		return printJSON(revised)
	},
}

var pathRescheduleCmd = &cobra.Command{
	Use:   "reschedule",
	Short: "Rebuild a path around its completed sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		pathFile, _ := cmd.Flags().GetString("path")
		profilePath, _ := cmd.Flags().GetString("profile")
		sessions, _ := cmd.Flags().GetInt("sessions")
		feedbackFlag, _ := cmd.Flags().GetString("feedback")

		if pathFile == "" || profilePath == "" {
			return fmt.Errorf("--path and --profile are required")
		}
		var path schedule.Path
		if err := loadJSON(pathFile, &path); err != nil {
			return err
		}
		var profile learner.Profile
		if err := loadJSON(profilePath, &profile); err != nil {
			return err
		}
		feedback, err := readArg(feedbackFlag)
		if err != nil {
			return err
		}

		a, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		revised, err := a.Scheduler.Reschedule(cmd.Context(), path, profile, sessions, feedback)
		if err != nil {
			return fmt.Errorf("reschedule path: %w", err)
		}
		return printJSON(revised)
	},
}

func init() {
	pathScheduleCmd.Flags().String("profile", "", "Path to learner profile JSON (required)")
	pathScheduleCmd.Flags().Int("sessions", 0, "Exact session count (0 lets the model decide)")

	pathReflectCmd.Flags().String("path", "", "Path to learning path JSON (required)")
	pathReflectCmd.Flags().String("feedback", "", "Learner feedback, literal or @file")

	pathRescheduleCmd.Flags().String("path", "", "Path to learning path JSON (required)")
	pathRescheduleCmd.Flags().String("profile", "", "Path to learner profile JSON (required)")
	pathRescheduleCmd.Flags().Int("sessions", 0, "Exact total session count (0 lets the model decide)")
	pathRescheduleCmd.Flags().String("feedback", "", "Additional feedback, literal or @file")

	pathCmd.AddCommand(pathScheduleCmd)
	pathCmd.AddCommand(pathReflectCmd)
	pathCmd.AddCommand(pathRescheduleCmd)
}
