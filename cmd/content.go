package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/genmentor/genmentor/internal/content"
	"github.com/genmentor/genmentor/internal/learner"
	"github.com/genmentor/genmentor/internal/schedule"
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Generate a learning document for a session",
	Long: "Runs the content pipeline for one session of a learning path:\n" +
		"knowledge exploration, per-point drafting with retrieved resources,\n" +
		"document integration, and an optional quiz. Prints the document as\n" +
		"Markdown, or the full result as JSON with --json.",
	RunE: func(cmd *cobra.Command, args []string) error {
		profilePath, _ := cmd.Flags().GetString("profile")
		pathFile, _ := cmd.Flags().GetString("path")
		sessionID, _ := cmd.Flags().GetString("session")
		parallel, _ := cmd.Flags().GetBool("parallel")
		withQuiz, _ := cmd.Flags().GetBool("quiz")
		asJSON, _ := cmd.Flags().GetBool("json")

		if profilePath == "" || pathFile == "" || sessionID == "" {
			return fmt.Errorf("--profile, --path, and --session are required")
		}

		var profile learner.Profile
		if err := loadJSON(profilePath, &profile); err != nil {
			return err
		}
		var path schedule.Path
		if err := loadJSON(pathFile, &path); err != nil {
			return err
		}

		session, ok := findSession(path, sessionID)
		if !ok {
			return fmt.Errorf("session %q not found in %s", sessionID, pathFile)
		}

		counts := content.QuizCounts{}
		counts.SingleChoice, _ = cmd.Flags().GetInt("single-choice")
		counts.MultipleChoice, _ = cmd.Flags().GetInt("multiple-choice")
		counts.TrueFalse, _ = cmd.Flags().GetInt("true-false")
		counts.ShortAnswer, _ = cmd.Flags().GetInt("short-answer")

		a, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.Content.Create(cmd.Context(), content.CreateRequest{
			Profile:  profile,
			Path:     path,
			Session:  session,
			Parallel: parallel,
			WithQuiz: withQuiz,
			Counts:   counts,
		})
		if err != nil {
			return fmt.Errorf("generate content: %w", err)
		}

		if asJSON {
			return printJSON(result)
		}

		fmt.Println(result.Document.Markdown)
		if result.Quiz != nil {
			fmt.Println("---")
			return printJSON(result.Quiz)
		}
		return nil
	},
}

func findSession(path schedule.Path, id string) (schedule.Session, bool) {
	for _, s := range path.Sessions {
		if strings.EqualFold(s.ID, id) {
			return s, true
		}
	}
	return schedule.Session{}, false
}

func init() {
	contentCmd.Flags().String("profile", "", "Path to learner profile JSON (required)")
	contentCmd.Flags().String("path", "", "Path to learning path JSON (required)")
	contentCmd.Flags().String("session", "", "Session ID to generate content for (required)")
	contentCmd.Flags().Bool("parallel", false, "Draft knowledge points concurrently")
	contentCmd.Flags().Bool("quiz", false, "Generate a quiz for the document")
	contentCmd.Flags().Bool("json", false, "Print the full result as JSON")
	contentCmd.Flags().Int("single-choice", 0, "Single-choice question count (0 uses the default mix)")
	contentCmd.Flags().Int("multiple-choice", 0, "Multiple-choice question count")
	contentCmd.Flags().Int("true-false", 0, "True/false question count")
	contentCmd.Flags().Int("short-answer", 0, "Short-answer question count")
}
