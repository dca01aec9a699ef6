// Package cmd implements the genmentor command line interface.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/genmentor/genmentor/internal/app"
	"github.com/genmentor/genmentor/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "genmentor",
	Short: "Goal-oriented AI tutoring engine",
	Long: "GenMentor — a goal-oriented tutoring engine that identifies skill gaps,\n" +
		"models the learner, schedules a learning path, and generates personalized\n" +
		"learning documents with quizzes.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides GENMENTOR_DB env var)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable verbose logging")

	rootCmd.AddCommand(gapCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(contentCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then GENMENTOR_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// buildApp wires the full service graph for a command invocation.
func buildApp(cmd *cobra.Command) (*app.App, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	debug, _ := cmd.Flags().GetBool("debug")
	return app.New(cmd.Context(), app.Options{
		DBPath: dbPath,
		Logger: app.NewLogger(debug),
	})
}

// readArg resolves a flag value that is either a literal string or,
// when prefixed with "@", the contents of a file.
func readArg(value string) (string, error) {
	if !strings.HasPrefix(value, "@") {
		return value, nil
	}
	data, err := os.ReadFile(strings.TrimPrefix(value, "@"))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", value, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// loadJSON decodes the JSON file at path into out.
func loadJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
