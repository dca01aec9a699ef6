package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/genmentor/genmentor/internal/llm"
	"github.com/genmentor/genmentor/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		events, err := s.EventRepo().RecentLLMRequests(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No LLM requests recorded.")
			return nil
		}

		fmt.Printf("%-19s  %-18s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 100))

		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			model := e.Model
			if len(model) > 28 {
				model = model[:28]
			}
			fmt.Printf("%-19s  %-18s  %-28s  %-6d  %-6d  %-7d  %s\n",
				e.At.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				model,
				e.InputTokens,
				e.OutputTokens,
				e.Latency.Milliseconds(),
				ok,
			)
		}
		return nil
	},
}

var llmProbeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Send a test request to the configured provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := llm.WithPurpose(cmd.Context(), "probe")
		resp, err := a.Provider.Generate(ctx, llm.Request{
			Messages:  []llm.Message{{Role: llm.RoleUser, Content: "Reply with the single word: pong"}},
			MaxTokens: 16,
		})
		if err != nil {
			return fmt.Errorf("probe: %w", err)
		}

		fmt.Printf("model:  %s\n", resp.Model)
		fmt.Printf("reply:  %s\n", strings.TrimSpace(string(resp.Content)))
		fmt.Printf("tokens: %d in / %d out\n", resp.Usage.InputTokens, resp.Usage.OutputTokens)
		return nil
	},
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. skill-gaps, path-schedule, tutor-chat)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmProbeCmd)
}
