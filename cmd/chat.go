package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/genmentor/genmentor/internal/learner"
	"github.com/genmentor/genmentor/internal/llm"
	"github.com/genmentor/genmentor/internal/tutor"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the AI tutor",
	Long: "Starts an interactive tutoring session on stdin. When a learner\n" +
		"profile is provided, replies are tailored to the learner's goal and\n" +
		"progress. Exit with Ctrl-D or /quit.",
	RunE: func(cmd *cobra.Command, args []string) error {
		profilePath, _ := cmd.Flags().GetString("profile")

		var profile learner.Profile
		if profilePath != "" {
			if err := loadJSON(profilePath, &profile); err != nil {
				return err
			}
		}

		a, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		var history []tutor.Message

		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		fmt.Print("you> ")
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "/quit" || line == "/exit" {
				break
			}
			if line == "" {
				fmt.Print("you> ")
				continue
			}

			history = append(history, tutor.Message{Role: llm.RoleUser, Content: line})
			reply, err := a.Tutor.Chat(ctx, profile, history)
			if err != nil {
				fmt.Fprintln(os.Stderr, "tutor error:", err)
				history = history[:len(history)-1]
				fmt.Print("you> ")
				continue
			}
			history = append(history, tutor.Message{Role: llm.RoleAssistant, Content: reply})

			fmt.Printf("\ntutor> %s\n\nyou> ", reply)
		}
		fmt.Println()
		return scanner.Err()
	},
}

func init() {
	chatCmd.Flags().String("profile", "", "Path to learner profile JSON")
}
