// ABOUTME: Interactive chat command with a colored terminal REPL
// ABOUTME: One session maps to one conversation until the user exits
package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	var location string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session

Ask about the weather, the news or your calendar in plain language.
Type 'exit' or 'quit' (or press Ctrl+D) to leave.`,
		Example: `  # Start chatting
  aide chat

  # Start with a default location for weather queries
  aide chat --location "San Francisco"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, location)
		},
	}

	cmd.Flags().StringVarP(&location, "location", "l", "", "Default location for weather queries")

	return cmd
}

func runChat(cmd *cobra.Command, location string) error {
	assistant, _, err := buildAssistant()
	if err != nil {
		return err
	}

	preferences := map[string]string{}
	if location != "" {
		preferences["location"] = location
	}

	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	boldCyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	out := cmd.OutOrStdout()
	if !quiet {
		fmt.Fprintln(out, boldGreen("🤖 aide"))
		fmt.Fprintln(out, "Ask about weather, news or your calendar. Type 'exit' to quit.")
		fmt.Fprintln(out)
	}

	var conversationID string
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprint(out, boldGreen("You: "))
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		switch strings.ToLower(input) {
		case "exit", "quit":
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}

		result := assistant.Process(cmd.Context(), input, conversationID, preferences)
		if !result.Success {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", result.Error)
			continue
		}
		conversationID = result.ConversationID

		fmt.Fprintf(out, "%s%s\n", boldCyan("Assistant: "), result.Response.Message)
		if verbose {
			fmt.Fprintln(out, dim(fmt.Sprintf("[intent=%s confidence=%.2f]", result.Intent, result.Confidence)))
		}
		if len(result.Response.Suggestions) > 0 && !quiet {
			fmt.Fprintln(out, dim("Try: "+strings.Join(result.Response.Suggestions, " | ")))
		}
		fmt.Fprintln(out)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}
