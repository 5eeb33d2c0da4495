// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Provides the entry point shared by chat, serve, mcp and version
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

const banner = `
 █████╗ ██╗██████╗ ███████╗
██╔══██╗██║██╔══██╗██╔════╝
███████║██║██║  ██║█████╗
██╔══██║██║██║  ██║██╔══╝
██║  ██║██║██████╔╝███████╗
╚═╝  ╚═╝╚═╝╚═════╝ ╚══════╝
`

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aide",
		Short: "Conversational assistant for weather, news and calendar",
		Long: banner + `
aide is a conversational assistant that classifies what you ask for
(weather, news, calendar, small talk) and answers with live data.

Run an interactive session with 'aide chat', expose the HTTP API with
'aide serve', or serve LLM agents over stdio with 'aide mcp'.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
