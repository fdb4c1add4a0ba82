package cmd

import (
	"github.com/spf13/cobra"

	"github.com/theboringdotapp/newsletter-builder/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "newsletter",
	Short: "Newsletter builder: curate links, generate and publish a weekly edition",
	Long: `Newsletter builder stores saved links and editions as JSON files in a
GitHub repository, writes the edition with an OpenAI-compatible model and
creates drafts on Kit.

Without a subcommand the HTTP server is started.

Commands:
  serve   Start the HTTP API
  week    Print the edition key of a date
  export  Print the Kit broadcast JSON of a saved edition`,
	Version:      version.Get().String(),
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
