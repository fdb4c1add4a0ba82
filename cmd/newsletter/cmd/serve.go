package cmd

import (
	"github.com/spf13/cobra"

	"github.com/theboringdotapp/newsletter-builder/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API. Configuration is read from NEWSLETTER_* and REDIS_*
environment variables.

Example:
  NEWSLETTER_LISTEN_PORT=:8080 newsletter serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	return app.New().Run()
}
