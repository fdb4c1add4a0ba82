package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/theboringdotapp/newsletter-builder/internal/config"
	"github.com/theboringdotapp/newsletter-builder/internal/credentials"
	"github.com/theboringdotapp/newsletter-builder/internal/domain"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/deps"
	"github.com/theboringdotapp/newsletter-builder/internal/publish"
)

var exportOpts struct {
	week    string
	owner   string
	repo    string
	branch  string
	token   string
	subject string
	timeout time.Duration
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the Kit broadcast JSON of a saved edition",
	Long: `Read a saved edition from the GitHub repository and print the payload
that publishing would send to Kit. Nothing is sent.

The token defaults to $GITHUB_TOKEN.

Example:
  newsletter export --week 2025-W03 --owner me --repo links > broadcast.json`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&exportOpts.week, "week", "", "edition key (default: current week)")
	f.StringVar(&exportOpts.owner, "owner", "", "repository owner")
	f.StringVar(&exportOpts.repo, "repo", "", "repository name")
	f.StringVar(&exportOpts.branch, "branch", credentials.DefaultBranch, "repository branch")
	f.StringVar(&exportOpts.token, "token", "", "GitHub token (default $GITHUB_TOKEN)")
	f.StringVar(&exportOpts.subject, "subject", "", "subject override (default: saved title)")
	f.DurationVar(&exportOpts.timeout, "timeout", 30*time.Second, "GitHub request timeout")
	_ = exportCmd.MarkFlagRequired("owner")
	_ = exportCmd.MarkFlagRequired("repo")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	token := exportOpts.token
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return domain.ConfigurationError{Field: "--token", Reason: "or GITHUB_TOKEN is required"}
	}

	now := time.Now().In(cfg.Location)
	week := strings.TrimSpace(exportOpts.week)
	if week == "" {
		week = domain.WeekKey(now)
	}
	if !domain.ValidWeekKey(week) {
		return fmt.Errorf("week %q: %w", week, domain.ErrInvalidInput)
	}

	stores := deps.GitHubStores(cfg.GitHubAPIURL, cfg.Location, nil)
	s, err := stores(credentials.Repository{
		Token:  token,
		Owner:  exportOpts.owner,
		Repo:   exportOpts.repo,
		Branch: exportOpts.branch,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), exportOpts.timeout)
	defer cancel()

	data, err := s.GetNewsletter(ctx, week)
	if err != nil {
		return err
	}
	if data == nil {
		return domain.NotFoundError{Resource: "newsletter " + week}
	}
	if strings.TrimSpace(data.GeneratedContent) == "" {
		return fmt.Errorf("newsletter %s has no generated content: %w", week, domain.ErrInvalidInput)
	}

	subject := exportOpts.subject
	if subject == "" {
		subject = data.Title
	}
	if subject == "" {
		subject = "Newsletter " + week
	}

	b := publish.NewBroadcast(subject, data.GeneratedContent,
		publish.PreviewText(data.GeneratedContent, publish.DefaultPreviewLength),
		cfg.KitTemplateID, now)
	out, err := publish.Export(b)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}
