package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theboringdotapp/newsletter-builder/internal/domain"
)

var weekTimezone string

var weekCmd = &cobra.Command{
	Use:   "week [YYYY-MM-DD]",
	Short: "Print the edition key of a date",
	Long: `Print the edition key ({year}-W{week}) of a date, today by default.

Weeks start on Sunday and January 1st is always in week 1.

Example:
  newsletter week 2025-01-05`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWeek,
}

func init() {
	weekCmd.Flags().StringVar(&weekTimezone, "tz", "", "time zone the date is read in (default $NEWSLETTER_TIMEZONE or UTC)")
	rootCmd.AddCommand(weekCmd)
}

func runWeek(cmd *cobra.Command, args []string) error {
	loc, err := weekLocation(weekTimezone)
	if err != nil {
		return err
	}

	t := time.Now().In(loc)
	if len(args) == 1 {
		if t, err = time.ParseInLocation(time.DateOnly, args[0], loc); err != nil {
			return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", args[0])
		}
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), domain.WeekKey(t))
	return err
}

// weekLocation resolves the --tz flag, falling back to the server time zone.
func weekLocation(name string) (*time.Location, error) {
	if name == "" {
		name = os.Getenv("NEWSLETTER_TIMEZONE")
	}
	if name == "" {
		name = "UTC"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", name, err)
	}
	return loc, nil
}
