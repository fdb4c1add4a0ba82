package store

import "fmt"

const (
	// LinksRoot is the directory holding the month-sharded link files.
	LinksRoot = "links"
	// NewslettersRoot is the directory holding one folder per edition.
	NewslettersRoot = "newsletters"
)

// LinksPath returns the path of the link collection for a month.
// Ex: LinksPath(2025, 3) -> "links/2025/03/links.json"
func LinksPath(year, month int) string {
	return fmt.Sprintf("%s/%d/%02d/links.json", LinksRoot, year, month)
}

// NewsletterPath returns the path of the edition saved under week.
// Ex: NewsletterPath("2025-W11") -> "newsletters/2025-W11/newsletter.json"
func NewsletterPath(week string) string {
	return fmt.Sprintf("%s/%s/newsletter.json", NewslettersRoot, week)
}
