package domain

import (
	"fmt"
	"regexp"
	"time"
)

// NewsletterData is the record of one edition, keyed by week.
// Saving the same week again replaces the previous record entirely.
type NewsletterData struct {
	Week     string      `json:"week"`
	Links    []SavedLink `json:"links"`
	Thoughts []Thought   `json:"thoughts"`

	// GeneratedContent is the HTML body returned by generation, if any.
	GeneratedContent string `json:"generatedContent,omitempty"`
	// Title is the generated title, used as the default broadcast subject.
	Title string `json:"title,omitempty"`
}

var weekKeyPattern = regexp.MustCompile(`^\d{4}-W\d{2}$`)

// ValidWeekKey reports whether s looks like a week key (YYYY-Www).
func ValidWeekKey(s string) bool {
	return weekKeyPattern.MatchString(s)
}

// WeekKey returns the edition key for t, formatted as {year}-W{week}.
//
// The week number is ceil((daysSinceJan1 + weekday(Jan1) + 1) / 7), with
// days counted as whole calendar days in t's location. This is NOT
// ISO-8601 week numbering: weeks start on Sunday and January 1st is always
// in week 1. Stored newsletters are keyed with this formula, so it must
// not be replaced by time.Time.ISOWeek.
func WeekKey(t time.Time) string {
	return fmt.Sprintf("%d-W%02d", t.Year(), WeekNumber(t))
}

// WeekNumber returns the week component of WeekKey.
func WeekNumber(t time.Time) int {
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	days := t.YearDay() - 1
	n := days + int(jan1.Weekday()) + 1
	return (n + 6) / 7
}
