package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DefaultThoughtType is the tag given to thoughts parsed from raw text.
const DefaultThoughtType = "thought"

// Thought is a unit of free-form commentary.
// Thoughts only exist as generation input and inside a saved NewsletterData.
type Thought struct {
	// ID is derived from the paragraph position (thought-1, thought-2...).
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
	// Date is kept as the client sent it (RFC 3339, date-only or empty).
	// Parsed thoughts carry an RFC 3339 timestamp.
	Date     string `json:"date"`
	Content  string `json:"content"`
	Selected bool   `json:"selected"`
}

var paragraphSep = regexp.MustCompile(`\n[ \t]*\n`)

// ParseThoughts splits raw text into one Thought per paragraph.
// Paragraphs are separated by blank lines; empty paragraphs are skipped
// and do not consume a position.
func ParseThoughts(raw string, now time.Time) []Thought {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	parts := paragraphSep.Split(raw, -1)

	thoughts := make([]Thought, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n := len(thoughts) + 1

		// Leading markdown markers ("# ", "- ", "**") are not part of the title.
		title := strings.TrimSpace(strings.SplitN(p, "\n", 2)[0])
		title = strings.TrimSpace(strings.TrimLeft(title, "#*->` "))
		if title == "" {
			title = fmt.Sprintf("Thought %d", n)
		}

		thoughts = append(thoughts, Thought{
			ID:       fmt.Sprintf("thought-%d", n),
			Title:    title,
			Type:     DefaultThoughtType,
			Date:     now.UTC().Format(time.RFC3339),
			Content:  p,
			Selected: true,
		})
	}
	return thoughts
}

// SelectedThoughts returns the thoughts flagged for the next edition, in order.
func SelectedThoughts(thoughts []Thought) []Thought {
	out := make([]Thought, 0, len(thoughts))
	for _, t := range thoughts {
		if t.Selected {
			out = append(out, t)
		}
	}
	return out
}
