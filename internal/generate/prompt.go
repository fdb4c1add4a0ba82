package generate

import (
	"strings"

	"github.com/theboringdotapp/newsletter-builder/internal/domain"
	"github.com/theboringdotapp/newsletter-builder/internal/prompts"
)

// BuildPrompt assembles the user message for the body call:
// preamble, links, thoughts (when any), formatting directives, then
// extraInstructions verbatim. Callers pass already-selected items.
func BuildPrompt(p prompts.Set, week string, links []domain.SavedLink, thoughts []domain.Thought, extraInstructions string) string {
	var b strings.Builder

	b.WriteString(strings.TrimSpace(strings.ReplaceAll(p.Preamble, "{week}", week)))
	b.WriteString("\n\n")

	if len(links) > 0 {
		b.WriteString(p.LinksHeading)
		b.WriteString("\n\n")
	}
	for _, l := range links {
		title := l.Title
		if title == "" {
			title = l.URL
		}
		b.WriteString("Title: " + title + "\n")
		b.WriteString("URL: " + l.URL + "\n")
		if l.Description != "" {
			b.WriteString("Description: " + l.Description + "\n")
		}
		b.WriteString("\n")
	}

	if len(thoughts) > 0 {
		b.WriteString(p.ThoughtsHeading)
		b.WriteString("\n\n")
		for _, t := range thoughts {
			b.WriteString(strings.TrimSpace(t.Content))
			b.WriteString("\n\n")
		}
	}

	if len(p.Formatting) > 0 {
		b.WriteString("Formatting requirements:\n")
		for _, f := range p.Formatting {
			b.WriteString("- " + f + "\n")
		}
	}

	if extraInstructions != "" {
		b.WriteString("\n")
		b.WriteString(extraInstructions)
	}

	return b.String()
}

// TitlePrompt returns the user message for the title call.
func TitlePrompt(p prompts.Set, content string) string {
	if !strings.Contains(p.TitleUser, "{content}") {
		return p.TitleUser + "\n\n" + content
	}
	return strings.ReplaceAll(p.TitleUser, "{content}", content)
}

// CleanTitle strips quote characters and surrounding space from a model
// answer and keeps it within MaxTitleLength runes.
func CleanTitle(raw string) string {
	title := strings.Map(func(r rune) rune {
		switch r {
		case '"', '\'', '`', '“', '”', '‘', '’', '«', '»':
			return -1
		}
		return r
	}, raw)
	title = strings.TrimSpace(strings.SplitN(strings.TrimSpace(title), "\n", 2)[0])

	runes := []rune(title)
	if len(runes) > MaxTitleLength {
		title = strings.TrimSpace(string(runes[:MaxTitleLength]))
	}
	return title
}
