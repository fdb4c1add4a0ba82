package generate

import (
	"strings"
	"testing"

	"github.com/theboringdotapp/newsletter-builder/internal/domain"
)

func TestBuildPrompt(t *testing.T) {
	links := []domain.SavedLink{
		{URL: "https://github.com/a", Title: "Tool A", Description: "does things"},
		{URL: "https://huggingface.co/m"},
	}
	thoughts := []domain.Thought{
		{Content: "  First thought.\nSecond line.  "},
		{Content: "Another one."},
	}

	got := BuildPrompt(testPrompts(), "2025-W03", links, thoughts, "Keep it short.")

	want := "Write edition 2025-W03.\n\n" +
		"Links:\n\n" +
		"Title: Tool A\nURL: https://github.com/a\nDescription: does things\n\n" +
		"Title: https://huggingface.co/m\nURL: https://huggingface.co/m\n\n" +
		"Thoughts:\n\n" +
		"First thought.\nSecond line.\n\n" +
		"Another one.\n\n" +
		"Formatting requirements:\n- Use HTML.\n" +
		"\nKeep it short."

	if got != want {
		t.Errorf("BuildPrompt() =\n%q\nwant\n%q", got, want)
	}
}

func TestBuildPromptWithoutThoughts(t *testing.T) {
	got := BuildPrompt(testPrompts(), "2025-W03", []domain.SavedLink{{URL: "https://a.example"}}, nil, "")
	if strings.Contains(got, "Thoughts:") {
		t.Errorf("thoughts section should be omitted:\n%s", got)
	}
	if !strings.HasSuffix(got, "- Use HTML.\n") {
		t.Errorf("prompt should end with the formatting directives:\n%q", got)
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"double quotes", `"Hello World"`, "Hello World"},
		{"typographic quotes", "“Hello” ‘World’", "Hello World"},
		{"backticks and spaces", "  `Shipping Agents`  ", "Shipping Agents"},
		{"only first line", "Title\nExplanation of the title", "Title"},
		{"empty", `""`, ""},
		{
			"truncated to 60 runes",
			strings.Repeat("é", 70),
			strings.Repeat("é", 60),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanTitle(tt.input); got != tt.expected {
				t.Errorf("CleanTitle(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
