package summarize

import (
	"testing"

	"github.com/theboringdotapp/newsletter-builder/internal/domain"
)

func TestParseSummary(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		url      string
		expected Summary
	}{
		{
			name: "strict json",
			raw:  `{"title":"chi","description":"Lightweight router.","category":"tool"}`,
			url:  "https://example.com",
			expected: Summary{
				Title:       "chi",
				Description: "Lightweight router.",
				Category:    domain.CategoryTool,
			},
		},
		{
			name: "json inside a code fence",
			raw:  "```json\n{\"title\":\"Llama\",\"description\":\"Open weights.\",\"category\":\"Model\"}\n```",
			url:  "https://example.com",
			expected: Summary{
				Title:       "Llama",
				Description: "Open weights.",
				Category:    domain.CategoryModel,
			},
		},
		{
			name: "strict json with unknown category falls back to url rules",
			raw:  `{"title":"Repo","description":"Code.","category":"library"}`,
			url:  "https://github.com/a/b",
			expected: Summary{
				Title:       "Repo",
				Description: "Code.",
				Category:    domain.CategoryTool,
			},
		},
		{
			name: "strict json with empty fields uses literal defaults",
			raw:  `{}`,
			url:  "https://example.com",
			expected: Summary{
				Title:       UntitledTitle,
				Description: NoDescriptionText,
				Category:    domain.CategoryOther,
			},
		},
		{
			name: "prose around json triggers best effort",
			raw:  "Sure! Here it is: {\"title\": \"Say \\\"hi\\\"\", \"description\": \"A greeting.\", \"category\": \"article\"} Hope it helps",
			url:  "https://example.com",
			expected: Summary{
				Title:       `Say "hi"`,
				Description: "A greeting.",
				Category:    domain.CategoryArticle,
				BestEffort:  true,
			},
		},
		{
			name: "truncated json keeps what it can",
			raw:  `{"title": "Half an answer", "description": "cut off here`,
			url:  "https://arxiv.org/abs/1",
			expected: Summary{
				Title:       "Half an answer",
				Description: NoDescriptionText,
				Category:    domain.CategoryArticle,
				BestEffort:  true,
			},
		},
		{
			name: "plain text yields all defaults",
			raw:  "I cannot access that page.",
			url:  "https://example.com",
			expected: Summary{
				Title:       UntitledTitle,
				Description: NoDescriptionText,
				Category:    domain.CategoryOther,
				BestEffort:  true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseSummary(tt.raw, tt.url); got != tt.expected {
				t.Errorf("ParseSummary() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}
