package domain

import (
	"net/url"
	"strings"
)

// Category is the closed set of tags a link can carry.
type Category string

const (
	CategoryTool    Category = "tool"
	CategoryModel   Category = "model"
	CategoryArticle Category = "article"
	CategoryOther   Category = "other"
)

// Valid reports whether c is one of the four known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryTool, CategoryModel, CategoryArticle, CategoryOther:
		return true
	}
	return false
}

// ParseCategory normalizes s and returns the matching category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}

// categoryRule matches a URL when any of its needles is a substring of
// the host (hosts) or of the path (paths).
type categoryRule struct {
	category Category
	hosts    []string
	paths    []string
}

// categoryRules are evaluated in order, first match wins.
// Model hubs come before code hosts so that huggingface.co/<org>/<repo>
// is not mistaken for a tool.
var categoryRules = []categoryRule{
	{
		category: CategoryModel,
		hosts:    []string{"huggingface.co", "ollama.com", "replicate.com", "civitai.com"},
		paths:    []string{"/models/", "/model/"},
	},
	{
		category: CategoryTool,
		hosts:    []string{"github.com", "gitlab.com", "npmjs.com", "pypi.org", "producthunt.com", "chromewebstore.google.com"},
		paths:    []string{"/tools/", "/tool/"},
	},
	{
		category: CategoryArticle,
		hosts:    []string{"medium.com", "substack.com", "dev.to", "arxiv.org", "news.ycombinator.com"},
		paths:    []string{"/blog/", "/blog", "/article", "/posts/", "/news/"},
	},
}

// Categorize maps a URL to a category using categoryRules.
// It is total: unparsable input and unmatched URLs both yield CategoryOther.
func Categorize(rawURL string) Category {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return CategoryOther
	}
	host := strings.ToLower(u.Hostname())
	path := strings.ToLower(u.EscapedPath())

	for _, rule := range categoryRules {
		for _, h := range rule.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return rule.category
			}
		}
		for _, p := range rule.paths {
			if strings.Contains(path, p) {
				return rule.category
			}
		}
	}
	return CategoryOther
}
