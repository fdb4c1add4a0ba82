package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/theboringdotapp/newsletter-builder/internal/domain"
	"github.com/theboringdotapp/newsletter-builder/internal/llm"
	"github.com/theboringdotapp/newsletter-builder/internal/logger"
	"github.com/theboringdotapp/newsletter-builder/internal/prompts"
)

const (
	summaryTemperature = 0.2
	summaryMaxTokens   = 300
)

// Cache stores summaries by URL. Implementations must treat a miss as
// (Summary{}, false, nil).
type Cache interface {
	GetSummary(ctx context.Context, url string) (Summary, bool, error)
	SaveSummary(ctx context.Context, url string, s Summary) error
}

// Summarizer proposes a title, description and category for a URL.
type Summarizer struct {
	fetcher *Fetcher
	model   llm.Completer
	prompts prompts.Set
	cache   Cache // optional
	logger  logger.Logger
}

// New creates a summarizer. cache may be nil.
func New(fetcher *Fetcher, model llm.Completer, p prompts.Set, cache Cache, log logger.Logger) *Summarizer {
	return &Summarizer{
		fetcher: fetcher,
		model:   model,
		prompts: p,
		cache:   cache,
		logger:  log,
	}
}

// Summarize fetches pageURL, asks the model to describe it and parses the
// answer. Cache failures are logged and otherwise ignored.
func (s *Summarizer) Summarize(ctx context.Context, pageURL string) (Summary, error) {
	pageURL = strings.TrimSpace(pageURL)

	if s.cache != nil {
		cached, ok, err := s.cache.GetSummary(ctx, pageURL)
		switch {
		case err != nil:
			s.logger.Warn("summary cache lookup failed", logger.String("url", pageURL), logger.Error(err))
		case ok:
			s.logger.Debug("summary cache hit", logger.String("url", pageURL))
			return cached, nil
		}
	}

	page, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return Summary{}, fmt.Errorf("fetch %s: %w", pageURL, err)
	}

	raw, err := s.model.Complete(ctx, llm.Request{
		System:      s.prompts.SummarizeSystem,
		User:        pagePrompt(page),
		Temperature: summaryTemperature,
		MaxTokens:   summaryMaxTokens,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrUpstream) {
			err = domain.UpstreamServiceError{Service: "model", Err: err}
		}
		return Summary{}, fmt.Errorf("summarize %s: %w", pageURL, err)
	}

	summary := ParseSummary(raw, page.URL)
	if summary.BestEffort {
		s.logger.Warn("model answer was not valid JSON, used best-effort extraction",
			logger.String("url", pageURL))
		// The page itself is a better source than placeholders.
		if summary.Title == UntitledTitle && page.Title != "" {
			summary.Title = page.Title
		}
		if summary.Description == NoDescriptionText && page.Description != "" {
			summary.Description = page.Description
		}
		return summary, nil
	}

	if s.cache != nil {
		if err := s.cache.SaveSummary(ctx, pageURL, summary); err != nil {
			s.logger.Warn("summary cache store failed", logger.String("url", pageURL), logger.Error(err))
		}
	}
	return summary, nil
}

func pagePrompt(p Page) string {
	var b strings.Builder
	b.WriteString("URL: " + p.URL + "\n")
	if p.Title != "" {
		b.WriteString("Page title: " + p.Title + "\n")
	}
	if p.Description != "" {
		b.WriteString("Meta description: " + p.Description + "\n")
	}
	if p.Markdown != "" {
		b.WriteString("\nContent:\n")
		b.WriteString(p.Markdown)
		b.WriteString("\n")
	}
	return b.String()
}
