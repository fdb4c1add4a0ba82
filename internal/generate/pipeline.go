package generate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/theboringdotapp/newsletter-builder/internal/domain"
	"github.com/theboringdotapp/newsletter-builder/internal/llm"
	"github.com/theboringdotapp/newsletter-builder/internal/logger"
	"github.com/theboringdotapp/newsletter-builder/internal/prompts"
)

// Sampling parameters for both calls.
const (
	BodyTemperature  = 0.3
	BodyMaxTokens    = 4000
	TitleTemperature = 0.3
	TitleMaxTokens   = 40
	MaxTitleLength   = 60

	// ErrorTitle is returned alongside the failure marker.
	ErrorTitle = "Error"
)

// ErrNothingSelected is returned when no link and no thought is selected.
var ErrNothingSelected = fmt.Errorf("no selected links or thoughts: %w", domain.ErrInvalidInput)

// Request is the input of one generation.
type Request struct {
	Links             []domain.SavedLink
	Thoughts          []domain.Thought
	CustomPrompt      string // replaces the default system prompt when set
	ExtraInstructions string // appended verbatim to the user prompt
}

// Result is a generated edition.
type Result struct {
	Content string `json:"content"`
	Title   string `json:"title"`
}

// Pipeline turns links and thoughts into newsletter HTML plus a title.
type Pipeline struct {
	model   llm.Completer
	prompts prompts.Set
	now     func() time.Time
	logger  logger.Logger
}

// New creates a pipeline. now decides the week named in the prompt.
func New(model llm.Completer, p prompts.Set, now func() time.Time, log logger.Logger) *Pipeline {
	if now == nil {
		now = time.Now
	}
	return &Pipeline{model: model, prompts: p, now: now, logger: log}
}

// Generate runs the body call then the title call.
//
// An empty body returns the failure marker with ErrorTitle and skips the
// title call. A failing title call never fails the generation: the
// configured fallback title is used instead.
func (p *Pipeline) Generate(ctx context.Context, req Request) (Result, error) {
	links := domain.SelectedLinks(req.Links)
	thoughts := domain.SelectedThoughts(req.Thoughts)
	if len(links) == 0 && len(thoughts) == 0 {
		return Result{}, ErrNothingSelected
	}

	week := domain.WeekKey(p.now())
	system := req.CustomPrompt
	if system == "" {
		system = p.prompts.System
	}

	p.logger.Info("generating newsletter",
		logger.String("week", week),
		logger.Int("links", len(links)),
		logger.Int("thoughts", len(thoughts)),
		logger.Bool("custom_prompt", req.CustomPrompt != ""))

	content, err := p.model.Complete(ctx, llm.Request{
		System:      system,
		User:        BuildPrompt(p.prompts, week, links, thoughts, req.ExtraInstructions),
		Temperature: BodyTemperature,
		MaxTokens:   BodyMaxTokens,
	})
	if err != nil {
		return Result{}, wrapUpstream("generate newsletter", err)
	}
	if content == "" {
		p.logger.Warn("model returned no content", logger.String("week", week))
		return Result{Content: p.prompts.FailureMarker, Title: ErrorTitle}, nil
	}

	return Result{Content: content, Title: p.title(ctx, content)}, nil
}

func (p *Pipeline) title(ctx context.Context, content string) string {
	raw, err := p.model.Complete(ctx, llm.Request{
		System:      p.prompts.TitleSystem,
		User:        TitlePrompt(p.prompts, content),
		Temperature: TitleTemperature,
		MaxTokens:   TitleMaxTokens,
	})
	if err != nil {
		p.logger.Warn("title generation failed, using fallback", logger.Error(err))
		return p.prompts.FallbackTitle
	}
	title := CleanTitle(raw)
	if title == "" {
		return p.prompts.FallbackTitle
	}
	return title
}

func wrapUpstream(op string, err error) error {
	if errors.Is(err, domain.ErrUpstream) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w", op, domain.UpstreamServiceError{Service: "model", Err: err})
}
