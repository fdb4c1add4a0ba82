package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/theboringdotapp/newsletter-builder/internal/domain"
)

const serviceName = "model"

// Config holds text-generation client configuration.
type Config struct {
	APIKey  string // caller-supplied, per request
	Model   string // ex: "gpt-4o-mini"
	BaseURL string // optional, any OpenAI-compatible endpoint (ex: http://localhost:11434/v1)

	HTTPClient *http.Client // optional
}

// Request is a single system+user exchange.
type Request struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
}

// Completer is what the generation pipeline and the summarizer need from
// a text-generation service.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Client wraps an OpenAI-compatible chat completions API.
type Client struct {
	api   *openai.Client
	model string
}

var _ Completer = (*Client)(nil)

// New creates a new text-generation client.
func New(config Config) (*Client, error) {
	if config.APIKey == "" {
		return nil, domain.ConfigurationError{Field: "model api key", Reason: "is required"}
	}
	if config.Model == "" {
		return nil, domain.ConfigurationError{Field: "model", Reason: "is required"}
	}

	cfg := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(config.BaseURL, "/")
	}
	if config.HTTPClient != nil {
		cfg.HTTPClient = config.HTTPClient
	}

	return &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: config.Model,
	}, nil
}

// Complete sends the exchange and returns the trimmed text of the first
// choice. No choice at all yields an empty string, not an error.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.User})

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", upstreamError(err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func upstreamError(err error) error {
	e := domain.UpstreamServiceError{Service: serviceName, Err: err}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		e.StatusCode = apiErr.HTTPStatusCode
		e.Detail = apiErr.Message
	case errors.As(err, &reqErr):
		e.StatusCode = reqErr.HTTPStatusCode
		if reqErr.Err != nil {
			e.Detail = reqErr.Err.Error()
		}
	default:
		e.Detail = fmt.Sprintf("%v", err)
	}
	return e
}
