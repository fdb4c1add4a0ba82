package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/theboringdotapp/newsletter-builder/internal/domain"
)

const (
	// DefaultBaseURL is the Kit v4 API root.
	DefaultBaseURL = "https://api.kit.com/v4"
	// DefaultTemplateID is the Kit email template used for new drafts.
	DefaultTemplateID = 2
	// APIKeyHeader carries the Kit API key.
	APIKeyHeader = "X-Kit-Api-Key"

	serviceName = "kit"
)

// Config configures a Kit client.
type Config struct {
	APIKey     string
	BaseURL    string // optional, defaults to DefaultBaseURL
	TemplateID int    // optional, defaults to DefaultTemplateID

	HTTPClient *http.Client     // optional
	Now        func() time.Time // optional
}

// Broadcast is the payload Kit expects for a new broadcast.
type Broadcast struct {
	EmailTemplateID int    `json:"email_template_id"`
	Content         string `json:"content"`
	Description     string `json:"description"`
	Public          bool   `json:"public"`
	PublishedAt     string `json:"published_at"`
	PreviewText     string `json:"preview_text"`
	Subject         string `json:"subject"`
}

// NewBroadcast builds an unpublished broadcast. The description repeats the
// subject and published_at is now.
func NewBroadcast(subject, content, previewText string, templateID int, now time.Time) Broadcast {
	if templateID <= 0 {
		templateID = DefaultTemplateID
	}
	return Broadcast{
		EmailTemplateID: templateID,
		Content:         content,
		Description:     subject,
		Public:          false,
		PublishedAt:     now.UTC().Format(time.RFC3339),
		PreviewText:     previewText,
		Subject:         subject,
	}
}

// Export renders b the way CreateDraft would send it, indented for humans.
func Export(b Broadcast) ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

// Client talks to the Kit broadcasts API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	templateID int
	now        func() time.Time
}

// New creates a Kit client.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, domain.ConfigurationError{Field: "kit token", Reason: "is required to publish"}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.TemplateID <= 0 {
		cfg.TemplateID = DefaultTemplateID
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Client{
		httpClient: cfg.HTTPClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		templateID: cfg.TemplateID,
		now:        cfg.Now,
	}, nil
}

// Broadcast builds the payload CreateDraft would send.
func (c *Client) Broadcast(subject, content, previewText string) Broadcast {
	return NewBroadcast(subject, content, previewText, c.templateID, c.now())
}

// CreateDraft submits a new unpublished broadcast and returns Kit's
// representation of it.
func (c *Client) CreateDraft(ctx context.Context, subject, content, previewText string) (json.RawMessage, error) {
	body, err := json.Marshal(c.Broadcast(subject, content, previewText))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal broadcast: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/broadcasts", body)
}

// ListDrafts returns Kit's broadcast listing untouched.
func (c *Client) ListDrafts(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/broadcasts", nil)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(APIKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.UpstreamServiceError{Service: serviceName, Detail: "request failed", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.UpstreamServiceError{Service: serviceName, StatusCode: resp.StatusCode, Detail: "failed to read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.UpstreamServiceError{
			Service:    serviceName,
			StatusCode: resp.StatusCode,
			Detail:     errorDetail(respBody),
		}
	}
	if !json.Valid(respBody) {
		return nil, domain.UpstreamServiceError{
			Service:    serviceName,
			StatusCode: resp.StatusCode,
			Detail:     "response is not JSON",
			Err:        domain.ParseError{Input: truncate(string(respBody), 200)},
		}
	}
	return json.RawMessage(respBody), nil
}

// errorDetail joins Kit's {"errors": [...]} list, or returns the raw body.
func errorDetail(body []byte) string {
	var parsed struct {
		Errors []string `json:"errors"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Errors) > 0 {
		return strings.Join(parsed.Errors, "; ")
	}
	return truncate(strings.TrimSpace(string(body)), 500)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
