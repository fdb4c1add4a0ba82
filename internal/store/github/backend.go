package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v66/github"

	"github.com/theboringdotapp/newsletter-builder/internal/domain"
	"github.com/theboringdotapp/newsletter-builder/internal/store"
)

const serviceName = "github"

// Config locates the repository used as document storage.
type Config struct {
	Token   string
	Owner   string
	Repo    string
	Branch  string
	BaseURL string // optional, ex: https://github.example.com/api/v3/

	HTTPClient *http.Client // optional
}

// Backend implements store.Backend on the GitHub contents API.
type Backend struct {
	client *github.Client
	owner  string
	repo   string
	branch string
}

var _ store.Backend = (*Backend)(nil)

// New creates a contents API backend for one repository and branch.
func New(cfg Config) (*Backend, error) {
	if cfg.Token == "" {
		return nil, domain.ConfigurationError{Field: "token", Reason: "is required"}
	}
	if cfg.Owner == "" || cfg.Repo == "" {
		return nil, domain.ConfigurationError{Field: "repository", Reason: "owner and repo are required"}
	}
	if cfg.Branch == "" {
		return nil, domain.ConfigurationError{Field: "branch", Reason: "is required"}
	}

	client := github.NewClient(cfg.HTTPClient).WithAuthToken(cfg.Token)
	if cfg.BaseURL != "" {
		base := cfg.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid github base url %q: %w", cfg.BaseURL, err)
		}
		client.BaseURL = u
	}

	return &Backend{
		client: client,
		owner:  cfg.Owner,
		repo:   cfg.Repo,
		branch: cfg.Branch,
	}, nil
}

// GetFile fetches path on the configured branch and decodes its content.
func (b *Backend) GetFile(ctx context.Context, path string) (*store.File, error) {
	fc, _, resp, err := b.client.Repositories.GetContents(ctx, b.owner, b.repo, path,
		&github.RepositoryContentGetOptions{Ref: b.branch})
	if err != nil {
		if resp != nil && resp.Response != nil && resp.StatusCode == http.StatusNotFound {
			return nil, domain.NotFoundError{Resource: path}
		}
		return nil, upstreamError(err, resp)
	}
	if fc == nil {
		return nil, domain.UpstreamServiceError{Service: serviceName, Detail: path + " is a directory"}
	}

	content, err := fc.GetContent()
	if err != nil {
		return nil, domain.ParseError{Input: path, Err: err}
	}
	return &store.File{Content: []byte(content), SHA: fc.GetSHA()}, nil
}

// PutFile creates or updates path in a single commit. The sha is sent only
// when non-empty, which is what makes GitHub treat the call as an update.
func (b *Backend) PutFile(ctx context.Context, path string, content []byte, sha, message string) error {
	opts := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: content,
		Branch:  github.String(b.branch),
	}
	if sha != "" {
		opts.SHA = github.String(sha)
	}

	_, resp, err := b.client.Repositories.CreateFile(ctx, b.owner, b.repo, path, opts)
	if err != nil {
		return upstreamError(err, resp)
	}
	return nil
}

func upstreamError(err error, resp *github.Response) error {
	e := domain.UpstreamServiceError{Service: serviceName, Err: err}
	if resp != nil && resp.Response != nil {
		e.StatusCode = resp.StatusCode
	}
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) {
		e.Detail = ghErr.Message
	}
	return e
}
