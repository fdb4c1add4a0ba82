package credentials

import (
	"context"
	"net/http"
	"strings"

	"github.com/theboringdotapp/newsletter-builder/internal/domain"
)

// Request headers carrying caller-supplied credentials.
const (
	HeaderAuthorization = "Authorization"
	HeaderOwner         = "X-GitHub-Owner"
	HeaderRepo          = "X-GitHub-Repo"
	HeaderBranch        = "X-GitHub-Branch"
	HeaderKitToken      = "X-Kit-Token"
	HeaderModelKey      = "X-OpenAI-Key"

	DefaultBranch = "main"
)

// Repository locates the repository backing the document store.
type Repository struct {
	Token  string
	Owner  string
	Repo   string
	Branch string
}

// Credentials is everything a single request carries to reach the store
// and the external services. Values are taken as-is from the headers;
// validation happens when a component asks for them.
type Credentials struct {
	authorization string
	owner         string
	repo          string
	branch        string
	kitToken      string
	modelKey      string
}

// FromRequest extracts credentials from r. It never fails and never
// touches the network.
func FromRequest(r *http.Request) Credentials {
	h := r.Header
	return Credentials{
		authorization: strings.TrimSpace(h.Get(HeaderAuthorization)),
		owner:         strings.TrimSpace(h.Get(HeaderOwner)),
		repo:          strings.TrimSpace(h.Get(HeaderRepo)),
		branch:        strings.TrimSpace(h.Get(HeaderBranch)),
		kitToken:      strings.TrimSpace(h.Get(HeaderKitToken)),
		modelKey:      strings.TrimSpace(h.Get(HeaderModelKey)),
	}
}

// Repository validates and returns the store coordinates.
func (c Credentials) Repository() (Repository, error) {
	if c.authorization == "" {
		return Repository{}, domain.ConfigurationError{Field: HeaderAuthorization, Reason: "header is missing"}
	}
	scheme, token, ok := strings.Cut(c.authorization, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" || strings.ContainsAny(token, " \t") {
		return Repository{}, domain.ConfigurationError{Field: HeaderAuthorization, Reason: "must be \"Bearer <token>\""}
	}
	if c.owner == "" {
		return Repository{}, domain.ConfigurationError{Field: HeaderOwner, Reason: "header is missing"}
	}
	if c.repo == "" {
		return Repository{}, domain.ConfigurationError{Field: HeaderRepo, Reason: "header is missing"}
	}

	branch := c.branch
	if branch == "" {
		branch = DefaultBranch
	}
	return Repository{Token: token, Owner: c.owner, Repo: c.repo, Branch: branch}, nil
}

// KitToken returns the publishing service token.
func (c Credentials) KitToken() (string, error) {
	if c.kitToken == "" {
		return "", domain.ConfigurationError{Field: HeaderKitToken, Reason: "header is missing"}
	}
	return c.kitToken, nil
}

// ModelKey returns the text-generation service key.
func (c Credentials) ModelKey() (string, error) {
	if c.modelKey == "" {
		return "", domain.ConfigurationError{Field: HeaderModelKey, Reason: "header is missing"}
	}
	return c.modelKey, nil
}

type repositoryKey struct{}

// WithRepository stores resolved repository credentials in ctx.
func WithRepository(ctx context.Context, repo Repository) context.Context {
	return context.WithValue(ctx, repositoryKey{}, repo)
}

// RepositoryFrom returns the repository credentials stored by WithRepository.
func RepositoryFrom(ctx context.Context) (Repository, bool) {
	repo, ok := ctx.Value(repositoryKey{}).(Repository)
	return repo, ok
}
