package deps

import (
	"net/http"
	"time"

	"github.com/theboringdotapp/newsletter-builder/internal/credentials"
	"github.com/theboringdotapp/newsletter-builder/internal/llm"
	"github.com/theboringdotapp/newsletter-builder/internal/publish"
	"github.com/theboringdotapp/newsletter-builder/internal/store"
	githubstore "github.com/theboringdotapp/newsletter-builder/internal/store/github"
)

// GitHubStores opens stores on the GitHub contents API. apiURL may be
// empty for github.com.
func GitHubStores(apiURL string, loc *time.Location, client *http.Client) StoreFactory {
	return func(repo credentials.Repository) (*store.Store, error) {
		backend, err := githubstore.New(githubstore.Config{
			Token:      repo.Token,
			Owner:      repo.Owner,
			Repo:       repo.Repo,
			Branch:     repo.Branch,
			BaseURL:    apiURL,
			HTTPClient: client,
		})
		if err != nil {
			return nil, err
		}
		return store.New(backend, store.WithLocation(loc)), nil
	}
}

// OpenAIModels builds chat completion clients for model on baseURL.
func OpenAIModels(model, baseURL string, client *http.Client) ModelFactory {
	return func(apiKey string) (llm.Completer, error) {
		return llm.New(llm.Config{
			APIKey:     apiKey,
			Model:      model,
			BaseURL:    baseURL,
			HTTPClient: client,
		})
	}
}

// KitPublishers builds Kit clients sharing the same endpoint and template.
func KitPublishers(baseURL string, templateID int, client *http.Client) PublisherFactory {
	return func(kitToken string) (*publish.Client, error) {
		return publish.New(publish.Config{
			APIKey:     kitToken,
			BaseURL:    baseURL,
			TemplateID: templateID,
			HTTPClient: client,
		})
	}
}
