package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/theboringdotapp/newsletter-builder/internal/credentials"
	"github.com/theboringdotapp/newsletter-builder/internal/llm"
	"github.com/theboringdotapp/newsletter-builder/internal/logger"
	"github.com/theboringdotapp/newsletter-builder/internal/prompts"
	"github.com/theboringdotapp/newsletter-builder/internal/publish"
	"github.com/theboringdotapp/newsletter-builder/internal/store"
	"github.com/theboringdotapp/newsletter-builder/internal/version"
	"github.com/theboringdotapp/newsletter-builder/internal/summarize"
)

// StoreFactory opens the document store of one caller's repository.
type StoreFactory func(repo credentials.Repository) (*store.Store, error)

// ModelFactory builds a text-generation client for one caller's key.
type ModelFactory func(apiKey string) (llm.Completer, error)

// PublisherFactory builds a Kit client for one caller's token.
type PublisherFactory func(kitToken string) (*publish.Client, error)

type Deps struct {
	Logger          logger.Logger
	StartTime       time.Time
	Build           version.Info
	TimeNow         func() time.Time // for testing, defaults to time.Now
	AllowedOrigins  []string         // CORS origins for the browser client
	AllowedHosts    []string         // Host headers allowed to access /reload
	AllowedCIDRS    []string         // IPs allowed to access healthz/readyz/infra/reload
	TrustProxy      bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RateLimitBurst  int              // model-backed endpoints
	RateLimitRefill int              // tokens per caller per minute
	KitTemplateID   int              // template used by exported broadcasts

	// Per-request clients, built from the caller's credentials.
	Stores     StoreFactory
	Models     ModelFactory
	Publishers PublisherFactory

	Fetcher       *summarize.Fetcher
	SummaryCache  summarize.Cache   // nil when Redis is disabled
	RedisClient   *redis.Client     // nil when Redis is disabled
	Prompts       *prompts.Registry // current prompt set, replaced by the reloader
	ReloadTrigger chan struct{}     // Channel to trigger manual prompt reload
}

// Now returns d.TimeNow() or time.Now().
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
