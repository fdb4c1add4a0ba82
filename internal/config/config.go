package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // chi Timeout middleware, bounds model and repository calls

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	Location *time.Location // week keys and monthly link files are computed in this zone

	GitHubAPIURL string // optional, GitHub Enterprise API root (ex: https://ghe.example.com/api/v3/)

	ModelName    string // chat completion model (ex: gpt-4o-mini)
	ModelBaseURL string // optional, OpenAI-compatible endpoint

	KitBaseURL    string // ex: https://api.kit.com/v4
	KitTemplateID int    // email template for new broadcasts

	FetchTimeout time.Duration // deadline for fetching a page to summarize

	PromptFile           string        // optional YAML override of the built-in prompts
	PromptReloadInterval time.Duration // how often PromptFile is re-read (0 = never)

	// Redis (optional summary cache, disabled when RedisAddr is empty)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password when RedisAddr is set
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts
	SummaryTTL            time.Duration // lifetime of a cached link summary

	AllowedOrigins []string // CORS origins for the browser client ("*" allows any)
	AllowedHosts   []string // optional, restrict /reload to specific Host headers
	AllowedCIDRS   []string // optional, restrict infra endpoints to specific IP (e.g. "1.2.3.4, 5.6.7.8")
	TrustProxy     bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)

	RateLimitBurst        int // model-backed endpoints, per model key or client IP
	RateLimitRefillPerMin int
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("NEWSLETTER_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("NEWSLETTER_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("NEWSLETTER_REQUEST_TIMEOUT", 120*time.Second),

		// Logging
		LogLevel:  getenv("NEWSLETTER_LOG_LEVEL", "info"),
		PrettyLog: mustBool("NEWSLETTER_PRETTY_LOG", true),

		Location: mustLocation("NEWSLETTER_TIMEZONE", "UTC"),

		// Upstreams
		GitHubAPIURL:  getenv("NEWSLETTER_GITHUB_API_URL", ""),
		ModelName:     getenv("NEWSLETTER_MODEL", "gpt-4o-mini"),
		ModelBaseURL:  getenv("NEWSLETTER_MODEL_BASE_URL", ""),
		KitBaseURL:    getenv("NEWSLETTER_KIT_BASE_URL", "https://api.kit.com/v4"),
		KitTemplateID: getenvInt("NEWSLETTER_KIT_TEMPLATE_ID", 2),
		FetchTimeout:  mustDuration("NEWSLETTER_FETCH_TIMEOUT", 10*time.Second),

		// Prompts
		PromptFile:           getenv("NEWSLETTER_PROMPT_FILE", ""),
		PromptReloadInterval: mustDuration("NEWSLETTER_PROMPT_RELOAD_INTERVAL", 5*time.Minute),

		// Redis settings
		RedisAddr:             getenv("NEWSLETTER_REDIS_ADDR", ""),
		RedisUser:             getenv("NEWSLETTER_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("NEWSLETTER_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("NEWSLETTER_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("NEWSLETTER_REDIS_DB", 0),
		RedisDT:               mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REDIS_WARN_THRESHOLD", 3),
		SummaryTTL:            mustDuration("NEWSLETTER_SUMMARY_TTL", 7*24*time.Hour),

		// Access restrictions
		AllowedOrigins: splitAndTrim(getenv("NEWSLETTER_ALLOWED_ORIGINS", "*")),
		AllowedHosts:   splitAndTrim(getenv("NEWSLETTER_ALLOWED_HOSTS", "")),
		AllowedCIDRS:   parseAllowedIPs(getenv("NEWSLETTER_ALLOWED_CIDRS", "")),
		TrustProxy:     mustBool("NEWSLETTER_TRUST_PROXY", false),

		RateLimitBurst:        getenvInt("NEWSLETTER_RATE_LIMIT_BURST", 10),
		RateLimitRefillPerMin: getenvInt("NEWSLETTER_RATE_LIMIT_PER_MIN", 6),
	}

	if cfg.RedisAddr != "" && cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: NEWSLETTER_REDIS_PASSWORD is required when NEWSLETTER_REDIS_PASSWORD_REQUIRED=true")
	}
	if cfg.KitTemplateID <= 0 {
		panic(fmt.Sprintf("❌ FATAL: NEWSLETTER_KIT_TEMPLATE_ID must be positive, got %d", cfg.KitTemplateID))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// RedisEnabled reports whether the summary cache should be used.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	cp := *c
	if cp.RedisPassword != "" {
		cp.RedisPassword = "***REDACTED***"
	}
	if cp.RedisUser != "" {
		cp.RedisUser = "***REDACTED***"
	}
	return cp
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// mustLocation panics on an unknown zone name.
func mustLocation(key, def string) *time.Location {
	name := getenv(key, def)
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid time zone for %s: %s", key, name))
	}
	return loc
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
