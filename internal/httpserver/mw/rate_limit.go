package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/theboringdotapp/newsletter-builder/internal/credentials"
	"github.com/theboringdotapp/newsletter-builder/internal/httpserver/respond"
	"github.com/theboringdotapp/newsletter-builder/internal/utils"
)

// RateLimitConfig sizes the model budget of each caller.
type RateLimitConfig struct {
	Burst             int
	RefillPerIPPerMin int
	MaxEntries        int
	SweepInterval     time.Duration
	IdleTTL           time.Duration
	TrustProxy        bool             // resolve IP from proxy headers when true
	Now               func() time.Time // defaults to time.Now
}

// CallerKey names the budget a request draws from: the model key when the
// caller brings one, so a shared NAT does not pool unrelated users, and the
// client IP otherwise. Keys are hashed before they are held in memory.
func CallerKey(r *http.Request, trustProxy bool) string {
	if key, err := credentials.FromRequest(r).ModelKey(); err == nil {
		return "key:" + strconv.FormatUint(xxhash.Sum64String(key), 16)
	}
	return "ip:" + utils.ClientIP(r, trustProxy)
}

type allowance struct {
	mu       sync.Mutex
	tokens   float64
	refilled time.Time
	seen     time.Time
}

// take spends one token, refilling first. It reports the whole tokens left
// or, when empty, how many seconds until the next one.
func (a *allowance) take(now time.Time, capacity, perSec float64) (ok bool, left, retryAfter int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if elapsed := now.Sub(a.refilled).Seconds(); elapsed > 0 {
		a.tokens = math.Min(capacity, a.tokens+elapsed*perSec)
		a.refilled = now
	}
	if a.tokens < 1 {
		return false, 0, max(1, int(math.Ceil((1-a.tokens)/perSec)))
	}
	a.tokens--
	a.seen = now
	return true, int(a.tokens), 0
}

type budgets struct {
	cfg      RateLimitConfig
	capacity float64
	perSec   float64

	mu        sync.Mutex
	callers   map[string]*allowance
	lastSweep time.Time
}

func newBudgets(cfg RateLimitConfig) *budgets {
	cfg.Burst = max(cfg.Burst, 1)
	cfg.RefillPerIPPerMin = max(cfg.RefillPerIPPerMin, 1)
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 15 * time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &budgets{
		cfg:       cfg,
		capacity:  float64(cfg.Burst),
		perSec:    float64(cfg.RefillPerIPPerMin) / 60,
		callers:   make(map[string]*allowance, 256),
		lastSweep: cfg.Now(),
	}
}

// get returns the allowance of caller, sweeping idle ones when the sweep
// interval has passed or the table is full.
func (b *budgets) get(caller string, now time.Time) *allowance {
	b.mu.Lock()
	defer b.mu.Unlock()

	full := b.cfg.MaxEntries > 0 && len(b.callers) >= b.cfg.MaxEntries
	if full || now.Sub(b.lastSweep) >= b.cfg.SweepInterval {
		for k, a := range b.callers {
			if now.Sub(a.seen) > b.cfg.IdleTTL {
				delete(b.callers, k)
			}
		}
		b.lastSweep = now
	}

	a := b.callers[caller]
	if a == nil {
		a = &allowance{tokens: b.capacity, refilled: now, seen: now}
		b.callers[caller] = a
	}
	return a
}

// RateLimit throttles model-backed endpoints per caller. Each call costs one
// token and tokens refill continuously.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	b := newBudgets(cfg)
	limit := strconv.Itoa(b.cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := b.cfg.Now()
			ok, left, retry := b.get(CallerKey(r, b.cfg.TrustProxy), now).take(now, b.capacity, b.perSec)

			w.Header().Set("X-RateLimit-Limit", limit)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(left))
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				respond.JSON(w, http.StatusTooManyRequests, map[string]string{
					"error": "model budget exhausted, retry in " + strconv.Itoa(retry) + "s",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
