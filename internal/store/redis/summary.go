package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/theboringdotapp/newsletter-builder/internal/summarize"
)

// DefaultSummaryTTL is how long a link summary stays cached (7 days)
const DefaultSummaryTTL = 7 * 24 * time.Hour

// SummaryCache keeps link summaries in Redis as JSON strings.
type SummaryCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

var _ summarize.Cache = (*SummaryCache)(nil)

// NewSummaryCache creates a cache. A non-positive ttl uses DefaultSummaryTTL.
func NewSummaryCache(client redis.Cmdable, ttl time.Duration) *SummaryCache {
	if ttl <= 0 {
		ttl = DefaultSummaryTTL
	}
	return &SummaryCache{client: client, ttl: ttl}
}

// SaveSummary stores s for url
func (c *SummaryCache) SaveSummary(ctx context.Context, url string, s summarize.Summary) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	if err := c.client.Set(ctx, SummaryKey(url), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache summary: %w", err)
	}
	return nil
}

// GetSummary retrieves the cached summary for url
func (c *SummaryCache) GetSummary(ctx context.Context, url string) (summarize.Summary, bool, error) {
	data, err := c.client.Get(ctx, SummaryKey(url)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return summarize.Summary{}, false, nil // Cache miss
		}
		return summarize.Summary{}, false, fmt.Errorf("failed to get cached summary: %w", err)
	}

	var s summarize.Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return summarize.Summary{}, false, fmt.Errorf("failed to unmarshal summary: %w", err)
	}
	return s, true, nil
}

// Flush removes every cached summary
func (c *SummaryCache) Flush(ctx context.Context) (int, error) {
	deleted := 0
	iter := c.client.Scan(ctx, 0, KeyPrefixSummary+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return deleted, fmt.Errorf("failed to delete summary key: %w", err)
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("failed to flush summaries: %w", err)
	}
	return deleted, nil
}
