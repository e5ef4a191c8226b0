// Package cache keeps recent VAT check results in redis so repeated checks of
// the same number stay inside the VIES service's rate limits. The cache is
// strictly best-effort: every failure degrades to a miss.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vies_backend/internal/vies"

	"github.com/redis/go-redis/v9"
)

// Entry is the cached payload of one upstream round-trip. The transcript is
// kept so a cache hit can still render a complete report.
type Entry struct {
	Result     vies.CheckResult `json:"result"`
	Transcript vies.Transcript  `json:"transcript"`
}

// Cache wraps a redis client with the vatcheck key scheme.
// A nil *Cache is valid and always misses.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects to redis using a redis:// URL. An empty URL disables caching
// and returns a nil cache, which all methods tolerate.
func New(redisURL string, ttl time.Duration) (*Cache, error) {
	if redisURL == "" {
		return nil, nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	return NewWithClient(redis.NewClient(opt), ttl), nil
}

// NewWithClient wraps an existing client, used by tests with miniredis.
func NewWithClient(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

// Close releases the underlying client.
func (c *Cache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func key(countryCode, normalizedVat string) string {
	return fmt.Sprintf("vatcheck:%s:%s", countryCode, normalizedVat)
}

// Get returns the cached entry for a country/VAT pair, or false on any miss
// or error.
func (c *Cache) Get(ctx context.Context, countryCode, normalizedVat string) (Entry, bool, error) {
	if c == nil || c.rdb == nil {
		return Entry{}, false, nil
	}

	raw, err := c.rdb.Get(ctx, key(countryCode, normalizedVat)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return Entry{}, false, nil
		}
		return Entry{}, false, err
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return Entry{}, false, err
	}

	return entry, true, nil
}

// Set stores an entry under the configured TTL. Connection errors must not be
// cached; that is the caller's responsibility.
func (c *Cache) Set(ctx context.Context, countryCode, normalizedVat string, entry Entry) error {
	if c == nil || c.rdb == nil {
		return nil
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, key(countryCode, normalizedVat), raw, c.ttl).Err()
}
