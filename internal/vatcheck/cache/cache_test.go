package cache

import (
	"context"
	"testing"
	"time"

	"vies_backend/internal/vies"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewWithClient(rdb, ttl), mr
}

func TestCache_RoundTrip(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	entry := Entry{
		Result: vies.CheckResult{
			Valid:         true,
			Name:          "ACME BV",
			StatusMessage: vies.MsgActive + "\nName: ACME BV",
		},
		Transcript: vies.Transcript{RequestXML: "<req/>", ResponseXML: "<resp/>"},
	}

	if err := c.Set(ctx, "NL", "804221B01", entry); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}

	got, hit, err := c.Get(ctx, "NL", "804221B01")
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if !hit {
		t.Fatalf("expected cache hit")
	}
	if got.Result != entry.Result {
		t.Fatalf("cached result mismatch: %+v vs %+v", got.Result, entry.Result)
	}
	if got.Transcript != entry.Transcript {
		t.Fatalf("cached transcript mismatch")
	}
}

func TestCache_MissOnUnknownKey(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	_, hit, err := c.Get(context.Background(), "PL", "1234567890")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hit {
		t.Fatalf("expected miss for unknown key")
	}
}

func TestCache_EntriesExpire(t *testing.T) {
	c, mr := newTestCache(t, time.Second)
	ctx := context.Background()

	if err := c.Set(ctx, "PL", "1234567890", Entry{Result: vies.CheckResult{Valid: true}}); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}

	mr.FastForward(2 * time.Second)

	_, hit, err := c.Get(ctx, "PL", "1234567890")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hit {
		t.Fatalf("expected entry to expire")
	}
}

func TestCache_NilCacheAlwaysMisses(t *testing.T) {
	var c *Cache

	_, hit, err := c.Get(context.Background(), "PL", "123")
	if err != nil || hit {
		t.Fatalf("nil cache should miss silently, got hit=%v err=%v", hit, err)
	}
	if err := c.Set(context.Background(), "PL", "123", Entry{}); err != nil {
		t.Fatalf("nil cache Set should be a no-op, got %v", err)
	}
}
