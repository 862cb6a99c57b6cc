package autocomplete

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisCache_RoundTrip(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewRedisCache(client, time.Minute, testLogger())
	ctx := context.Background()
	key := Key{Query: "Moscow", Limit: 6}

	if _, ok := cache.Get(ctx, key); ok {
		t.Fatal("Get() on empty cache reported a hit")
	}

	cache.Set(ctx, key, suggestions(7, 8))

	if !mr.Exists("horoscopus:locations:autocomplete:6:Moscow") {
		t.Error("expected prefixed key in redis")
	}
	if ttl := mr.TTL("horoscopus:locations:autocomplete:6:Moscow"); ttl != time.Minute {
		t.Errorf("TTL = %v, want 1m", ttl)
	}

	got, ok := cache.Get(ctx, key)
	if !ok {
		t.Fatal("Get() after Set() reported a miss")
	}
	if len(got) != 2 || got[0].ID != 7 || got[1].ID != 8 {
		t.Errorf("Get() = %v, want ids [7 8]", got)
	}

	mr.FastForward(time.Minute + time.Second)
	if _, ok := cache.Get(ctx, key); ok {
		t.Error("Get() after expiry reported a hit")
	}
}

func TestRedisCache_CorruptEntryIsMiss(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewRedisCache(client, time.Minute, testLogger())

	if err := mr.Set("horoscopus:locations:autocomplete:6:Moscow", "not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, ok := cache.Get(context.Background(), Key{Query: "Moscow", Limit: 6}); ok {
		t.Error("Get() on corrupt entry reported a hit")
	}
}

func TestRedisCache_UnavailableIsMiss(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewRedisCache(client, time.Minute, testLogger())
	mr.Close()

	key := Key{Query: "Moscow", Limit: 6}
	cache.Set(context.Background(), key, suggestions(7))
	if _, ok := cache.Get(context.Background(), key); ok {
		t.Error("Get() with redis down reported a hit")
	}
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr()+"/0")
	if err != nil {
		t.Fatalf("NewRedisClient() unexpected error = %v", err)
	}
	_ = client.Close()

	if _, err := NewRedisClient(context.Background(), "not a url"); err == nil {
		t.Error("NewRedisClient() with bad url expected error")
	}
}

func TestClient_WithRedisCache(t *testing.T) {
	_, rc := newTestRedis(t)
	searcher := newFakeSearcher()
	searcher.results["Moscow"] = suggestions(7)
	client := newTestClient(searcher, NewRedisCache(rc, time.Minute, testLogger()))

	for i := 0; i < 2; i++ {
		if _, err := client.Fetch(context.Background(), "Moscow", 6); err != nil {
			t.Fatalf("Fetch() unexpected error = %v", err)
		}
	}
	if n := searcher.total(); n != 1 {
		t.Errorf("searcher called %d times, want 1", n)
	}
}
