package autocomplete

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCache_Expiry(t *testing.T) {
	now := time.Unix(0, 0)
	cache := NewMemoryCacheWithClock(10*time.Second, func() time.Time { return now })
	key := Key{Query: "Moscow", Limit: 6}

	cache.Set(context.Background(), key, suggestions(7))

	now = now.Add(9 * time.Second)
	if _, ok := cache.Get(context.Background(), key); !ok {
		t.Error("Get() before expiry reported a miss")
	}

	now = now.Add(time.Second)
	if _, ok := cache.Get(context.Background(), key); ok {
		t.Error("Get() at expiry reported a hit")
	}
	if cache.Len() != 0 {
		t.Errorf("Len() = %d, want expired entry removed", cache.Len())
	}
}

func TestMemoryCache_EvictsOldestWhenFull(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(0, 0)
	cache := NewMemoryCacheWithClock(time.Minute, func() time.Time { return now })
	cache.maxEntries = 2

	first := Key{Query: "Mos", Limit: 6}
	second := Key{Query: "Mosc", Limit: 6}
	third := Key{Query: "Mosco", Limit: 6}

	cache.Set(ctx, first, suggestions(1))
	now = now.Add(time.Second)
	cache.Set(ctx, second, suggestions(2))
	now = now.Add(time.Second)

	// overwriting an existing key never evicts
	cache.Set(ctx, second, suggestions(2))
	if cache.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", cache.Len())
	}

	cache.Set(ctx, third, suggestions(3))
	if cache.Len() != 2 {
		t.Errorf("Len() = %d, want cap of 2", cache.Len())
	}
	if _, ok := cache.Get(ctx, first); ok {
		t.Error("oldest entry survived")
	}
	for _, k := range []Key{second, third} {
		if _, ok := cache.Get(ctx, k); !ok {
			t.Errorf("entry %v evicted", k)
		}
	}
}

func TestMemoryCache_FullCachePrefersExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(0, 0)
	cache := NewMemoryCacheWithClock(10*time.Second, func() time.Time { return now })
	cache.maxEntries = 2

	stale := Key{Query: "Mos", Limit: 6}
	live := Key{Query: "Mosc", Limit: 6}
	cache.Set(ctx, stale, suggestions(1))
	now = now.Add(8 * time.Second)
	cache.Set(ctx, live, suggestions(2))
	now = now.Add(3 * time.Second)

	cache.Set(ctx, Key{Query: "Mosco", Limit: 6}, suggestions(3))
	if _, ok := cache.Get(ctx, live); !ok {
		t.Error("live entry evicted while an expired one could go")
	}
}

func TestKey_String(t *testing.T) {
	k := Key{Query: "Москва", Limit: 5}
	if got, want := k.String(), "locations:autocomplete:5:Москва"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
