// Package autocomplete implements location autocomplete on top of a Searcher:
// a shared query client with caching and request collapsing, and per-input
// fields that only ever show the answer to the latest query.
package autocomplete

import (
	"context"
	"horoscopus-web/internal/location"
	"horoscopus-web/internal/types"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/singleflight"
)

const (
	DefaultMinQueryLen = 3
	DefaultLimit       = 6
)

type Options struct {
	MinQueryLen  int
	DefaultLimit int
}

// Client wraps a Searcher with caching keyed by (query, limit). Identical
// concurrent misses share one upstream call.
type Client struct {
	searcher location.Searcher
	cache    Cache
	group    singleflight.Group
	opts     Options
	logger   *slog.Logger
}

func NewClient(searcher location.Searcher, cache Cache, opts Options, logger *slog.Logger) *Client {
	if opts.MinQueryLen <= 0 {
		opts.MinQueryLen = DefaultMinQueryLen
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = DefaultLimit
	}
	return &Client{
		searcher: searcher,
		cache:    cache,
		opts:     opts,
		logger:   logger.With("component", "autocomplete-client"),
	}
}

// Normalize trims surrounding whitespace; the result is what gets searched
func Normalize(query string) string {
	return strings.TrimSpace(query)
}

// Enabled reports whether query is long enough to be searched
func (c *Client) Enabled(query string) bool {
	return utf8.RuneCountInString(Normalize(query)) >= c.opts.MinQueryLen
}

// Limit resolves a requested limit, falling back to the default
func (c *Client) Limit(limit int) int {
	if limit <= 0 {
		return c.opts.DefaultLimit
	}
	return limit
}

// Fetch returns suggestions for query. Queries below the minimum length
// yield an empty result without touching the network. Errors are not cached.
func (c *Client) Fetch(ctx context.Context, query string, limit int) ([]types.LocationSuggestion, error) {
	normalized := Normalize(query)
	if !c.Enabled(normalized) {
		return []types.LocationSuggestion{}, nil
	}

	key := Key{Query: normalized, Limit: c.Limit(limit)}
	if cached, ok := c.cache.Get(ctx, key); ok {
		c.logger.Debug("cache hit", "key", key.String())
		return cached, nil
	}

	// The shared call must outlive any single caller: a keystroke that is
	// superseded cancels its own wait, not the request other waiters need.
	ch := c.group.DoChan(key.String(), func() (any, error) {
		callCtx := context.WithoutCancel(ctx)
		if cached, ok := c.cache.Get(callCtx, key); ok {
			return cached, nil
		}
		results, err := c.searcher.Search(callCtx, key.Query, key.Limit)
		if err != nil {
			return nil, err
		}
		if results == nil {
			results = []types.LocationSuggestion{}
		}
		c.cache.Set(callCtx, key, results)
		c.logger.Debug("cache store", "key", key.String(), "count", len(results))
		return results, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]types.LocationSuggestion), nil
	}
}
