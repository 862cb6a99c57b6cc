package autocomplete

import (
	"context"
	"errors"
	"horoscopus-web/internal/types"
	"log/slog"
	"sync"
)

// State of a single autocomplete input
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Snapshot is a consistent view of a Field
type Snapshot struct {
	Query       string
	State       State
	Suggestions []types.LocationSuggestion
	Generation  uint64
}

// Loading reports whether a request for the current query is in flight
func (s Snapshot) Loading() bool {
	return s.State == StateLoading
}

// Field is one autocomplete input. Each query change starts a new generation
// and cancels the previous request; a response is applied only if its
// generation is still the latest, so the last issued query always wins.
// Fields share nothing but the Client's cache.
type Field struct {
	name   string
	client *Client
	limit  int
	logger *slog.Logger

	mu          sync.Mutex
	query       string
	generation  uint64
	cancel      context.CancelFunc
	state       State
	suggestions []types.LocationSuggestion
}

func NewField(name string, client *Client, limit int, logger *slog.Logger) *Field {
	return &Field{
		name:   name,
		client: client,
		limit:  client.Limit(limit),
		logger: logger.With("component", "autocomplete-field", "field", name),
	}
}

func (f *Field) Name() string {
	return f.name
}

// Update sets the query text and, when it is long enough, searches for it.
// The returned bool is false when a newer query superseded this one while it
// was in flight; the snapshot then reflects the newer state.
func (f *Field) Update(ctx context.Context, query string) (Snapshot, bool) {
	f.mu.Lock()
	gen := f.begin(query)
	if !f.client.Enabled(query) {
		f.state = StateIdle
		f.suggestions = nil
		snap := f.snapshotLocked()
		f.mu.Unlock()
		return snap, true
	}

	reqCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.state = StateLoading
	f.mu.Unlock()

	results, err := f.client.Fetch(reqCtx, query, f.limit)

	f.mu.Lock()
	defer f.mu.Unlock()
	cancel()

	if gen != f.generation {
		f.logger.Debug("discarding stale response", "query", query, "generation", gen, "current", f.generation)
		return f.snapshotLocked(), false
	}
	f.cancel = nil

	if err != nil {
		// search failures degrade to an empty list
		if !errors.Is(err, context.Canceled) {
			f.logger.Warn("location search failed", "query", query, "error", err)
		}
		results = []types.LocationSuggestion{}
	}

	f.state = StateReady
	f.suggestions = results
	return f.snapshotLocked(), true
}

// SetText replaces the query text without searching, e.g. after a
// suggestion was picked. Any in-flight request becomes stale.
func (f *Field) SetText(text string) Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.begin(text)
	f.state = StateIdle
	f.suggestions = nil
	return f.snapshotLocked()
}

// Reset clears the field back to Idle
func (f *Field) Reset() Snapshot {
	return f.SetText("")
}

func (f *Field) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// begin starts a new generation; callers hold f.mu
func (f *Field) begin(query string) uint64 {
	f.generation++
	f.query = query
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	return f.generation
}

func (f *Field) snapshotLocked() Snapshot {
	suggestions := make([]types.LocationSuggestion, len(f.suggestions))
	copy(suggestions, f.suggestions)
	return Snapshot{
		Query:       f.query,
		State:       f.state,
		Suggestions: suggestions,
		Generation:  f.generation,
	}
}
