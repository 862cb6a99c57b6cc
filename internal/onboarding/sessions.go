package onboarding

import (
	"context"
	"horoscopus-web/internal/notify"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

const (
	// DefaultSessionTTL is how long an idle session is kept
	DefaultSessionTTL = 30 * time.Minute
	// DefaultMaxSessions bounds the store; the least recently seen session
	// is evicted to make room.
	DefaultMaxSessions = 10000
)

// Session is the server-side state of one browser
type Session struct {
	ID     string
	Form   *Form
	Toasts *notify.Queue

	lastSeen time.Time
}

// SessionStore keeps sessions in memory and evicts idle ones
type SessionStore struct {
	ttl     time.Duration
	max     int
	newForm func() *Form
	now     func() time.Time
	logger  *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionStore(ttl time.Duration, newForm func() *Form, logger *slog.Logger) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		ttl:      ttl,
		max:      DefaultMaxSessions,
		newForm:  newForm,
		now:      time.Now,
		logger:   logger.With("component", "session-store"),
		sessions: make(map[string]*Session),
	}
}

// Get returns a live session and marks it as seen
func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if now.Sub(sess.lastSeen) >= s.ttl {
		delete(s.sessions, id)
		return nil, false
	}
	sess.lastSeen = now
	return sess, true
}

// GetOrCreate returns the session for id, or a new session with a fresh id
// when id is unknown, expired or malformed. created reports the latter.
func (s *SessionStore) GetOrCreate(id string) (sess *Session, created bool) {
	if _, err := uuid.Parse(id); err == nil {
		if sess, ok := s.Get(id); ok {
			return sess, false
		}
	}

	sess = &Session{
		ID:     uuid.NewString(),
		Form:   s.newForm(),
		Toasts: notify.NewQueue(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if len(s.sessions) >= s.max {
		s.makeRoomLocked(now)
	}
	sess.lastSeen = now
	s.sessions[sess.ID] = sess
	return sess, true
}

// makeRoomLocked drops expired sessions, then the least recently seen one
// if the store is still full.
func (s *SessionStore) makeRoomLocked(now time.Time) {
	if s.sweepLocked(now) > 0 && len(s.sessions) < s.max {
		return
	}
	var oldest *Session
	for _, sess := range s.sessions {
		if oldest == nil || sess.lastSeen.Before(oldest.lastSeen) {
			oldest = sess
		}
	}
	if oldest != nil {
		delete(s.sessions, oldest.ID)
		s.logger.Warn("session store full, evicted least recently seen session", "max", s.max)
	}
}

// Sweep removes expired sessions and returns how many were removed
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(s.now())
}

func (s *SessionStore) sweepLocked(now time.Time) int {
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) >= s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run sweeps on a fixed schedule until ctx is done. Intervals below one
// second are rounded up by the scheduler.
func (s *SessionStore) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = s.ttl / 2
	}
	c := cron.New(cron.WithLocation(time.UTC))
	c.Schedule(cron.Every(interval), cron.FuncJob(func() {
		if n := s.Sweep(); n > 0 {
			s.logger.Debug("evicted idle sessions", "count", n)
		}
	}))
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
}
