// Package store holds client-side account state: the API token and the
// display name shown across the dashboard.
package store

import "sync"

// DefaultUserName is shown until the user picks a name
const DefaultUserName = "Астролог"

// AuthStore is read and written by the pages and the API client.
// Implementations must be safe for concurrent use.
type AuthStore interface {
	Token() string
	SetToken(token string)
	UserName() string
	SetUserName(name string)
	Reset()
}

// MemoryAuthStore keeps auth state in process memory
type MemoryAuthStore struct {
	mu       sync.RWMutex
	token    string
	userName string
}

func NewMemoryAuthStore() *MemoryAuthStore {
	return &MemoryAuthStore{}
}

func (s *MemoryAuthStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryAuthStore) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// UserName returns the stored name, or an empty string if none was set
func (s *MemoryAuthStore) UserName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userName
}

func (s *MemoryAuthStore) SetUserName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userName = name
}

func (s *MemoryAuthStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.userName = ""
}

// DisplayName falls back to DefaultUserName when no name is stored
func DisplayName(s AuthStore) string {
	if name := s.UserName(); name != "" {
		return name
	}
	return DefaultUserName
}

// Initial is the first letter of the display name, used for the avatar
func Initial(s AuthStore) string {
	for _, r := range DisplayName(s) {
		return string(r)
	}
	return ""
}
