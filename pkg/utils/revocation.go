package utils

import (
	"sync"
	"time"
)

// RevocationStore keeps revoked token ids in memory until they would have
// expired anyway. Safe for concurrent use.
type RevocationStore struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewRevocationStore() *RevocationStore {
	return &RevocationStore{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *RevocationStore) Revoke(jti string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[jti] = expiresAt
	s.pruneLocked()
}

func (s *RevocationStore) IsRevoked(jti string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.entries[jti]
	return ok
}

// Len reports how many revocations are currently tracked.
func (s *RevocationStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// pruneLocked drops entries past their expiry. Caller holds mu.
func (s *RevocationStore) pruneLocked() {
	now := s.now()
	for jti, exp := range s.entries {
		if now.After(exp) {
			delete(s.entries, jti)
		}
	}
}
