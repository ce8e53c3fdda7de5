package guard

import (
	"sync"
	"time"
)

// OfflineState tracks the most recent connectivity classification seen by
// a Guard. It is injected rather than global so independent Guards (and
// tests) do not interfere. Reset to online at construction; never persisted.
type OfflineState struct {
	mu      sync.Mutex
	offline bool
	lastErr error
	since   time.Time
}

func NewOfflineState() *OfflineState { return &OfflineState{} }

// Offline reports whether the last classified remote failure was
// connectivity-related and no call has succeeded since.
func (s *OfflineState) Offline() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offline
}

// LastError returns the error that most recently flipped the state
// offline, or nil while online.
func (s *OfflineState) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Since returns when the state last went offline (zero while online).
func (s *OfflineState) Since() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.since
}

// markOffline records a connectivity failure. Returns true on the
// online -> offline transition.
func (s *OfflineState) markOffline(err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
	if s.offline {
		return false
	}
	s.offline = true
	s.since = time.Now()
	return true
}

// markOnline records a successful call. Returns true on the
// offline -> online transition (recovery).
func (s *OfflineState) markOnline() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.offline {
		return false
	}
	s.offline = false
	s.lastErr = nil
	s.since = time.Time{}
	return true
}
