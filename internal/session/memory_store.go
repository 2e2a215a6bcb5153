package session

import (
	"context"
	"sync"
	"time"
)

// CleanupInterval is how often the in-memory store sweeps expired sessions.
const CleanupInterval = 30 * time.Second

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]record
	ttl      time.Duration
	now      func() time.Time

	stopCleanup chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return newMemoryStore(ttl, CleanupInterval, time.Now)
}

func newMemoryStore(ttl, interval time.Duration, now func() time.Time) *MemoryStore {
	s := &MemoryStore{
		sessions:    make(map[string]record),
		ttl:         ttl,
		now:         now,
		stopCleanup: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop(interval)

	return s
}

func (s *MemoryStore) cleanupLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expireSessions()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *MemoryStore) expireSessions() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, rec := range s.sessions {
		if !now.Before(rec.ExpiresAt) {
			delete(s.sessions, id)
		}
	}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.sessions[id]
	if !exists || !s.now().Before(rec.ExpiresAt) {
		return nil, ErrNotFound
	}
	return rec.session(), nil
}

func (s *MemoryStore) Save(_ context.Context, sess *Session) error {
	rec := toRecord(sess, s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = rec
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Len reports how many sessions are held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stopCleanup) })
	s.wg.Wait()
	return nil
}
