package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// saveTimeout bounds the save that follows a successful fn.
const saveTimeout = 5 * time.Second

// Manager serializes work on each session. Two requests for the same
// session never interleave; requests for different sessions never wait on
// each other.
type Manager struct {
	store Store
	now   func() time.Time

	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewManager(store Store) *Manager {
	return &Manager{
		store: store,
		now:   time.Now,
		locks: make(map[string]*sessionLock),
	}
}

// Get returns the stored session or a fresh, unsaved one for id.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	unlock := m.lock(id)
	defer unlock()
	return m.load(ctx, id)
}

// Update loads the session, runs fn and saves the result. Nothing is saved
// when fn returns an error. Once fn has succeeded the save no longer follows
// ctx cancellation: fn may have had side effects (an order handed to the
// sink) that the stored session has to reflect.
func (m *Manager) Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	unlock := m.lock(id)
	defer unlock()

	s, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return s, err
	}

	s.UpdatedAt = m.now().UTC()
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()
	if err := m.store.Save(saveCtx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return s, nil
}

func (m *Manager) Delete(ctx context.Context, id string) error {
	unlock := m.lock(id)
	defer unlock()
	return m.store.Delete(ctx, id)
}

func (m *Manager) load(ctx context.Context, id string) (*Session, error) {
	s, err := m.store.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return New(id, m.now().UTC()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return s, nil
}

func (m *Manager) lock(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &sessionLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, id)
		}
		m.mu.Unlock()
	}
}
