package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/checkout"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
)

func (m *Manager) held() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}

func setupManager(t *testing.T) (*Manager, *MemoryStore) {
	store := NewMemoryStore(time.Hour)
	t.Cleanup(func() { store.Close() })
	return NewManager(store), store
}

func TestManager_GetUnknownIsFresh(t *testing.T) {
	m, store := setupManager(t)

	s, err := m.Get(context.Background(), "new")
	require.NoError(t, err)
	assert.Equal(t, "new", s.ID)
	assert.Empty(t, s.Language)
	assert.Equal(t, domain.LanguageEnglish, s.Lang())
	assert.True(t, s.Cart.IsEmpty())
	assert.Equal(t, 0, store.Len(), "Get must not persist")
}

func TestManager_UpdateSaves(t *testing.T) {
	m, _ := setupManager(t)
	ctx := context.Background()

	_, err := m.Update(ctx, "abc", func(s *Session) error {
		s.Cart.AddItem(domain.Product{ID: "1", Name: "Royal Majlis Set", Price: 125000})
		return nil
	})
	require.NoError(t, err)

	s, err := m.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Cart.Count())
}

func TestManager_UpdateErrorDoesNotSave(t *testing.T) {
	m, store := setupManager(t)
	boom := errors.New("boom")

	_, err := m.Update(context.Background(), "abc", func(s *Session) error {
		s.Language = domain.LanguageAmharic
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, store.Len())
}

func TestManager_UpdatesOnOneSessionAreSerialized(t *testing.T) {
	m, _ := setupManager(t)
	ctx := context.Background()
	product := domain.Product{ID: "1", Name: "Royal Majlis Set", Price: 125000}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Update(ctx, "abc", func(s *Session) error {
				s.Cart.AddItem(product)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	s, err := m.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 50, s.Cart.Count())
	assert.Equal(t, 0, m.held(), "locks are released once idle")
}

func TestManager_SessionsDoNotBlockEachOther(t *testing.T) {
	m, _ := setupManager(t)
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_, _ = m.Update(ctx, "slow", func(*Session) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	done := make(chan struct{})
	go func() {
		_, _ = m.Update(ctx, "fast", func(*Session) error { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("update on another session waited for the slow one")
	}
	close(release)
}

// disconnectingSink accepts the order and then cancels the request context,
// the way a client hanging up mid-submit would.
type disconnectingSink struct {
	m      sync.Mutex
	cancel context.CancelFunc
	calls  int
}

func (s *disconnectingSink) IsAvailable() bool { return true }

func (s *disconnectingSink) Submit(context.Context, domain.Order) error {
	s.m.Lock()
	defer s.m.Unlock()
	s.calls++
	s.cancel()
	return nil
}

func TestManager_UpdateSavesAfterCallerCancels(t *testing.T) {
	store, _, cleanup := setupTestRedis(t)
	defer cleanup()

	m := NewManager(store)
	sink := &disconnectingSink{}
	wf := checkout.NewWorkflow(sink)

	_, err := m.Update(context.Background(), "abc", func(s *Session) error {
		s.Cart.AddItem(domain.Product{ID: "1", Name: "Royal Majlis Set", Price: 125000})
		if err := wf.Open(&s.Checkout, s.Cart); err != nil {
			return err
		}
		return wf.UpdateCustomer(&s.Checkout, domain.CustomerInfo{
			Name:    "Abebe Kebede",
			Email:   "abebe@example.com",
			Phone:   "+251911000000",
			Address: "Bole, Addis Ababa",
		})
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sink.cancel = cancel

	var outcome checkout.Outcome
	_, err = m.Update(ctx, "abc", func(s *Session) error {
		res, err := wf.Submit(ctx, &s.Checkout, s.Cart)
		if err != nil {
			return err
		}
		outcome = res.Outcome
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, checkout.OutcomePlaced, outcome)
	assert.Equal(t, 1, sink.calls)

	stored, err := store.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.True(t, stored.Cart.IsEmpty(), "placed order must leave the stored cart empty")
	assert.Equal(t, checkout.StateIdle, stored.Checkout.Current())
}
