package checkout

import (
	"context"
	"sync"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
)

type mockSink struct {
	m         sync.Mutex
	available bool
	err       error
	orders    []domain.Order
	calls     int
	ctxErr    error
}

func (s *mockSink) IsAvailable() bool {
	s.m.Lock()
	defer s.m.Unlock()
	return s.available
}

func (s *mockSink) Submit(ctx context.Context, order domain.Order) error {
	s.m.Lock()
	defer s.m.Unlock()
	s.calls++
	s.ctxErr = ctx.Err()
	if s.err != nil {
		return s.err
	}
	s.orders = append(s.orders, order)
	return nil
}

func (s *mockSink) Calls() int {
	s.m.Lock()
	defer s.m.Unlock()
	return s.calls
}
