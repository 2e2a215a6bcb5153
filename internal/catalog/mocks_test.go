package catalog

import (
	"context"
	"sync"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/cache"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
)

type mockStore struct {
	m             sync.Mutex
	products      []domain.Product
	categories    []domain.ProductCategory
	err           error
	calls         int
	categoryCalls int
}

func (m *mockStore) ListProducts(context.Context) ([]domain.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func (m *mockStore) ListCategories(context.Context) ([]domain.ProductCategory, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.categoryCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.categories, nil
}

func (m *mockStore) Calls() int {
	m.m.Lock()
	defer m.m.Unlock()
	return m.calls
}

func (m *mockStore) CategoryCalls() int {
	m.m.Lock()
	defer m.m.Unlock()
	return m.categoryCalls
}

type mockProvider struct {
	m        sync.Mutex
	products []domain.Product
	err      error
	calls    int
	// onList runs before every read.
	onList   func()
}

func (m *mockProvider) ListProducts(context.Context) ([]domain.Product, error) {
	if m.onList != nil {
		m.onList()
	}
	m.m.Lock()
	defer m.m.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func (m *mockProvider) ListCategories(context.Context) ([]domain.Category, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return []domain.Category{domain.CategoryBeds}, nil
}

func (m *mockProvider) Calls() int {
	m.m.Lock()
	defer m.m.Unlock()
	return m.calls
}

type mockCache struct {
	m           sync.Mutex
	products    []domain.Product
	getErr      error
	sets        int
	invalidated int
	// onSet runs after every stored set.
	onSet       func()
}

func (m *mockCache) GetProducts(context.Context) ([]domain.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.products == nil {
		return nil, cache.ErrCacheMiss
	}
	return m.products, nil
}

func (m *mockCache) SetProducts(_ context.Context, products []domain.Product) error {
	m.m.Lock()
	m.sets++
	m.products = products
	m.m.Unlock()

	if m.onSet != nil {
		m.onSet()
	}
	return nil
}

func (m *mockCache) Invalidate(context.Context) error {
	m.m.Lock()
	defer m.m.Unlock()
	m.invalidated++
	m.products = nil
	return nil
}

func (m *mockCache) Sets() int {
	m.m.Lock()
	defer m.m.Unlock()
	return m.sets
}

func (m *mockCache) Cached() []domain.Product {
	m.m.Lock()
	defer m.m.Unlock()
	return m.products
}

func (m *mockCache) Invalidations() int {
	m.m.Lock()
	defer m.m.Unlock()
	return m.invalidated
}
