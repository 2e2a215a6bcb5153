package admin

import (
	"context"
	"time"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
)

// Store is the persistence the admin panel manages. The SQL repository
// implements it for live mode and DemoStore for demo mode.
type Store interface {
	ListCategories(ctx context.Context) ([]domain.ProductCategory, error)
	CreateCategory(ctx context.Context, c domain.ProductCategory) error
	UpdateCategory(ctx context.Context, c domain.ProductCategory) error
	DeleteCategory(ctx context.Context, id string) error

	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, p domain.Product) error
	UpdateProduct(ctx context.Context, p domain.Product) error
	DeleteProduct(ctx context.Context, id string) error

	ListItems(ctx context.Context) ([]domain.Item, error)
	CreateItem(ctx context.Context, it domain.Item) error
	UpdateItem(ctx context.Context, it domain.Item) error
	DeleteItem(ctx context.Context, id string) error

	ListContacts(ctx context.Context) ([]domain.Contact, error)

	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrderByID(ctx context.Context, id string) (domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus, at time.Time) (domain.Order, error)
}

// CacheInvalidator is told about every successful product write.
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}
