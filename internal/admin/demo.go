package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/mockdata"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/repository"
)

// DemoStore serves the sample admin data and refuses every write.
type DemoStore struct {
	now func() time.Time
}

func NewDemoStore() *DemoStore {
	return &DemoStore{now: time.Now}
}

func (d *DemoStore) IsAvailable() bool { return false }

func (d *DemoStore) ListCategories(context.Context) ([]domain.ProductCategory, error) {
	return mockdata.Categories(d.now().UTC()), nil
}

func (d *DemoStore) CreateCategory(context.Context, domain.ProductCategory) error { return ErrDemoMode }
func (d *DemoStore) UpdateCategory(context.Context, domain.ProductCategory) error { return ErrDemoMode }
func (d *DemoStore) DeleteCategory(context.Context, string) error                 { return ErrDemoMode }

func (d *DemoStore) ListProducts(context.Context) ([]domain.Product, error) {
	return mockdata.Products(d.now().UTC()), nil
}

func (d *DemoStore) CreateProduct(context.Context, domain.Product) error { return ErrDemoMode }
func (d *DemoStore) UpdateProduct(context.Context, domain.Product) error { return ErrDemoMode }
func (d *DemoStore) DeleteProduct(context.Context, string) error         { return ErrDemoMode }

func (d *DemoStore) ListItems(context.Context) ([]domain.Item, error) {
	return []domain.Item{}, nil
}

func (d *DemoStore) CreateItem(context.Context, domain.Item) error { return ErrDemoMode }
func (d *DemoStore) UpdateItem(context.Context, domain.Item) error { return ErrDemoMode }
func (d *DemoStore) DeleteItem(context.Context, string) error      { return ErrDemoMode }

func (d *DemoStore) ListContacts(context.Context) ([]domain.Contact, error) {
	return mockdata.Contacts(d.now().UTC()), nil
}

func (d *DemoStore) ListOrders(context.Context) ([]domain.Order, error) {
	return mockdata.Orders(d.now().UTC()), nil
}

func (d *DemoStore) GetOrderByID(_ context.Context, id string) (domain.Order, error) {
	for _, o := range mockdata.Orders(d.now().UTC()) {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.Order{}, fmt.Errorf("%w: %s", repository.ErrOrderNotFound, id)
}

func (d *DemoStore) UpdateOrderStatus(context.Context, string, domain.OrderStatus, time.Time) (domain.Order, error) {
	return domain.Order{}, ErrDemoMode
}
