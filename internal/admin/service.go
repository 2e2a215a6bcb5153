// Package admin backs the back-office panel: categories, products, items,
// contact messages and orders.
package admin

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/repository"
)

var (
	noticeDemoData = domain.Notify("Demo Mode", "Using sample data. Configure the database for full functionality.")

	demoProductSave   = domain.Notify("Demo Mode", "Product management requires database configuration. This is a demo.")
	demoProductDelete = domain.Notify("Demo Mode", "Product deletion requires database configuration.")
	demoOrderUpdate   = domain.Notify("Demo Mode", "Order management requires database configuration.")
	demoCategorySave  = domain.Notify("Demo Mode", "Category management requires database configuration. This is a demo.")
	demoCategoryDrop  = domain.Notify("Demo Mode", "Category deletion requires database configuration.")
	demoItemSave      = domain.Notify("Demo Mode", "Item management requires database configuration. This is a demo.")
	demoItemDelete    = domain.Notify("Demo Mode", "Item deletion requires database configuration.")

	failProductSave   = domain.Alert("Error", "Failed to save product. Please try again.")
	failProductDelete = domain.Alert("Error", "Failed to delete product.")
	failOrderUpdate   = domain.Alert("Error", "Failed to update order status.")
	failCategorySave  = domain.Alert("Error", "Failed to save category. Please try again.")
	failCategoryDrop  = domain.Alert("Error", "Failed to delete category.")
	failItemSave      = domain.Alert("Error", "Failed to save item. Please try again.")
	failItemDelete    = domain.Alert("Error", "Failed to delete item.")
)

type CategoryInput struct {
	Name string `json:"name"`
}

type ProductInput struct {
	Name          string          `json:"name"`
	NameAm        string          `json:"name_am"`
	Category      domain.Category `json:"category"`
	Price         float64         `json:"price"`
	ImageURL      string          `json:"image_url"`
	Description   string          `json:"description"`
	DescriptionAm string          `json:"description_am"`
	// InStock defaults to true when omitted.
	InStock *bool `json:"in_stock"`
}

type ItemInput struct {
	CategoryID    string `json:"category_id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	ImageURL      string `json:"image_url"`
	StockQuantity int    `json:"stock_quantity"`
}

type Option func(*Service)

func WithCacheInvalidator(c CacheInvalidator) Option {
	return func(s *Service) { s.cache = c }
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

type Service struct {
	store Store
	cache CacheInvalidator
	log   *slog.Logger
	now   func() time.Time
	newID func() string
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		log:   slog.Default(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Live reports whether writes reach a real database.
func (s *Service) Live() bool {
	if a, ok := s.store.(interface{ IsAvailable() bool }); ok {
		return a.IsAvailable()
	}
	return true
}

// Status returns the banner shown when the panel opens, if any.
func (s *Service) Status() (live bool, notice *domain.Notification) {
	if s.Live() {
		return true, nil
	}
	n := noticeDemoData
	return false, &n
}

// fail turns a store error into the error handed back to the caller.
func (s *Service) fail(ctx context.Context, op string, err error, demo, failure domain.Notification) error {
	if errors.Is(err, ErrDemoMode) {
		return &DemoModeError{Notification: demo}
	}
	if isClientError(err) {
		return err
	}
	s.log.ErrorContext(ctx, "admin store failed", "op", op, "error", err)
	return &OperationError{Notification: failure, Err: err}
}

func isClientError(err error) bool {
	for _, target := range []error{
		repository.ErrCategoryNotFound,
		repository.ErrProductNotFound,
		repository.ErrItemNotFound,
		repository.ErrOrderNotFound,
		repository.ErrDuplicateCategory,
		repository.ErrDuplicateID,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.ProductCategory, error) {
	return s.store.ListCategories(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, in CategoryInput) (domain.ProductCategory, domain.Notification, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.ProductCategory{}, domain.Notification{}, invalid("name", "is required")
	}
	c := domain.ProductCategory{ID: s.newID(), Name: name, CreatedAt: s.now().UTC()}
	if err := s.store.CreateCategory(ctx, c); err != nil {
		return domain.ProductCategory{}, domain.Notification{}, s.fail(ctx, "create category", err, demoCategorySave, failCategorySave)
	}
	return c, domain.Notify("Category Added", ""), nil
}

func (s *Service) UpdateCategory(ctx context.Context, id string, in CategoryInput) (domain.ProductCategory, domain.Notification, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.ProductCategory{}, domain.Notification{}, invalid("name", "is required")
	}
	c := domain.ProductCategory{ID: id, Name: name}
	if err := s.store.UpdateCategory(ctx, c); err != nil {
		return domain.ProductCategory{}, domain.Notification{}, s.fail(ctx, "update category", err, demoCategorySave, failCategorySave)
	}
	return c, domain.Notify("Category Updated", ""), nil
}

func (s *Service) DeleteCategory(ctx context.Context, id string) (domain.Notification, error) {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return domain.Notification{}, s.fail(ctx, "delete category", err, demoCategoryDrop, failCategoryDrop)
	}
	return domain.Notify("Category Deleted", ""), nil
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.store.ListProducts(ctx)
}

func validateProduct(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name", "is required")
	}
	if !in.Category.IsValid() {
		return invalid("category", "must be one of majlis, sofas, beds, curtains")
	}
	if in.Price < 0 {
		return invalid("price", "must not be negative")
	}
	return nil
}

func (in ProductInput) product(id string, createdAt time.Time) domain.Product {
	inStock := true
	if in.InStock != nil {
		inStock = *in.InStock
	}
	return domain.Product{
		ID:            id,
		Name:          strings.TrimSpace(in.Name),
		NameAm:        strings.TrimSpace(in.NameAm),
		Category:      in.Category,
		Price:         in.Price,
		ImageURL:      strings.TrimSpace(in.ImageURL),
		Description:   strings.TrimSpace(in.Description),
		DescriptionAm: strings.TrimSpace(in.DescriptionAm),
		InStock:       inStock,
		CreatedAt:     createdAt,
	}
}

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (domain.Product, domain.Notification, error) {
	if err := validateProduct(in); err != nil {
		return domain.Product{}, domain.Notification{}, err
	}
	p := in.product(s.newID(), s.now().UTC())
	if err := s.store.CreateProduct(ctx, p); err != nil {
		return domain.Product{}, domain.Notification{}, s.fail(ctx, "create product", err, demoProductSave, failProductSave)
	}
	s.invalidate(ctx)
	return p, domain.Notify("Product Added", "New product has been added successfully."), nil
}

// UpdateProduct replaces every editable field; the creation time is kept by
// the store.
func (s *Service) UpdateProduct(ctx context.Context, id string, in ProductInput) (domain.Product, domain.Notification, error) {
	if err := validateProduct(in); err != nil {
		return domain.Product{}, domain.Notification{}, err
	}
	p := in.product(id, time.Time{})
	if err := s.store.UpdateProduct(ctx, p); err != nil {
		return domain.Product{}, domain.Notification{}, s.fail(ctx, "update product", err, demoProductSave, failProductSave)
	}
	s.invalidate(ctx)
	return p, domain.Notify("Product Updated", "Product has been updated successfully."), nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) (domain.Notification, error) {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return domain.Notification{}, s.fail(ctx, "delete product", err, demoProductDelete, failProductDelete)
	}
	s.invalidate(ctx)
	return domain.Notify("Product Deleted", "Product has been deleted successfully."), nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

func (s *Service) ListItems(ctx context.Context) ([]domain.Item, error) {
	return s.store.ListItems(ctx)
}

func validateItem(in ItemInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("name", "is required")
	}
	if in.StockQuantity < 0 {
		return invalid("stock_quantity", "must not be negative")
	}
	return nil
}

func (in ItemInput) item(id string, createdAt time.Time) domain.Item {
	return domain.Item{
		ID:            id,
		CategoryID:    strings.TrimSpace(in.CategoryID),
		Name:          strings.TrimSpace(in.Name),
		Description:   strings.TrimSpace(in.Description),
		ImageURL:      strings.TrimSpace(in.ImageURL),
		StockQuantity: in.StockQuantity,
		CreatedAt:     createdAt,
	}
}

func (s *Service) CreateItem(ctx context.Context, in ItemInput) (domain.Item, domain.Notification, error) {
	if err := validateItem(in); err != nil {
		return domain.Item{}, domain.Notification{}, err
	}
	it := in.item(s.newID(), s.now().UTC())
	if err := s.store.CreateItem(ctx, it); err != nil {
		return domain.Item{}, domain.Notification{}, s.fail(ctx, "create item", err, demoItemSave, failItemSave)
	}
	return it, domain.Notify("Item Added", ""), nil
}

func (s *Service) UpdateItem(ctx context.Context, id string, in ItemInput) (domain.Item, domain.Notification, error) {
	if err := validateItem(in); err != nil {
		return domain.Item{}, domain.Notification{}, err
	}
	it := in.item(id, time.Time{})
	if err := s.store.UpdateItem(ctx, it); err != nil {
		return domain.Item{}, domain.Notification{}, s.fail(ctx, "update item", err, demoItemSave, failItemSave)
	}
	return it, domain.Notify("Item Updated", ""), nil
}

func (s *Service) DeleteItem(ctx context.Context, id string) (domain.Notification, error) {
	if err := s.store.DeleteItem(ctx, id); err != nil {
		return domain.Notification{}, s.fail(ctx, "delete item", err, demoItemDelete, failItemDelete)
	}
	return domain.Notify("Item Deleted", ""), nil
}

func (s *Service) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	return s.store.ListContacts(ctx)
}

func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.store.ListOrders(ctx)
}

func (s *Service) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	return s.store.GetOrderByID(ctx, id)
}

// UpdateOrderStatus moves an order to any known status.
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus) (domain.Order, domain.Notification, error) {
	if !status.IsValid() {
		return domain.Order{}, domain.Notification{}, invalid("status", "is not a known order status")
	}
	o, err := s.store.UpdateOrderStatus(ctx, id, status, s.now().UTC())
	if err != nil {
		return domain.Order{}, domain.Notification{}, s.fail(ctx, "update order status", err, demoOrderUpdate, failOrderUpdate)
	}
	return o, domain.Notify("Order Updated", "Order status has been updated."), nil
}
