package catalog

import (
	"context"
	"time"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/mockdata"
)

// Static serves the sample catalog. It never fails.
type Static struct {
	now func() time.Time
}

func NewStatic() *Static {
	return &Static{now: time.Now}
}

func (s *Static) ListProducts(context.Context) ([]domain.Product, error) {
	return mockdata.StorefrontProducts(s.now().UTC()), nil
}

func (s *Static) ListCategories(context.Context) ([]domain.Category, error) {
	return domain.Categories(), nil
}
