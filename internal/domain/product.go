package domain

import "time"

// Category is the fixed tag every product carries.
type Category string

const (
	CategoryMajlis   Category = "majlis"
	CategorySofas    Category = "sofas"
	CategoryBeds     Category = "beds"
	CategoryCurtains Category = "curtains"
)

var categories = []Category{CategoryMajlis, CategorySofas, CategoryBeds, CategoryCurtains}

// Categories returns the tags in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func (c Category) IsValid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	NameAm        string    `json:"name_am"`
	Category      Category  `json:"category"`
	Price         float64   `json:"price"`
	ImageURL      string    `json:"image_url"`
	Description   string    `json:"description"`
	DescriptionAm string    `json:"description_am"`
	InStock       bool      `json:"in_stock"`
	CreatedAt     time.Time `json:"created_at"`
}

// LocalizedName picks the name for lang, falling back to the English one
// when the Amharic name is missing.
func (p Product) LocalizedName(lang Language) string {
	if lang == LanguageAmharic && p.NameAm != "" {
		return p.NameAm
	}
	return p.Name
}

func (p Product) LocalizedDescription(lang Language) string {
	if lang == LanguageAmharic && p.DescriptionAm != "" {
		return p.DescriptionAm
	}
	return p.Description
}

// Valid reports whether the record has the shape the storefront can render.
func (p Product) Valid() bool {
	return p.ID != "" && p.Name != "" && p.Category.IsValid() && p.Price >= 0
}

// ProductCategory is a row of the admin categories table.
type ProductCategory struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Item is a stock-tracked piece managed from the admin panel.
type Item struct {
	ID            string    `json:"id"`
	CategoryID    string    `json:"category_id,omitempty"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"image_url"`
	StockQuantity int       `json:"stock_quantity"`
	CreatedAt     time.Time `json:"created_at"`
}
