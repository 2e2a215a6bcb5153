package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
)

const productColumns = `id, name, name_am, category, price, image_url, description, description_am, in_stock, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		p        domain.Product
		category string
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.NameAm,
		&category,
		&p.Price,
		&p.ImageURL,
		&p.Description,
		&p.DescriptionAm,
		&p.InStock,
		&p.CreatedAt,
	)
	p.Category = domain.Category(category)
	return p, err
}

// ListProducts returns every row, newest first. Category and price are not
// checked here; the catalog decides what is displayable.
func (r *Repository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

func (r *Repository) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ErrProductNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("query product by id: %w", err)
	}
	return p, nil
}

func (r *Repository) CreateProduct(ctx context.Context, p domain.Product) error {
	query := `INSERT INTO products (` + productColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.NameAm,
		string(p.Category),
		p.Price,
		p.ImageURL,
		p.Description,
		p.DescriptionAm,
		p.InStock,
		p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateID
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// UpdateProduct overwrites every editable column; created_at is kept.
func (r *Repository) UpdateProduct(ctx context.Context, p domain.Product) error {
	query := `UPDATE products
	          SET name = $1, name_am = $2, category = $3, price = $4, image_url = $5,
	              description = $6, description_am = $7, in_stock = $8
	          WHERE id = $9`

	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.NameAm,
		string(p.Category),
		p.Price,
		p.ImageURL,
		p.Description,
		p.DescriptionAm,
		p.InStock,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return affectedOrErr(res, ErrProductNotFound)
}

func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return affectedOrErr(res, ErrProductNotFound)
}
