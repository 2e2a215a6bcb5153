package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
)

// ListCategories returns the admin categories, newest first.
func (r *Repository) ListCategories(ctx context.Context) ([]domain.ProductCategory, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM categories ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var out []domain.ProductCategory
	for rows.Next() {
		var c domain.ProductCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return out, nil
}

func (r *Repository) CreateCategory(ctx context.Context, c domain.ProductCategory) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, created_at) VALUES ($1, $2, $3)`,
		c.ID, c.Name, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateCategory
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *Repository) UpdateCategory(ctx context.Context, c domain.ProductCategory) error {
	res, err := r.db.ExecContext(ctx, `UPDATE categories SET name = $1 WHERE id = $2`, c.Name, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateCategory
		}
		return fmt.Errorf("update category: %w", err)
	}
	return affectedOrErr(res, ErrCategoryNotFound)
}

// DeleteCategory detaches the category's items before removing it, so the
// behaviour is the same with and without foreign key enforcement.
func (r *Repository) DeleteCategory(ctx context.Context, id string) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE items SET category_id = NULL WHERE category_id = $1`, id); err != nil {
			return fmt.Errorf("detach items: %w", err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		return affectedOrErr(res, ErrCategoryNotFound)
	})
}
