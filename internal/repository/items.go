package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
)

func (r *Repository) ListItems(ctx context.Context) ([]domain.Item, error) {
	query := `SELECT id, category_id, name, description, image_url, stock_quantity, created_at
	          FROM items ORDER BY created_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var out []domain.Item
	for rows.Next() {
		var (
			it         domain.Item
			categoryID sql.NullString
		)
		if err := rows.Scan(&it.ID, &categoryID, &it.Name, &it.Description, &it.ImageURL, &it.StockQuantity, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		it.CategoryID = categoryID.String
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return out, nil
}

func (r *Repository) CreateItem(ctx context.Context, it domain.Item) error {
	query := `INSERT INTO items (id, category_id, name, description, image_url, stock_quantity, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		it.ID, nullable(it.CategoryID), it.Name, it.Description, it.ImageURL, it.StockQuantity, it.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateID
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *Repository) UpdateItem(ctx context.Context, it domain.Item) error {
	query := `UPDATE items
	          SET category_id = $1, name = $2, description = $3, image_url = $4, stock_quantity = $5
	          WHERE id = $6`

	res, err := r.db.ExecContext(ctx, query,
		nullable(it.CategoryID), it.Name, it.Description, it.ImageURL, it.StockQuantity, it.ID)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return affectedOrErr(res, ErrItemNotFound)
}

func (r *Repository) DeleteItem(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return affectedOrErr(res, ErrItemNotFound)
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
