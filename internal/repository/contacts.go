package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
)

const EventContactReceived = "ContactReceived"

// SaveContact stores the message and queues a ContactReceived event.
func (r *Repository) SaveContact(ctx context.Context, c domain.Contact) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal contact payload: %w", err)
	}

	return r.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO contacts (id, name, email, message, language, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
			c.ID, c.Name, c.Email, c.Message, string(c.Language), c.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert contact: %w", err)
		}
		return insertOutboxEvent(ctx, tx, c.ID, EventContactReceived, payload, c.CreatedAt)
	})
}

func (r *Repository) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, message, language, created_at FROM contacts ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	var out []domain.Contact
	for rows.Next() {
		var (
			c    domain.Contact
			lang string
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &lang, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		c.Language = domain.Language(lang)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return out, nil
}
