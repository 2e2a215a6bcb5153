package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
)

const (
	EventOrderPlaced        = "OrderPlaced"
	EventOrderStatusChanged = "OrderStatusChanged"
)

const orderColumns = `id, customer_name, customer_email, customer_phone, customer_address,
	products, total_amount, currency, status, created_at`

// OrderPlacedPayload is the OrderPlaced event body.
type OrderPlacedPayload struct {
	OrderID     string              `json:"order_id"`
	Customer    domain.CustomerInfo `json:"customer"`
	Items       []domain.CartLine   `json:"items"`
	TotalAmount float64             `json:"total_amount"`
	Currency    string              `json:"currency"`
	Status      domain.OrderStatus  `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
}

type OrderStatusChangedPayload struct {
	OrderID   string             `json:"order_id"`
	From      domain.OrderStatus `json:"from"`
	To        domain.OrderStatus `json:"to"`
	ChangedAt time.Time          `json:"changed_at"`
}

// CreateOrder writes the order and its OrderPlaced event in one
// transaction.
func (r *Repository) CreateOrder(ctx context.Context, order domain.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}
	payload, err := json.Marshal(OrderPlacedPayload{
		OrderID:     order.ID,
		Customer:    order.Customer,
		Items:       order.Items,
		TotalAmount: order.TotalAmount,
		Currency:    order.Currency,
		Status:      order.Status,
		CreatedAt:   order.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal order payload: %w", err)
	}

	return r.withTx(ctx, func(tx *sql.Tx) error {
		query := `INSERT INTO orders (` + orderColumns + `, updated_at)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

		// lib/pq sends []byte as bytea, which jsonb rejects.
		_, insertErr := tx.ExecContext(ctx, query,
			order.ID,
			order.Customer.Name,
			order.Customer.Email,
			order.Customer.Phone,
			order.Customer.Address,
			string(itemsJSON),
			order.TotalAmount,
			order.Currency,
			string(order.Status),
			order.CreatedAt,
			order.CreatedAt,
		)
		if insertErr != nil {
			if isUniqueViolation(insertErr) {
				return ErrDuplicateID
			}
			return fmt.Errorf("insert order: %w", insertErr)
		}

		return insertOutboxEvent(ctx, tx, order.ID, EventOrderPlaced, payload, order.CreatedAt)
	})
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var (
		o         domain.Order
		itemsJSON []byte
		status    string
	)
	err := row.Scan(
		&o.ID,
		&o.Customer.Name,
		&o.Customer.Email,
		&o.Customer.Phone,
		&o.Customer.Address,
		&itemsJSON,
		&o.TotalAmount,
		&o.Currency,
		&status,
		&o.CreatedAt,
	)
	if err != nil {
		return o, err
	}
	o.Status = domain.OrderStatus(status)
	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return o, fmt.Errorf("unmarshal order items: %w", err)
	}
	return o, nil
}

func (r *Repository) GetOrderByID(ctx context.Context, id string) (domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("query order by id: %w", err)
	}
	return o, nil
}

func (r *Repository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return orders, nil
}

// UpdateOrderStatus changes the status and queues an OrderStatusChanged
// event. Setting the current status again is a no-op without an event.
func (r *Repository) UpdateOrderStatus(ctx context.Context, id string, status domain.OrderStatus, at time.Time) (domain.Order, error) {
	var updated domain.Order
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		o, err := scanOrder(tx.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOrderNotFound
		}
		if err != nil {
			return fmt.Errorf("query order by id: %w", err)
		}
		updated = o
		if o.Status == status {
			return nil
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`,
			string(status), at, id); err != nil {
			return fmt.Errorf("update order status: %w", err)
		}

		payload, err := json.Marshal(OrderStatusChangedPayload{OrderID: id, From: o.Status, To: status, ChangedAt: at})
		if err != nil {
			return fmt.Errorf("failed to marshal status payload: %w", err)
		}
		updated.Status = status
		return insertOutboxEvent(ctx, tx, id, EventOrderStatusChanged, payload, at)
	})
	if err != nil {
		return domain.Order{}, err
	}
	return updated, nil
}
