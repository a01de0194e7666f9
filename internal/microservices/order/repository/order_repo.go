package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"pos-voice/internal/domain"
)

const uniqueViolation = "23505"

var (
	ErrNotFound             = errors.New("order not found")
	ErrDuplicateOrderNumber = errors.New("order number already taken")
)

type OrderRepositoryInterface interface {
	AddOrder(ctx context.Context, order domain.Order, changedBy string) (int64, error)
	CountOrdersOn(ctx context.Context, day time.Time) (int, error)
	ListOrders(ctx context.Context, includeCompleted bool) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderNumber string, status domain.OrderStatus, changedBy string) (domain.OrderStatus, error)
}

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderRepositoryInterface {
	return &OrderRepository{db: db}
}

// CountOrdersOn counts orders created on the UTC calendar day of day.
func (or *OrderRepository) CountOrdersOn(ctx context.Context, day time.Time) (int, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	var count int
	err := or.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE created_at >= $1 AND created_at < $2`,
		start, start.AddDate(0, 0, 1),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get order count: %w", err)
	}
	return count, nil
}

func (or *OrderRepository) AddOrder(ctx context.Context, order domain.Order, changedBy string) (id int64, err error) {
	tx, err := or.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// 1. Insert order
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders
		    (order_number, customer_name, total_amount, status, created_at, updated_at)
		VALUES
		    ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id
	`,
		order.OrderNumber,
		order.CustomerName,
		order.TotalAmount,
		string(order.Status),
	).Scan(&id)
	if isUniqueViolation(err) {
		return 0, fmt.Errorf("%w: %s", ErrDuplicateOrderNumber, order.OrderNumber)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert order: %w", err)
	}

	// 2. Insert order items
	for _, item := range order.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, name, quantity, price, created_at)
			VALUES ($1, $2, $3, $4, $5, NOW())
		`, id, item.ProductID, item.Name, item.Quantity, item.Price)
		if err != nil {
			return 0, fmt.Errorf("failed to insert order item %s: %w", item.Name, err)
		}
	}

	// 3. Insert into order_status_log
	_, err = tx.ExecContext(ctx, `
		INSERT INTO order_status_log (order_id, status, changed_by, changed_at)
		VALUES ($1, $2, $3, NOW())
	`, id, string(order.Status), changedBy)
	if err != nil {
		return 0, fmt.Errorf("failed to insert order status log: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return id, nil
}

// ListOrders returns orders newest first, with their items. COMPLETED orders
// are skipped unless includeCompleted is set.
func (or *OrderRepository) ListOrders(ctx context.Context, includeCompleted bool) ([]domain.Order, error) {
	rows, err := or.db.QueryContext(ctx, `
		SELECT o.id, o.order_number, o.customer_name, o.status, o.total_amount,
		       o.created_at, o.updated_at,
		       oi.product_id, oi.name, oi.quantity, oi.price
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.id
		WHERE $1::boolean OR o.status <> $2
		ORDER BY o.created_at DESC, o.id DESC, oi.id ASC
	`, includeCompleted, string(domain.StatusCompleted))
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var (
		out   []domain.Order
		index = map[int64]int{}
	)
	for rows.Next() {
		var (
			o         domain.Order
			status    string
			productID sql.NullInt64
			name      sql.NullString
			qty       sql.NullInt32
			price     sql.NullFloat64
		)
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &status, &o.TotalAmount,
			&o.CreatedAt, &o.UpdatedAt, &productID, &name, &qty, &price); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		i, ok := index[o.ID]
		if !ok {
			o.Status = domain.OrderStatus(status)
			o.Items = []domain.OrderItem{}
			out = append(out, o)
			i = len(out) - 1
			index[o.ID] = i
		}
		if name.Valid {
			out[i].Items = append(out[i].Items, domain.OrderItem{
				ProductID: productID.Int64,
				Name:      name.String,
				Quantity:  int(qty.Int32),
				Price:     price.Float64,
			})
		}
	}
	return out, rows.Err()
}

// UpdateStatus sets a new status and logs the transition. It returns the
// previous status.
func (or *OrderRepository) UpdateStatus(ctx context.Context, orderNumber string, status domain.OrderStatus, changedBy string) (old domain.OrderStatus, err error) {
	tx, err := or.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var (
		id        int64
		oldStatus string
	)
	err = tx.QueryRowContext(ctx,
		`SELECT id, status FROM orders WHERE order_number=$1 FOR UPDATE`, orderNumber,
	).Scan(&id, &oldStatus)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load order %s: %w", orderNumber, err)
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE orders SET status=$2, updated_at=NOW() WHERE id=$1`, id, string(status),
	); err != nil {
		return "", fmt.Errorf("failed to update order %s: %w", orderNumber, err)
	}
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO order_status_log (order_id, status, changed_by, changed_at)
		VALUES ($1, $2, $3, NOW())
	`, id, string(status), changedBy); err != nil {
		return "", fmt.Errorf("failed to insert order status log: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}
	return domain.OrderStatus(oldStatus), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
