package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"pos-voice/internal/domain"
)

type SalesRepositoryInterface interface {
	TopSelling(ctx context.Context, from, to time.Time) ([]domain.ProductSales, error)
	Income(ctx context.Context, from, to time.Time) (total float64, orders int, err error)
}

type SalesRepository struct {
	db *sql.DB
}

func NewSalesRepository(db *sql.DB) SalesRepositoryInterface {
	return &SalesRepository{db: db}
}

// TopSelling sums item quantities per product and UTC day for orders created
// in [from, to), best sellers first within each day.
func (sr *SalesRepository) TopSelling(ctx context.Context, from, to time.Time) ([]domain.ProductSales, error) {
	rows, err := sr.db.QueryContext(ctx, `
		SELECT oi.product_id,
		       oi.name,
		       to_char(o.created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS sale_date,
		       SUM(oi.quantity) AS quantity_sold
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.created_at >= $1 AND o.created_at < $2
		GROUP BY oi.product_id, oi.name, sale_date
		ORDER BY sale_date ASC, quantity_sold DESC, oi.product_id ASC
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query top selling: %w", err)
	}
	defer rows.Close()

	out := []domain.ProductSales{}
	for rows.Next() {
		var ps domain.ProductSales
		if err := rows.Scan(&ps.ProductID, &ps.ProductName, &ps.SaleDate, &ps.QuantitySold); err != nil {
			return nil, fmt.Errorf("failed to scan sales row: %w", err)
		}
		out = append(out, ps)
	}
	return out, rows.Err()
}

// Income sums order totals for orders created in [from, to).
func (sr *SalesRepository) Income(ctx context.Context, from, to time.Time) (float64, int, error) {
	var (
		total  float64
		orders int
	)
	err := sr.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(total_amount), 0), COUNT(*)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
	`, from, to).Scan(&total, &orders)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query income: %w", err)
	}
	return total, orders, nil
}
