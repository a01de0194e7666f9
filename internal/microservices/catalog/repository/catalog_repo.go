package repository

import (
	"context"
	"database/sql"
	"fmt"

	"pos-voice/internal/domain"
)

type CatalogRepositoryInterface interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	ProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error)
}

type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) CatalogRepositoryInterface {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) Categories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	out := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ProductsByCategory keeps the products in id order; voice lookups take the
// first name that matches, so the order must be stable.
func (r *CatalogRepository) ProductsByCategory(ctx context.Context, categoryID int64) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, category_id, name, price
		FROM products
		WHERE category_id = $1
		ORDER BY id
	`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products for category %d: %w", categoryID, err)
	}
	defer rows.Close()

	out := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.Name, &p.Price); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
