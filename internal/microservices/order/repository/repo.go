package repository

import "database/sql"

// Repository groups the stores backed by the orders tables.
type Repository struct {
	OrderRepo OrderRepositoryInterface
	SalesRepo SalesRepositoryInterface
}

func New(db *sql.DB) *Repository {
	return &Repository{
		OrderRepo: NewOrderRepository(db),
		SalesRepo: NewSalesRepository(db),
	}
}
