package domain

import (
	"strings"
	"time"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPreparing OrderStatus = "PREPARING"
	StatusReady     OrderStatus = "READY"
	StatusCompleted OrderStatus = "COMPLETED"
)

// ParseStatus maps a spoken or typed status word ("ready", "Preparing") to a
// known OrderStatus. Inner spaces become underscores before the lookup.
func ParseStatus(s string) (OrderStatus, bool) {
	s = strings.ToUpper(strings.Join(strings.Fields(s), "_"))
	switch st := OrderStatus(s); st {
	case StatusPending, StatusPreparing, StatusReady, StatusCompleted:
		return st, true
	}
	return "", false
}

type Category struct {
	ID   int64  `json:"category_id"`
	Name string `json:"category_name"`
}

type Product struct {
	ID         int64   `json:"id"`
	CategoryID int64   `json:"category_id"`
	Name       string  `json:"product_name"`
	Price      float64 `json:"price"`
}

type Order struct {
	ID           int64       `json:"id"`
	OrderNumber  string      `json:"order_number"`
	CustomerName string      `json:"customer_name"`
	Status       OrderStatus `json:"order_status"`
	TotalAmount  float64     `json:"total_amount"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	Items        []OrderItem `json:"order_items"`
}

type OrderItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"product_name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"product_price"`
}
