package domain

import "time"

// ProductSales is the quantity of one product sold on one day.
type ProductSales struct {
	ProductID    int64  `json:"product_id"`
	ProductName  string `json:"product_name"`
	SaleDate     string `json:"sale_date"`
	QuantitySold int    `json:"quantity_sold"`
}

// Income is the order total over [From, To).
type Income struct {
	Date   string    `json:"date"`
	Period string    `json:"period"`
	From   time.Time `json:"from"`
	To     time.Time `json:"to"`
	Total  float64   `json:"total"`
	Orders int       `json:"orders"`
}
