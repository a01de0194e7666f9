package domain

type CreateOrderItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"product_name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"product_price"`
}

type CreateOrderRequest struct {
	CustomerName string            `json:"customer_name"`
	Status       OrderStatus       `json:"order_status,omitempty"`
	Items        []CreateOrderItem `json:"order_items"`
}

type CreateOrderResponse struct {
	OrderNumber string      `json:"order_number"`
	Status      OrderStatus `json:"order_status"`
	TotalAmount float64     `json:"total_amount"`
}

type UpdateStatusRequest struct {
	Status string `json:"order_status"`
}
