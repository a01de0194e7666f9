package domain

import "time"

// OrderMessage is published to orders_topic once an order is stored.
type OrderMessage struct {
	OrderNumber  string            `json:"order_number"`
	CustomerName string            `json:"customer_name"`
	Status       OrderStatus       `json:"order_status"`
	Items        []CreateOrderItem `json:"order_items"`
	TotalAmount  float64           `json:"total_amount"`
}

// StatusChangeMessage is fanned out on notifications_fanout.
type StatusChangeMessage struct {
	OrderNumber string      `json:"order_number"`
	OldStatus   OrderStatus `json:"old_status"`
	NewStatus   OrderStatus `json:"new_status"`
	ChangedBy   string      `json:"changed_by"`
	Timestamp   time.Time   `json:"timestamp"`
}
