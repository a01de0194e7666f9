package handlers

import "pos-voice/internal/microservices/order/service"

type Handler struct {
	OrderHandler *OrderHandler
	SalesHandler *SalesHandler
}

func New(s *service.Service) *Handler {
	return &Handler{
		OrderHandler: NewOrderHandler(s.OrderService),
		SalesHandler: NewSalesHandler(s.SalesService),
	}
}
