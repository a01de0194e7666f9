package service

import (
	"pos-voice/internal/common/logger"
	"pos-voice/internal/microservices/order/repository"
)

type Service struct {
	OrderService OrderServiceInterface
	SalesService SalesServiceInterface
}

func New(db repository.Repository, pub Publisher, lg *logger.Logger) *Service {
	return &Service{
		OrderService: NewOrderService(db.OrderRepo, pub, lg),
		SalesService: NewSalesService(db.SalesRepo),
	}
}
