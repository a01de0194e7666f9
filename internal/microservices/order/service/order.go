package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pos-voice/internal/common/logger"
	"pos-voice/internal/connections/rabbitmq"
	"pos-voice/internal/domain"
	"pos-voice/internal/microservices/order/repository"
)

const (
	changedBy = "order-service"

	numberAttempts = 5
)

var (
	ErrValidation    = errors.New("invalid order")
	ErrOrderNotFound = errors.New("order not found")
)

// Publisher is the slice of the RabbitMQ client the service needs.
type Publisher interface {
	PublishJSON(ctx context.Context, exchange, key, correlationID string, body []byte) error
}

type OrderServiceInterface interface {
	AddOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.CreateOrderResponse, error)
	ListActive(ctx context.Context) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderNumber, status string) (domain.StatusChangeMessage, error)
}

type OrderService struct {
	db  repository.OrderRepositoryInterface
	pub Publisher
	lg  *logger.Logger
	now func() time.Time
}

// NewOrderService builds the service. pub may be nil, in which case nothing
// is published.
func NewOrderService(db repository.OrderRepositoryInterface, pub Publisher, lg *logger.Logger) *OrderService {
	if lg == nil {
		lg = logger.New("order-service")
	}
	return &OrderService{db: db, pub: pub, lg: lg, now: time.Now}
}

func (s *OrderService) AddOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.CreateOrderResponse, error) {
	// 1. Basic validation
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return domain.CreateOrderResponse{}, fmt.Errorf("%w: customer name is required", ErrValidation)
	}
	if len(req.Items) == 0 {
		return domain.CreateOrderResponse{}, fmt.Errorf("%w: at least one item is required", ErrValidation)
	}
	status := domain.StatusPending
	if req.Status != "" {
		st, ok := domain.ParseStatus(string(req.Status))
		if !ok {
			return domain.CreateOrderResponse{}, fmt.Errorf("%w: unknown status %q", ErrValidation, req.Status)
		}
		status = st
	}

	// 2. Calculate total amount
	total := 0.0
	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return domain.CreateOrderResponse{}, fmt.Errorf("%w: invalid quantity for item %s", ErrValidation, item.Name)
		}
		if item.Price <= 0 {
			return domain.CreateOrderResponse{}, fmt.Errorf("%w: invalid price for item %s", ErrValidation, item.Name)
		}
		total += float64(item.Quantity) * item.Price
		items = append(items, domain.OrderItem(item))
	}

	// 3. Number and save. Numbers come from the day's count, so a concurrent
	// insert can take ours; on a collision the next free number is tried.
	order := domain.Order{
		CustomerName: name,
		Status:       status,
		TotalAmount:  total,
		Items:        items,
	}
	orderNumber, err := s.save(ctx, order)
	if err != nil {
		return domain.CreateOrderResponse{}, err
	}
	s.lg.Debug("order_saved", map[string]any{"order_number": orderNumber, "total": total})

	// 4. Publish. The order is already stored, so a broker failure is only logged.
	msg := domain.OrderMessage{
		OrderNumber:  orderNumber,
		CustomerName: name,
		Status:       status,
		Items:        req.Items,
		TotalAmount:  total,
	}
	key := "orders." + strings.ToLower(string(status))
	if err := s.publish(ctx, rabbitmq.OrdersExchange, key, orderNumber, msg); err != nil {
		s.lg.Error("order_publish_failed", err, map[string]any{"order_number": orderNumber})
	}

	return domain.CreateOrderResponse{
		OrderNumber: orderNumber,
		Status:      status,
		TotalAmount: total,
	}, nil
}

// save stores order under the first free ORD_YYYYMMDD_NNN number.
func (s *OrderService) save(ctx context.Context, order domain.Order) (string, error) {
	now := s.now().UTC()
	last := 0
	for attempt := 1; ; attempt++ {
		count, err := s.db.CountOrdersOn(ctx, now)
		if err != nil {
			return "", err
		}
		seq := count + 1
		if seq <= last {
			seq = last + 1
		}
		last = seq

		order.OrderNumber = fmt.Sprintf("ORD_%s_%03d", now.Format("20060102"), seq)
		_, err = s.db.AddOrder(ctx, order, changedBy)
		if err == nil {
			return order.OrderNumber, nil
		}
		if !errors.Is(err, repository.ErrDuplicateOrderNumber) || attempt == numberAttempts {
			return "", fmt.Errorf("failed to save order: %w", err)
		}
		s.lg.Debug("order_number_taken", map[string]any{"order_number": order.OrderNumber, "attempt": attempt})
	}
}

func (s *OrderService) ListActive(ctx context.Context) ([]domain.Order, error) {
	return s.list(ctx, false)
}

// ListAll includes COMPLETED orders.
func (s *OrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.list(ctx, true)
}

func (s *OrderService) list(ctx context.Context, includeCompleted bool) ([]domain.Order, error) {
	orders, err := s.db.ListOrders(ctx, includeCompleted)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderNumber, status string) (domain.StatusChangeMessage, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return domain.StatusChangeMessage{}, fmt.Errorf("%w: order number is required", ErrValidation)
	}
	st, ok := domain.ParseStatus(status)
	if !ok {
		return domain.StatusChangeMessage{}, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	old, err := s.db.UpdateStatus(ctx, orderNumber, st, changedBy)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.StatusChangeMessage{}, fmt.Errorf("%w: %s", ErrOrderNotFound, orderNumber)
	}
	if err != nil {
		return domain.StatusChangeMessage{}, err
	}

	change := domain.StatusChangeMessage{
		OrderNumber: orderNumber,
		OldStatus:   old,
		NewStatus:   st,
		ChangedBy:   changedBy,
		Timestamp:   s.now().UTC(),
	}
	if err := s.publish(ctx, rabbitmq.NotificationsExchange, "", orderNumber, change); err != nil {
		s.lg.Error("status_publish_failed", err, map[string]any{"order_number": orderNumber})
	}
	return change, nil
}

func (s *OrderService) publish(ctx context.Context, exchange, key, correlationID string, v any) error {
	if s.pub == nil {
		return nil
	}
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.pub.PublishJSON(ctx, exchange, key, correlationID, body)
}
