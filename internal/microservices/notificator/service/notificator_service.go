package service

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"

	"pos-voice/internal/common/logger"
	"pos-voice/internal/domain"
)

type NotificatorService struct {
	lg *logger.Logger
}

func NewNotificatorService(lg *logger.Logger) *NotificatorService {
	if lg == nil {
		lg = logger.New("notification-subscriber")
	}
	return &NotificatorService{lg: lg}
}

// Consume handles deliveries until the channel closes or ctx is done.
func (ns *NotificatorService) Consume(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-msgs:
			if !ok {
				return
			}
			ns.Handle(d.Body)
			_ = d.Ack(false)
		}
	}
}

// Handle logs one status change. Malformed bodies are logged and dropped.
func (ns *NotificatorService) Handle(body []byte) (domain.StatusChangeMessage, bool) {
	var msg domain.StatusChangeMessage
	if err := json.Unmarshal(body, &msg); err != nil || msg.OrderNumber == "" {
		ns.lg.Error("notification_malformed", err, map[string]any{"body": string(body)})
		return domain.StatusChangeMessage{}, false
	}
	ns.lg.Info("notification_received", map[string]any{
		"order_number": msg.OrderNumber,
		"old_status":   msg.OldStatus,
		"new_status":   msg.NewStatus,
		"changed_by":   msg.ChangedBy,
	})
	return msg, true
}
