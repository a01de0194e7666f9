package notificator

import (
	"context"

	"pos-voice/internal/common/logger"
	"pos-voice/internal/connections/rabbitmq"
	"pos-voice/internal/microservices/notificator/service"
)

const consumerTag = "notificator"

// Start subscribes to status notifications and logs them until ctx is done.
func Start(ctx context.Context, rmqClient *rabbitmq.Client, lg *logger.Logger) error {
	msgs, err := rmqClient.Subscribe(rabbitmq.NotificationsExchange, rabbitmq.NotificationsQueue, consumerTag, 10)
	if err != nil {
		return err
	}
	lg.Info("subscriber_started", map[string]any{"queue": rabbitmq.NotificationsQueue})

	svc := service.NewNotificatorService(lg)
	svc.Consume(ctx, msgs)

	_ = rmqClient.CancelConsumer(consumerTag)
	lg.Info("graceful_shutdown", nil)
	return nil
}
