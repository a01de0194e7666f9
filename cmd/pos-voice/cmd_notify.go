package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pos-voice/internal/common/logger"
	"pos-voice/internal/connections/rabbitmq"
	"pos-voice/internal/microservices/notificator"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Log order status notifications from RabbitMQ",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.ValidateRabbitMQ(); err != nil {
			return err
		}

		lg := logger.New("notification-subscriber")
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		rmq, err := rabbitmq.Dial(cfg.RabbitMQ)
		if err != nil {
			return err
		}
		defer rmq.Close()

		return notificator.Start(ctx, rmq, lg)
	},
}
