package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pos-voice/internal/common/logger"
	"pos-voice/internal/connections/database"
	"pos-voice/internal/connections/rabbitmq"
	"pos-voice/internal/microservices/order"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the order and catalog HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.ValidateDatabase(); err != nil {
			return err
		}
		if err := cfg.ValidateRabbitMQ(); err != nil {
			return err
		}
		if servePort != 0 {
			cfg.Server.Port = servePort
		}

		lg := logger.New("order-service")
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		db, err := database.ConnectDB(ctx, cfg.Database, database.DefaultRetry, lg)
		if err != nil {
			return err
		}
		defer db.Close()

		rmq, err := rabbitmq.Dial(cfg.RabbitMQ)
		if err != nil {
			return err
		}
		defer rmq.Close()
		if err := rmq.DeclareTopology(); err != nil {
			return err
		}
		lg.Info("rabbitmq_connected", map[string]any{"host": cfg.RabbitMQ.Host, "port": cfg.RabbitMQ.Port})

		if err := order.Run(ctx, cfg.Server, db, rmq, lg); err != nil {
			lg.Error("fatal", err, nil)
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "http port (overrides server.port)")
}
