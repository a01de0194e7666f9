package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pos-voice/internal/common/logger"
	"pos-voice/internal/connections/database"
	"pos-voice/internal/connections/rabbitmq"
	catrepo "pos-voice/internal/microservices/catalog/repository"
	catsvc "pos-voice/internal/microservices/catalog/service"
	"pos-voice/internal/microservices/order/repository"
	"pos-voice/internal/microservices/order/service"
	"pos-voice/internal/microservices/terminal"
	"pos-voice/internal/voice/speech"
)

var (
	listenCategory int64
	listenName     string
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Run a voice terminal over transcripts read from stdin",
	Long: `Run a voice order terminal. Each line on stdin is treated as one
finalized speech transcript. Finalized orders are stored in PostgreSQL and,
when RabbitMQ is configured, published to the orders exchange.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.ValidateDatabase(); err != nil {
			return err
		}
		if listenName != "" {
			cfg.Terminal.Name = listenName
		}
		if listenCategory != 0 {
			cfg.Terminal.CategoryID = listenCategory
		}

		lg := logger.New("terminal")
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		db, err := database.ConnectDB(ctx, cfg.Database, database.DefaultRetry, lg)
		if err != nil {
			return err
		}
		defer db.Close()

		var pub service.Publisher
		if err := cfg.ValidateRabbitMQ(); err != nil {
			lg.Warn("rabbitmq_disabled", map[string]any{"reason": err.Error()})
		} else {
			rmq, err := rabbitmq.Dial(cfg.RabbitMQ)
			if err != nil {
				return err
			}
			defer rmq.Close()
			if err := rmq.DeclareTopology(); err != nil {
				return err
			}
			pub = rmq
		}

		orders := service.NewOrderService(repository.NewOrderRepository(db), pub, lg)
		catalog := catsvc.NewCatalogService(catrepo.NewCatalogRepository(db))

		categoryID := cfg.Terminal.CategoryID
		if categoryID == 0 {
			cats, err := catalog.Categories(ctx)
			if err != nil {
				return err
			}
			if len(cats) == 0 {
				return fmt.Errorf("no categories in catalog")
			}
			categoryID = cats[0].ID
		}

		term := terminal.New(cfg.Terminal.Name, orders, catalog, lg)
		if err := term.SelectCategory(ctx, categoryID); err != nil {
			return err
		}
		return terminal.Listen(ctx, term, speech.NewLineRecognizer(os.Stdin))
	},
}

func init() {
	listenCmd.Flags().Int64Var(&listenCategory, "category", 0, "category to take orders from (overrides terminal.category_id)")
	listenCmd.Flags().StringVar(&listenName, "name", "", "terminal name (overrides terminal.name)")
}
