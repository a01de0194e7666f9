package order

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"

	"pos-voice/internal/common/httpx"
	"pos-voice/internal/common/logger"
	"pos-voice/internal/config"
	cathandlers "pos-voice/internal/microservices/catalog/handlers"
	catrepo "pos-voice/internal/microservices/catalog/repository"
	catsvc "pos-voice/internal/microservices/catalog/service"
	"pos-voice/internal/microservices/order/handlers"
	"pos-voice/internal/microservices/order/repository"
	"pos-voice/internal/microservices/order/service"
)

// Run serves the order and catalog API until ctx is done.
func Run(ctx context.Context, cfg config.ServerConfig, db *sql.DB, pub service.Publisher, lg *logger.Logger) error {
	repo := repository.New(db)
	svc := service.New(*repo, pub, lg)
	catalog := catsvc.NewCatalogService(catrepo.NewCatalogRepository(db))

	mux := Router(handlers.New(svc), cathandlers.NewCatalogHandler(catalog))
	addr := ":" + strconv.Itoa(cfg.Port)
	lg.Info("service_started", map[string]any{"addr": addr, "max_concurrent": cfg.MaxConcurrent})

	return httpx.New(addr, httpx.Limit(cfg.MaxConcurrent, mux)).Run(ctx)
}

func Router(h *handlers.Handler, catalog *cathandlers.CatalogHandler) *http.ServeMux {
	mux := http.NewServeMux()
	h.OrderHandler.Register(mux)
	h.SalesHandler.Register(mux)
	catalog.Register(mux)
	return mux
}
