package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"pos-voice/internal/common/logger"
	"pos-voice/internal/config"
)

// Retry controls how long ConnectDB keeps trying to reach Postgres.
type Retry struct {
	Attempts int
	Delay    time.Duration
	PingTTL  time.Duration
}

var DefaultRetry = Retry{Attempts: 10, Delay: 2 * time.Second, PingTTL: 5 * time.Second}

// DSN builds a postgres:// URL with escaped credentials.
func DSN(cfg config.DatabaseConfig) string {
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.Database,
		RawQuery: url.Values{"sslmode": {sslmode}}.Encode(),
	}
	return u.String()
}

// ConnectDB opens a pgx-backed *sql.DB and pings it, retrying while the
// database is still coming up.
func ConnectDB(ctx context.Context, cfg config.DatabaseConfig, retry Retry, lg *logger.Logger) (*sql.DB, error) {
	if retry.Attempts <= 0 {
		retry = DefaultRetry
	}

	var (
		db  *sql.DB
		err error
	)
	for i := 1; i <= retry.Attempts; i++ {
		db, err = sql.Open("pgx", DSN(cfg))
		if err == nil {
			pctx, cancel := context.WithTimeout(ctx, retry.PingTTL)
			err = db.PingContext(pctx)
			cancel()
			if err == nil {
				lg.Info("db_connected", map[string]any{"host": cfg.Host, "port": cfg.Port, "database": cfg.Database})
				return db, nil
			}
			_ = db.Close()
		}
		lg.Debug("db_connect_retry", map[string]any{"attempt": i, "error": err.Error()})

		select {
		case <-time.After(retry.Delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("db connect canceled: %w", ctx.Err())
		}
	}
	return nil, fmt.Errorf("database unreachable after %d attempts: %w", retry.Attempts, err)
}
