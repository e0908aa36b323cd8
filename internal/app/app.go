package app

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/brigadly/backend/internal/config"
	"github.com/brigadly/backend/internal/utils"
)

const (
	maxConnectRetries = 5
	initialBackoff    = 500 * time.Millisecond
	connectTimeout    = 5 * time.Second
)

// App holds process-wide resources shared by controllers and services.
type App struct {
	Config *config.Config
	DB     *pgxpool.Pool
}

func NewApp(cfg *config.Config) (*App, error) {
	pool, err := connectDB(cfg.DBUrl)
	if err != nil {
		return nil, err
	}
	return &App{Config: cfg, DB: pool}, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

// connectDB dials Postgres with exponential backoff so the service survives
// the DB container coming up slightly after it in local compose setups.
func connectDB(dbURL string) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var err error

	backoff := initialBackoff
	for attempt := 1; attempt <= maxConnectRetries; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		pool, err = pgxpool.Connect(ctx, dbURL)
		cancel()
		if err == nil {
			if pingErr := pool.Ping(context.Background()); pingErr == nil {
				return pool, nil
			} else {
				pool.Close()
				err = pingErr
			}
		}
		utils.Logger.WithError(err).Warnf("DB connect attempt %d/%d failed, retrying in %s", attempt, maxConnectRetries, backoff)
		time.Sleep(backoff)
		backoff *= 2
	}
	return nil, err
}
