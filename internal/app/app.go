package app

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"inkpost/internal/config"
	"inkpost/internal/db"
	"inkpost/internal/handlers"
	"inkpost/internal/logger"
	"inkpost/internal/repository"
	"inkpost/internal/routes"
	"inkpost/internal/services"
)

const emailWorkers = 3

type App struct {
	Router *mux.Router

	pool  *pgxpool.Pool
	queue *services.EmailQueue
}

func InitApp(ctx context.Context, cfg *config.Config) (*App, error) {
	conn, err := connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := db.RunMigrations(cfg.GetDSN()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	logger.Log.Info("Migrations applied")

	// Repositories
	articleRepo := repository.NewArticleRepo(conn)

	// Services
	retry := services.DefaultRetryPolicy()
	retry.MaxRetries = cfg.StoreRetryMax
	retry.MaxElapsedTime = cfg.StoreRetryTimeout

	articleSvc := services.NewArticleService(articleRepo, retry)
	authSvc := services.NewAuthService(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.JWTSecret, cfg.AccessTTL())

	emailSvc := services.NewEmailService(cfg)
	queue := services.NewEmailQueue(100)
	queue.Start(emailWorkers, emailSvc)

	contactTo := cfg.ContactTo
	if contactTo == "" {
		contactTo = cfg.SMTPUser
	}
	contactSvc := services.NewContactService(queue, contactTo)

	// Routes
	router := mux.NewRouter()
	routes.InitRoutes(router, routes.Handlers{
		Auth:    handlers.NewAuthHandler(authSvc),
		Article: handlers.NewArticleHandler(articleSvc),
		Contact: handlers.NewContactHandler(contactSvc),
		Logs:    handlers.NewAdminLogsHandler(cfg.LogDir),
	}, cfg.JWTSecret)

	return &App{Router: router, pool: conn, queue: queue}, nil
}

// Close drains queued emails and closes the pool.
func (a *App) Close() {
	a.queue.Close()
	a.pool.Close()
}

// connect retries the first connection so the service can start before the
// database is ready.
func connect(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = 30 * time.Second

	var pool *pgxpool.Pool
	err := backoff.RetryNotify(func() error {
		p, err := db.NewPostgresConnection(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}, backoff.WithContext(policy, ctx), func(err error, wait time.Duration) {
		logger.Log.Warn("Database not reachable, retrying",
			zap.String("dsn", cfg.GetDSNSafe()), zap.Duration("wait", wait), zap.Error(err))
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.GetDSNSafe(), err)
	}

	logger.Log.Info("Connected to database", zap.String("dsn", cfg.GetDSNSafe()))
	return pool, nil
}
