package contentgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"
	"golang.org/x/sync/errgroup"

	"github.com/magabrotheeeer/contentgen/internal/cache"
	"github.com/magabrotheeeer/contentgen/internal/config"
	"github.com/magabrotheeeer/contentgen/internal/generator"
	"github.com/magabrotheeeer/contentgen/internal/lib/jwt"
	"github.com/magabrotheeeer/contentgen/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/contentgen/internal/lib/sl"
	"github.com/magabrotheeeer/contentgen/internal/migrations"
	adminservice "github.com/magabrotheeeer/contentgen/internal/services/admin"
	authservice "github.com/magabrotheeeer/contentgen/internal/services/auth"
	contentservice "github.com/magabrotheeeer/contentgen/internal/services/content"
	faqservice "github.com/magabrotheeeer/contentgen/internal/services/faq"
	historyservice "github.com/magabrotheeeer/contentgen/internal/services/history"
	notificationservice "github.com/magabrotheeeer/contentgen/internal/services/notification"
	reportservice "github.com/magabrotheeeer/contentgen/internal/services/report"
	subscriptionservice "github.com/magabrotheeeer/contentgen/internal/services/subscription"
	webhookservice "github.com/magabrotheeeer/contentgen/internal/services/webhook"
	"github.com/magabrotheeeer/contentgen/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

// App HTTP API вместе с его зависимостями.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New подключает хранилища, применяет миграции и собирает роутер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache not initialized: %w", err)
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.ConnRetries, cfg.ConnRetryWait)
	if err != nil {
		_ = db.Close()
		_ = cacheRedis.Close()
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = db.Close()
		_ = cacheRedis.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	notifications := notificationservice.NewNotificationService(db, db, rabbitmq.NewPublisher(ch), logger)
	history := historyservice.NewHistoryService(db)
	auth := authservice.NewAuthService(db, jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL), notifications, logger)
	if _, err = auth.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		_ = cacheRedis.Close()
		_ = db.Close()
		return nil, fmt.Errorf("failed to bootstrap admin: %w", err)
	}

	services := Services{
		Auth:          auth,
		Content:       contentservice.NewContentService(db, db, history, notifications, generator.New(), cacheRedis, logger),
		Notifications: notifications,
		History:       history,
		Subscriptions: subscriptionservice.NewSubscriptionService(db, history, notifications, logger),
		Reports:       reportservice.NewReportService(db, logger),
		FAQ:           faqservice.NewFAQService(db, cacheRedis, logger),
		Admin:         adminservice.NewAdminService(db, logger),
		Webhook:       webhookservice.NewWebhookService(notifications, cfg.WebhookSecret, logger),
		DB:            db,
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg.RateLimit, services)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run обслуживает запросы до отмены ctx, затем останавливает сервер и закрывает соединения.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down HTTP server gracefully")
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.server.Shutdown(timeoutCtx)
	})

	err := g.Wait()
	a.close()
	return err
}

func (a *App) close() {
	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("failed to close cache", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
}
