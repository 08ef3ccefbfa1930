package kursevi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/access"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/cache"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/config"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/entitlement"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/handlers/health"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/http/middlewarectx"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/csrf"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/jwt"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/rabbitmq"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/sl"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/lib/smtp"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/migrations"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/paymentprovider"
	adminsvc "github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/services/admin"
	authsvc "github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/services/auth"
	coursesvc "github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/services/course"
	paymentsvc "github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/services/payment"
	"github.com/andjelaaNikolic/internet-tehnologije-2025-appkupovinakursevazasminkanje-2022-0117/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

// App - HTTP API магазина вместе с открытыми ресурсами.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	amqp   *amqp.Connection
}

// New подключает хранилище, кеш и брокер, применяет миграции и собирает
// маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.kursevi.New"

	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app := &App{logger: logger, db: db, cache: cacheRedis}

	// Без брокера события о покупках не публикуются.
	var publisher paymentsvc.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.Retries, cfg.RabbitMQ.RetryDelay)
		if err != nil {
			app.closeResources()
			return nil, err
		}
		app.amqp = conn
		ch, err := rabbitmq.SetupChannel(conn, rabbitmq.ShopQueues())
		if err != nil {
			app.closeResources()
			return nil, err
		}
		publisher = rabbitmq.NewPublisher(ch)
	} else {
		logger.Warn("rabbitmq url is empty, purchase events are disabled")
	}

	codec, err := jwt.NewCodec(cfg.Security.JWTSecret, cfg.Security.TokenTTL)
	if err != nil {
		app.closeResources()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	guard, err := csrf.NewGuard(cfg.Security.CSRFSecret, cfg.Security.CSRFTokenTTL)
	if err != nil {
		app.closeResources()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	policy, err := access.New()
	if err != nil {
		app.closeResources()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	mailer := smtp.New(smtp.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		FromName: cfg.SMTP.FromName,
		BaseURL:  cfg.SMTP.BaseURL,
	})
	provider := paymentprovider.NewClient(paymentprovider.Options{
		APIURL:     cfg.Payment.APIURL,
		APIKey:     cfg.Payment.APIKey,
		Currency:   cfg.Payment.Currency,
		SuccessURL: cfg.Payment.SuccessURL,
		CancelURL:  cfg.Payment.CancelURL,
		Timeout:    cfg.Payment.Timeout,
	})

	router := chi.NewRouter()
	RegisterRoutes(router, Deps{
		Config:   cfg,
		Logger:   logger,
		Resolver: middlewarectx.NewResolver(codec),
		Guard:    guard,
		Policy:   policy,
		Auth:     authsvc.NewService(db, codec, mailer, cfg.Security.ResetTokenTTL, logger),
		Courses:  coursesvc.NewService(db, cacheRedis, entitlement.NewResolver(db), cfg.RedisConnection.CourseTTL, logger),
		Payments: paymentsvc.New(db, provider, publisher, logger),
		Admin:    adminsvc.NewService(db, logger),
		Health:   app.checks(),
	})

	app.server = &http.Server{
		Addr:         cfg.HTTPServer.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.TimeoutHTTP,
		WriteTimeout: cfg.HTTPServer.TimeoutHTTP,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}
	return app, nil
}

// Run обслуживает запросы до отмены ctx, затем плавно останавливает сервер.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.closeResources()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.closeResources()
		return err
	}
}

func (a *App) checks() map[string]health.Check {
	checks := map[string]health.Check{
		"postgres": a.db.Ready,
		"redis":    a.cache.Ping,
	}
	if a.amqp != nil {
		checks["rabbitmq"] = func(context.Context) error {
			if a.amqp.IsClosed() {
				return amqp.ErrClosed
			}
			return nil
		}
	}
	return checks
}

func (a *App) closeResources() {
	if a.amqp != nil {
		if err := a.amqp.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("failed to close redis client", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", sl.Err(err))
	}
}
