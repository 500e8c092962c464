// Package animestream собирает основное HTTP-приложение: хранилище, кеш,
// брокер сообщений, платёжный клиент и все сервисы с маршрутами.
package animestream

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/anime-stream/internal/cache"
	"github.com/magabrotheeeer/anime-stream/internal/config"
	"github.com/magabrotheeeer/anime-stream/internal/lib/jwt"
	"github.com/magabrotheeeer/anime-stream/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/anime-stream/internal/migrations"
	"github.com/magabrotheeeer/anime-stream/internal/paymentprovider"
	accessservice "github.com/magabrotheeeer/anime-stream/internal/services/access"
	analyticsservice "github.com/magabrotheeeer/anime-stream/internal/services/analytics"
	authservice "github.com/magabrotheeeer/anime-stream/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/anime-stream/internal/services/catalog"
	favoritesservice "github.com/magabrotheeeer/anime-stream/internal/services/favorites"
	paymentservice "github.com/magabrotheeeer/anime-stream/internal/services/payment"
	watchservice "github.com/magabrotheeeer/anime-stream/internal/services/watch"
	"github.com/magabrotheeeer/anime-stream/internal/storage"
)

// App инкапсулирует HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New собирает приложение: подключается к PostgreSQL, Redis и RabbitMQ,
// применяет миграции и регистрирует маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.AddressRabbit, cfg.RetriesRabbit, cfg.DelayRabbit)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(ch, "notifications")

	providerClient := paymentprovider.NewClient(cfg.PaymentProvider.AccessToken, cfg.PaymentProvider.APIURL)
	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.New(db, jwtMaker)
	accessService := accessservice.New(db, cacheRedis, publisher, logger)
	catalogService := catalogservice.New(db, cacheRedis, logger)
	favoritesService := favoritesservice.New(db)
	watchService := watchservice.New(db)
	analyticsService := analyticsservice.New(db, logger)
	paymentService := paymentservice.New(providerClient, db, accessService,
		cfg.PaymentProvider, cfg.PublicURL, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, db,
		authService, accessService, catalogService, favoritesService,
		watchService, analyticsService, paymentService, cfg.PaymentProvider.PublicKey)

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

// Run запускает HTTP-сервер и останавливает его при отмене контекста.
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
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.ch.Close()
		_ = a.conn.Close()
		_ = a.cache.Close()
		_ = a.db.DB.Close()
		return err
	}
}
