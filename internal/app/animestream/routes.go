// Package animestream предоставляет маршруты для основного приложения.
package animestream

import (
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/anime-stream/internal/http/handlers/access/cancel"
	"github.com/magabrotheeeer/anime-stream/internal/http/handlers/access/check"
	"github.com/magabrotheeeer/anime-stream/internal/http/handlers/access/create"
	"github.com/magabrotheeeer/anime-stream/internal/http/handlers/access/current"
	"github.com/magabrotheeeer/anime-stream/internal/http/handlers/access/history"
	"github.com/magabrotheeeer/anime-stream/internal/http/handlers/analytics/eventcreate"
	"github.com/magabrotheeeer/anime-stream/internal/http/handlers/analytics/summary"
	"github.com/magabrotheeeer/anime-stream/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/anime-stream/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/anime-stream/internal/http/handlers/catalog/animelist"
	"github.com/magabrotheeeer/anime-stream/internal/http/handlers/catalog/animeread"
	"github.com/magabrotheeeer/anime-stream/internal/http/handlers/catalog/genrelist"
	"github.com/magabrotheeeer/anime-stream/internal/http/handlers/catalog/popularlist"
	animerecent "github.com/magabrotheeeer/anime-stream/internal/http/handlers/catalog/recentlist"
	"github.com/magabrotheeeer/anime-stream/internal/http/handlers/episode/episodelist"
	"github.com/magabrotheeeer/anime-stream/internal/http/handlers/episode/episoderead"
	episoderecent "github.com/magabrotheeeer/anime-stream/internal/http/handlers/episode/recentlist"
	"github.com/magabrotheeeer/anime-stream/internal/http/handlers/episode/seasonlist"
	"github.com/magabrotheeeer/anime-stream/internal/http/handlers/favorite/favoriteadd"
	"github.com/magabrotheeeer/anime-stream/internal/http/handlers/favorite/favoritelist"
	"github.com/magabrotheeeer/anime-stream/internal/http/handlers/favorite/favoriteremove"
	"github.com/magabrotheeeer/anime-stream/internal/http/handlers/health"
	"github.com/magabrotheeeer/anime-stream/internal/http/handlers/payment/paymentstatus"
	"github.com/magabrotheeeer/anime-stream/internal/http/handlers/payment/paymentwebhook"
	"github.com/magabrotheeeer/anime-stream/internal/http/handlers/payment/preferencecreate"
	"github.com/magabrotheeeer/anime-stream/internal/http/handlers/plan/planlist"
	"github.com/magabrotheeeer/anime-stream/internal/http/handlers/watch/historylist"
	"github.com/magabrotheeeer/anime-stream/internal/http/handlers/watch/progressread"
	"github.com/magabrotheeeer/anime-stream/internal/http/handlers/watch/progresssave"
	"github.com/magabrotheeeer/anime-stream/internal/http/middlewarectx"
	accessservice "github.com/magabrotheeeer/anime-stream/internal/services/access"
	analyticsservice "github.com/magabrotheeeer/anime-stream/internal/services/analytics"
	authservice "github.com/magabrotheeeer/anime-stream/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/anime-stream/internal/services/catalog"
	favoritesservice "github.com/magabrotheeeer/anime-stream/internal/services/favorites"
	paymentservice "github.com/magabrotheeeer/anime-stream/internal/services/payment"
	watchservice "github.com/magabrotheeeer/anime-stream/internal/services/watch"
	"github.com/magabrotheeeer/anime-stream/internal/storage"

	"log/slog"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *storage.Storage,
	authService *authservice.Service, accessService *accessservice.Service,
	catalogService *catalogservice.Service, favoritesService *favoritesservice.Service,
	watchService *watchservice.Service, analyticsService *analyticsservice.Service,
	paymentService *paymentservice.Service, paymentPublicKey string) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger, db).ServeHTTP)
		r.Get("/plans", planlist.New(logger, accessService).ServeHTTP)

		// Каталог открыт без аутентификации, закрыт только просмотр премиум-контента
		r.Get("/anime", animelist.New(logger, catalogService).ServeHTTP)
		r.Get("/anime/genres", genrelist.New(logger, catalogService).ServeHTTP)
		r.Get("/anime/popular", popularlist.New(logger, catalogService).ServeHTTP)
		r.Get("/anime/recent", animerecent.New(logger, catalogService).ServeHTTP)
		r.Get("/anime/{id}", animeread.New(logger, catalogService).ServeHTTP)
		r.Get("/anime/{id}/seasons", seasonlist.New(logger, catalogService).ServeHTTP)
		r.Get("/seasons/{id}/episodes", episodelist.New(logger, catalogService).ServeHTTP)
		r.Get("/episodes/recent", episoderecent.New(logger, catalogService).ServeHTTP)
		r.Get("/episodes/{id}", episoderead.New(logger, catalogService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/access/current", current.New(logger, accessService).ServeHTTP)
			r.Post("/access/create", create.New(logger, accessService).ServeHTTP)
			r.Post("/access/cancel", cancel.New(logger, accessService).ServeHTTP)
			r.Get("/access/history", history.New(logger, accessService).ServeHTTP)
			r.Get("/access/check/{animeID}", check.New(logger, accessService).ServeHTTP)

			r.Post("/payments/preference", preferencecreate.New(logger, paymentService, paymentPublicKey).ServeHTTP)
			r.Get("/payments/status/{paymentID}", paymentstatus.New(logger, paymentService).ServeHTTP)

			r.Get("/favorites", favoritelist.New(logger, favoritesService).ServeHTTP)
			r.Post("/favorites/{animeID}", favoriteadd.New(logger, favoritesService).ServeHTTP)
			r.Delete("/favorites/{animeID}", favoriteremove.New(logger, favoritesService).ServeHTTP)

			r.Get("/watch/progress/{episodeID}", progressread.New(logger, watchService).ServeHTTP)
			r.Post("/watch/progress", progresssave.New(logger, watchService).ServeHTTP)
			r.Get("/watch/history", historylist.New(logger, watchService).ServeHTTP)

			r.Post("/analytics/events", eventcreate.New(logger, analyticsService).ServeHTTP)
			r.Get("/analytics/summary", summary.New(logger, analyticsService).ServeHTTP)
		})

		// Webhook endpoint (без аутентификации)
		r.Post("/payments/webhook", paymentwebhook.New(logger, paymentService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
