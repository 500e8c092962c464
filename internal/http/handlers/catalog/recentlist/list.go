// Package recentlist реализует HTTP-обработчик подборки недавно добавленных тайтлов.
package recentlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/anime-stream/internal/http/response"
	"github.com/magabrotheeeer/anime-stream/internal/lib/sl"
	"github.com/magabrotheeeer/anime-stream/internal/models"
)

// Handler обрабатывает запросы подборки новинок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики подборки новинок.
type Service interface {
	ListRecent(ctx context.Context) ([]*models.Anime, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Недавно добавленные тайтлы
// @Description Возвращает десять последних добавленных тайтлов.
// @Tags Catalog
// @Produce  json
// @Success 200 {object} map[string]any "Новинки каталога"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /anime/recent [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.recentlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	anime, err := h.service.ListRecent(r.Context())
	if err != nil {
		log.Error("failed to list recent anime", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list recent anime"))
		return
	}

	log.Info("success to list recent anime", slog.Int("count", len(anime)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"anime": anime,
	}))
}
