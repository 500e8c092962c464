// Package popularlist реализует HTTP-обработчик подборки популярных тайтлов.
package popularlist

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

// Handler обрабатывает запросы подборки популярного.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики подборки популярного.
type Service interface {
	ListPopular(ctx context.Context) ([]*models.Anime, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Популярные тайтлы
// @Description Возвращает десять тайтлов с наивысшим рейтингом.
// @Tags Catalog
// @Produce  json
// @Success 200 {object} map[string]any "Популярные тайтлы"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /anime/popular [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.popularlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	anime, err := h.service.ListPopular(r.Context())
	if err != nil {
		log.Error("failed to list popular anime", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list popular anime"))
		return
	}

	log.Info("success to list popular anime", slog.Int("count", len(anime)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"anime": anime,
	}))
}
