// Package genrelist реализует HTTP-обработчик списка жанров каталога.
package genrelist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/anime-stream/internal/http/response"
	"github.com/magabrotheeeer/anime-stream/internal/lib/sl"
)

// Handler обрабатывает запросы списка жанров.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка жанров.
type Service interface {
	ListGenres(ctx context.Context) ([]string, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список жанров
// @Description Возвращает уникальные жанры каталога.
// @Tags Catalog
// @Produce  json
// @Success 200 {object} map[string]any "Список жанров"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /anime/genres [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.genrelist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	genres, err := h.service.ListGenres(r.Context())
	if err != nil {
		log.Error("failed to list genres", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list genres"))
		return
	}

	log.Info("success to list genres", slog.Int("count", len(genres)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"genres": genres,
	}))
}
