// Package seasonlist реализует HTTP-обработчик списка сезонов тайтла.
package seasonlist

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/anime-stream/internal/http/response"
	"github.com/magabrotheeeer/anime-stream/internal/lib/sl"
	"github.com/magabrotheeeer/anime-stream/internal/models"
	"github.com/magabrotheeeer/anime-stream/internal/services/catalog"
)

// Handler обрабатывает запросы списка сезонов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка сезонов.
type Service interface {
	ListSeasons(ctx context.Context, animeID int) ([]*models.Season, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сезоны тайтла
// @Description Возвращает сезоны тайтла с числом эпизодов в каждом.
// @Tags Episodes
// @Produce  json
// @Param id path int true "ID тайтла"
// @Success 200 {object} map[string]any "Список сезонов"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Тайтл не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /anime/{id}/seasons [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.episode.seasonlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	animeID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	seasons, err := h.service.ListSeasons(r.Context(), animeID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			log.Error("anime not found", slog.Int("anime_id", animeID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("anime not found"))
			return
		}
		log.Error("failed to list seasons", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list seasons"))
		return
	}

	log.Info("success to list seasons", slog.Int("count", len(seasons)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"seasons": seasons,
	}))
}
