// Package episodelist реализует HTTP-обработчик списка эпизодов сезона.
package episodelist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/anime-stream/internal/http/response"
	"github.com/magabrotheeeer/anime-stream/internal/lib/sl"
	"github.com/magabrotheeeer/anime-stream/internal/models"
)

// Handler обрабатывает запросы списка эпизодов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка эпизодов.
type Service interface {
	ListEpisodes(ctx context.Context, seasonID int) ([]*models.Episode, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Эпизоды сезона
// @Description Возвращает эпизоды сезона по порядку номеров.
// @Tags Episodes
// @Produce  json
// @Param id path int true "ID сезона"
// @Success 200 {object} map[string]any "Список эпизодов"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /seasons/{id}/episodes [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.episode.episodelist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	seasonID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	episodes, err := h.service.ListEpisodes(r.Context(), seasonID)
	if err != nil {
		log.Error("failed to list episodes", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list episodes"))
		return
	}

	log.Info("success to list episodes", slog.Int("count", len(episodes)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"episodes": episodes,
	}))
}
