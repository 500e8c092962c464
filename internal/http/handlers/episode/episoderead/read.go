// Package episoderead реализует HTTP-обработчик чтения эпизода по идентификатору.
package episoderead

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

// Handler обрабатывает запросы чтения эпизода.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения эпизода.
type Service interface {
	GetEpisode(ctx context.Context, episodeID int) (*models.Episode, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Эпизод по идентификатору
// @Description Возвращает эпизод с названиями сезона и тайтла.
// @Tags Episodes
// @Produce  json
// @Param id path int true "ID эпизода"
// @Success 200 {object} map[string]any "Данные эпизода"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Эпизод не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /episodes/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.episode.episoderead"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	episodeID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	episode, err := h.service.GetEpisode(r.Context(), episodeID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			log.Error("episode not found", slog.Int("episode_id", episodeID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("episode not found"))
			return
		}
		log.Error("failed to read episode", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read episode"))
		return
	}

	log.Info("success to read episode", slog.Int("episode_id", episodeID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"episode": episode,
	}))
}
