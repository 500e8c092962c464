// Package recentlist реализует HTTP-обработчик подборки недавно добавленных эпизодов.
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

// Handler обрабатывает запросы подборки свежих эпизодов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики подборки свежих эпизодов.
type Service interface {
	ListRecentEpisodes(ctx context.Context) ([]*models.Episode, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Недавно добавленные эпизоды
// @Description Возвращает двадцать последних добавленных эпизодов.
// @Tags Episodes
// @Produce  json
// @Success 200 {object} map[string]any "Свежие эпизоды"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /episodes/recent [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.episode.recentlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	episodes, err := h.service.ListRecentEpisodes(r.Context())
	if err != nil {
		log.Error("failed to list recent episodes", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list recent episodes"))
		return
	}

	log.Info("success to list recent episodes", slog.Int("count", len(episodes)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"episodes": episodes,
	}))
}
