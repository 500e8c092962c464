// Package progressread реализует HTTP-обработчик чтения прогресса просмотра эпизода.
package progressread

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/anime-stream/internal/http/middlewarectx"
	"github.com/magabrotheeeer/anime-stream/internal/http/response"
	"github.com/magabrotheeeer/anime-stream/internal/lib/sl"
	"github.com/magabrotheeeer/anime-stream/internal/models"
)

// Handler обрабатывает запросы чтения прогресса просмотра.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения прогресса.
type Service interface {
	GetProgress(ctx context.Context, userUID string, episodeID int) (*models.WatchProgress, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Прогресс просмотра эпизода
// @Description Возвращает прогресс просмотра эпизода. Без записи — нулевой прогресс.
// @Tags Watch
// @Produce  json
// @Security BearerAuth
// @Param episodeID path int true "ID эпизода"
// @Success 200 {object} map[string]any "Прогресс просмотра"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /watch/progress/{episodeID} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.watch.progressread"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	episodeID, err := strconv.Atoi(chi.URLParam(r, "episodeID"))
	if err != nil {
		log.Error("failed to decode episode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode episode id from url"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	progress, err := h.service.GetProgress(r.Context(), userUID, episodeID)
	if err != nil {
		log.Error("failed to get watch progress", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get watch progress"))
		return
	}

	log.Info("success to get watch progress", slog.Int("episode_id", episodeID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"progress": progress,
	}))
}
