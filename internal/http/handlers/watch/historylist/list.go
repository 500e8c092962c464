// Package historylist реализует HTTP-обработчик истории просмотра пользователя.
package historylist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/anime-stream/internal/http/middlewarectx"
	"github.com/magabrotheeeer/anime-stream/internal/http/response"
	"github.com/magabrotheeeer/anime-stream/internal/lib/sl"
	"github.com/magabrotheeeer/anime-stream/internal/models"
)

// Handler обрабатывает запросы истории просмотра.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики истории просмотра.
type Service interface {
	ListHistory(ctx context.Context, userUID string) ([]*models.WatchHistoryItem, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary История просмотра
// @Description Возвращает последние записи истории просмотра с данными эпизода и тайтла.
// @Tags Watch
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "История просмотра"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /watch/history [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.watch.historylist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	history, err := h.service.ListHistory(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list watch history", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list watch history"))
		return
	}

	log.Info("success to list watch history", slog.Int("count", len(history)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"history": history,
	}))
}
