// Package history реализует HTTP-обработчик истории окон премиум-доступа.
package history

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

// Handler обрабатывает запросы истории доступа.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис журнала доступа
}

// Service описывает интерфейс бизнес-логики истории доступа.
type Service interface {
	ListHistory(ctx context.Context, userUID string) ([]*models.AccessWindow, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary История премиум-доступа
// @Description Возвращает все окна доступа пользователя, включая expired и cancelled, новые первыми.
// @Tags Access
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "История окон доступа"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /access/history [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.access.history"

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

	windows, err := h.service.ListHistory(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list access history", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list access history"))
		return
	}

	log.Info("success to list access history", slog.Int("count", len(windows)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"history": windows,
	}))
}
