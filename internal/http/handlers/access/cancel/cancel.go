// Package cancel реализует HTTP-обработчик отмены премиум-доступа.
// Операция идемпотентна: отсутствие активного окна — тоже успех.
package cancel

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/anime-stream/internal/http/middlewarectx"
	"github.com/magabrotheeeer/anime-stream/internal/http/response"
	"github.com/magabrotheeeer/anime-stream/internal/lib/sl"
)

// Handler обрабатывает запросы на отмену доступа.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис журнала доступа
}

// Service описывает интерфейс бизнес-логики отмены доступа.
type Service interface {
	CancelWindow(ctx context.Context, userUID string) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отменить премиум-доступ
// @Description Переводит активное окно в cancelled и сбрасывает статус пользователя. Идемпотентна.
// @Tags Access
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Доступ отменён"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /access/cancel [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.access.cancel"

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

	if err := h.service.CancelWindow(r.Context(), userUID); err != nil {
		log.Error("failed to cancel access window", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not cancel access window"))
		return
	}

	log.Info("success to cancel access window", slog.String("user_uid", userUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "access cancelled",
	}))
}
