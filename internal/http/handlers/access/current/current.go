// Package current реализует HTTP-обработчик чтения текущего состояния
// премиум-доступа пользователя. Просроченное окно переводится в expired
// прямо на пути чтения.
package current

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

// Handler обрабатывает запросы текущего состояния доступа.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис журнала доступа
}

// Service описывает интерфейс бизнес-логики журнала доступа.
type Service interface {
	GetCurrentWindow(ctx context.Context, userUID string) (*models.AccessState, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Текущее состояние премиум-доступа
// @Description Возвращает активное окно доступа с оставшимися днями, либо статус expired/free.
// @Tags Access
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Состояние доступа"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /access/current [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.access.current"

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

	state, err := h.service.GetCurrentWindow(r.Context(), userUID)
	if err != nil {
		log.Error("failed to get current window", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get access state"))
		return
	}

	log.Info("success to get current window", slog.String("status", state.Status))
	render.JSON(w, r, response.StatusOKWithData(state))
}
