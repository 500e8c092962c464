// Package create реализует HTTP-обработчик покупки премиум-доступа.
//
// Handler принимает JSON с идентификатором плана, валидирует его, извлекает
// UID пользователя из контекста и создает окно доступа через сервис.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/anime-stream/internal/http/middlewarectx"
	"github.com/magabrotheeeer/anime-stream/internal/http/response"
	"github.com/magabrotheeeer/anime-stream/internal/lib/sl"
	"github.com/magabrotheeeer/anime-stream/internal/models"
	"github.com/magabrotheeeer/anime-stream/internal/services/access"
)

// Handler обрабатывает запросы на создание окна доступа.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис журнала доступа
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики создания окна доступа.
type Service interface {
	CreateWindow(ctx context.Context, userUID string, planID int, paymentMethod string) (*models.AccessWindow, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Купить премиум-доступ
// @Description Создает окно доступа по активному плану и обновляет сводку пользователя.
// @Tags Access
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyWindow true "Идентификатор плана и метод оплаты"
// @Success 201 {object} map[string]any "Созданное окно доступа"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "План не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /access/create [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.access.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyWindow
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	window, err := h.service.CreateWindow(r.Context(), userUID, req.PlanID, req.PaymentMethod)
	if err != nil {
		if errors.Is(err, access.ErrPlanNotFound) {
			log.Error("plan not found", slog.Int("plan_id", req.PlanID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("plan not found"))
			return
		}
		log.Error("failed to create access window", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create access window"))
		return
	}

	log.Info("success to create access window", slog.Int("id", window.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"window": window,
	}))
}
