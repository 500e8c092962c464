// Package preferencecreate реализует HTTP-обработчик создания платёжной
// преференции: пользователь выбирает план и получает адрес чекаута провайдера.
package preferencecreate

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
	"github.com/magabrotheeeer/anime-stream/internal/paymentprovider"
	"github.com/magabrotheeeer/anime-stream/internal/services/payment"
)

// Request — входные данные для создания преференции.
type Request struct {
	PlanID int `json:"plan_id" validate:"required,gt=0"`
}

// Handler обрабатывает запросы на создание платёжной преференции.
type Handler struct {
	log       *slog.Logger        // Логгер для записи информации и ошибок
	service   Service             // Сервис оплаты
	publicKey string              // Публичный ключ провайдера для клиентского SDK
	validate  *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики оплаты.
type Service interface {
	CreatePreference(ctx context.Context, userUID string, planID int) (*paymentprovider.CreatePreferenceResponse, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, publicKey string) *Handler {
	return &Handler{
		log:       log,
		service:   service,
		publicKey: publicKey,
		validate:  validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать платёжную преференцию
// @Description Создает преференцию у платёжного провайдера и возвращает адрес чекаута.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Идентификатор плана"
// @Success 200 {object} map[string]any "Преференция создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "План не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 502 {object} response.ErrorResponse "Платёжный провайдер недоступен"
// @Router /payments/preference [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.preferencecreate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	preference, err := h.service.CreatePreference(r.Context(), userUID, req.PlanID)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrPlanNotFound):
			log.Error("plan not found", slog.Int("plan_id", req.PlanID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("plan not found"))
		case errors.Is(err, paymentprovider.ErrExternalService):
			log.Error("payment provider unavailable", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("payment provider unavailable"))
		default:
			log.Error("failed to create preference", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create preference"))
		}
		return
	}

	log.Info("success to create preference", slog.String("preference_id", preference.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"preference_id": preference.ID,
		"init_point":    preference.InitPoint,
		"public_key":    h.publicKey,
	}))
}
