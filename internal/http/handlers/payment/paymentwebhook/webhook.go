// Package paymentwebhook реализует HTTP-обработчик уведомлений платёжного
// провайдера.
//
// Структурно валидные уведомления всегда получают HTTP 200 независимо от
// результата обработки: ответ с ошибкой заставил бы провайдера бесконечно
// повторять доставку.
package paymentwebhook

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/anime-stream/internal/http/response"
	"github.com/magabrotheeeer/anime-stream/internal/lib/sl"
	"github.com/magabrotheeeer/anime-stream/internal/services/payment"
)

// Service описывает интерфейс обработки уведомления.
type Service interface {
	ProcessWebhook(ctx context.Context, notification payment.WebhookNotification) error
}

// Handler обрабатывает webhook-уведомления провайдера.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Webhook платёжного провайдера
// @Description Принимает уведомление о платеже. Подтверждённый платёж активирует премиум-доступ.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Param request body payment.WebhookNotification true "Уведомление провайдера"
// @Success 200 {object} map[string]any "Уведомление принято"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Router /payments/webhook [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.webhook"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var notification payment.WebhookNotification
	if err := json.NewDecoder(r.Body).Decode(&notification); err != nil {
		log.Error("failed to decode webhook payload", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("webhook payload decoded",
		slog.String("type", notification.Type), slog.String("data_id", notification.Data.ID))

	// Ошибки обработки логируются, но не меняют ответ: провайдер не должен
	// повторять доставку этого уведомления.
	if err := h.service.ProcessWebhook(r.Context(), notification); err != nil {
		log.Error("failed to process webhook", sl.Err(err))
	}

	w.WriteHeader(http.StatusOK)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "webhook received",
	}))
}
