// Package paymentstatus реализует HTTP-обработчик запроса статуса платежа
// у внешнего провайдера.
package paymentstatus

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/anime-stream/internal/http/response"
	"github.com/magabrotheeeer/anime-stream/internal/lib/sl"
	"github.com/magabrotheeeer/anime-stream/internal/paymentprovider"
)

// Handler обрабатывает запросы статуса платежа.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис оплаты
}

// Service описывает интерфейс запроса статуса платежа.
type Service interface {
	GetPaymentStatus(ctx context.Context, paymentID string) (*paymentprovider.Payment, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Статус платежа
// @Description Возвращает статус платежа у платёжного провайдера.
// @Tags Payments
// @Produce  json
// @Security BearerAuth
// @Param paymentID path string true "ID платежа"
// @Success 200 {object} map[string]any "Данные платежа"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 502 {object} response.ErrorResponse "Платёжный провайдер недоступен"
// @Router /payments/status/{paymentID} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.status"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	paymentID := chi.URLParam(r, "paymentID")
	if paymentID == "" {
		log.Error("payment id missing in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("payment id missing in url"))
		return
	}

	paymentInfo, err := h.service.GetPaymentStatus(r.Context(), paymentID)
	if err != nil {
		if errors.Is(err, paymentprovider.ErrExternalService) {
			log.Error("payment provider unavailable", sl.Err(err))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("payment provider unavailable"))
			return
		}
		log.Error("failed to get payment status", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get payment status"))
		return
	}

	log.Info("success to get payment status", slog.String("status", paymentInfo.Status))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":     paymentInfo.ID,
		"status": paymentInfo.Status,
	}))
}
