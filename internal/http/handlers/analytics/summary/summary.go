// Package summary реализует HTTP-обработчик агрегата событий аналитики.
package summary

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/anime-stream/internal/http/response"
	"github.com/magabrotheeeer/anime-stream/internal/lib/sl"
	"github.com/magabrotheeeer/anime-stream/internal/models"
)

// Handler обрабатывает запросы агрегата аналитики.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики агрегата аналитики.
type Service interface {
	Summary(ctx context.Context, days int) ([]*models.EventCount, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводка событий аналитики
// @Description Возвращает число событий каждого типа за последние N дней (по умолчанию 7).
// @Tags Analytics
// @Produce  json
// @Security BearerAuth
// @Param days query int false "Глубина в днях"
// @Success 200 {object} map[string]any "Сводка событий"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /analytics/summary [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.analytics.summary"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	counts, err := h.service.Summary(r.Context(), days)
	if err != nil {
		log.Error("failed to get analytics summary", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get analytics summary"))
		return
	}

	log.Info("success to get analytics summary", slog.Int("types", len(counts)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"summary": counts,
	}))
}
