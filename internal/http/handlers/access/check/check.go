// Package check реализует HTTP-обработчик проверки доступа к тайтлу.
//
// Handler извлекает ID тайтла из URL и отвечает, разрешён ли просмотр:
// бесплатный контент доступен всем, премиум требует активного окна.
package check

import (
	"context"
	"errors"
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
	"github.com/magabrotheeeer/anime-stream/internal/services/access"
)

// Handler обрабатывает запросы проверки доступа.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис шлюза доступа
}

// Service описывает интерфейс бизнес-логики проверки доступа.
type Service interface {
	HasAccess(ctx context.Context, userUID string, animeID int) (*models.AccessDecision, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Проверить доступ к тайтлу
// @Description Отвечает, разрешён ли просмотр тайтла текущему пользователю.
// @Tags Access
// @Produce  json
// @Security BearerAuth
// @Param animeID path int true "ID тайтла"
// @Success 200 {object} map[string]any "Решение о доступе"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Тайтл не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /access/check/{animeID} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.access.check"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	animeID, err := strconv.Atoi(chi.URLParam(r, "animeID"))
	if err != nil {
		log.Error("failed to decode anime id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode anime id from url"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	decision, err := h.service.HasAccess(r.Context(), userUID, animeID)
	if err != nil {
		if errors.Is(err, access.ErrContentNotFound) {
			log.Error("content not found", slog.Int("anime_id", animeID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("content not found"))
			return
		}
		log.Error("failed to check access", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not check access"))
		return
	}

	log.Info("success to check access",
		slog.Int("anime_id", animeID), slog.Bool("allowed", decision.Allowed))
	render.JSON(w, r, response.StatusOKWithData(decision))
}
