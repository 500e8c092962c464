// Package favoriteremove реализует HTTP-обработчик удаления тайтла из избранного.
package favoriteremove

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
	"github.com/magabrotheeeer/anime-stream/internal/services/favorites"
)

// Handler обрабатывает запросы удаления из избранного.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления из избранного.
type Service interface {
	Remove(ctx context.Context, userUID string, animeID int) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить тайтл из избранного
// @Description Удаляет тайтл из избранного пользователя.
// @Tags Favorites
// @Produce  json
// @Security BearerAuth
// @Param animeID path int true "ID тайтла"
// @Success 200 {object} map[string]any "Тайтл удалён"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Тайтла нет в избранном"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /favorites/{animeID} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.favorite.remove"

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

	if err := h.service.Remove(r.Context(), userUID, animeID); err != nil {
		if errors.Is(err, favorites.ErrAnimeNotFound) {
			log.Error("anime not in favorites", slog.Int("anime_id", animeID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("anime not in favorites"))
			return
		}
		log.Error("failed to remove favorite", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove favorite"))
		return
	}

	log.Info("success to remove favorite", slog.Int("anime_id", animeID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "removed from favorites",
	}))
}
