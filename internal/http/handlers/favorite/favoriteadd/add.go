// Package favoriteadd реализует HTTP-обработчик добавления тайтла в избранное.
package favoriteadd

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

// Handler обрабатывает запросы добавления в избранное.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики добавления в избранное.
type Service interface {
	Add(ctx context.Context, userUID string, animeID int) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Добавить тайтл в избранное
// @Description Добавляет тайтл в избранное пользователя. Повторное добавление — 409.
// @Tags Favorites
// @Produce  json
// @Security BearerAuth
// @Param animeID path int true "ID тайтла"
// @Success 201 {object} map[string]any "Тайтл добавлен"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Тайтл не найден"
// @Failure 409 {object} response.ErrorResponse "Тайтл уже в избранном"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /favorites/{animeID} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.favorite.add"

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

	if err := h.service.Add(r.Context(), userUID, animeID); err != nil {
		switch {
		case errors.Is(err, favorites.ErrAnimeNotFound):
			log.Error("anime not found", slog.Int("anime_id", animeID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("anime not found"))
		case errors.Is(err, favorites.ErrAlreadyExists):
			log.Error("anime already in favorites", slog.Int("anime_id", animeID))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("anime already in favorites"))
		default:
			log.Error("failed to add favorite", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not add favorite"))
		}
		return
	}

	log.Info("success to add favorite", slog.Int("anime_id", animeID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "added to favorites",
	}))
}
