// Package animelist реализует HTTP-обработчик списка тайтлов каталога
// с фильтрами поиска, жанра и статуса.
package animelist

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

// Handler обрабатывает запросы списка тайтлов.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис каталога
}

// Service описывает интерфейс бизнес-логики каталога.
type Service interface {
	ListAnime(ctx context.Context, filter models.AnimeFilter) ([]*models.Anime, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список тайтлов каталога
// @Description Возвращает тайтлы с фильтрами поиска, жанра и статуса, по убыванию рейтинга.
// @Tags Catalog
// @Produce  json
// @Param search query string false "Поиск по названию и описанию"
// @Param genre query string false "Фильтр по жанру"
// @Param status query string false "Фильтр по статусу"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]any "Список тайтлов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /anime [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.catalog.animelist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))
	offset, _ := strconv.Atoi(query.Get("offset"))
	filter := models.AnimeFilter{
		Search: query.Get("search"),
		Genre:  query.Get("genre"),
		Status: query.Get("status"),
		Limit:  limit,
		Offset: offset,
	}

	anime, err := h.service.ListAnime(r.Context(), filter)
	if err != nil {
		log.Error("failed to list anime", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list anime"))
		return
	}

	log.Info("success to list anime", slog.Int("count", len(anime)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"anime": anime,
	}))
}
