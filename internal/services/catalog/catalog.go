// Package catalog содержит бизнес-логику каталога тайтлов, сезонов и эпизодов.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/anime-stream/internal/lib/sl"
	"github.com/magabrotheeeer/anime-stream/internal/models"
)

// ErrNotFound возвращается для отсутствующего тайтла или эпизода.
var ErrNotFound = errors.New("not found")

// Лимит пагинации по умолчанию и его потолок.
const (
	defaultLimit = 20
	maxLimit     = 100
)

// Repository определяет методы хранилища каталога.
type Repository interface {
	ListAnime(ctx context.Context, filter models.AnimeFilter) ([]*models.Anime, error)
	GetAnime(ctx context.Context, animeID int) (*models.Anime, error)
	ListGenres(ctx context.Context) ([]string, error)
	ListPopularAnime(ctx context.Context) ([]*models.Anime, error)
	ListRecentAnime(ctx context.Context) ([]*models.Anime, error)
	ListSeasons(ctx context.Context, animeID int) ([]*models.Season, error)
	ListEpisodes(ctx context.Context, seasonID int) ([]*models.Episode, error)
	GetEpisode(ctx context.Context, episodeID int) (*models.Episode, error)
	ListRecentEpisodes(ctx context.Context) ([]*models.Episode, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует операции каталога.
type Service struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

// ListAnime возвращает тайтлы по фильтру с нормализованной пагинацией.
func (s *Service) ListAnime(ctx context.Context, filter models.AnimeFilter) ([]*models.Anime, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.ListAnime(ctx, filter)
}

// GetAnime возвращает тайтл по ID или ErrNotFound.
func (s *Service) GetAnime(ctx context.Context, animeID int) (*models.Anime, error) {
	anime, err := s.repo.GetAnime(ctx, animeID)
	if err != nil {
		return nil, err
	}
	if anime == nil {
		return nil, ErrNotFound
	}
	return anime, nil
}

// ListGenres возвращает уникальные жанры каталога, с кешированием.
func (s *Service) ListGenres(ctx context.Context) ([]string, error) {
	const cacheKey = "catalog:genres"

	var cached []string
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read genres from cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	genres, err := s.repo.ListGenres(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, genres, time.Hour); err != nil {
		s.log.Warn("failed to cache genres", sl.Err(err))
	}
	return genres, nil
}

// ListPopular возвращает тайтлы с наивысшим рейтингом, с кешированием.
func (s *Service) ListPopular(ctx context.Context) ([]*models.Anime, error) {
	return s.cachedAnimeList(ctx, "catalog:popular", s.repo.ListPopularAnime)
}

// ListRecent возвращает последние добавленные тайтлы, с кешированием.
func (s *Service) ListRecent(ctx context.Context) ([]*models.Anime, error) {
	return s.cachedAnimeList(ctx, "catalog:recent", s.repo.ListRecentAnime)
}

func (s *Service) cachedAnimeList(ctx context.Context, cacheKey string,
	load func(ctx context.Context) ([]*models.Anime, error)) ([]*models.Anime, error) {
	var cached []*models.Anime
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read anime list from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	result, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, 15*time.Minute); err != nil {
		s.log.Warn("failed to cache anime list", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

// ListSeasons возвращает сезоны тайтла. Для отсутствующего тайтла — ErrNotFound.
func (s *Service) ListSeasons(ctx context.Context, animeID int) ([]*models.Season, error) {
	anime, err := s.repo.GetAnime(ctx, animeID)
	if err != nil {
		return nil, err
	}
	if anime == nil {
		return nil, ErrNotFound
	}
	return s.repo.ListSeasons(ctx, animeID)
}

// ListEpisodes возвращает эпизоды сезона по порядку номеров.
func (s *Service) ListEpisodes(ctx context.Context, seasonID int) ([]*models.Episode, error) {
	return s.repo.ListEpisodes(ctx, seasonID)
}

// GetEpisode возвращает эпизод по ID или ErrNotFound.
func (s *Service) GetEpisode(ctx context.Context, episodeID int) (*models.Episode, error) {
	episode, err := s.repo.GetEpisode(ctx, episodeID)
	if err != nil {
		return nil, err
	}
	if episode == nil {
		return nil, ErrNotFound
	}
	return episode, nil
}

// ListRecentEpisodes возвращает последние добавленные эпизоды.
func (s *Service) ListRecentEpisodes(ctx context.Context) ([]*models.Episode, error) {
	return s.repo.ListRecentEpisodes(ctx)
}
