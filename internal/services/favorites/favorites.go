// Package favorites содержит логику списка избранных тайтлов пользователя.
package favorites

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/anime-stream/internal/models"
	"github.com/magabrotheeeer/anime-stream/internal/storage"
)

// ErrAnimeNotFound возвращается при работе с несуществующим тайтлом.
var ErrAnimeNotFound = errors.New("anime not found")

// ErrAlreadyExists возвращается при повторном добавлении тайтла в избранное.
var ErrAlreadyExists = errors.New("already in favorites")

// Repository определяет методы хранилища избранного.
type Repository interface {
	GetAnime(ctx context.Context, animeID int) (*models.Anime, error)
	ListFavorites(ctx context.Context, userUID string) ([]*models.Anime, error)
	AddFavorite(ctx context.Context, userUID string, animeID int) error
	RemoveFavorite(ctx context.Context, userUID string, animeID int) (int, error)
}

// Service реализует операции избранного.
type Service struct {
	repo Repository
}

// New создает новый экземпляр Service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// List возвращает избранные тайтлы пользователя, свежие первыми.
func (s *Service) List(ctx context.Context, userUID string) ([]*models.Anime, error) {
	return s.repo.ListFavorites(ctx, userUID)
}

// Add добавляет тайтл в избранное. Несуществующий тайтл — ErrAnimeNotFound,
// повторное добавление — ErrAlreadyExists.
func (s *Service) Add(ctx context.Context, userUID string, animeID int) error {
	anime, err := s.repo.GetAnime(ctx, animeID)
	if err != nil {
		return err
	}
	if anime == nil {
		return ErrAnimeNotFound
	}
	if err := s.repo.AddFavorite(ctx, userUID, animeID); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Remove удаляет тайтл из избранного. Отсутствие записи — ErrAnimeNotFound.
func (s *Service) Remove(ctx context.Context, userUID string, animeID int) error {
	removed, err := s.repo.RemoveFavorite(ctx, userUID, animeID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrAnimeNotFound
	}
	return nil
}
