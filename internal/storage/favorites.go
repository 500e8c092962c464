package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/anime-stream/internal/models"
)

// ListFavorites возвращает избранные тайтлы пользователя, свежие первыми.
func (s *Storage) ListFavorites(ctx context.Context, userUID string) ([]*models.Anime, error) {
	const op = "storage.ListFavorites"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT a.id, a.title, a.description, a.genre, a.year, a.episodes, a.status,
			      a.rating, a.image_url, a.video_url, a.requires_premium, a.created_at
			  FROM anime a
			  JOIN favorites f ON a.id = f.anime_id
			  WHERE f.user_uid = $1
			  ORDER BY f.created_at DESC`
	return s.queryAnime(ctx, op, query, userUID)
}

// AddFavorite добавляет тайтл в избранное. Повторное добавление — ErrDuplicate.
func (s *Storage) AddFavorite(ctx context.Context, userUID string, animeID int) error {
	const op = "storage.AddFavorite"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO favorites (user_uid, anime_id) VALUES ($1, $2)`
	if _, err := s.DB.ExecContext(ctx, query, userUID, animeID); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, ErrDuplicate)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RemoveFavorite удаляет тайтл из избранного и возвращает число удалённых строк.
func (s *Storage) RemoveFavorite(ctx context.Context, userUID string, animeID int) (int, error) {
	const op = "storage.RemoveFavorite"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM favorites WHERE user_uid = $1 AND anime_id = $2`
	result, err := s.DB.ExecContext(ctx, query, userUID, animeID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
