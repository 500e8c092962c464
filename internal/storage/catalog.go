package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/anime-stream/internal/models"
)

const animeColumns = `id, title, description, genre, year, episodes, status,
			      rating, image_url, video_url, requires_premium, created_at`

func scanAnime(row interface{ Scan(dest ...any) error }) (*models.Anime, error) {
	var a models.Anime
	var description, genre, status, imageURL, videoURL sql.NullString
	var year, episodes sql.NullInt64
	if err := row.Scan(&a.ID, &a.Title, &description, &genre, &year, &episodes, &status,
		&a.Rating, &imageURL, &videoURL, &a.RequiresPremium, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.Description = description.String
	a.Genre = genre.String
	a.Year = int(year.Int64)
	a.Episodes = int(episodes.Int64)
	a.Status = status.String
	a.ImageURL = imageURL.String
	a.VideoURL = videoURL.String
	return &a, nil
}

func (s *Storage) queryAnime(ctx context.Context, op, query string, args ...any) ([]*models.Anime, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Anime
	for rows.Next() {
		a, err := scanAnime(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAnime возвращает тайтлы каталога с фильтрами поиска, жанра и статуса,
// по убыванию рейтинга, с пагинацией.
func (s *Storage) ListAnime(ctx context.Context, filter models.AnimeFilter) ([]*models.Anime, error) {
	const op = "storage.ListAnime"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + animeColumns + `
			  FROM anime
			  WHERE ($1 = '' OR title ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
			    AND ($2 = '' OR genre ILIKE '%' || $2 || '%')
			    AND ($3 = '' OR status = $3)
			  ORDER BY rating DESC
			  LIMIT $4 OFFSET $5`
	return s.queryAnime(ctx, op, query,
		filter.Search, filter.Genre, filter.Status, filter.Limit, filter.Offset)
}

// GetAnime возвращает тайтл по ID. Для отсутствующего тайтла — (nil, nil).
func (s *Storage) GetAnime(ctx context.Context, animeID int) (*models.Anime, error) {
	const op = "storage.GetAnime"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + animeColumns + ` FROM anime WHERE id = $1`
	a, err := scanAnime(s.DB.QueryRowContext(ctx, query, animeID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// ListGenres возвращает уникальные жанры каталога. Колонка genre хранит
// жанры через запятую, разбор выполняется здесь.
func (s *Storage) ListGenres(ctx context.Context) ([]string, error) {
	const op = "storage.ListGenres"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT DISTINCT genre FROM anime WHERE genre IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	seen := make(map[string]struct{})
	var result []string
	for rows.Next() {
		var genre string
		if err := rows.Scan(&genre); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		for _, g := range strings.Split(genre, ",") {
			g = strings.TrimSpace(g)
			if g == "" {
				continue
			}
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			result = append(result, g)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListPopularAnime возвращает десять тайтлов с наивысшим рейтингом.
func (s *Storage) ListPopularAnime(ctx context.Context) ([]*models.Anime, error) {
	const op = "storage.ListPopularAnime"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + animeColumns + ` FROM anime ORDER BY rating DESC LIMIT 10`
	return s.queryAnime(ctx, op, query)
}

// ListRecentAnime возвращает десять последних добавленных тайтлов.
func (s *Storage) ListRecentAnime(ctx context.Context) ([]*models.Anime, error) {
	const op = "storage.ListRecentAnime"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + animeColumns + ` FROM anime ORDER BY created_at DESC LIMIT 10`
	return s.queryAnime(ctx, op, query)
}
