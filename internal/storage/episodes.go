package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/anime-stream/internal/models"
)

// ListSeasons возвращает сезоны тайтла с фактическим числом эпизодов.
func (s *Storage) ListSeasons(ctx context.Context, animeID int) ([]*models.Season, error) {
	const op = "storage.ListSeasons"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id, s.anime_id, s.season_number, s.title, s.description,
			      COUNT(e.id) AS episode_count
			  FROM seasons s
			  LEFT JOIN episodes e ON s.id = e.season_id
			  WHERE s.anime_id = $1
			  GROUP BY s.id
			  ORDER BY s.season_number`
	rows, err := s.DB.QueryContext(ctx, query, animeID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Season
	for rows.Next() {
		var item models.Season
		var description sql.NullString
		if err := rows.Scan(&item.ID, &item.AnimeID, &item.SeasonNumber, &item.Title,
			&description, &item.EpisodeCount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.Description = description.String
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

const episodeColumns = `e.id, e.anime_id, e.season_id, e.episode_number, e.title,
			      e.description, e.duration, e.video_url, e.thumbnail_url,
			      e.requires_premium, e.created_at, s.title, a.title, a.image_url`

func scanEpisode(row interface{ Scan(dest ...any) error }) (*models.Episode, error) {
	var e models.Episode
	var description, videoURL, thumbnailURL, animeImage sql.NullString
	if err := row.Scan(&e.ID, &e.AnimeID, &e.SeasonID, &e.EpisodeNumber, &e.Title,
		&description, &e.Duration, &videoURL, &thumbnailURL,
		&e.RequiresPremium, &e.CreatedAt, &e.SeasonTitle, &e.AnimeTitle, &animeImage); err != nil {
		return nil, err
	}
	e.Description = description.String
	e.VideoURL = videoURL.String
	e.ThumbnailURL = thumbnailURL.String
	e.AnimeImage = animeImage.String
	return &e, nil
}

func (s *Storage) queryEpisodes(ctx context.Context, op, query string, args ...any) ([]*models.Episode, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Episode
	for rows.Next() {
		e, err := scanEpisode(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListEpisodes возвращает эпизоды сезона по порядку номеров.
func (s *Storage) ListEpisodes(ctx context.Context, seasonID int) ([]*models.Episode, error) {
	const op = "storage.ListEpisodes"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + episodeColumns + `
			  FROM episodes e
			  JOIN seasons s ON e.season_id = s.id
			  JOIN anime a ON e.anime_id = a.id
			  WHERE e.season_id = $1
			  ORDER BY e.episode_number`
	return s.queryEpisodes(ctx, op, query, seasonID)
}

// GetEpisode возвращает эпизод по ID с названиями сезона и тайтла.
// Для отсутствующего эпизода — (nil, nil).
func (s *Storage) GetEpisode(ctx context.Context, episodeID int) (*models.Episode, error) {
	const op = "storage.GetEpisode"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + episodeColumns + `
			  FROM episodes e
			  JOIN seasons s ON e.season_id = s.id
			  JOIN anime a ON e.anime_id = a.id
			  WHERE e.id = $1`
	e, err := scanEpisode(s.DB.QueryRowContext(ctx, query, episodeID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return e, nil
}

// ListRecentEpisodes возвращает двадцать последних добавленных эпизодов.
func (s *Storage) ListRecentEpisodes(ctx context.Context) ([]*models.Episode, error) {
	const op = "storage.ListRecentEpisodes"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + episodeColumns + `
			  FROM episodes e
			  JOIN seasons s ON e.season_id = s.id
			  JOIN anime a ON e.anime_id = a.id
			  ORDER BY e.created_at DESC
			  LIMIT 20`
	return s.queryEpisodes(ctx, op, query)
}
