package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/anime-stream/internal/models"
)

// GetProgress возвращает прогресс просмотра эпизода пользователем.
// Для эпизода без прогресса — (nil, nil).
func (s *Storage) GetProgress(ctx context.Context, userUID string, episodeID int) (*models.WatchProgress, error) {
	const op = "storage.GetProgress"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, episode_id, progress, completed, last_watched
			  FROM watch_history
			  WHERE user_uid = $1 AND episode_id = $2`
	var p models.WatchProgress
	err := s.DB.QueryRowContext(ctx, query, userUID, episodeID).Scan(
		&p.ID, &p.UserUID, &p.EpisodeID, &p.Progress, &p.Completed, &p.LastWatched)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// UpsertProgress сохраняет прогресс просмотра, перезаписывая существующую
// запись пары (пользователь, эпизод). Возвращает ID записи.
func (s *Storage) UpsertProgress(ctx context.Context, userUID string, req models.DummyProgress) (int, error) {
	const op = "storage.UpsertProgress"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO watch_history (user_uid, episode_id, progress, completed, last_watched)
			  VALUES ($1, $2, $3, $4, now())
			  ON CONFLICT (user_uid, episode_id)
			  DO UPDATE SET progress = $3, completed = $4, last_watched = now()
			  RETURNING id`
	var id int
	if err := s.DB.QueryRowContext(ctx, query,
		userUID, req.EpisodeID, req.Progress, req.Completed).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// ListWatchHistory возвращает последние пятьдесят записей истории просмотра
// с данными эпизода, сезона и тайтла.
func (s *Storage) ListWatchHistory(ctx context.Context, userUID string) ([]*models.WatchHistoryItem, error) {
	const op = "storage.ListWatchHistory"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT wh.id, wh.user_uid, wh.episode_id, wh.progress, wh.completed, wh.last_watched,
			      e.title, e.episode_number, s.title, a.title, a.image_url
			  FROM watch_history wh
			  JOIN episodes e ON wh.episode_id = e.id
			  JOIN seasons s ON e.season_id = s.id
			  JOIN anime a ON e.anime_id = a.id
			  WHERE wh.user_uid = $1
			  ORDER BY wh.last_watched DESC
			  LIMIT 50`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.WatchHistoryItem
	for rows.Next() {
		var item models.WatchHistoryItem
		var animeImage sql.NullString
		if err := rows.Scan(&item.ID, &item.UserUID, &item.EpisodeID, &item.Progress,
			&item.Completed, &item.LastWatched, &item.EpisodeTitle, &item.EpisodeNumber,
			&item.SeasonTitle, &item.AnimeTitle, &animeImage); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.AnimeImage = animeImage.String
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
