package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/magabrotheeeer/anime-stream/internal/models"
)

// InsertEvent сохраняет событие аналитики. Payload сериализуется в JSONB.
func (s *Storage) InsertEvent(ctx context.Context, event models.AnalyticsEvent) (int, error) {
	const op = "storage.InsertEvent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var payload []byte
	if event.Payload != nil {
		var err error
		payload, err = json.Marshal(event.Payload)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
	}

	query := `INSERT INTO analytics_events (user_uid, event_type, payload)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var id int
	if err := s.DB.QueryRowContext(ctx, query,
		event.UserUID, event.EventType, payload).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// CountEventsByType возвращает число событий каждого типа начиная с since.
func (s *Storage) CountEventsByType(ctx context.Context, since time.Time) ([]*models.EventCount, error) {
	const op = "storage.CountEventsByType"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT event_type, COUNT(*)
			  FROM analytics_events
			  WHERE created_at >= $1
			  GROUP BY event_type
			  ORDER BY COUNT(*) DESC`
	rows, err := s.DB.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.EventCount
	for rows.Next() {
		var item models.EventCount
		if err := rows.Scan(&item.EventType, &item.Count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
