// Package analytics содержит логику сбора событий клиентской аналитики.
// Сервис получает хранилище через конструктор, общего состояния нет.
package analytics

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/anime-stream/internal/models"
)

// EventStore определяет методы хранилища событий аналитики.
type EventStore interface {
	InsertEvent(ctx context.Context, event models.AnalyticsEvent) (int, error)
	CountEventsByType(ctx context.Context, since time.Time) ([]*models.EventCount, error)
}

// Service реализует запись и агрегацию событий.
type Service struct {
	store EventStore
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(store EventStore, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

// Track сохраняет событие аналитики и возвращает его ID.
func (s *Service) Track(ctx context.Context, userUID string, req models.DummyEvent) (int, error) {
	event := models.AnalyticsEvent{
		UserUID:   userUID,
		EventType: req.EventType,
		Payload:   req.Payload,
	}
	id, err := s.store.InsertEvent(ctx, event)
	if err != nil {
		return 0, err
	}
	s.log.Debug("tracked analytics event",
		slog.Int("id", id), slog.String("event_type", req.EventType))
	return id, nil
}

// Summary возвращает число событий каждого типа за последние days дней.
func (s *Service) Summary(ctx context.Context, days int) ([]*models.EventCount, error) {
	if days <= 0 {
		days = 7
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	return s.store.CountEventsByType(ctx, since)
}
