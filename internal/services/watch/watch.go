// Package watch содержит логику прогресса просмотра и истории пользователя.
package watch

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/anime-stream/internal/models"
)

// ErrEpisodeNotFound возвращается при сохранении прогресса по несуществующему эпизоду.
var ErrEpisodeNotFound = errors.New("episode not found")

// Repository определяет методы хранилища прогресса просмотра.
type Repository interface {
	GetEpisode(ctx context.Context, episodeID int) (*models.Episode, error)
	GetProgress(ctx context.Context, userUID string, episodeID int) (*models.WatchProgress, error)
	UpsertProgress(ctx context.Context, userUID string, req models.DummyProgress) (int, error)
	ListWatchHistory(ctx context.Context, userUID string) ([]*models.WatchHistoryItem, error)
}

// Service реализует операции прогресса просмотра.
type Service struct {
	repo Repository
}

// New создает новый экземпляр Service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetProgress возвращает прогресс просмотра эпизода. Отсутствие записи —
// нулевой прогресс, не ошибка.
func (s *Service) GetProgress(ctx context.Context, userUID string, episodeID int) (*models.WatchProgress, error) {
	progress, err := s.repo.GetProgress(ctx, userUID, episodeID)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		return &models.WatchProgress{UserUID: userUID, EpisodeID: episodeID}, nil
	}
	return progress, nil
}

// SaveProgress сохраняет прогресс просмотра, перезаписывая существующую
// запись пары (пользователь, эпизод). Доля больше единицы урезается до единицы.
func (s *Service) SaveProgress(ctx context.Context, userUID string, req models.DummyProgress) (int, error) {
	episode, err := s.repo.GetEpisode(ctx, req.EpisodeID)
	if err != nil {
		return 0, err
	}
	if episode == nil {
		return 0, ErrEpisodeNotFound
	}
	if req.Progress > 1 {
		req.Progress = 1
	}
	return s.repo.UpsertProgress(ctx, userUID, req)
}

// ListHistory возвращает последние записи истории просмотра пользователя.
func (s *Service) ListHistory(ctx context.Context, userUID string) ([]*models.WatchHistoryItem, error) {
	return s.repo.ListWatchHistory(ctx, userUID)
}
