// Package access содержит бизнес-логику жизненного цикла премиум-доступа:
// каталог планов, журнал окон доступа с ленивым истечением и проверку
// доступа к контенту.
package access

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/anime-stream/internal/lib/days"
	"github.com/magabrotheeeer/anime-stream/internal/lib/sl"
	"github.com/magabrotheeeer/anime-stream/internal/models"
)

// ErrPlanNotFound возвращается, если план не существует или деактивирован.
var ErrPlanNotFound = errors.New("plan not found")

// ErrContentNotFound возвращается при проверке доступа к несуществующему тайтлу.
var ErrContentNotFound = errors.New("content not found")

// Repository определяет методы хранилища, используемые сервисом доступа.
type Repository interface {
	// ListActivePlans возвращает активные планы по возрастанию цены.
	ListActivePlans(ctx context.Context) ([]*models.Plan, error)
	// GetActivePlan возвращает активный план или (nil, nil).
	GetActivePlan(ctx context.Context, planID int) (*models.Plan, error)
	// GetCurrentWindow возвращает свежайшее активное окно или (nil, nil).
	GetCurrentWindow(ctx context.Context, userUID string) (*models.AccessWindow, error)
	// CreateWindow вставляет окно и обновляет сводку пользователя в одной транзакции.
	CreateWindow(ctx context.Context, window models.AccessWindow) (int, error)
	// ExpireWindow переводит окно в expired и сбрасывает сводку.
	ExpireWindow(ctx context.Context, windowID int, userUID string) error
	// CancelActiveWindows переводит активные окна в cancelled и сбрасывает сводку.
	CancelActiveWindows(ctx context.Context, userUID string) error
	// ListWindows возвращает историю окон, новые первыми.
	ListWindows(ctx context.Context, userUID string) ([]*models.AccessWindow, error)
	// GetAnime возвращает тайтл или (nil, nil).
	GetAnime(ctx context.Context, animeID int) (*models.Anime, error)
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// EventPublisher публикует события жизненного цикла доступа.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// Service реализует операции журнала доступа и шлюза доступа к контенту.
type Service struct {
	repo      Repository
	cache     Cache
	publisher EventPublisher
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, cache Cache, publisher EventPublisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		log:       log,
	}
}

func currentWindowKey(userUID string) string {
	return fmt.Sprintf("access:current:%s", userUID)
}

// ListActivePlans возвращает активные планы по возрастанию цены, с кешированием.
func (s *Service) ListActivePlans(ctx context.Context) ([]*models.Plan, error) {
	const cacheKey = "plans:active"

	var cached []*models.Plan
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read plans from cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	plans, err := s.repo.ListActivePlans(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, plans, time.Hour); err != nil {
		s.log.Warn("failed to cache plans", sl.Err(err))
	}
	return plans, nil
}

// GetCurrentWindow возвращает состояние доступа пользователя. Окно с датой
// окончания в прошлом сначала переводится в expired (ленивое истечение),
// после чего возвращается статус expired без окна.
func (s *Service) GetCurrentWindow(ctx context.Context, userUID string) (*models.AccessState, error) {
	window, err := s.lookupWindow(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if window == nil {
		return &models.AccessState{Status: models.AccessStatusFree}, nil
	}

	now := time.Now().UTC()
	if window.EndDate.Before(now) {
		if err := s.ReconcileWindow(ctx, window); err != nil {
			return nil, err
		}
		return &models.AccessState{Status: models.WindowStatusExpired}, nil
	}

	return &models.AccessState{
		Window:        window,
		Status:        models.WindowStatusActive,
		DaysRemaining: days.Remaining(window.EndDate, now),
	}, nil
}

// lookupWindow читает активное окно из кеша или хранилища.
func (s *Service) lookupWindow(ctx context.Context, userUID string) (*models.AccessWindow, error) {
	cacheKey := currentWindowKey(userUID)

	var cached *models.AccessWindow
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read window from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	window, err := s.repo.GetCurrentWindow(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if window != nil {
		if err := s.cache.Set(cacheKey, window, time.Hour); err != nil {
			s.log.Warn("failed to cache window", slog.String("key", cacheKey), sl.Err(err))
		}
	}
	return window, nil
}

// ReconcileWindow — явная идемпотентная команда ленивого истечения:
// переводит окно в expired, сбрасывает сводку пользователя и кеш.
func (s *Service) ReconcileWindow(ctx context.Context, window *models.AccessWindow) error {
	if err := s.repo.ExpireWindow(ctx, window.ID, window.UserUID); err != nil {
		return err
	}
	if err := s.cache.Invalidate(currentWindowKey(window.UserUID)); err != nil {
		s.log.Warn("failed to invalidate window cache", sl.Err(err))
	}
	s.log.Info("access window expired lazily",
		slog.Int("window_id", window.ID), sl.UID(window.UserUID))
	return nil
}

// CreateWindow создает окно доступа по активному плану: start = now,
// end = now + длительность плана, amount = цена плана на момент покупки.
// Сводка пользователя обновляется той же транзакцией, после чего публикуется
// событие активации (best-effort).
func (s *Service) CreateWindow(ctx context.Context, userUID string, planID int, paymentMethod string) (*models.AccessWindow, error) {
	plan, err := s.repo.GetActivePlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	if paymentMethod == "" {
		paymentMethod = "mercadopago"
	}

	now := time.Now().UTC()
	window := models.AccessWindow{
		UserUID:       userUID,
		PlanID:        plan.ID,
		PlanName:      plan.Name,
		StartDate:     now,
		EndDate:       days.EndOfWindow(now, plan.DurationDays),
		Status:        models.WindowStatusActive,
		PaymentMethod: paymentMethod,
		AmountPaid:    plan.Price,
	}

	id, err := s.repo.CreateWindow(ctx, window)
	if err != nil {
		return nil, err
	}
	window.ID = id
	window.CreatedAt = now

	if err := s.cache.Invalidate(currentWindowKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate window cache", sl.Err(err))
	}
	s.log.Info("created access window",
		slog.Int("id", id), sl.UID(userUID), slog.Int("plan_id", planID))

	s.publishActivated(ctx, userUID, &window)

	return &window, nil
}

// publishActivated отправляет событие активации в очередь уведомлений.
// Ошибки публикации логируются и не влияют на результат операции.
func (s *Service) publishActivated(ctx context.Context, userUID string, window *models.AccessWindow) {
	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		s.log.Warn("failed to load user for notification", sl.Err(err))
		return
	}
	event := models.AccessActivatedEvent{
		Email:    user.Email,
		Username: user.Username,
		PlanName: window.PlanName,
		EndDate:  window.EndDate,
	}
	if err := s.publisher.Publish("access_activated", event); err != nil {
		s.log.Warn("failed to publish access activated event", sl.Err(err))
	}
}

// CancelWindow отменяет активное окно пользователя и сбрасывает сводку.
// Идемпотентна: отсутствие активного окна — успешный no-op.
func (s *Service) CancelWindow(ctx context.Context, userUID string) error {
	if err := s.repo.CancelActiveWindows(ctx, userUID); err != nil {
		return err
	}
	if err := s.cache.Invalidate(currentWindowKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate window cache", sl.Err(err))
	}
	s.log.Info("cancelled access windows", sl.UID(userUID))
	return nil
}

// ListHistory возвращает всю историю окон пользователя, включая expired и cancelled.
func (s *Service) ListHistory(ctx context.Context, userUID string) ([]*models.AccessWindow, error) {
	return s.repo.ListWindows(ctx, userUID)
}

// HasAccess отвечает, может ли пользователь смотреть тайтл прямо сейчас.
// Бесплатный контент доступен всегда; премиум требует непросроченного окна.
func (s *Service) HasAccess(ctx context.Context, userUID string, animeID int) (*models.AccessDecision, error) {
	anime, err := s.repo.GetAnime(ctx, animeID)
	if err != nil {
		return nil, err
	}
	if anime == nil {
		return nil, ErrContentNotFound
	}
	if !anime.RequiresPremium {
		return &models.AccessDecision{Allowed: true, Reason: "free content"}, nil
	}

	state, err := s.GetCurrentWindow(ctx, userUID)
	if err != nil {
		return nil, err
	}
	switch state.Status {
	case models.WindowStatusActive:
		return &models.AccessDecision{Allowed: true, Reason: "active premium access"}, nil
	case models.WindowStatusExpired:
		return &models.AccessDecision{Allowed: false, Reason: "premium access expired"}, nil
	default:
		return &models.AccessDecision{Allowed: false, Reason: "premium access required"}, nil
	}
}
