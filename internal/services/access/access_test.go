package access

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/anime-stream/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListActivePlans(ctx context.Context) ([]*models.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Plan), args.Error(1)
}
func (m *RepoMock) GetActivePlan(ctx context.Context, planID int) (*models.Plan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}
func (m *RepoMock) GetCurrentWindow(ctx context.Context, userUID string) (*models.AccessWindow, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AccessWindow), args.Error(1)
}
func (m *RepoMock) CreateWindow(ctx context.Context, window models.AccessWindow) (int, error) {
	args := m.Called(ctx, window)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) ExpireWindow(ctx context.Context, windowID int, userUID string) error {
	return m.Called(ctx, windowID, userUID).Error(0)
}
func (m *RepoMock) CancelActiveWindows(ctx context.Context, userUID string) error {
	return m.Called(ctx, userUID).Error(0)
}
func (m *RepoMock) ListWindows(ctx context.Context, userUID string) ([]*models.AccessWindow, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AccessWindow), args.Error(1)
}
func (m *RepoMock) GetAnime(ctx context.Context, animeID int) (*models.Anime, error) {
	args := m.Called(ctx, animeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Anime), args.Error(1)
}
func (m *RepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(routingKey string, message any) error {
	return m.Called(routingKey, message).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newTestService(r *RepoMock, c *CacheMock, p *PublisherMock) *Service {
	return New(r, c, p, newNoopLogger())
}

const testUID = "8d7e6a2f-0000-0000-0000-000000000001"

func TestGetCurrentWindow(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock)
		wantStatus string
		wantDays   int
		wantWindow bool
	}{
		{
			name: "нет окна — статус free",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				c.On("Get", "access:current:"+testUID, mock.Anything).Return(false, nil).Once()
				r.On("GetCurrentWindow", mock.Anything, testUID).Return(nil, nil).Once()
			},
			wantStatus: models.AccessStatusFree,
		},
		{
			name: "активное окно на 90 дней — daysRemaining 90",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				window := &models.AccessWindow{
					ID:        7,
					UserUID:   testUID,
					PlanID:    2,
					StartDate: now,
					EndDate:   now.AddDate(0, 0, 90),
					Status:    models.WindowStatusActive,
				}
				c.On("Get", "access:current:"+testUID, mock.Anything).Return(false, nil).Once()
				r.On("GetCurrentWindow", mock.Anything, testUID).Return(window, nil).Once()
				c.On("Set", "access:current:"+testUID, window, time.Hour).Return(nil).Once()
			},
			wantStatus: models.WindowStatusActive,
			wantDays:   90,
			wantWindow: true,
		},
		{
			name: "окно в прошлом — ленивое истечение и статус expired",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				window := &models.AccessWindow{
					ID:        8,
					UserUID:   testUID,
					StartDate: now.AddDate(0, 0, -40),
					EndDate:   now.AddDate(0, 0, -10),
					Status:    models.WindowStatusActive,
				}
				c.On("Get", "access:current:"+testUID, mock.Anything).Return(false, nil).Once()
				r.On("GetCurrentWindow", mock.Anything, testUID).Return(window, nil).Once()
				c.On("Set", "access:current:"+testUID, window, time.Hour).Return(nil).Once()
				r.On("ExpireWindow", mock.Anything, 8, testUID).Return(nil).Once()
				c.On("Invalidate", "access:current:"+testUID).Return(nil).Once()
			},
			wantStatus: models.WindowStatusExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			tt.setupMocks(repo, cache)

			svc := newTestService(repo, cache, new(PublisherMock))
			state, err := svc.GetCurrentWindow(context.Background(), testUID)

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, state.Status)
			assert.Equal(t, tt.wantDays, state.DaysRemaining)
			if tt.wantWindow {
				assert.NotNil(t, state.Window)
			} else {
				assert.Nil(t, state.Window)
			}
			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestCreateWindow(t *testing.T) {
	plan := &models.Plan{ID: 2, Name: "Premium Trimestral", Price: 2500, DurationDays: 90, IsActive: true}
	user := &models.User{UUID: testUID, Email: "user@example.com", Username: "user1"}

	tests := []struct {
		name       string
		planID     int
		setupMocks func(r *RepoMock, c *CacheMock, p *PublisherMock)
		wantErr    error
	}{
		{
			name:   "успешная покупка плана",
			planID: 2,
			setupMocks: func(r *RepoMock, c *CacheMock, p *PublisherMock) {
				r.On("GetActivePlan", mock.Anything, 2).Return(plan, nil).Once()
				r.On("CreateWindow", mock.Anything, mock.MatchedBy(func(w models.AccessWindow) bool {
					return w.UserUID == testUID &&
						w.PlanID == 2 &&
						w.Status == models.WindowStatusActive &&
						w.AmountPaid == 2500 &&
						int(w.EndDate.Sub(w.StartDate).Hours()/24) == 90
				})).Return(11, nil).Once()
				c.On("Invalidate", "access:current:"+testUID).Return(nil).Once()
				r.On("GetUser", mock.Anything, testUID).Return(user, nil).Once()
				p.On("Publish", "access_activated", mock.MatchedBy(func(e models.AccessActivatedEvent) bool {
					return e.Email == user.Email && e.PlanName == plan.Name
				})).Return(nil).Once()
			},
		},
		{
			name:   "план не найден",
			planID: 999,
			setupMocks: func(r *RepoMock, _ *CacheMock, _ *PublisherMock) {
				r.On("GetActivePlan", mock.Anything, 999).Return(nil, nil).Once()
			},
			wantErr: ErrPlanNotFound,
		},
		{
			name:   "ошибка публикации события не ломает покупку",
			planID: 2,
			setupMocks: func(r *RepoMock, c *CacheMock, p *PublisherMock) {
				r.On("GetActivePlan", mock.Anything, 2).Return(plan, nil).Once()
				r.On("CreateWindow", mock.Anything, mock.Anything).Return(12, nil).Once()
				c.On("Invalidate", "access:current:"+testUID).Return(nil).Once()
				r.On("GetUser", mock.Anything, testUID).Return(user, nil).Once()
				p.On("Publish", "access_activated", mock.Anything).
					Return(errors.New("broker down")).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			publisher := new(PublisherMock)
			tt.setupMocks(repo, cache, publisher)

			svc := newTestService(repo, cache, publisher)
			window, err := svc.CreateWindow(context.Background(), testUID, tt.planID, "")

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, models.WindowStatusActive, window.Status)
				assert.Equal(t, "mercadopago", window.PaymentMethod)
				assert.Equal(t, plan.Price, window.AmountPaid)
			}
			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
			publisher.AssertExpectations(t)
		})
	}
}

func TestCancelWindow(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	repo.On("CancelActiveWindows", mock.Anything, testUID).Return(nil).Once()
	cache.On("Invalidate", "access:current:"+testUID).Return(nil).Once()

	svc := newTestService(repo, cache, new(PublisherMock))
	require.NoError(t, svc.CancelWindow(context.Background(), testUID))
	repo.AssertExpectations(t)
}

func TestHasAccess(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name        string
		setupMocks  func(r *RepoMock, c *CacheMock)
		wantAllowed bool
		wantErr     error
	}{
		{
			name: "бесплатный контент доступен без окна",
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("GetAnime", mock.Anything, 1).
					Return(&models.Anime{ID: 1, RequiresPremium: false}, nil).Once()
			},
			wantAllowed: true,
		},
		{
			name: "премиум-контент с активным окном",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("GetAnime", mock.Anything, 1).
					Return(&models.Anime{ID: 1, RequiresPremium: true}, nil).Once()
				window := &models.AccessWindow{
					ID: 3, UserUID: testUID,
					EndDate: now.AddDate(0, 0, 10),
					Status:  models.WindowStatusActive,
				}
				c.On("Get", "access:current:"+testUID, mock.Anything).Return(false, nil).Once()
				r.On("GetCurrentWindow", mock.Anything, testUID).Return(window, nil).Once()
				c.On("Set", "access:current:"+testUID, window, time.Hour).Return(nil).Once()
			},
			wantAllowed: true,
		},
		{
			name: "премиум-контент без окна запрещён",
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("GetAnime", mock.Anything, 1).
					Return(&models.Anime{ID: 1, RequiresPremium: true}, nil).Once()
				c.On("Get", "access:current:"+testUID, mock.Anything).Return(false, nil).Once()
				r.On("GetCurrentWindow", mock.Anything, testUID).Return(nil, nil).Once()
			},
			wantAllowed: false,
		},
		{
			name: "тайтл не найден",
			setupMocks: func(r *RepoMock, _ *CacheMock) {
				r.On("GetAnime", mock.Anything, 1).Return(nil, nil).Once()
			},
			wantErr: ErrContentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			tt.setupMocks(repo, cache)

			svc := newTestService(repo, cache, new(PublisherMock))
			decision, err := svc.HasAccess(context.Background(), testUID, 1)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAllowed, decision.Allowed)
			repo.AssertExpectations(t)
		})
	}
}
