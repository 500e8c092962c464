package payment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/anime-stream/internal/config"
	"github.com/magabrotheeeer/anime-stream/internal/models"
	"github.com/magabrotheeeer/anime-stream/internal/paymentprovider"
)

type PlanRepoMock struct{ mock.Mock }

func (m *PlanRepoMock) GetActivePlan(ctx context.Context, planID int) (*models.Plan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

type AccessMock struct{ mock.Mock }

func (m *AccessMock) CreateWindow(ctx context.Context, userUID string, planID int, paymentMethod string) (*models.AccessWindow, error) {
	args := m.Called(ctx, userUID, planID, paymentMethod)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AccessWindow), args.Error(1)
}

type ProviderMock struct{ mock.Mock }

func (m *ProviderMock) CreatePreference(ctx context.Context, req paymentprovider.CreatePreferenceRequest) (*paymentprovider.CreatePreferenceResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.CreatePreferenceResponse), args.Error(1)
}

func (m *ProviderMock) GetPayment(ctx context.Context, paymentID string) (*paymentprovider.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.Payment), args.Error(1)
}

func newTestService(provider *ProviderMock, plans *PlanRepoMock, access *AccessMock) *Service {
	cfg := config.PaymentProvider{
		CurrencyID: "ARS",
		WebhookURL: "https://anime.example.com/api/payments/webhook",
	}
	log := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	return New(provider, plans, access, cfg, "https://anime.example.com", log)
}

func TestParseExternalReference(t *testing.T) {
	tests := []struct {
		name     string
		ref      string
		wantUID  string
		wantPlan int
		wantErr  bool
	}{
		{name: "валидная ссылка", ref: "user_abc-123_plan_2", wantUID: "abc-123", wantPlan: 2},
		{name: "uid с подчёркиваниями", ref: "user_a_b_plan_7", wantUID: "a_b", wantPlan: 7},
		{name: "без префикса", ref: "order_55", wantErr: true},
		{name: "нечисловой план", ref: "user_abc_plan_x", wantErr: true},
		{name: "пустой uid", ref: "user__plan_", wantErr: true},
		{name: "пустая строка", ref: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uid, planID, err := parseExternalReference(tt.ref)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUID, uid)
			assert.Equal(t, tt.wantPlan, planID)
		})
	}
}

func TestCreatePreference(t *testing.T) {
	plan := &models.Plan{ID: 2, Name: "Premium Mensual", Price: 3500, DurationDays: 30, IsActive: true}

	tests := []struct {
		name       string
		planID     int
		setupMocks func(p *ProviderMock, r *PlanRepoMock)
		wantErr    error
	}{
		{
			name:   "успешное создание преференции",
			planID: 2,
			setupMocks: func(p *ProviderMock, r *PlanRepoMock) {
				r.On("GetActivePlan", mock.Anything, 2).Return(plan, nil).Once()
				p.On("CreatePreference", mock.Anything, mock.MatchedBy(func(req paymentprovider.CreatePreferenceRequest) bool {
					return req.ExternalReference == "user_uid-1_plan_2" &&
						len(req.Items) == 1 &&
						req.Items[0].UnitPrice == 3500 &&
						req.Items[0].CurrencyID == "ARS" &&
						req.BackURLs.Success == "https://anime.example.com/payment/success" &&
						req.Expires
				})).Return(&paymentprovider.CreatePreferenceResponse{
					ID:        "pref-1",
					InitPoint: "https://checkout.example.com/pref-1",
				}, nil).Once()
			},
		},
		{
			name:   "план не найден",
			planID: 999,
			setupMocks: func(_ *ProviderMock, r *PlanRepoMock) {
				r.On("GetActivePlan", mock.Anything, 999).Return(nil, nil).Once()
			},
			wantErr: ErrPlanNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := new(ProviderMock)
			plans := new(PlanRepoMock)
			tt.setupMocks(provider, plans)

			svc := newTestService(provider, plans, new(AccessMock))
			resp, err := svc.CreatePreference(context.Background(), "uid-1", tt.planID)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "pref-1", resp.ID)
			provider.AssertExpectations(t)
			plans.AssertExpectations(t)
		})
	}
}

func TestProcessWebhook(t *testing.T) {
	notification := func(typ, id string) WebhookNotification {
		n := WebhookNotification{Type: typ}
		n.Data.ID = id
		return n
	}

	tests := []struct {
		name         string
		notification WebhookNotification
		setupMocks   func(p *ProviderMock, a *AccessMock)
		wantErr      bool
	}{
		{
			name:         "подтверждённый платёж активирует доступ",
			notification: notification("payment", "555"),
			setupMocks: func(p *ProviderMock, a *AccessMock) {
				p.On("GetPayment", mock.Anything, "555").Return(&paymentprovider.Payment{
					ID:                555,
					Status:            paymentprovider.PaymentStatusApproved,
					ExternalReference: "user_uid-1_plan_2",
					PaymentMethodID:   "visa",
				}, nil).Once()
				a.On("CreateWindow", mock.Anything, "uid-1", 2, "visa").
					Return(&models.AccessWindow{ID: 9}, nil).Once()
			},
		},
		{
			name:         "уведомление не о платеже игнорируется",
			notification: notification("merchant_order", "777"),
			setupMocks:   func(_ *ProviderMock, _ *AccessMock) {},
		},
		{
			name:         "неподтверждённый платёж пропускается",
			notification: notification("payment", "556"),
			setupMocks: func(p *ProviderMock, _ *AccessMock) {
				p.On("GetPayment", mock.Anything, "556").Return(&paymentprovider.Payment{
					ID:     556,
					Status: "pending",
				}, nil).Once()
			},
		},
		{
			name:         "нечитаемая ссылка платежа отбрасывается без ошибки",
			notification: notification("payment", "557"),
			setupMocks: func(p *ProviderMock, _ *AccessMock) {
				p.On("GetPayment", mock.Anything, "557").Return(&paymentprovider.Payment{
					ID:                557,
					Status:            paymentprovider.PaymentStatusApproved,
					ExternalReference: "garbage",
				}, nil).Once()
			},
		},
		{
			name:         "ошибка провайдера возвращается наружу",
			notification: notification("payment", "558"),
			setupMocks: func(p *ProviderMock, _ *AccessMock) {
				p.On("GetPayment", mock.Anything, "558").
					Return(nil, errors.New("provider down")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := new(ProviderMock)
			access := new(AccessMock)
			tt.setupMocks(provider, access)

			svc := newTestService(provider, new(PlanRepoMock), access)
			err := svc.ProcessWebhook(context.Background(), tt.notification)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			provider.AssertExpectations(t)
			access.AssertExpectations(t)
		})
	}
}
