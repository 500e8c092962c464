// Package payment содержит логику оплаты премиум-доступа: создание платёжной
// преференции у внешнего провайдера и обработку его webhook-уведомлений.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/magabrotheeeer/anime-stream/internal/config"
	"github.com/magabrotheeeer/anime-stream/internal/lib/sl"
	"github.com/magabrotheeeer/anime-stream/internal/models"
	"github.com/magabrotheeeer/anime-stream/internal/paymentprovider"
)

// ErrPlanNotFound возвращается при попытке оплатить несуществующий план.
var ErrPlanNotFound = errors.New("plan not found")

// PlanRepository определяет доступ к каталогу планов.
type PlanRepository interface {
	GetActivePlan(ctx context.Context, planID int) (*models.Plan, error)
}

// AccessActivator активирует премиум-доступ после подтверждённого платежа.
type AccessActivator interface {
	CreateWindow(ctx context.Context, userUID string, planID int, paymentMethod string) (*models.AccessWindow, error)
}

// ProviderClient — клиент внешнего платёжного провайдера.
type ProviderClient interface {
	CreatePreference(ctx context.Context, req paymentprovider.CreatePreferenceRequest) (*paymentprovider.CreatePreferenceResponse, error)
	GetPayment(ctx context.Context, paymentID string) (*paymentprovider.Payment, error)
}

// WebhookNotification — уведомление провайдера о событии платежа.
type WebhookNotification struct {
	Type string `json:"type" validate:"required"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Service реализует операции оплаты.
type Service struct {
	provider ProviderClient
	plans    PlanRepository
	access   AccessActivator
	cfg      config.PaymentProvider
	baseURL  string
	log      *slog.Logger
}

// New создает новый экземпляр Service. baseURL — публичный адрес приложения
// для адресов возврата после оплаты.
func New(provider ProviderClient, plans PlanRepository, access AccessActivator,
	cfg config.PaymentProvider, baseURL string, log *slog.Logger) *Service {
	return &Service{
		provider: provider,
		plans:    plans,
		access:   access,
		cfg:      cfg,
		baseURL:  baseURL,
		log:      log,
	}
}

// externalReference кодирует пользователя и план в ссылку платежа,
// по которой webhook восстановит, что активировать.
func externalReference(userUID string, planID int) string {
	return fmt.Sprintf("user_%s_plan_%d", userUID, planID)
}

// parseExternalReference разбирает ссылку вида user_<uid>_plan_<id>.
func parseExternalReference(ref string) (userUID string, planID int, err error) {
	if !strings.HasPrefix(ref, "user_") {
		return "", 0, fmt.Errorf("unexpected external reference format: %q", ref)
	}
	rest := strings.TrimPrefix(ref, "user_")
	idx := strings.LastIndex(rest, "_plan_")
	if idx <= 0 {
		return "", 0, fmt.Errorf("unexpected external reference format: %q", ref)
	}
	userUID = rest[:idx]
	planID, err = strconv.Atoi(rest[idx+len("_plan_"):])
	if err != nil || planID <= 0 {
		return "", 0, fmt.Errorf("unexpected external reference format: %q", ref)
	}
	return userUID, planID, nil
}

// CreatePreference создает платёжную преференцию для покупки плана и
// возвращает адрес чекаута. Преференция истекает через сутки.
func (s *Service) CreatePreference(ctx context.Context, userUID string, planID int) (*paymentprovider.CreatePreferenceResponse, error) {
	plan, err := s.plans.GetActivePlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	req := paymentprovider.CreatePreferenceRequest{
		Items: []paymentprovider.PreferenceItem{{
			Title:      "Plan " + plan.Name,
			Quantity:   1,
			UnitPrice:  plan.Price,
			CurrencyID: s.cfg.CurrencyID,
		}},
		BackURLs: paymentprovider.BackURLs{
			Success: s.baseURL + "/payment/success",
			Failure: s.baseURL + "/payment/failure",
			Pending: s.baseURL + "/payment/pending",
		},
		AutoReturn:        "approved",
		ExternalReference: externalReference(userUID, planID),
		NotificationURL:   s.cfg.WebhookURL,
		Expires:           true,
		ExpirationDateTo:  time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339),
	}

	resp, err := s.provider.CreatePreference(ctx, req)
	if err != nil {
		return nil, err
	}
	s.log.Info("created payment preference",
		slog.String("preference_id", resp.ID),
		sl.UID(userUID),
		slog.Int("plan_id", planID))
	return resp, nil
}

// GetPaymentStatus возвращает данные платежа у провайдера.
func (s *Service) GetPaymentStatus(ctx context.Context, paymentID string) (*paymentprovider.Payment, error) {
	return s.provider.GetPayment(ctx, paymentID)
}

// ProcessWebhook обрабатывает уведомление провайдера. Уведомления не о
// платеже, неподтверждённые платежи и платежи с нечитаемой ссылкой
// игнорируются без ошибки: провайдер не должен повторять их доставку.
func (s *Service) ProcessWebhook(ctx context.Context, notification WebhookNotification) error {
	if notification.Type != "payment" {
		s.log.Debug("ignoring webhook notification",
			slog.String("type", notification.Type))
		return nil
	}

	payment, err := s.provider.GetPayment(ctx, notification.Data.ID)
	if err != nil {
		return fmt.Errorf("fetch payment %s: %w", notification.Data.ID, err)
	}
	if payment.Status != paymentprovider.PaymentStatusApproved {
		s.log.Info("skipping payment, not approved",
			slog.Int64("payment_id", payment.ID),
			slog.String("status", payment.Status))
		return nil
	}

	userUID, planID, err := parseExternalReference(payment.ExternalReference)
	if err != nil {
		s.log.Warn("dropping payment with malformed external reference",
			slog.Int64("payment_id", payment.ID), sl.Err(err))
		return nil
	}

	paymentMethod := payment.PaymentMethodID
	if paymentMethod == "" {
		paymentMethod = "mercadopago"
	}
	if _, err := s.access.CreateWindow(ctx, userUID, planID, paymentMethod); err != nil {
		return fmt.Errorf("activate access for payment %d: %w", payment.ID, err)
	}

	s.log.Info("activated access from webhook",
		slog.Int64("payment_id", payment.ID),
		sl.UID(userUID),
		slog.Int("plan_id", planID))
	return nil
}
