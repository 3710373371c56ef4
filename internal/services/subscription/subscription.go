// Package services содержит бизнес-логику подписок: тарифы, оплату и отмену.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/contentgen/internal/lib/paginate"
	"github.com/magabrotheeeer/contentgen/internal/lib/sl"
	"github.com/magabrotheeeer/contentgen/internal/models"
)

var (
	// ErrInvalidPlan план не существует или не может быть куплен.
	ErrInvalidPlan = errors.New("invalid plan")
	// ErrNotCancelable бесплатную или уже отменённую подписку отменить нельзя.
	ErrNotCancelable = errors.New("subscription cannot be canceled")
)

// SubscriptionRepository определяет методы для работы с подписками и платежами в хранилище.
type SubscriptionRepository interface {
	GetSubscription(ctx context.Context, userID string) (*models.Subscription, error)
	ActivatePlan(ctx context.Context, payment models.Payment, sub models.Subscription) (string, error)
	SetSubscriptionStatus(ctx context.Context, userID, status string) error
	ListPaymentsByUser(ctx context.Context, userID string, limit, offset int) ([]*models.Payment, int, error)
}

// HistoryRecorder пишет действия пользователя в историю.
type HistoryRecorder interface {
	Record(ctx context.Context, userID, action string, contentID *string, details string) error
}

// Notifier создаёт уведомления пользователю.
type Notifier interface {
	Create(ctx context.Context, userID, title, message, typ string) (*models.Notification, bool, error)
}

// CheckoutResult результат оплаты плана.
type CheckoutResult struct {
	PaymentID    string                   `json:"payment_id"`
	Subscription *models.SubscriptionInfo `json:"subscription"`
}

// SubscriptionService реализует работу с подписками пользователя.
type SubscriptionService struct {
	repo     SubscriptionRepository
	history  HistoryRecorder
	notifier Notifier
	log      *slog.Logger
	now      func() time.Time
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, history HistoryRecorder, notifier Notifier, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:     repo,
		history:  history,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// Get возвращает подписку пользователя вместе с параметрами плана.
func (s *SubscriptionService) Get(ctx context.Context, userID string) (*models.SubscriptionInfo, error) {
	const op = "services.subscription.Get"
	sub, err := s.repo.GetSubscription(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	plan, _ := models.LookupPlan(sub.Plan)
	return &models.SubscriptionInfo{Subscription: *sub, PlanDetails: plan}, nil
}

// Checkout оплачивает платный план через встроенный тестовый провайдер: платёж сразу
// считается завершённым, подписка становится активной на месяц с кредитами плана.
func (s *SubscriptionService) Checkout(ctx context.Context, userID, planName string) (*CheckoutResult, error) {
	const op = "services.subscription.Checkout"
	plan, ok := models.LookupPlan(planName)
	if !ok || plan.Name == models.PlanFree {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidPlan)
	}

	now := s.now().UTC()
	sub := models.Subscription{
		UserID:    userID,
		Plan:      plan.Name,
		Status:    models.SubscriptionActive,
		Credits:   plan.Credits,
		RenewsAt:  now.AddDate(0, 1, 0),
		UpdatedAt: now,
	}
	payment := models.Payment{
		UserID:      userID,
		Amount:      plan.Price,
		Currency:    plan.Currency,
		Status:      models.PaymentCompleted,
		Plan:        plan.Name,
		Description: fmt.Sprintf("%s plan, 1 month", plan.Name),
	}
	paymentID, err := s.repo.ActivatePlan(ctx, payment, sub)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("plan activated", slog.String("user_id", userID), slog.String("plan", plan.Name), slog.String("payment_id", paymentID))

	if err := s.history.Record(ctx, userID, models.ActionSubscriptionUpgraded, nil, plan.Name); err != nil {
		s.log.Warn("failed to record history", sl.Err(err))
	}
	if _, _, err := s.notifier.Create(ctx, userID, "Payment received",
		fmt.Sprintf("Thanks! Your %s plan is active with %d credits.", plan.Name, plan.Credits),
		models.NotificationSuccess); err != nil {
		s.log.Warn("failed to notify about payment", sl.Err(err))
	}

	return &CheckoutResult{
		PaymentID:    paymentID,
		Subscription: &models.SubscriptionInfo{Subscription: sub, PlanDetails: plan},
	}, nil
}

// Cancel отменяет продление платной подписки. Кредиты сохраняются до даты продления.
func (s *SubscriptionService) Cancel(ctx context.Context, userID string) (*models.SubscriptionInfo, error) {
	const op = "services.subscription.Cancel"
	sub, err := s.repo.GetSubscription(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if sub.Plan == models.PlanFree || sub.Status != models.SubscriptionActive {
		return nil, fmt.Errorf("%s: %w", op, ErrNotCancelable)
	}
	if err := s.repo.SetSubscriptionStatus(ctx, userID, models.SubscriptionCanceled); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sub.Status = models.SubscriptionCanceled

	if err := s.history.Record(ctx, userID, models.ActionSubscriptionCanceled, nil, sub.Plan); err != nil {
		s.log.Warn("failed to record history", sl.Err(err))
	}
	if _, _, err := s.notifier.Create(ctx, userID, "Subscription canceled",
		fmt.Sprintf("Your %s plan will not renew. Credits stay available until %s.", sub.Plan, sub.RenewsAt.Format("2006-01-02")),
		models.NotificationInfo); err != nil {
		s.log.Warn("failed to notify about cancellation", sl.Err(err))
	}

	plan, _ := models.LookupPlan(sub.Plan)
	return &models.SubscriptionInfo{Subscription: *sub, PlanDetails: plan}, nil
}

// ListPayments возвращает страницу платежей пользователя.
func (s *SubscriptionService) ListPayments(ctx context.Context, userID string, p paginate.Params) (models.Page[*models.Payment], error) {
	const op = "services.subscription.ListPayments"
	items, total, err := s.repo.ListPaymentsByUser(ctx, userID, p.Limit(), p.Offset())
	if err != nil {
		return models.Page[*models.Payment]{}, fmt.Errorf("%s: %w", op, err)
	}
	return paginate.Build(items, total, p), nil
}
