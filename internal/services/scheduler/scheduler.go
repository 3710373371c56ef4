// Package services содержит периодические задачи по подпискам: истечение платных
// планов, пополнение бесплатных и напоминания о продлении.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/contentgen/internal/lib/sl"
	"github.com/magabrotheeeer/contentgen/internal/models"
)

// ReminderLead за сколько до продления отправляется напоминание.
const ReminderLead = 24 * time.Hour

// SubscriptionRepository запросы планировщика к хранилищу.
type SubscriptionRepository interface {
	ExpireSubscriptions(ctx context.Context, now time.Time, freeCredits int) ([]*models.ExpiringSubscription, error)
	RenewFreeSubscriptions(ctx context.Context, now time.Time, freeCredits int) (int, error)
	FindSubscriptionsRenewingBetween(ctx context.Context, from, to time.Time) ([]*models.ExpiringSubscription, error)
}

// Notifier создаёт уведомления пользователю.
type Notifier interface {
	Create(ctx context.Context, userID, title, message, typ string) (*models.Notification, bool, error)
}

// Report итог одного прохода планировщика.
type Report struct {
	Expired  int
	Renewed  int
	Reminded int
}

// SchedulerService выполняет периодические задачи по подпискам.
type SchedulerService struct {
	repo     SubscriptionRepository
	notifier Notifier
	interval time.Duration
	log      *slog.Logger
	now      func() time.Time
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo SubscriptionRepository, notifier Notifier, interval time.Duration, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo:     repo,
		notifier: notifier,
		interval: interval,
		log:      log,
		now:      time.Now,
	}
}

// Run выполняет проход сразу и затем каждые interval, пока не отменён ctx.
func (s *SchedulerService) Run(ctx context.Context) error {
	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *SchedulerService) tick(ctx context.Context) {
	r, err := s.RunOnce(ctx)
	if err != nil {
		s.log.Error("scheduler run failed", sl.Err(err))
		return
	}
	s.log.Info("scheduler run finished",
		slog.Int("expired", r.Expired), slog.Int("renewed", r.Renewed), slog.Int("reminded", r.Reminded))
}

// RunOnce выполняет один проход. Напоминания отправляются подпискам, чья дата продления
// попала в окно (now+ReminderLead-interval, now+ReminderLead], поэтому при регулярных
// запусках каждая подписка получает одно напоминание.
func (s *SchedulerService) RunOnce(ctx context.Context) (Report, error) {
	const op = "services.scheduler.RunOnce"
	var report Report
	now := s.now().UTC()
	free, _ := models.LookupPlan(models.PlanFree)

	expired, err := s.repo.ExpireSubscriptions(ctx, now, free.Credits)
	if err != nil {
		return report, fmt.Errorf("%s: %w", op, err)
	}
	report.Expired = len(expired)
	for _, e := range expired {
		s.notify(ctx, e.UserID, "Subscription expired",
			fmt.Sprintf("Your paid plan has ended. You are back on the free plan with %d credits.", free.Credits),
			models.NotificationWarning)
	}

	report.Renewed, err = s.repo.RenewFreeSubscriptions(ctx, now, free.Credits)
	if err != nil {
		return report, fmt.Errorf("%s: %w", op, err)
	}

	to := now.Add(ReminderLead)
	upcoming, err := s.repo.FindSubscriptionsRenewingBetween(ctx, to.Add(-s.interval), to)
	if err != nil {
		return report, fmt.Errorf("%s: %w", op, err)
	}
	for _, e := range upcoming {
		msg := fmt.Sprintf("Your %s plan renews on %s.", e.Plan, e.RenewsAt.UTC().Format("2006-01-02 15:04 MST"))
		if e.Status == models.SubscriptionCanceled {
			msg = fmt.Sprintf("Your %s plan ends on %s and will not renew.", e.Plan, e.RenewsAt.UTC().Format("2006-01-02 15:04 MST"))
		}
		if s.notify(ctx, e.UserID, "Subscription renews tomorrow", msg, models.NotificationInfo) {
			report.Reminded++
		}
	}
	return report, nil
}

// notify создаёт уведомление и сообщает, было ли оно действительно создано.
func (s *SchedulerService) notify(ctx context.Context, userID, title, message, typ string) bool {
	_, created, err := s.notifier.Create(ctx, userID, title, message, typ)
	if err != nil {
		s.log.Error("failed to create notification", slog.String("user_id", userID), sl.Err(err))
		return false
	}
	return created
}
