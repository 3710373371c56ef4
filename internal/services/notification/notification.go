// Package services содержит логику уведомлений: дедупликацию, относительное время
// и постановку писем в очередь рассылки.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/contentgen/internal/lib/paginate"
	"github.com/magabrotheeeer/contentgen/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/contentgen/internal/lib/reltime"
	"github.com/magabrotheeeer/contentgen/internal/lib/sl"
	"github.com/magabrotheeeer/contentgen/internal/metrics"
	"github.com/magabrotheeeer/contentgen/internal/models"
)

// DedupWindow окно, в котором повтор уведомления с теми же заголовком и текстом подавляется.
const DedupWindow = time.Hour

// ErrInvalidType неизвестный тип уведомления.
var ErrInvalidType = errors.New("invalid notification type")

// Repository хранилище уведомлений.
type Repository interface {
	CreateNotificationUnlessRecent(ctx context.Context, n models.Notification, window time.Duration) (*models.Notification, bool, error)
	ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*models.Notification, int, error)
	CountUnreadNotifications(ctx context.Context, userID string) (int, error)
	MarkNotificationRead(ctx context.Context, userID, id string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) (int, error)
	DeleteNotification(ctx context.Context, userID, id string) error
	ClearNotifications(ctx context.Context, userID string) (int, error)
}

// UserRepository нужен для адреса получателя письма.
type UserRepository interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Publisher ставит сообщение в очередь.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// NotificationService управляет уведомлениями пользователей.
type NotificationService struct {
	repo      Repository
	users     UserRepository
	publisher Publisher
	log       *slog.Logger
	now       func() time.Time
}

// NewNotificationService создаёт сервис. publisher может быть nil, тогда письма не отправляются.
func NewNotificationService(repo Repository, users UserRepository, publisher Publisher, log *slog.Logger) *NotificationService {
	return &NotificationService{
		repo:      repo,
		users:     users,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

func validType(t string) bool {
	switch t {
	case models.NotificationInfo, models.NotificationSuccess, models.NotificationWarning, models.NotificationError:
		return true
	}
	return false
}

// Create добавляет уведомление, если за последний час у пользователя не было такого же.
// created=false означает, что возвращено уже существующее уведомление.
func (s *NotificationService) Create(ctx context.Context, userID, title, message, typ string) (*models.Notification, bool, error) {
	const op = "services.notification.Create"
	if typ == "" {
		typ = models.NotificationInfo
	}
	if !validType(typ) {
		return nil, false, fmt.Errorf("%s: %w", op, ErrInvalidType)
	}

	n, created, err := s.repo.CreateNotificationUnlessRecent(ctx, models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    typ,
	}, DedupWindow)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	if !created {
		metrics.Notifications.WithLabelValues(metrics.ResultDeduplicated).Inc()
		s.log.Debug("duplicate notification suppressed", slog.String("user_id", userID), slog.String("title", title))
		return n, false, nil
	}
	metrics.Notifications.WithLabelValues(metrics.ResultCreated).Inc()
	s.enqueueEmail(ctx, n)
	return n, true, nil
}

// enqueueEmail публикует письмо о новом уведомлении. Ошибки только логируются.
func (s *NotificationService) enqueueEmail(ctx context.Context, n *models.Notification) {
	if s.publisher == nil {
		return
	}
	user, err := s.users.GetUserByID(ctx, n.UserID)
	if err != nil {
		s.log.Warn("failed to load notification recipient", slog.String("user_id", n.UserID), sl.Err(err))
		return
	}
	msg := models.NotificationMessage{
		NotificationID: n.ID,
		Email:          user.Email,
		Username:       user.Username,
		Title:          n.Title,
		Message:        n.Message,
	}
	if err := s.publisher.Publish(ctx, rabbitmq.RoutingKeyEmail, msg); err != nil {
		s.log.Warn("failed to publish notification email", slog.String("notification_id", n.ID), sl.Err(err))
	}
}

// List возвращает страницу уведомлений пользователя с заполненным TimeAgo.
func (s *NotificationService) List(ctx context.Context, userID string, unreadOnly bool, p paginate.Params) (models.Page[*models.Notification], error) {
	const op = "services.notification.List"
	items, total, err := s.repo.ListNotifications(ctx, userID, unreadOnly, p.Limit(), p.Offset())
	if err != nil {
		return models.Page[*models.Notification]{}, fmt.Errorf("%s: %w", op, err)
	}
	now := s.now()
	for _, n := range items {
		n.TimeAgo = reltime.Format(n.CreatedAt, now)
	}
	return paginate.Build(items, total, p), nil
}

// UnreadCount количество непрочитанных уведомлений.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	const op = "services.notification.UnreadCount"
	n, err := s.repo.CountUnreadNotifications(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// MarkRead отмечает уведомление прочитанным.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	const op = "services.notification.MarkRead"
	if err := s.repo.MarkNotificationRead(ctx, userID, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// MarkAllRead отмечает все уведомления прочитанными и возвращает их количество.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int, error) {
	const op = "services.notification.MarkAllRead"
	n, err := s.repo.MarkAllNotificationsRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// Remove удаляет уведомление.
func (s *NotificationService) Remove(ctx context.Context, userID, id string) error {
	const op = "services.notification.Remove"
	if err := s.repo.DeleteNotification(ctx, userID, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Clear удаляет все уведомления пользователя.
func (s *NotificationService) Clear(ctx context.Context, userID string) (int, error) {
	const op = "services.notification.Clear"
	n, err := s.repo.ClearNotifications(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
