package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/contentgen/internal/models"
)

const notificationColumns = `id, user_id, title, message, type, is_read, created_at`

func scanNotification(row interface{ Scan(...any) error }, extra ...any) (*models.Notification, error) {
	var n models.Notification
	dest := append([]any{&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.IsRead, &n.CreatedAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &n, nil
}

// CreateNotificationUnlessRecent вставляет уведомление, если у пользователя нет
// уведомления с теми же заголовком и текстом, созданного строго позже now-window.
// Иначе возвращает найденное уведомление и created=false.
//
// Проверка и вставка выполняются под транзакционной advisory-блокировкой по ключу
// (user_id, title, message): параллельные вызовы с одинаковым ключом выполняются
// по очереди, и второй видит строку, вставленную первым.
func (s *Storage) CreateNotificationUnlessRecent(ctx context.Context, n models.Notification, window time.Duration) (*models.Notification, bool, error) {
	const op = "storage.CreateNotificationUnlessRecent"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1::text || chr(31) || $2::text || chr(31) || $3::text))`,
		n.UserID, n.Title, n.Message); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, mapError(err))
	}

	// Снимок READ COMMITTED берётся заново для каждого запроса, поэтому после
	// получения блокировки видны строки, закоммиченные предыдущим владельцем.
	existing, err := scanNotification(tx.QueryRowContext(ctx, `
		SELECT `+notificationColumns+`
		FROM notifications
		WHERE user_id = $1 AND title = $2 AND message = $3
		  AND created_at > NOW() - make_interval(secs => $4::double precision)
		ORDER BY created_at DESC
		LIMIT 1`,
		n.UserID, n.Title, n.Message, window.Seconds()))
	switch {
	case err == nil:
		if err = tx.Commit(); err != nil {
			return nil, false, fmt.Errorf("%s: %w", op, err)
		}
		return existing, false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return nil, false, fmt.Errorf("%s: %w", op, mapError(err))
	}

	inserted, err := scanNotification(tx.QueryRowContext(ctx, `
		INSERT INTO notifications (user_id, title, message, type)
		VALUES ($1, $2, $3, $4)
		RETURNING `+notificationColumns,
		n.UserID, n.Title, n.Message, n.Type))
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, mapError(err))
	}
	if err = tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}
	return inserted, true, nil
}

// ListNotifications возвращает уведомления пользователя, новые первыми, и их общее количество.
func (s *Storage) ListNotifications(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*models.Notification, int, error) {
	const op = "storage.ListNotifications"

	var w where
	w.add("user_id = " + w.arg(userID))
	if unreadOnly {
		w.add("NOT is_read")
	}

	var total int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, mapError(err))
	}

	query := `SELECT ` + notificationColumns + ` FROM notifications` + w.String() +
		` ORDER BY created_at DESC, id DESC LIMIT ` + w.arg(limit) + ` OFFSET ` + w.arg(offset)
	rows, err := s.DB.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, mapError(err))
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Notification, 0, limit)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}

// CountUnreadNotifications количество непрочитанных уведомлений пользователя.
func (s *Storage) CountUnreadNotifications(ctx context.Context, userID string) (int, error) {
	const op = "storage.CountUnreadNotifications"
	var n int
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT is_read`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return n, nil
}

// MarkNotificationRead отмечает уведомление прочитанным. Чужое уведомление не найдено.
func (s *Storage) MarkNotificationRead(ctx context.Context, userID, id string) error {
	const op = "storage.MarkNotificationRead"
	res, err := s.DB.ExecContext(ctx,
		`UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// MarkAllNotificationsRead отмечает все уведомления пользователя прочитанными.
func (s *Storage) MarkAllNotificationsRead(ctx context.Context, userID string) (int, error) {
	const op = "storage.MarkAllNotificationsRead"
	res, err := s.DB.ExecContext(ctx,
		`UPDATE notifications SET is_read = true WHERE user_id = $1 AND NOT is_read`, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(n), nil
}

// DeleteNotification удаляет уведомление пользователя.
func (s *Storage) DeleteNotification(ctx context.Context, userID, id string) error {
	const op = "storage.DeleteNotification"
	res, err := s.DB.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ClearNotifications удаляет все уведомления пользователя.
func (s *Storage) ClearNotifications(ctx context.Context, userID string) (int, error) {
	const op = "storage.ClearNotifications"
	res, err := s.DB.ExecContext(ctx, `DELETE FROM notifications WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(n), nil
}
