package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/contentgen/internal/models"
)

// GetSubscription возвращает подписку пользователя.
func (s *Storage) GetSubscription(ctx context.Context, userID string) (*models.Subscription, error) {
	const op = "storage.GetSubscription"
	var sub models.Subscription
	err := s.DB.QueryRowContext(ctx, `
		SELECT user_id, plan, status, credits, renews_at, updated_at
		FROM subscriptions WHERE user_id = $1`, userID).
		Scan(&sub.UserID, &sub.Plan, &sub.Status, &sub.Credits, &sub.RenewsAt, &sub.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return &sub, nil
}

// ConsumeCredit списывает один кредит. Возвращает false, если кредитов не осталось.
func (s *Storage) ConsumeCredit(ctx context.Context, userID string) (bool, error) {
	const op = "storage.ConsumeCredit"
	res, err := s.DB.ExecContext(ctx, `
		UPDATE subscriptions
		SET credits = credits - 1, updated_at = NOW()
		WHERE user_id = $1 AND credits > 0`, userID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, mapError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n == 1, nil
}

// RefundCredit возвращает ранее списанный кредит.
func (s *Storage) RefundCredit(ctx context.Context, userID string) error {
	const op = "storage.RefundCredit"
	res, err := s.DB.ExecContext(ctx, `
		UPDATE subscriptions SET credits = credits + 1, updated_at = NOW()
		WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ActivatePlan в одной транзакции записывает платёж и переводит подписку на оплаченный план.
func (s *Storage) ActivatePlan(ctx context.Context, payment models.Payment, sub models.Subscription) (string, error) {
	const op = "storage.ActivatePlan"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	var paymentID string
	err = tx.QueryRowContext(ctx, `
		INSERT INTO payments (user_id, amount, currency, status, plan, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		payment.UserID, payment.Amount, payment.Currency, payment.Status, payment.Plan, payment.Description).
		Scan(&paymentID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, mapError(err))
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE subscriptions
		SET plan = $1, status = $2, credits = $3, renews_at = $4, updated_at = NOW()
		WHERE user_id = $5`,
		sub.Plan, sub.Status, sub.Credits, sub.RenewsAt, sub.UserID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, mapError(err))
	}
	if err := checkAffected(res); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return paymentID, nil
}

// SetSubscriptionStatus меняет статус подписки.
func (s *Storage) SetSubscriptionStatus(ctx context.Context, userID, status string) error {
	const op = "storage.SetSubscriptionStatus"
	res, err := s.DB.ExecContext(ctx, `
		UPDATE subscriptions SET status = $1, updated_at = NOW() WHERE user_id = $2`, status, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ExpireSubscriptions переводит платные подписки с прошедшей датой продления
// на бесплатный план и возвращает затронутые подписки с контактами владельцев.
func (s *Storage) ExpireSubscriptions(ctx context.Context, now time.Time, freeCredits int) ([]*models.ExpiringSubscription, error) {
	const op = "storage.ExpireSubscriptions"
	rows, err := s.DB.QueryContext(ctx, `
		WITH expired AS (
			UPDATE subscriptions
			SET plan = 'free', status = 'expired', credits = $2,
			    renews_at = $1::timestamptz + INTERVAL '1 month', updated_at = NOW()
			WHERE plan <> 'free' AND renews_at <= $1
			RETURNING user_id, plan, status, renews_at
		)
		SELECT e.user_id, u.email, u.username, e.plan, e.status, e.renews_at
		FROM expired e
		JOIN users u ON u.id = e.user_id`, now, freeCredits)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result, err := scanExpiring(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RenewFreeSubscriptions пополняет кредиты бесплатных подписок, у которых наступила дата продления.
func (s *Storage) RenewFreeSubscriptions(ctx context.Context, now time.Time, freeCredits int) (int, error) {
	const op = "storage.RenewFreeSubscriptions"
	res, err := s.DB.ExecContext(ctx, `
		UPDATE subscriptions
		SET credits = GREATEST(credits, $2), renews_at = $1::timestamptz + INTERVAL '1 month', updated_at = NOW()
		WHERE plan = 'free' AND renews_at <= $1`, now, freeCredits)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(n), nil
}

// FindSubscriptionsRenewingBetween находит платные подписки с датой продления в интервале (from, to].
func (s *Storage) FindSubscriptionsRenewingBetween(ctx context.Context, from, to time.Time) ([]*models.ExpiringSubscription, error) {
	const op = "storage.FindSubscriptionsRenewingBetween"
	rows, err := s.DB.QueryContext(ctx, `
		SELECT s.user_id, u.email, u.username, s.plan, s.status, s.renews_at
		FROM subscriptions s
		JOIN users u ON u.id = s.user_id
		WHERE s.plan <> 'free' AND s.renews_at > $1 AND s.renews_at <= $2
		ORDER BY s.renews_at`, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	result, err := scanExpiring(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func scanExpiring(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
	Close() error
}) ([]*models.ExpiringSubscription, error) {
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.ExpiringSubscription
	for rows.Next() {
		var e models.ExpiringSubscription
		if err := rows.Scan(&e.UserID, &e.Email, &e.Username, &e.Plan, &e.Status, &e.RenewsAt); err != nil {
			return nil, err
		}
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
