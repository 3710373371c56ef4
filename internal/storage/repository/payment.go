package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/contentgen/internal/models"
)

const paymentColumns = `p.id, p.user_id, u.email, p.amount, p.currency, p.status, p.plan, p.description, p.created_at`

func scanPayment(row interface{ Scan(...any) error }) (*models.Payment, error) {
	var p models.Payment
	if err := row.Scan(&p.ID, &p.UserID, &p.UserEmail, &p.Amount, &p.Currency, &p.Status,
		&p.Plan, &p.Description, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPaymentsByUser возвращает платежи пользователя, новые первыми.
func (s *Storage) ListPaymentsByUser(ctx context.Context, userID string, limit, offset int) ([]*models.Payment, int, error) {
	const op = "storage.ListPaymentsByUser"

	var w where
	w.add("p.user_id = " + w.arg(userID))

	payments, total, _, err := s.listPayments(ctx, w, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return payments, total, nil
}

// ListPayments возвращает страницу платежей по фильтру, общее количество и выручку
// (сумму завершённых платежей) по этому же фильтру.
func (s *Storage) ListPayments(ctx context.Context, f models.ListFilter, limit, offset int) ([]*models.Payment, int, float64, error) {
	const op = "storage.ListPayments"

	var w where
	w.filter(f, "p.status", "p.created_at", "u.email", "p.description", "p.plan")

	payments, total, revenue, err := s.listPayments(ctx, w, limit, offset)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%s: %w", op, err)
	}
	return payments, total, revenue, nil
}

func (s *Storage) listPayments(ctx context.Context, w where, limit, offset int) ([]*models.Payment, int, float64, error) {
	const from = ` FROM payments p JOIN users u ON u.id = p.user_id`

	var total int
	var revenue float64
	err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(p.amount) FILTER (WHERE p.status = 'completed'), 0)`+from+w.String(),
		w.args...).Scan(&total, &revenue)
	if err != nil {
		return nil, 0, 0, mapError(err)
	}

	query := `SELECT ` + paymentColumns + from + w.String() +
		` ORDER BY p.created_at DESC, p.id DESC LIMIT ` + w.arg(limit) + ` OFFSET ` + w.arg(offset)
	rows, err := s.DB.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, 0, 0, mapError(err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Payment, 0, limit)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, 0, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}
	return result, total, revenue, nil
}

// TotalRevenue сумма всех завершённых платежей.
func (s *Storage) TotalRevenue(ctx context.Context) (float64, error) {
	const op = "storage.TotalRevenue"
	var total float64
	err := s.DB.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status = 'completed'`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
