package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/contentgen/internal/models"
)

// CreateReport сохраняет обращение пользователя.
func (s *Storage) CreateReport(ctx context.Context, r models.Report) (*models.Report, error) {
	const op = "storage.CreateReport"
	created := r
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO reports (user_id, subject, description, category, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		r.UserID, r.Subject, r.Description, r.Category, r.Status).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return &created, nil
}

// ListReports возвращает страницу обращений по фильтру и общее количество совпадений.
// Поиск идёт по e-mail автора, теме и описанию.
func (s *Storage) ListReports(ctx context.Context, f models.ListFilter, limit, offset int) ([]*models.Report, int, error) {
	const op = "storage.ListReports"
	const from = ` FROM reports r JOIN users u ON u.id = r.user_id`

	var w where
	w.filter(f, "r.status", "r.created_at", "u.email", "r.subject", "r.description")

	var total int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*)`+from+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT r.id, r.user_id, u.email, r.subject, r.description, r.category, r.status, r.created_at` +
		from + w.String() +
		` ORDER BY r.created_at DESC, r.id DESC LIMIT ` + w.arg(limit) + ` OFFSET ` + w.arg(offset)
	rows, err := s.DB.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Report, 0, limit)
	for rows.Next() {
		var r models.Report
		if err := rows.Scan(&r.ID, &r.UserID, &r.UserEmail, &r.Subject, &r.Description,
			&r.Category, &r.Status, &r.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}

// SetReportStatus меняет статус обращения.
func (s *Storage) SetReportStatus(ctx context.Context, id, status string) error {
	const op = "storage.SetReportStatus"
	res, err := s.DB.ExecContext(ctx, `UPDATE reports SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CountReportsByStatus количество обращений в указанном статусе.
func (s *Storage) CountReportsByStatus(ctx context.Context, status string) (int, error) {
	const op = "storage.CountReportsByStatus"
	var n int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM reports WHERE status = $1`, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
