package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/contentgen/internal/models"
)

// CreateHistoryEntry добавляет запись в историю действий.
func (s *Storage) CreateHistoryEntry(ctx context.Context, e models.HistoryEntry) (string, error) {
	const op = "storage.CreateHistoryEntry"
	var id string
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO history (user_id, action, content_id, details)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, e.UserID, e.Action, e.ContentID, e.Details).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, mapError(err))
	}
	return id, nil
}

// ListHistory возвращает историю пользователя, новые записи первыми.
func (s *Storage) ListHistory(ctx context.Context, userID string, limit, offset int) ([]*models.HistoryEntry, int, error) {
	const op = "storage.ListHistory"

	var total int
	if err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM history WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, mapError(err))
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, user_id, action, content_id, details, created_at
		FROM history WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, mapError(err))
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.HistoryEntry, 0, limit)
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.ContentID, &e.Details, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}

// DeleteHistoryEntry удаляет запись истории пользователя.
func (s *Storage) DeleteHistoryEntry(ctx context.Context, userID, id string) error {
	const op = "storage.DeleteHistoryEntry"
	res, err := s.DB.ExecContext(ctx, `DELETE FROM history WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ClearHistory удаляет всю историю пользователя.
func (s *Storage) ClearHistory(ctx context.Context, userID string) (int, error) {
	const op = "storage.ClearHistory"
	res, err := s.DB.ExecContext(ctx, `DELETE FROM history WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(n), nil
}
