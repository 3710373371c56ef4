// Package services ведёт историю действий пользователя.
package services

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/contentgen/internal/lib/paginate"
	"github.com/magabrotheeeer/contentgen/internal/models"
)

// Repository хранилище истории.
type Repository interface {
	CreateHistoryEntry(ctx context.Context, e models.HistoryEntry) (string, error)
	ListHistory(ctx context.Context, userID string, limit, offset int) ([]*models.HistoryEntry, int, error)
	DeleteHistoryEntry(ctx context.Context, userID, id string) error
	ClearHistory(ctx context.Context, userID string) (int, error)
}

// HistoryService управляет историей действий.
type HistoryService struct {
	repo Repository
}

// NewHistoryService создает новый экземпляр HistoryService.
func NewHistoryService(repo Repository) *HistoryService {
	return &HistoryService{repo: repo}
}

// Record добавляет запись. contentID может быть nil.
func (s *HistoryService) Record(ctx context.Context, userID, action string, contentID *string, details string) error {
	const op = "services.history.Record"
	_, err := s.repo.CreateHistoryEntry(ctx, models.HistoryEntry{
		UserID:    userID,
		Action:    action,
		ContentID: contentID,
		Details:   details,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// List возвращает страницу истории, новые записи первыми.
func (s *HistoryService) List(ctx context.Context, userID string, p paginate.Params) (models.Page[*models.HistoryEntry], error) {
	const op = "services.history.List"
	items, total, err := s.repo.ListHistory(ctx, userID, p.Limit(), p.Offset())
	if err != nil {
		return models.Page[*models.HistoryEntry]{}, fmt.Errorf("%s: %w", op, err)
	}
	return paginate.Build(items, total, p), nil
}

// Remove удаляет запись истории.
func (s *HistoryService) Remove(ctx context.Context, userID, id string) error {
	const op = "services.history.Remove"
	if err := s.repo.DeleteHistoryEntry(ctx, userID, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Clear удаляет всю историю пользователя.
func (s *HistoryService) Clear(ctx context.Context, userID string) (int, error) {
	const op = "services.history.Clear"
	n, err := s.repo.ClearHistory(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
