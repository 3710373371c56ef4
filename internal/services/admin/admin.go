// Package services реализует админские выборки с фильтрацией и пагинацией,
// смену статусов и сводную статистику.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/contentgen/internal/lib/paginate"
	"github.com/magabrotheeeer/contentgen/internal/models"
)

// StatusAll значение фильтра статуса, означающее отсутствие фильтра.
const StatusAll = "all"

// ErrSelfSuspend администратор не может изменить статус собственной учётной записи.
var ErrSelfSuspend = errors.New("cannot change own status")

// Repository данные, доступные администратору.
type Repository interface {
	ListUsers(ctx context.Context, f models.ListFilter, limit, offset int) ([]*models.User, int, error)
	SetUserStatus(ctx context.Context, id, status string) error
	CountUsersByStatus(ctx context.Context) (map[string]int, error)
	ListPayments(ctx context.Context, f models.ListFilter, limit, offset int) ([]*models.Payment, int, float64, error)
	TotalRevenue(ctx context.Context) (float64, error)
	ListReports(ctx context.Context, f models.ListFilter, limit, offset int) ([]*models.Report, int, error)
	SetReportStatus(ctx context.Context, id, status string) error
	CountReportsByStatus(ctx context.Context, status string) (int, error)
	CountContent(ctx context.Context) (int, error)
}

// AdminService реализует админские операции.
type AdminService struct {
	repo Repository
	log  *slog.Logger
}

// NewAdminService создает новый экземпляр AdminService.
func NewAdminService(repo Repository, log *slog.Logger) *AdminService {
	return &AdminService{repo: repo, log: log}
}

// normalize приводит фильтр к виду, понятному хранилищу: "all" и пробелы означают отсутствие фильтра.
func normalize(f models.ListFilter) models.ListFilter {
	f.Query = strings.TrimSpace(f.Query)
	f.Status = strings.TrimSpace(f.Status)
	if strings.EqualFold(f.Status, StatusAll) {
		f.Status = ""
	}
	return f
}

// ListUsers возвращает страницу пользователей.
func (s *AdminService) ListUsers(ctx context.Context, f models.ListFilter, p paginate.Params) (models.Page[*models.User], error) {
	const op = "services.admin.ListUsers"
	items, total, err := s.repo.ListUsers(ctx, normalize(f), p.Limit(), p.Offset())
	if err != nil {
		return models.Page[*models.User]{}, fmt.Errorf("%s: %w", op, err)
	}
	return paginate.Build(items, total, p), nil
}

// SetUserStatus меняет статус пользователя.
func (s *AdminService) SetUserStatus(ctx context.Context, adminID, userID, status string) error {
	const op = "services.admin.SetUserStatus"
	if adminID == userID {
		return fmt.Errorf("%s: %w", op, ErrSelfSuspend)
	}
	if err := s.repo.SetUserStatus(ctx, userID, status); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user status changed", slog.String("user_id", userID), slog.String("status", status), slog.String("by", adminID))
	return nil
}

// ListPayments возвращает страницу платежей и выручку по фильтру.
func (s *AdminService) ListPayments(ctx context.Context, f models.ListFilter, p paginate.Params) (models.PaymentPage, error) {
	const op = "services.admin.ListPayments"
	items, total, revenue, err := s.repo.ListPayments(ctx, normalize(f), p.Limit(), p.Offset())
	if err != nil {
		return models.PaymentPage{}, fmt.Errorf("%s: %w", op, err)
	}
	return models.PaymentPage{Page: paginate.Build(items, total, p), Revenue: revenue}, nil
}

// ListReports возвращает страницу обращений.
func (s *AdminService) ListReports(ctx context.Context, f models.ListFilter, p paginate.Params) (models.Page[*models.Report], error) {
	const op = "services.admin.ListReports"
	items, total, err := s.repo.ListReports(ctx, normalize(f), p.Limit(), p.Offset())
	if err != nil {
		return models.Page[*models.Report]{}, fmt.Errorf("%s: %w", op, err)
	}
	return paginate.Build(items, total, p), nil
}

// SetReportStatus меняет статус обращения.
func (s *AdminService) SetReportStatus(ctx context.Context, id, status string) error {
	const op = "services.admin.SetReportStatus"
	if err := s.repo.SetReportStatus(ctx, id, status); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Stats собирает сводку для панели администратора.
func (s *AdminService) Stats(ctx context.Context) (*models.Stats, error) {
	const op = "services.admin.Stats"
	users, err := s.repo.CountUsersByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	revenue, err := s.repo.TotalRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	content, err := s.repo.CountContent(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	pending, err := s.repo.CountReportsByStatus(ctx, models.ReportPending)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.Stats{
		UsersByStatus:  users,
		TotalRevenue:   revenue,
		ContentCount:   content,
		PendingReports: pending,
	}, nil
}
