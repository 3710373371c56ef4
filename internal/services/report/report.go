// Package services принимает обращения пользователей.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/contentgen/internal/models"
)

// Repository хранилище обращений.
type Repository interface {
	CreateReport(ctx context.Context, r models.Report) (*models.Report, error)
}

// ReportService создаёт обращения.
type ReportService struct {
	repo Repository
	log  *slog.Logger
}

// NewReportService создает новый экземпляр ReportService.
func NewReportService(repo Repository, log *slog.Logger) *ReportService {
	return &ReportService{repo: repo, log: log}
}

// Create сохраняет обращение в статусе pending.
func (s *ReportService) Create(ctx context.Context, userID string, req models.CreateReportRequest) (*models.Report, error) {
	const op = "services.report.Create"
	r, err := s.repo.CreateReport(ctx, models.Report{
		UserID:      userID,
		Subject:     strings.TrimSpace(req.Subject),
		Description: strings.TrimSpace(req.Description),
		Category:    req.Category,
		Status:      models.ReportPending,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("report created", slog.String("id", r.ID), slog.String("category", r.Category))
	return r, nil
}
