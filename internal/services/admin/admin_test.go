package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/contentgen/internal/lib/paginate"
	"github.com/magabrotheeeer/contentgen/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) ListUsers(ctx context.Context, f models.ListFilter, limit, offset int) ([]*models.User, int, error) {
	args := m.Called(ctx, f, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.User), args.Int(1), args.Error(2)
}

func (m *RepoMock) SetUserStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *RepoMock) CountUsersByStatus(ctx context.Context) (map[string]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *RepoMock) ListPayments(ctx context.Context, f models.ListFilter, limit, offset int) ([]*models.Payment, int, float64, error) {
	args := m.Called(ctx, f, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Get(2).(float64), args.Error(3)
	}
	return args.Get(0).([]*models.Payment), args.Int(1), args.Get(2).(float64), args.Error(3)
}

func (m *RepoMock) TotalRevenue(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *RepoMock) ListReports(ctx context.Context, f models.ListFilter, limit, offset int) ([]*models.Report, int, error) {
	args := m.Called(ctx, f, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Report), args.Int(1), args.Error(2)
}

func (m *RepoMock) SetReportStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *RepoMock) CountReportsByStatus(ctx context.Context, status string) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) CountContent(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestAdminService_ListNormalizesFilter(t *testing.T) {
	tests := []struct {
		name string
		in   models.ListFilter
		want models.ListFilter
	}{
		{name: "all means no status", in: models.ListFilter{Status: "all"}, want: models.ListFilter{}},
		{name: "ALL is case-insensitive", in: models.ListFilter{Status: "ALL", Query: " x "}, want: models.ListFilter{Query: "x"}},
		{name: "status kept", in: models.ListFilter{Status: models.ReportPending}, want: models.ListFilter{Status: models.ReportPending}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("ListReports", mock.Anything, tt.want, 10, 0).Return([]*models.Report{}, 0, nil).Once()

			_, err := NewAdminService(repo, newNoopLogger()).ListReports(context.Background(), tt.in, paginate.New(1, 10))
			require.NoError(t, err)
			repo.AssertExpectations(t)
		})
	}
}

func TestAdminService_ListPayments(t *testing.T) {
	repo := new(RepoMock)
	payments := []*models.Payment{{ID: "p3"}, {ID: "p2"}}
	repo.On("ListPayments", mock.Anything, models.ListFilter{Query: "bob"}, 2, 2).Return(payments, 5, 68.0, nil).Once()

	page, err := NewAdminService(repo, newNoopLogger()).
		ListPayments(context.Background(), models.ListFilter{Query: "bob", Status: "all"}, paginate.New(2, 2))
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.Page)
	assert.InDelta(t, 68.0, page.Revenue, 0.001)
	assert.Len(t, page.Items, 2)
}

func TestAdminService_ListUsersPastEnd(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListUsers", mock.Anything, models.ListFilter{}, 10, 90).Return(nil, 3, nil).Once()

	page, err := NewAdminService(repo, newNoopLogger()).ListUsers(context.Background(), models.ListFilter{}, paginate.New(10, 10))
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 1, page.TotalPages)
}

func TestAdminService_SetUserStatus(t *testing.T) {
	repo := new(RepoMock)
	repo.On("SetUserStatus", mock.Anything, "u2", models.UserStatusSuspended).Return(nil).Once()
	svc := NewAdminService(repo, newNoopLogger())

	require.NoError(t, svc.SetUserStatus(context.Background(), "admin", "u2", models.UserStatusSuspended))
	assert.ErrorIs(t, svc.SetUserStatus(context.Background(), "admin", "admin", models.UserStatusSuspended), ErrSelfSuspend)
	repo.AssertExpectations(t)
}

func TestAdminService_Stats(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CountUsersByStatus", mock.Anything).Return(map[string]int{"active": 3, "suspended": 1, "pending": 0}, nil).Once()
	repo.On("TotalRevenue", mock.Anything).Return(117.0, nil).Once()
	repo.On("CountContent", mock.Anything).Return(12, nil).Once()
	repo.On("CountReportsByStatus", mock.Anything, models.ReportPending).Return(2, nil).Once()

	stats, err := NewAdminService(repo, newNoopLogger()).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.UsersByStatus["active"])
	assert.InDelta(t, 117.0, stats.TotalRevenue, 0.001)
	assert.Equal(t, 12, stats.ContentCount)
	assert.Equal(t, 2, stats.PendingReports)
}

func TestAdminService_StatsError(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CountUsersByStatus", mock.Anything).Return(nil, errors.New("db error")).Once()

	_, err := NewAdminService(repo, newNoopLogger()).Stats(context.Background())
	assert.Error(t, err)
}
