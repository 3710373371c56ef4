package stats

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/contentgen/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Stats(ctx context.Context) (*models.Stats, error) {
	args := m.Called(ctx)
	st, _ := args.Get(0).(*models.Stats)
	return st, args.Error(1)
}

func TestStatsHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := new(MockService)
	svc.On("Stats", mock.Anything).Return(&models.Stats{
		UsersByStatus:  map[string]int{"active": 5, "suspended": 1},
		TotalRevenue:   68,
		ContentCount:   12,
		PendingReports: 2,
	}, nil).Once()
	rec := httptest.NewRecorder()
	New(logger, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK","data":{"users_by_status":{"active":5,"suspended":1},"total_revenue":68,"content_count":12,"pending_reports":2}}`,
		rec.Body.String())

	svc = new(MockService)
	svc.On("Stats", mock.Anything).Return(nil, errors.New("db")).Once()
	rec = httptest.NewRecorder()
	New(logger, svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
