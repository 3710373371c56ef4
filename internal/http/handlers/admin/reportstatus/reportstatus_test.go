package reportstatus

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/contentgen/internal/models"
	"github.com/magabrotheeeer/contentgen/internal/storage/repository"
)

const reportID = "33333333-3333-4333-8333-333333333333"

type MockService struct {
	mock.Mock
}

func (m *MockService) SetReportStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func TestReportStatusHandler(t *testing.T) {
	run := func(svc *MockService, body string) *httptest.ResponseRecorder {
		router := chi.NewRouter()
		router.Patch("/admin/reports/{id}/status", New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc).ServeHTTP)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/admin/reports/"+reportID+"/status", bytes.NewBufferString(body)))
		return rec
	}

	svc := new(MockService)
	svc.On("SetReportStatus", mock.Anything, reportID, models.ReportResolved).Return(nil).Once()
	rec := run(svc, `{"status":"resolved"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)

	svc = new(MockService)
	svc.On("SetReportStatus", mock.Anything, reportID, models.ReportReviewed).Return(repository.ErrNotFound).Once()
	rec = run(svc, `{"status":"reviewed"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = run(new(MockService), `{"status":"closed"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
