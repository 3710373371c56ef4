package update

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

const faqID = "0b1c2d3e-4f50-4617-8283-94a5b6c7d8e9"

type MockService struct {
	mock.Mock
}

func (m *MockService) Update(ctx context.Context, id string, req models.FAQRequest) (*models.FAQ, error) {
	args := m.Called(ctx, id, req)
	faq, _ := args.Get(0).(*models.FAQ)
	return faq, args.Error(1)
}

func TestUpdateHandler(t *testing.T) {
	body := `{"question":"Q?","answer":"A.","category":"general"}`
	req := models.FAQRequest{Question: "Q?", Answer: "A.", Category: "general"}

	tests := []struct {
		name   string
		path   string
		setup  func(*MockService)
		status int
	}{
		{
			name: "updated",
			path: "/admin/faqs/" + faqID,
			setup: func(m *MockService) {
				m.On("Update", mock.Anything, faqID, req).Return(&models.FAQ{ID: faqID}, nil).Once()
			},
			status: http.StatusOK,
		},
		{
			name: "missing",
			path: "/admin/faqs/" + faqID,
			setup: func(m *MockService) {
				m.On("Update", mock.Anything, faqID, req).Return(nil, repository.ErrNotFound).Once()
			},
			status: http.StatusNotFound,
		},
		{name: "bad id", path: "/admin/faqs/abc", setup: func(*MockService) {}, status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setup(svc)
			router := chi.NewRouter()
			router.Put("/admin/faqs/{id}", New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc).ServeHTTP)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, tt.path, bytes.NewBufferString(body)))

			assert.Equal(t, tt.status, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}
