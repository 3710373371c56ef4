package update

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/contentgen/internal/http/middlewarectx"
	"github.com/magabrotheeeer/contentgen/internal/models"
	"github.com/magabrotheeeer/contentgen/internal/storage/repository"
)

const contentID = "0b5c7a2e-6a3f-4d43-9f0e-7b8f1d2c3a4b"

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Update(ctx context.Context, userID, id string, req models.UpdateContentRequest) (*models.ContentItem, error) {
	args := m.Called(ctx, userID, id, req)
	item, _ := args.Get(0).(*models.ContentItem)
	return item, args.Error(1)
}

func TestUpdateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		url            string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное обновление",
			url:  "/content/" + contentID,
			body: `{"title":"New","status":"published"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, "u1", contentID, models.UpdateContentRequest{Title: "New", Status: "published"}).
					Return(&models.ContentItem{ID: contentID, Title: "New", Status: "published"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"published"`,
		},
		{
			name:           "некорректный JSON",
			url:            "/content/" + contentID,
			body:           "not a json",
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "неизвестный статус",
			url:            "/content/" + contentID,
			body:           `{"status":"deleted"}`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"field Status must be one of: draft published archived"}`,
		},
		{
			name:           "некорректный id в url",
			url:            "/content/abc",
			body:           `{"title":"New"}`,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid id"}`,
		},
		{
			name: "чужой контент",
			url:  "/content/" + contentID,
			body: `{"title":"New"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, "u1", contentID, models.UpdateContentRequest{Title: "New"}).
					Return(nil, repository.ErrNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"content not found"}`,
		},
		{
			name: "ошибка сервиса",
			url:  "/content/" + contentID,
			body: `{"title":"New"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, "u1", contentID, models.UpdateContentRequest{Title: "New"}).
					Return(nil, errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not update content"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			router := chi.NewRouter()
			router.Put("/content/{id}", New(logger, svc).ServeHTTP)

			req := httptest.NewRequest(http.MethodPut, tt.url, bytes.NewBufferString(tt.body))
			req = req.WithContext(middlewarectx.WithUser(req.Context(), "u1", "alice", models.RoleUser))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
