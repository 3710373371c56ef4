package read

import (
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

type MockService struct {
	mock.Mock
}

func (m *MockService) Read(ctx context.Context, userID, role, id string) (*models.ContentItem, error) {
	args := m.Called(ctx, userID, role, id)
	item, _ := args.Get(0).(*models.ContentItem)
	return item, args.Error(1)
}

func TestReadHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		url            string
		role           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "owner reads",
			url:  "/content/" + contentID,
			role: models.RoleUser,
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "u1", models.RoleUser, contentID).
					Return(&models.ContentItem{ID: contentID, Title: "Hello"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"Hello"`,
		},
		{
			name: "admin role is forwarded",
			url:  "/content/" + contentID,
			role: models.RoleAdmin,
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "u1", models.RoleAdmin, contentID).
					Return(&models.ContentItem{ID: contentID}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   contentID,
		},
		{
			name:           "invalid id",
			url:            "/content/123",
			role:           models.RoleUser,
			setupMock:      func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid id"}`,
		},
		{
			name: "not found",
			url:  "/content/" + contentID,
			role: models.RoleUser,
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "u1", models.RoleUser, contentID).Return(nil, repository.ErrNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"content not found"}`,
		},
		{
			name: "service error",
			url:  "/content/" + contentID,
			role: models.RoleUser,
			setupMock: func(m *MockService) {
				m.On("Read", mock.Anything, "u1", models.RoleUser, contentID).Return(nil, errors.New("db")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not read content"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			router := chi.NewRouter()
			router.Get("/content/{id}", New(logger, svc).ServeHTTP)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			req = req.WithContext(middlewarectx.WithUser(req.Context(), "u1", "alice", tt.role))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
