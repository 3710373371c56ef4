package register

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/contentgen/internal/lib/password"
	"github.com/magabrotheeeer/contentgen/internal/models"
	services "github.com/magabrotheeeer/contentgen/internal/services/auth"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Register(ctx context.Context, email, username, rawPassword string) (string, error) {
	args := m.Called(ctx, email, username, rawPassword)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	valid := models.RegisterRequest{Email: "alice@example.com", Username: "alice", Password: "Secret123"}

	tests := []struct {
		name           string
		requestBody    any
		setupMock      func(*ServiceMock)
		wantStatusCode int
		wantBody       string
	}{
		{
			name:        "valid registration",
			requestBody: valid,
			setupMock: func(m *ServiceMock) {
				m.On("Register", mock.Anything, valid.Email, valid.Username, valid.Password).Return("u1", nil).Once()
			},
			wantStatusCode: http.StatusCreated,
			wantBody:       `{"status":"OK","data":{"id":"u1","username":"alice","email":"alice@example.com"}}`,
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			setupMock:      func(*ServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "invalid email",
			requestBody:    models.RegisterRequest{Email: "alice", Username: "alice", Password: "Secret123"},
			setupMock:      func(*ServiceMock) {},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantBody:       `{"status":"Error","error":"field Email must be a valid email address"}`,
		},
		{
			name:        "weak password",
			requestBody: models.RegisterRequest{Email: "alice@example.com", Username: "alice", Password: "secret"},
			setupMock: func(m *ServiceMock) {
				m.On("Register", mock.Anything, "alice@example.com", "alice", "secret").
					Return("", &password.WeakPasswordError{Problems: []string{"password must contain a digit"}}).Once()
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantBody:       `{"status":"Error","error":"password must contain a digit"}`,
		},
		{
			name:        "duplicate user",
			requestBody: valid,
			setupMock: func(m *ServiceMock) {
				m.On("Register", mock.Anything, valid.Email, valid.Username, valid.Password).Return("", services.ErrUserExists).Once()
			},
			wantStatusCode: http.StatusConflict,
			wantBody:       `{"status":"Error","error":"user with this email or username already exists"}`,
		},
		{
			name:        "service error",
			requestBody: valid,
			setupMock: func(m *ServiceMock) {
				m.On("Register", mock.Anything, valid.Email, valid.Username, valid.Password).Return("", errors.New("db down")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantBody:       `{"status":"Error","error":"could not register user"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			tt.setupMock(svc)

			var body []byte
			if s, ok := tt.requestBody.(string); ok {
				body = []byte(s)
			} else {
				var err error
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			New(newNoopLogger(), svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
