package password

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/contentgen/internal/http/middlewarectx"
	libpassword "github.com/magabrotheeeer/contentgen/internal/lib/password"
	services "github.com/magabrotheeeer/contentgen/internal/services/auth"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	return m.Called(ctx, userID, oldPassword, newPassword).Error(0)
}

func TestPasswordHandler(t *testing.T) {
	const body = `{"old_password":"Old12345","new_password":"New12345"}`
	tests := []struct {
		name       string
		mockErr    error
		wantStatus int
		wantBody   string
	}{
		{name: "changed", wantStatus: http.StatusOK, wantBody: `{"status":"OK"}`},
		{name: "wrong current", mockErr: services.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized,
			wantBody: `{"status":"Error","error":"current password is incorrect"}`},
		{name: "weak new", mockErr: &libpassword.WeakPasswordError{Problems: []string{"password must contain a digit", "password must contain an uppercase letter"}},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"status":"Error","error":"password must contain a digit, password must contain an uppercase letter"}`},
		{name: "internal", mockErr: errors.New("db"), wantStatus: http.StatusInternalServerError,
			wantBody: `{"status":"Error","error":"could not change password"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			svc.On("ChangePassword", mock.Anything, "u1", "Old12345", "New12345").Return(tt.mockErr).Once()

			req := httptest.NewRequest(http.MethodPut, "/me/password", bytes.NewBufferString(body))
			req = req.WithContext(middlewarectx.WithUser(req.Context(), "u1", "alice", "user"))
			rec := httptest.NewRecorder()
			New(slog.New(slog.NewTextHandler(io.Discard, nil)), svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
