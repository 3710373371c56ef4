package middlewarectx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/contentgen/internal/http/middlewarectx"
	"github.com/magabrotheeeer/contentgen/internal/models"
	"github.com/magabrotheeeer/contentgen/internal/storage/repository"
)

type UserServiceMock struct {
	mock.Mock
}

func (m *UserServiceMock) GetUser(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func TestUserStatusMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		user       *models.User
		err        error
		wantStatus int
		wantBody   string
		wantRole   string
	}{
		{name: "no user in context", wantStatus: http.StatusUnauthorized},
		{
			name:       "active user passes with role from storage",
			userID:     "u1",
			user:       &models.User{ID: "u1", Status: models.UserStatusActive, Role: models.RoleAdmin},
			wantStatus: http.StatusOK,
			wantRole:   models.RoleAdmin,
		},
		{
			name:       "suspended",
			userID:     "u1",
			user:       &models.User{ID: "u1", Status: models.UserStatusSuspended},
			wantStatus: http.StatusForbidden,
			wantBody:   `{"status":"Error","error":"account suspended"}`,
		},
		{
			name:       "pending",
			userID:     "u1",
			user:       &models.User{ID: "u1", Status: models.UserStatusPending},
			wantStatus: http.StatusForbidden,
			wantBody:   `{"status":"Error","error":"account pending"}`,
		},
		{name: "deleted user", userID: "u1", err: repository.ErrNotFound, wantStatus: http.StatusUnauthorized},
		{name: "storage error", userID: "u1", err: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UserServiceMock)
			if tt.userID != "" {
				users.On("GetUser", mock.Anything, tt.userID).Return(tt.user, tt.err).Once()
			}
			var gotRole string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotRole = middlewarectx.RoleFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.userID != "" {
				req = req.WithContext(middlewarectx.WithUser(req.Context(), tt.userID, "bob", models.RoleUser))
			}
			rec := httptest.NewRecorder()
			middlewarectx.UserStatusMiddleware(newNoopLogger(), users)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
			if tt.wantRole != "" {
				assert.Equal(t, tt.wantRole, gotRole)
			}
			users.AssertExpectations(t)
		})
	}
}

func TestAdminOnly(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	mw := middlewarectx.AdminOnly(newNoopLogger())(next)

	for role, want := range map[string]int{
		models.RoleAdmin: http.StatusOK,
		models.RoleUser:  http.StatusForbidden,
		"":               http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
		req = req.WithContext(middlewarectx.WithUser(req.Context(), "u1", "bob", role))
		rec := httptest.NewRecorder()
		mw.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, "role %q", role)
	}
}
