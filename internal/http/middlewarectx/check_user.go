package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/contentgen/internal/http/response"
	"github.com/magabrotheeeer/contentgen/internal/lib/sl"
	"github.com/magabrotheeeer/contentgen/internal/models"
	"github.com/magabrotheeeer/contentgen/internal/storage/repository"
)

// UserService определяет интерфейс для получения учётной записи пользователя
type UserService interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// UserStatusMiddleware создает middleware для проверки статуса учётной записи.
// Заблокированные и ожидающие подтверждения пользователи получают 403.
func UserStatusMiddleware(log *slog.Logger, users UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				log.Error("user identification missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			user, err := users.GetUser(r.Context(), userID)
			if errors.Is(err, repository.ErrNotFound) {
				log.Warn("token refers to unknown user", slog.String("user_id", userID))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user not found"))
				return
			}
			if err != nil {
				log.Error("failed to get user", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			switch user.Status {
			case models.UserStatusSuspended:
				log.Warn("suspended user, access denied", slog.String("user_id", userID))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("account suspended"))
				return
			case models.UserStatusPending:
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("account pending"))
				return
			}

			// роль из базы актуальнее роли в токене
			ctx := context.WithValue(r.Context(), Role, user.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly пропускает только пользователей с ролью admin.
func AdminOnly(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) != models.RoleAdmin {
				userID, _ := UserIDFromContext(r.Context())
				log.Warn("admin route access denied", slog.String("user_id", userID))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
