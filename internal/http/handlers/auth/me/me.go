// Package me реализует HTTP-обработчик профиля текущего пользователя.
package me

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/contentgen/internal/http/middlewarectx"
	"github.com/magabrotheeeer/contentgen/internal/http/response"
	"github.com/magabrotheeeer/contentgen/internal/lib/sl"
	"github.com/magabrotheeeer/contentgen/internal/models"
)

// Handler отдаёт профиль пользователя вместе с подпиской и числом непрочитанных уведомлений.
type Handler struct {
	log           *slog.Logger
	users         UserService
	subscriptions SubscriptionService
	notifications NotificationService
}

// UserService возвращает учётную запись.
type UserService interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

// SubscriptionService возвращает подписку пользователя.
type SubscriptionService interface {
	Get(ctx context.Context, userID string) (*models.SubscriptionInfo, error)
}

// NotificationService считает непрочитанные уведомления.
type NotificationService interface {
	UnreadCount(ctx context.Context, userID string) (int, error)
}

// New создает новый Handler.
func New(log *slog.Logger, users UserService, subscriptions SubscriptionService, notifications NotificationService) *Handler {
	return &Handler{
		log:           log,
		users:         users,
		subscriptions: subscriptions,
		notifications: notifications,
	}
}

// ServeHTTP godoc
// @Summary Профиль текущего пользователя
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Профиль"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"
	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	user, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		log.Error("failed to get user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load profile"))
		return
	}
	sub, err := h.subscriptions.Get(r.Context(), userID)
	if err != nil {
		log.Error("failed to get subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load profile"))
		return
	}
	unread, err := h.notifications.UnreadCount(r.Context(), userID)
	if err != nil {
		log.Warn("failed to count unread notifications", sl.Err(err))
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"user":                 user,
		"subscription":         sub,
		"unread_notifications": unread,
	}))
}
