// Package clear реализует HTTP-обработчик удаления всех уведомлений пользователя.
package clear

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/contentgen/internal/http/middlewarectx"
	"github.com/magabrotheeeer/contentgen/internal/http/response"
	"github.com/magabrotheeeer/contentgen/internal/lib/sl"
)

// Handler очищает уведомления пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает очистку уведомлений.
type Service interface {
	Clear(ctx context.Context, userID string) (int, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить все уведомления
// @Tags Notifications
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Количество удалённых"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /notifications [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notification.clear"
	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	n, err := h.service.Clear(r.Context(), userID)
	if err != nil {
		log.Error("failed to clear notifications", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not clear notifications"))
		return
	}
	log.Info("notifications cleared", slog.Int("deleted", n))
	render.JSON(w, r, response.OKWithData(map[string]any{"deleted": n}))
}
