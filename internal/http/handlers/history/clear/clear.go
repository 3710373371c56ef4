// Package clear реализует HTTP-обработчик очистки истории пользователя.
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

// Handler очищает историю.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает очистку истории.
type Service interface {
	Clear(ctx context.Context, userID string) (int, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Очистить историю
// @Tags History
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Количество удалённых записей"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /history [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.history.clear"
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
		log.Error("failed to clear history", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not clear history"))
		return
	}
	render.JSON(w, r, response.OKWithData(map[string]any{"deleted": n}))
}
