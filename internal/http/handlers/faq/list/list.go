// Package list реализует публичный HTTP-обработчик списка FAQ.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/contentgen/internal/http/response"
	"github.com/magabrotheeeer/contentgen/internal/lib/sl"
	"github.com/magabrotheeeer/contentgen/internal/models"
)

// Handler отдаёт FAQ.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает чтение FAQ.
type Service interface {
	List(ctx context.Context) ([]*models.FAQ, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список FAQ
// @Description Вопросы упорядочены по категории и позиции. Авторизация не требуется.
// @Tags FAQ
// @Produce  json
// @Success 200 {object} response.Response "Вопросы и ответы"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /faqs [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.faq.list"
	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	faqs, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list faq", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list faq"))
		return
	}
	if faqs == nil {
		faqs = []*models.FAQ{}
	}
	render.JSON(w, r, response.OKWithData(faqs))
}
