// Package webhook реализует HTTP-обработчик вебхуков автоматизаций.
//
// Ответы используют собственный формат {"success": bool, ...}, который
// ожидают внешние системы автоматизации.
package webhook

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/contentgen/internal/lib/sl"
	services "github.com/magabrotheeeer/contentgen/internal/services/webhook"
)

// SignatureHeader заголовок с base64(HMAC-SHA256) тела запроса.
const SignatureHeader = "X-Webhook-Signature"

const maxBodySize = 1 << 20

// Service описывает обработку вебхука.
type Service interface {
	Handle(ctx context.Context, body []byte, signature string) (*services.Event, error)
}

// Handler принимает вебхуки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// Response тело ответа вебхука.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Event   string `json:"event,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ServeHTTP godoc
// @Summary Вебхук автоматизации
// @Description Принимает событие {event, userId, timestamp, data}. Известные события создают уведомление.
// @Tags Webhook
// @Accept  json
// @Produce  json
// @Param X-Webhook-Signature header string false "base64(HMAC-SHA256(body))"
// @Success 200 {object} Response "Вебхук принят"
// @Failure 400 {object} Response "Некорректное тело"
// @Failure 401 {object} Response "Неверная подпись"
// @Router /webhook/automation [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.webhook"
	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, Response{Error: "could not read body"})
		return
	}
	defer r.Body.Close()

	event, err := h.service.Handle(r.Context(), body, r.Header.Get(SignatureHeader))
	if errors.Is(err, services.ErrInvalidSignature) {
		log.Warn("invalid or missing webhook signature")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, Response{Error: "invalid signature"})
		return
	}
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		log.Info("webhook rejected", slog.String("reason", vErr.Message))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, Response{Error: vErr.Message})
		return
	}
	if err != nil {
		log.Error("failed to handle webhook", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, Response{Error: "internal error"})
		return
	}

	render.JSON(w, r, Response{Success: true, Message: "webhook received", Event: event.Event})
}
