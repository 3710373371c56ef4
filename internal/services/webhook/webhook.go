// Package services принимает входящие вебхуки автоматизаций: проверяет подпись
// и форму JSON, а известные события превращает в уведомления.
package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/magabrotheeeer/contentgen/internal/lib/sl"
	"github.com/magabrotheeeer/contentgen/internal/metrics"
	"github.com/magabrotheeeer/contentgen/internal/models"
)

// События, для которых создаётся уведомление.
const (
	EventContentGenerated = "content.generated"
	EventPaymentCompleted = "payment.completed"
	EventNotify           = "notify"
)

// ErrInvalidSignature подпись отсутствует или не совпадает.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// ValidationError тело вебхука не прошло проверку формы.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Event разобранный вебхук.
type Event struct {
	Event     string
	UserID    string
	Timestamp float64
	Data      gjson.Result
}

// Notifier создаёт уведомления пользователю.
type Notifier interface {
	Create(ctx context.Context, userID, title, message, typ string) (*models.Notification, bool, error)
}

// WebhookService обрабатывает входящие вебхуки.
type WebhookService struct {
	notifier Notifier
	secret   string
	log      *slog.Logger
}

// NewWebhookService создает новый экземпляр WebhookService. Пустой secret отключает проверку подписи.
func NewWebhookService(notifier Notifier, secret string, log *slog.Logger) *WebhookService {
	return &WebhookService{
		notifier: notifier,
		secret:   secret,
		log:      log,
	}
}

type field struct {
	key      string
	typ      gjson.Type
	typeName string
	nonEmpty bool
}

var required = []field{
	{key: "event", typ: gjson.String, typeName: "string", nonEmpty: true},
	{key: "userId", typ: gjson.String, typeName: "string", nonEmpty: true},
	{key: "timestamp", typ: gjson.Number, typeName: "number"},
}

// Validate проверяет, что тело является JSON-объектом с обязательными полями нужных типов.
func Validate(body []byte) (*Event, error) {
	if !gjson.ValidBytes(body) {
		return nil, &ValidationError{Message: "malformed JSON"}
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, &ValidationError{Message: "body must be a JSON object"}
	}

	for _, f := range required {
		v := root.Get(f.key)
		if !v.Exists() {
			return nil, &ValidationError{Message: "missing required field: " + f.key}
		}
		if v.Type != f.typ {
			return nil, &ValidationError{Message: fmt.Sprintf("field %s must be a %s", f.key, f.typeName)}
		}
		if f.nonEmpty && strings.TrimSpace(v.Str) == "" {
			return nil, &ValidationError{Message: fmt.Sprintf("field %s must be a non-empty %s", f.key, f.typeName)}
		}
	}

	data := root.Get("data")
	if data.Exists() && !data.IsObject() {
		return nil, &ValidationError{Message: "field data must be an object"}
	}

	return &Event{
		Event:     root.Get("event").Str,
		UserID:    root.Get("userId").Str,
		Timestamp: root.Get("timestamp").Num,
		Data:      data,
	}, nil
}

// VerifySignature сравнивает base64(HMAC-SHA256(body)) с переданной подписью за постоянное время.
func VerifySignature(secret string, body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Handle проверяет и обрабатывает вебхук. Ошибки создания уведомления только логируются:
// вебхук подтверждается в любом случае.
func (s *WebhookService) Handle(ctx context.Context, body []byte, signature string) (*Event, error) {
	const op = "services.webhook.Handle"

	if s.secret != "" && (signature == "" || !VerifySignature(s.secret, body, signature)) {
		metrics.WebhookRequests.WithLabelValues(metrics.ResultUnauthorized).Inc()
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidSignature)
	}

	event, err := Validate(body)
	if err != nil {
		metrics.WebhookRequests.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	metrics.WebhookRequests.WithLabelValues(metrics.ResultAccepted).Inc()

	log := s.log.With(slog.String("event", event.Event), slog.String("user_id", event.UserID))
	title, message, typ, ok := notificationFor(event)
	if !ok {
		log.Info("webhook event ignored")
		return event, nil
	}
	if _, _, err := s.notifier.Create(ctx, event.UserID, title, message, typ); err != nil {
		log.Error("failed to create notification from webhook", sl.Err(err))
		return event, nil
	}
	log.Info("webhook processed")
	return event, nil
}

func notificationFor(e *Event) (title, message, typ string, ok bool) {
	switch strings.ToLower(e.Event) {
	case EventContentGenerated:
		name := singleLine(e.Data.Get("title").String())
		if name == "" {
			return "Content ready", "Your content has been generated.", models.NotificationSuccess, true
		}
		return "Content ready", fmt.Sprintf("Your content %q has been generated.", name), models.NotificationSuccess, true
	case EventPaymentCompleted:
		amount := e.Data.Get("amount")
		if !amount.Exists() {
			return "Payment received", "Your payment has been completed.", models.NotificationSuccess, true
		}
		currency := e.Data.Get("currency").String()
		if currency == "" {
			currency = "USD"
		}
		return "Payment received", fmt.Sprintf("We received your payment of %.2f %s.", amount.Float(), currency),
			models.NotificationSuccess, true
	case EventNotify:
		title := singleLine(e.Data.Get("title").String())
		if title == "" {
			title = "Notification"
		}
		message := e.Data.Get("message").String()
		if message == "" {
			message = title
		}
		typ := e.Data.Get("type").String()
		if typ == "" {
			typ = models.NotificationInfo
		}
		return title, message, typ, true
	}
	return "", "", "", false
}

// singleLine сворачивает любые пробельные символы, включая CR и LF, в одиночные пробелы.
// Заголовок уведомления уходит в тему письма и не должен содержать переводов строк.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
