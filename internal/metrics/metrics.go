// Package metrics объявляет метрики Prometheus сервиса и middleware для замера HTTP-запросов.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "contentgen"

// Значения метки result.
const (
	ResultCreated      = "created"
	ResultDeduplicated = "deduplicated"
	ResultAccepted     = "accepted"
	ResultRejected     = "rejected"
	ResultUnauthorized = "unauthorized"
	ResultSent         = "sent"
	ResultFailed       = "failed"
)

var (
	// ContentGenerated количество сгенерированных элементов контента по типу.
	ContentGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_generated_total",
		Help:      "Number of generated content items.",
	}, []string{"type"})

	// Notifications количество созданных и подавленных дедупликацией уведомлений.
	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Notifications by creation result.",
	}, []string{"result"})

	// WebhookRequests количество входящих вебхуков по результату проверки.
	WebhookRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_requests_total",
		Help:      "Incoming automation webhooks by result.",
	}, []string{"result"})

	// EmailsSent количество отправленных писем по результату.
	EmailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_sent_total",
		Help:      "Notification e-mails by delivery result.",
	}, []string{"result"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "code"})
)

// Middleware замеряет длительность запросов. Маршрут берётся из шаблона chi,
// чтобы идентификаторы в пути не раздували кардинальность.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unknown"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		requestDuration.WithLabelValues(r.Method, route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
