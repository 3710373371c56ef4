// Package contentgen собирает HTTP API: маршруты, сервисы и жизненный цикл сервера.
package contentgen

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/contentgen/internal/config"
	adminpayments "github.com/magabrotheeeer/contentgen/internal/http/handlers/admin/payments"
	adminreports "github.com/magabrotheeeer/contentgen/internal/http/handlers/admin/reports"
	"github.com/magabrotheeeer/contentgen/internal/http/handlers/admin/reportstatus"
	"github.com/magabrotheeeer/contentgen/internal/http/handlers/admin/stats"
	"github.com/magabrotheeeer/contentgen/internal/http/handlers/admin/users"
	"github.com/magabrotheeeer/contentgen/internal/http/handlers/admin/userstatus"
	"github.com/magabrotheeeer/contentgen/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/contentgen/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/contentgen/internal/http/handlers/auth/password"
	"github.com/magabrotheeeer/contentgen/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/contentgen/internal/http/handlers/content/generate"
	contentlist "github.com/magabrotheeeer/contentgen/internal/http/handlers/content/list"
	contentread "github.com/magabrotheeeer/contentgen/internal/http/handlers/content/read"
	contentremove "github.com/magabrotheeeer/contentgen/internal/http/handlers/content/remove"
	contentupdate "github.com/magabrotheeeer/contentgen/internal/http/handlers/content/update"
	faqcreate "github.com/magabrotheeeer/contentgen/internal/http/handlers/faq/create"
	faqlist "github.com/magabrotheeeer/contentgen/internal/http/handlers/faq/list"
	faqremove "github.com/magabrotheeeer/contentgen/internal/http/handlers/faq/remove"
	faqupdate "github.com/magabrotheeeer/contentgen/internal/http/handlers/faq/update"
	"github.com/magabrotheeeer/contentgen/internal/http/handlers/health"
	historyclear "github.com/magabrotheeeer/contentgen/internal/http/handlers/history/clear"
	historylist "github.com/magabrotheeeer/contentgen/internal/http/handlers/history/list"
	historyremove "github.com/magabrotheeeer/contentgen/internal/http/handlers/history/remove"
	notificationclear "github.com/magabrotheeeer/contentgen/internal/http/handlers/notification/clear"
	notificationlist "github.com/magabrotheeeer/contentgen/internal/http/handlers/notification/list"
	"github.com/magabrotheeeer/contentgen/internal/http/handlers/notification/markall"
	"github.com/magabrotheeeer/contentgen/internal/http/handlers/notification/markread"
	notificationremove "github.com/magabrotheeeer/contentgen/internal/http/handlers/notification/remove"
	paymentlist "github.com/magabrotheeeer/contentgen/internal/http/handlers/payment/list"
	reportcreate "github.com/magabrotheeeer/contentgen/internal/http/handlers/report/create"
	"github.com/magabrotheeeer/contentgen/internal/http/handlers/subscription/cancel"
	"github.com/magabrotheeeer/contentgen/internal/http/handlers/subscription/checkout"
	subscriptionget "github.com/magabrotheeeer/contentgen/internal/http/handlers/subscription/get"
	"github.com/magabrotheeeer/contentgen/internal/http/handlers/webhook"
	"github.com/magabrotheeeer/contentgen/internal/http/middlewarectx"
	"github.com/magabrotheeeer/contentgen/internal/metrics"
	adminservice "github.com/magabrotheeeer/contentgen/internal/services/admin"
	authservice "github.com/magabrotheeeer/contentgen/internal/services/auth"
	contentservice "github.com/magabrotheeeer/contentgen/internal/services/content"
	faqservice "github.com/magabrotheeeer/contentgen/internal/services/faq"
	historyservice "github.com/magabrotheeeer/contentgen/internal/services/history"
	notificationservice "github.com/magabrotheeeer/contentgen/internal/services/notification"
	reportservice "github.com/magabrotheeeer/contentgen/internal/services/report"
	subscriptionservice "github.com/magabrotheeeer/contentgen/internal/services/subscription"
	webhookservice "github.com/magabrotheeeer/contentgen/internal/services/webhook"
)

// Services набор сервисов, которые обслуживают маршруты.
type Services struct {
	Auth          *authservice.AuthService
	Content       *contentservice.ContentService
	Notifications *notificationservice.NotificationService
	History       *historyservice.HistoryService
	Subscriptions *subscriptionservice.SubscriptionService
	Reports       *reportservice.ReportService
	FAQ           *faqservice.FAQService
	Admin         *adminservice.AdminService
	Webhook       *webhookservice.WebhookService
	DB            health.Pinger
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, limits config.RateLimit, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		metrics.Middleware,
		middlewarectx.RateLimitMiddleware(logger, limits.RPS, limits.Burst),
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, s.Auth).ServeHTTP)
		r.Get("/faqs", faqlist.New(logger, s.FAQ).ServeHTTP)
		r.Post("/webhook/automation", webhook.New(logger, s.Webhook).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.UserStatusMiddleware(logger, s.Auth))

			r.Get("/me", me.New(logger, s.Auth, s.Subscriptions, s.Notifications).ServeHTTP)
			r.Put("/me/password", password.New(logger, s.Auth).ServeHTTP)

			r.Post("/content", generate.New(logger, s.Content).ServeHTTP)
			r.Get("/content", contentlist.New(logger, s.Content).ServeHTTP)
			r.Get("/content/{id}", contentread.New(logger, s.Content).ServeHTTP)
			r.Put("/content/{id}", contentupdate.New(logger, s.Content).ServeHTTP)
			r.Delete("/content/{id}", contentremove.New(logger, s.Content).ServeHTTP)

			r.Get("/notifications", notificationlist.New(logger, s.Notifications).ServeHTTP)
			r.Post("/notifications/read-all", markall.New(logger, s.Notifications).ServeHTTP)
			r.Post("/notifications/{id}/read", markread.New(logger, s.Notifications).ServeHTTP)
			r.Delete("/notifications/{id}", notificationremove.New(logger, s.Notifications).ServeHTTP)
			r.Delete("/notifications", notificationclear.New(logger, s.Notifications).ServeHTTP)

			r.Get("/history", historylist.New(logger, s.History).ServeHTTP)
			r.Delete("/history/{id}", historyremove.New(logger, s.History).ServeHTTP)
			r.Delete("/history", historyclear.New(logger, s.History).ServeHTTP)

			r.Get("/subscription", subscriptionget.New(logger, s.Subscriptions).ServeHTTP)
			r.Post("/subscription/checkout", checkout.New(logger, s.Subscriptions).ServeHTTP)
			r.Post("/subscription/cancel", cancel.New(logger, s.Subscriptions).ServeHTTP)
			r.Get("/payments", paymentlist.New(logger, s.Subscriptions).ServeHTTP)

			r.Post("/reports", reportcreate.New(logger, s.Reports).ServeHTTP)

			// Админка
			r.Route("/admin", func(r chi.Router) {
				r.Use(middlewarectx.AdminOnly(logger))
				r.Get("/users", users.New(logger, s.Admin).ServeHTTP)
				r.Patch("/users/{id}/status", userstatus.New(logger, s.Admin).ServeHTTP)
				r.Get("/payments", adminpayments.New(logger, s.Admin).ServeHTTP)
				r.Get("/reports", adminreports.New(logger, s.Admin).ServeHTTP)
				r.Patch("/reports/{id}/status", reportstatus.New(logger, s.Admin).ServeHTTP)
				r.Get("/stats", stats.New(logger, s.Admin).ServeHTTP)
				r.Post("/faqs", faqcreate.New(logger, s.FAQ).ServeHTTP)
				r.Put("/faqs/{id}", faqupdate.New(logger, s.FAQ).ServeHTTP)
				r.Delete("/faqs/{id}", faqremove.New(logger, s.FAQ).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New(logger, s.DB).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
