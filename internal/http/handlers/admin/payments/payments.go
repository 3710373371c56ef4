// Package payments реализует админский HTTP-обработчик списка платежей.
// Вместе со страницей возвращается сумма завершённых платежей по фильтру.
package payments

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/contentgen/internal/http/request"
	"github.com/magabrotheeeer/contentgen/internal/http/response"
	"github.com/magabrotheeeer/contentgen/internal/lib/paginate"
	"github.com/magabrotheeeer/contentgen/internal/lib/sl"
	"github.com/magabrotheeeer/contentgen/internal/models"
)

// Handler отдаёт платежи администратору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает выборку платежей.
type Service interface {
	ListPayments(ctx context.Context, f models.ListFilter, p paginate.Params) (models.PaymentPage, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Платежи
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Param q query string false "Поиск по e-mail плательщика"
// @Param status query string false "Статус платежа"
// @Param from query string false "С даты (YYYY-MM-DD)"
// @Param to query string false "По дату (YYYY-MM-DD)"
// @Param page query int false "Номер страницы"
// @Param per_page query int false "Размер страницы"
// @Success 200 {object} response.Response "Страница платежей и выручка"
// @Failure 400 {object} response.ErrorResponse "Некорректный фильтр"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/payments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.payments"
	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := r.URL.Query()
	f, err := request.ListFilter(q)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	page, err := h.service.ListPayments(r.Context(), f, paginate.FromQuery(q))
	if err != nil {
		log.Error("failed to list payments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list payments"))
		return
	}
	render.JSON(w, r, response.OKWithData(page))
}
