// Package reports реализует админский HTTP-обработчик списка обращений.
package reports

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

// Handler отдаёт обращения администратору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает выборку обращений.
type Service interface {
	ListReports(ctx context.Context, f models.ListFilter, p paginate.Params) (models.Page[*models.Report], error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Обращения
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Param q query string false "Поиск по теме"
// @Param status query string false "Статус обращения"
// @Param from query string false "С даты (YYYY-MM-DD)"
// @Param to query string false "По дату (YYYY-MM-DD)"
// @Param page query int false "Номер страницы"
// @Param per_page query int false "Размер страницы"
// @Success 200 {object} response.Response "Страница обращений"
// @Failure 400 {object} response.ErrorResponse "Некорректный фильтр"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/reports [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.reports"
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

	page, err := h.service.ListReports(r.Context(), f, paginate.FromQuery(q))
	if err != nil {
		log.Error("failed to list reports", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list reports"))
		return
	}
	render.JSON(w, r, response.OKWithData(page))
}
