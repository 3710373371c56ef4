// Package users реализует админский HTTP-обработчик списка пользователей.
//
// Поддерживаются поиск по e-mail и имени (q), фильтр по статусу и по дате
// регистрации (from, to в формате YYYY-MM-DD).
package users

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

// Handler отдаёт пользователей администратору.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает выборку пользователей.
type Service interface {
	ListUsers(ctx context.Context, f models.ListFilter, p paginate.Params) (models.Page[*models.User], error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Пользователи
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Param q query string false "Поиск по e-mail или имени"
// @Param status query string false "Статус"
// @Param from query string false "Дата регистрации с (YYYY-MM-DD)"
// @Param to query string false "Дата регистрации по (YYYY-MM-DD)"
// @Param page query int false "Номер страницы"
// @Param per_page query int false "Размер страницы"
// @Success 200 {object} response.Response "Страница пользователей"
// @Failure 400 {object} response.ErrorResponse "Некорректный фильтр"
// @Failure 403 {object} response.ErrorResponse "Нет прав администратора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.users"
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

	page, err := h.service.ListUsers(r.Context(), f, paginate.FromQuery(q))
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list users"))
		return
	}
	render.JSON(w, r, response.OKWithData(page))
}
