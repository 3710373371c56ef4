// Package list реализует HTTP-обработчик списка контента пользователя
// с поиском, фильтрами по статусу и типу и постраничной выдачей.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/contentgen/internal/http/middlewarectx"
	"github.com/magabrotheeeer/contentgen/internal/http/response"
	"github.com/magabrotheeeer/contentgen/internal/lib/paginate"
	"github.com/magabrotheeeer/contentgen/internal/lib/sl"
	"github.com/magabrotheeeer/contentgen/internal/models"
)

// Handler обрабатывает запросы на получение списка контента.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс выборки контента.
type Service interface {
	List(ctx context.Context, userID string, f models.ContentFilter, p paginate.Params) (models.Page[*models.ContentItem], error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список контента
// @Description Возвращает контент текущего пользователя, новые первыми.
// @Tags Content
// @Produce  json
// @Security BearerAuth
// @Param q query string false "Поиск по заголовку и тексту"
// @Param status query string false "draft, published или archived"
// @Param type query string false "blog, social, email или ad"
// @Param page query int false "Номер страницы"
// @Param per_page query int false "Размер страницы"
// @Success 200 {object} response.Response "Страница контента"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /content [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.content.list"
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

	q := r.URL.Query()
	f := models.ContentFilter{
		Query:  strings.TrimSpace(q.Get("q")),
		Status: strings.TrimSpace(q.Get("status")),
		Type:   strings.TrimSpace(q.Get("type")),
	}
	page, err := h.service.List(r.Context(), userID, f, paginate.FromQuery(q))
	if err != nil {
		log.Error("failed to list content", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list content"))
		return
	}

	log.Debug("content listed", slog.Int("total", page.Total))
	render.JSON(w, r, response.OKWithData(page))
}
