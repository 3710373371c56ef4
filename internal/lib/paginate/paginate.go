// Package paginate нормализует параметры постраничной выдачи и считает смещения.
package paginate

import (
	"net/url"
	"strconv"

	"github.com/magabrotheeeer/contentgen/internal/models"
)

const (
	// DefaultPerPage размер страницы по умолчанию.
	DefaultPerPage = 10
	// MaxPerPage максимальный размер страницы.
	MaxPerPage = 100
)

// Params номер страницы (с единицы) и её размер.
type Params struct {
	Page    int
	PerPage int
}

// New возвращает нормализованные параметры: page >= 1, 1 <= perPage <= MaxPerPage.
func New(page, perPage int) Params {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Params{Page: page, PerPage: perPage}
}

// FromQuery читает page и per_page из строки запроса. Некорректные значения заменяются значениями по умолчанию.
func FromQuery(q url.Values) Params {
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	return New(page, perPage)
}

// Offset смещение первой записи страницы.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Limit количество записей на странице.
func (p Params) Limit() int {
	return p.PerPage
}

// TotalPages количество страниц для total записей.
func (p Params) TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + p.PerPage - 1) / p.PerPage
}

// Build собирает страницу ответа. Nil-срез заменяется пустым, чтобы в JSON был [].
func Build[T any](items []T, total int, p Params) models.Page[T] {
	if items == nil {
		items = []T{}
	}
	return models.Page[T]{
		Items:      items,
		Total:      total,
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalPages: p.TotalPages(total),
	}
}
