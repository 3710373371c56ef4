// Package request разбирает общие параметры HTTP-запросов: идентификаторы из пути
// и параметры админских выборок из строки запроса.
package request

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/contentgen/internal/models"
)

// DateLayout формат дат в параметрах from и to.
const DateLayout = "2006-01-02"

var (
	// ErrInvalidID идентификатор в пути не является UUID.
	ErrInvalidID = errors.New("invalid id")
	// ErrInvalidDateRange from позже to.
	ErrInvalidDateRange = errors.New("from must not be after to")
)

// ID возвращает параметр пути name, приведённый к каноничному виду UUID.
func ID(r *http.Request, name string) (string, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return "", ErrInvalidID
	}
	return id.String(), nil
}

// ListFilter читает q, status, from и to. Даты задаются в формате YYYY-MM-DD, обе границы включительно.
func ListFilter(q url.Values) (models.ListFilter, error) {
	f := models.ListFilter{
		Query:  strings.TrimSpace(q.Get("q")),
		Status: strings.TrimSpace(q.Get("status")),
	}
	var err error
	if f.From, err = parseDate(q.Get("from")); err != nil {
		return f, fmt.Errorf("invalid from: %w", err)
	}
	if f.To, err = parseDate(q.Get("to")); err != nil {
		return f, fmt.Errorf("invalid to: %w", err)
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return f, ErrInvalidDateRange
	}
	return f, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, s)
}
