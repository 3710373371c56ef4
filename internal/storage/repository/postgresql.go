// Package repository реализует хранилище данных на основе PostgreSQL
// для пользователей, подписок, платежей, контента, обращений, уведомлений,
// FAQ и истории действий.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/magabrotheeeer/contentgen/internal/models"
)

var (
	// ErrNotFound запись не найдена.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists нарушено ограничение уникальности.
	ErrAlreadyExists = errors.New("already exists")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// Close закрывает пул соединений.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// Ping проверяет доступность базы данных.
func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// mapError переводит ошибки драйвера в ошибки пакета.
func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return fmt.Errorf("%w: %s", ErrAlreadyExists, pgErr.ConstraintName)
		case pgerrcode.InvalidTextRepresentation, pgerrcode.ForeignKeyViolation:
			return fmt.Errorf("%w: %s", ErrNotFound, pgErr.Message)
		}
	}
	return err
}

// checkAffected возвращает ErrNotFound, если запрос не затронул ни одной строки.
func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// where собирает условие WHERE с позиционными параметрами.
type where struct {
	clauses []string
	args    []any
}

// arg добавляет значение и возвращает его плейсхолдер.
func (w *where) arg(v any) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *where) add(clause string) {
	w.clauses = append(w.clauses, clause)
}

// search добавляет регистронезависимый поиск подстроки по любой из колонок.
func (w *where) search(query string, columns ...string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}
	p := w.arg("%" + escapeLike(query) + "%")
	parts := make([]string, 0, len(columns))
	for _, c := range columns {
		parts = append(parts, c+" ILIKE "+p)
	}
	w.add("(" + strings.Join(parts, " OR ") + ")")
}

// filter применяет общий админский фильтр: поиск, статус и диапазон дат по createdCol.
func (w *where) filter(f models.ListFilter, statusCol, createdCol string, searchCols ...string) {
	w.search(f.Query, searchCols...)
	if f.Status != "" {
		w.add(statusCol + " = " + w.arg(f.Status))
	}
	if !f.From.IsZero() {
		w.add(createdCol + " >= " + w.arg(startOfDay(f.From)))
	}
	if !f.To.IsZero() {
		w.add(createdCol + " < " + w.arg(startOfDay(f.To).AddDate(0, 0, 1)))
	}
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
