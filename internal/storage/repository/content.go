package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/contentgen/internal/models"
)

const contentColumns = `id, author_id, title, prompt, body, type, tone, status, word_count, created_at, updated_at`

func scanContent(row interface{ Scan(...any) error }) (*models.ContentItem, error) {
	var c models.ContentItem
	if err := row.Scan(&c.ID, &c.AuthorID, &c.Title, &c.Prompt, &c.Body, &c.Type, &c.Tone,
		&c.Status, &c.WordCount, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateContent сохраняет элемент контента и возвращает его с заполненными id и датами.
func (s *Storage) CreateContent(ctx context.Context, item models.ContentItem) (*models.ContentItem, error) {
	const op = "storage.CreateContent"
	row := s.DB.QueryRowContext(ctx, `
		INSERT INTO content_items (author_id, title, prompt, body, type, tone, status, word_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+contentColumns,
		item.AuthorID, item.Title, item.Prompt, item.Body, item.Type, item.Tone, item.Status, item.WordCount)
	created, err := scanContent(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return created, nil
}

// GetContent возвращает элемент контента по id.
func (s *Storage) GetContent(ctx context.Context, id string) (*models.ContentItem, error) {
	const op = "storage.GetContent"
	row := s.DB.QueryRowContext(ctx, `SELECT `+contentColumns+` FROM content_items WHERE id = $1`, id)
	item, err := scanContent(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return item, nil
}

// UpdateContent перезаписывает редактируемые поля элемента.
func (s *Storage) UpdateContent(ctx context.Context, item models.ContentItem) (*models.ContentItem, error) {
	const op = "storage.UpdateContent"
	row := s.DB.QueryRowContext(ctx, `
		UPDATE content_items
		SET title = $1, body = $2, status = $3, word_count = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING `+contentColumns,
		item.Title, item.Body, item.Status, item.WordCount, item.ID)
	updated, err := scanContent(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}
	return updated, nil
}

// DeleteContent удаляет элемент контента.
func (s *Storage) DeleteContent(ctx context.Context, id string) error {
	const op = "storage.DeleteContent"
	res, err := s.DB.ExecContext(ctx, `DELETE FROM content_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListContent возвращает страницу контента автора и общее количество совпадений.
func (s *Storage) ListContent(ctx context.Context, f models.ContentFilter, limit, offset int) ([]*models.ContentItem, int, error) {
	const op = "storage.ListContent"

	var w where
	w.add("author_id = " + w.arg(f.AuthorID))
	w.search(f.Query, "title", "body")
	if f.Status != "" {
		w.add("status = " + w.arg(f.Status))
	}
	if f.Type != "" {
		w.add("type = " + w.arg(f.Type))
	}

	var total int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM content_items`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, mapError(err))
	}

	query := `SELECT ` + contentColumns + ` FROM content_items` + w.String() +
		` ORDER BY created_at DESC, id DESC LIMIT ` + w.arg(limit) + ` OFFSET ` + w.arg(offset)
	rows, err := s.DB.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, mapError(err))
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.ContentItem, 0, limit)
	for rows.Next() {
		item, err := scanContent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}

// CountContent общее количество элементов контента.
func (s *Storage) CountContent(ctx context.Context) (int, error) {
	const op = "storage.CountContent"
	var n int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM content_items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
