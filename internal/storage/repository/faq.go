package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/contentgen/internal/models"
)

// ListFAQs возвращает все FAQ по возрастанию позиции.
func (s *Storage) ListFAQs(ctx context.Context) ([]*models.FAQ, error) {
	const op = "storage.ListFAQs"
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, question, answer, category, position FROM faqs ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.FAQ, 0)
	for rows.Next() {
		var f models.FAQ
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.Category, &f.Position); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateFAQ добавляет вопрос и возвращает его id.
func (s *Storage) CreateFAQ(ctx context.Context, f models.FAQ) (string, error) {
	const op = "storage.CreateFAQ"
	var id string
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO faqs (question, answer, category, position)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, f.Question, f.Answer, f.Category, f.Position).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, mapError(err))
	}
	return id, nil
}

// UpdateFAQ перезаписывает вопрос целиком.
func (s *Storage) UpdateFAQ(ctx context.Context, f models.FAQ) error {
	const op = "storage.UpdateFAQ"
	res, err := s.DB.ExecContext(ctx, `
		UPDATE faqs SET question = $1, answer = $2, category = $3, position = $4
		WHERE id = $5`, f.Question, f.Answer, f.Category, f.Position, f.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteFAQ удаляет вопрос.
func (s *Storage) DeleteFAQ(ctx context.Context, id string) error {
	const op = "storage.DeleteFAQ"
	res, err := s.DB.ExecContext(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}
	if err := checkAffected(res); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
