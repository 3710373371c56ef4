// Package services отдаёт публичный FAQ и позволяет администратору его редактировать.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/contentgen/internal/lib/sl"
	"github.com/magabrotheeeer/contentgen/internal/models"
)

const (
	// CacheKey ключ списка FAQ в кеше.
	CacheKey = "faqs:all"
	// CacheTTL время жизни списка в кеше.
	CacheTTL = 24 * time.Hour
)

// Repository хранилище FAQ.
type Repository interface {
	ListFAQs(ctx context.Context) ([]*models.FAQ, error)
	CreateFAQ(ctx context.Context, f models.FAQ) (string, error)
	UpdateFAQ(ctx context.Context, f models.FAQ) error
	DeleteFAQ(ctx context.Context, id string) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// FAQService управляет вопросами и ответами.
type FAQService struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
}

// NewFAQService создает новый экземпляр FAQService.
func NewFAQService(repo Repository, cache Cache, log *slog.Logger) *FAQService {
	return &FAQService{repo: repo, cache: cache, log: log}
}

// List возвращает FAQ по возрастанию позиции, используя кеш.
func (s *FAQService) List(ctx context.Context) ([]*models.FAQ, error) {
	const op = "services.faq.List"
	var cached []*models.FAQ
	found, err := s.cache.Get(ctx, CacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", CacheKey), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	faqs, err := s.repo.ListFAQs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, CacheKey, faqs, CacheTTL); err != nil {
		s.log.Warn("failed to cache faqs", sl.Err(err))
	}
	return faqs, nil
}

// Create добавляет вопрос.
func (s *FAQService) Create(ctx context.Context, req models.FAQRequest) (*models.FAQ, error) {
	const op = "services.faq.Create"
	f := models.FAQ{Question: req.Question, Answer: req.Answer, Category: req.Category, Position: req.Position}
	id, err := s.repo.CreateFAQ(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	f.ID = id
	s.invalidate(ctx)
	return &f, nil
}

// Update перезаписывает вопрос.
func (s *FAQService) Update(ctx context.Context, id string, req models.FAQRequest) (*models.FAQ, error) {
	const op = "services.faq.Update"
	f := models.FAQ{ID: id, Question: req.Question, Answer: req.Answer, Category: req.Category, Position: req.Position}
	if err := s.repo.UpdateFAQ(ctx, f); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx)
	return &f, nil
}

// Remove удаляет вопрос.
func (s *FAQService) Remove(ctx context.Context, id string) error {
	const op = "services.faq.Remove"
	if err := s.repo.DeleteFAQ(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *FAQService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, CacheKey); err != nil {
		s.log.Warn("failed to invalidate faq cache", sl.Err(err))
	}
}
