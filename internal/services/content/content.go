// Package services содержит бизнес-логику генерации и редактирования контента,
// включая списание кредитов, кеширование и запись истории.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/contentgen/internal/generator"
	"github.com/magabrotheeeer/contentgen/internal/lib/paginate"
	"github.com/magabrotheeeer/contentgen/internal/lib/sl"
	"github.com/magabrotheeeer/contentgen/internal/metrics"
	"github.com/magabrotheeeer/contentgen/internal/models"
	"github.com/magabrotheeeer/contentgen/internal/storage/repository"
)

// CacheTTL время жизни элемента контента в кеше.
const CacheTTL = time.Hour

// ErrInsufficientCredits у пользователя закончились кредиты.
var ErrInsufficientCredits = errors.New("insufficient credits")

// ContentRepository хранилище контента.
type ContentRepository interface {
	CreateContent(ctx context.Context, item models.ContentItem) (*models.ContentItem, error)
	GetContent(ctx context.Context, id string) (*models.ContentItem, error)
	UpdateContent(ctx context.Context, item models.ContentItem) (*models.ContentItem, error)
	DeleteContent(ctx context.Context, id string) error
	ListContent(ctx context.Context, f models.ContentFilter, limit, offset int) ([]*models.ContentItem, int, error)
}

// CreditRepository списывает и возвращает кредиты подписки.
type CreditRepository interface {
	ConsumeCredit(ctx context.Context, userID string) (bool, error)
	RefundCredit(ctx context.Context, userID string) error
}

// HistoryRecorder пишет действия пользователя в историю.
type HistoryRecorder interface {
	Record(ctx context.Context, userID, action string, contentID *string, details string) error
}

// Notifier создаёт уведомления пользователю.
type Notifier interface {
	Create(ctx context.Context, userID, title, message, typ string) (*models.Notification, bool, error)
}

// Generator строит текст по запросу.
type Generator interface {
	Generate(req generator.Request) generator.Result
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// ContentService реализует генерацию и управление контентом пользователя.
type ContentService struct {
	repo      ContentRepository
	credits   CreditRepository
	history   HistoryRecorder
	notifier  Notifier
	generator Generator
	cache     Cache
	log       *slog.Logger
}

// NewContentService создает новый экземпляр ContentService.
func NewContentService(repo ContentRepository, credits CreditRepository, history HistoryRecorder,
	notifier Notifier, gen Generator, cache Cache, log *slog.Logger) *ContentService {
	return &ContentService{
		repo:      repo,
		credits:   credits,
		history:   history,
		notifier:  notifier,
		generator: gen,
		cache:     cache,
		log:       log,
	}
}

func cacheKey(id string) string {
	return "content:" + id
}

// Generate списывает кредит, генерирует текст и сохраняет его черновиком.
// Если сохранить не удалось, кредит возвращается.
func (s *ContentService) Generate(ctx context.Context, userID string, req models.GenerateRequest) (*models.ContentItem, error) {
	const op = "services.content.Generate"

	ok, err := s.credits.ConsumeCredit(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrInsufficientCredits)
	}

	tone := req.Tone
	if tone == "" {
		tone = models.ToneNeutral
	}
	res := s.generator.Generate(generator.Request{
		Title:  req.Title,
		Prompt: req.Prompt,
		Type:   req.Type,
		Tone:   tone,
	})

	item, err := s.repo.CreateContent(ctx, models.ContentItem{
		AuthorID:  userID,
		Title:     res.Title,
		Prompt:    req.Prompt,
		Body:      res.Body,
		Type:      req.Type,
		Tone:      tone,
		Status:    models.ContentDraft,
		WordCount: res.WordCount,
	})
	if err != nil {
		if refundErr := s.credits.RefundCredit(ctx, userID); refundErr != nil {
			s.log.Error("failed to refund credit", slog.String("user_id", userID), sl.Err(refundErr))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	metrics.ContentGenerated.WithLabelValues(item.Type).Inc()
	s.log.Info("content generated", slog.String("id", item.ID), slog.String("type", item.Type))

	s.record(ctx, userID, models.ActionContentGenerated, item.ID, item.Title)
	if _, _, err := s.notifier.Create(ctx, userID, "Content ready",
		fmt.Sprintf("Your %s %q is ready.", item.Type, item.Title), models.NotificationSuccess); err != nil {
		s.log.Warn("failed to notify about generated content", slog.String("id", item.ID), sl.Err(err))
	}
	s.cacheItem(ctx, item)
	return item, nil
}

// Read возвращает элемент контента. Чужой элемент доступен только администратору.
func (s *ContentService) Read(ctx context.Context, userID, role, id string) (*models.ContentItem, error) {
	const op = "services.content.Read"
	item, err := s.load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if item.AuthorID != userID && role != models.RoleAdmin {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	return item, nil
}

// Update меняет заголовок, текст и статус. Пустые поля запроса не трогаются.
func (s *ContentService) Update(ctx context.Context, userID, id string, req models.UpdateContentRequest) (*models.ContentItem, error) {
	const op = "services.content.Update"
	item, err := s.repo.GetContent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if item.AuthorID != userID {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	var changed []string
	if t := strings.TrimSpace(req.Title); t != "" && t != item.Title {
		item.Title = t
		changed = append(changed, "title")
	}
	if req.Body != "" && req.Body != item.Body {
		item.Body = req.Body
		item.WordCount = generator.WordCount(req.Body)
		changed = append(changed, "body")
	}
	if req.Status != "" && req.Status != item.Status {
		item.Status = req.Status
		changed = append(changed, "status")
	}
	if len(changed) == 0 {
		return item, nil
	}

	updated, err := s.repo.UpdateContent(ctx, *item)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.cacheItem(ctx, updated)
	s.record(ctx, userID, models.ActionContentUpdated, updated.ID, "changed "+strings.Join(changed, ", "))
	return updated, nil
}

// Remove удаляет элемент контента. Чужой элемент может удалить только администратор.
func (s *ContentService) Remove(ctx context.Context, userID, role, id string) error {
	const op = "services.content.Remove"
	item, err := s.repo.GetContent(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if item.AuthorID != userID && role != models.RoleAdmin {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	if err := s.cache.Invalidate(ctx, cacheKey(id)); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	if err := s.repo.DeleteContent(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.record(ctx, userID, models.ActionContentDeleted, id, item.Title)
	return nil
}

// List возвращает страницу контента пользователя.
func (s *ContentService) List(ctx context.Context, userID string, f models.ContentFilter, p paginate.Params) (models.Page[*models.ContentItem], error) {
	const op = "services.content.List"
	f.AuthorID = userID
	items, total, err := s.repo.ListContent(ctx, f, p.Limit(), p.Offset())
	if err != nil {
		return models.Page[*models.ContentItem]{}, fmt.Errorf("%s: %w", op, err)
	}
	return paginate.Build(items, total, p), nil
}

// load читает элемент через кеш.
func (s *ContentService) load(ctx context.Context, id string) (*models.ContentItem, error) {
	var cached models.ContentItem
	found, err := s.cache.Get(ctx, cacheKey(id), &cached)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey(id)), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	item, err := s.repo.GetContent(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheItem(ctx, item)
	return item, nil
}

func (s *ContentService) cacheItem(ctx context.Context, item *models.ContentItem) {
	if err := s.cache.Set(ctx, cacheKey(item.ID), item, CacheTTL); err != nil {
		s.log.Warn("failed to cache content", slog.String("key", cacheKey(item.ID)), sl.Err(err))
	}
}

func (s *ContentService) record(ctx context.Context, userID, action, contentID, details string) {
	if err := s.history.Record(ctx, userID, action, &contentID, details); err != nil {
		s.log.Warn("failed to record history", slog.String("action", action), sl.Err(err))
	}
}
