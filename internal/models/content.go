package models

import "time"

// Типы контента.
const (
	ContentBlog   = "blog"
	ContentSocial = "social"
	ContentEmail  = "email"
	ContentAd     = "ad"
)

// Тональность текста.
const (
	ToneNeutral    = "neutral"
	ToneFriendly   = "friendly"
	ToneFormal     = "formal"
	TonePersuasive = "persuasive"
)

// Статусы элемента контента.
const (
	ContentDraft     = "draft"
	ContentPublished = "published"
	ContentArchived  = "archived"
)

// ContentItem сгенерированный текст пользователя.
type ContentItem struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Title     string    `json:"title"`
	Prompt    string    `json:"prompt"`
	Body      string    `json:"body"`
	Type      string    `json:"type"`
	Tone      string    `json:"tone"`
	Status    string    `json:"status"`
	WordCount int       `json:"word_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GenerateRequest тело запроса генерации контента.
type GenerateRequest struct {
	Title  string `json:"title,omitempty" validate:"omitempty,max=200"`
	Prompt string `json:"prompt" validate:"required,min=3,max=2000"`
	Type   string `json:"type" validate:"required,oneof=blog social email ad"`
	Tone   string `json:"tone,omitempty" validate:"omitempty,oneof=neutral friendly formal persuasive"`
}

// UpdateContentRequest тело запроса редактирования контента. Пустые поля не меняются.
type UpdateContentRequest struct {
	Title  string `json:"title,omitempty" validate:"omitempty,max=200"`
	Body   string `json:"body,omitempty"`
	Status string `json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
}

// ContentFilter параметры выборки контента пользователя.
type ContentFilter struct {
	AuthorID string
	Query    string
	Status   string
	Type     string
}
