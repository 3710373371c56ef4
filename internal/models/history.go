package models

import "time"

// Действия, попадающие в историю.
const (
	ActionContentGenerated     = "content.generated"
	ActionContentUpdated       = "content.updated"
	ActionContentDeleted       = "content.deleted"
	ActionSubscriptionUpgraded = "subscription.upgraded"
	ActionSubscriptionCanceled = "subscription.canceled"
)

// HistoryEntry запись истории действий пользователя.
type HistoryEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	ContentID *string   `json:"content_id,omitempty"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}
