package models

import "time"

// Типы уведомлений.
const (
	NotificationInfo    = "info"
	NotificationSuccess = "success"
	NotificationWarning = "warning"
	NotificationError   = "error"
)

// Notification уведомление пользователя. TimeAgo вычисляется при выдаче списка.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	TimeAgo   string    `json:"time_ago,omitempty"`
}

// NotificationMessage сообщение в очередь на e-mail рассылку.
type NotificationMessage struct {
	NotificationID string `json:"notification_id"`
	Email          string `json:"email"`
	Username       string `json:"username"`
	Title          string `json:"title"`
	Message        string `json:"message"`
}
