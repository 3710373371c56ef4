package models

import "time"

// Статусы платежа.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// Payment платёж пользователя. UserEmail заполняется при чтении для отображения в админке.
type Payment struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	UserEmail   string    `json:"user_email,omitempty"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	Plan        string    `json:"plan"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// PaymentPage страница платежей с выручкой по фильтру.
type PaymentPage struct {
	Page[*Payment]
	Revenue float64 `json:"revenue"`
}
