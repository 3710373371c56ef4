package models

import "time"

// Статусы жалобы.
const (
	ReportPending  = "pending"
	ReportReviewed = "reviewed"
	ReportResolved = "resolved"
)

// Report обращение пользователя (ошибка, злоупотребление, оплата).
type Report struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	UserEmail   string    `json:"user_email,omitempty"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateReportRequest тело запроса создания обращения.
type CreateReportRequest struct {
	Subject     string `json:"subject" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=5000"`
	Category    string `json:"category" validate:"required,oneof=bug abuse billing other"`
}

// ReportStatusRequest тело запроса смены статуса обращения.
type ReportStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending reviewed resolved"`
}
