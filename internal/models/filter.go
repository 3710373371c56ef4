package models

import "time"

// ListFilter параметры админских выборок: текстовый поиск, статус и диапазон дат.
// Нулевые значения означают отсутствие ограничения.
type ListFilter struct {
	Query  string
	Status string
	From   time.Time
	To     time.Time
}

// Page страница результатов с общим количеством записей.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
}

// Stats сводка для админской панели.
type Stats struct {
	UsersByStatus  map[string]int `json:"users_by_status"`
	TotalRevenue   float64        `json:"total_revenue"`
	ContentCount   int            `json:"content_count"`
	PendingReports int            `json:"pending_reports"`
}
