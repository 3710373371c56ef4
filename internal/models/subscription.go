package models

import "time"

// Тарифные планы.
const (
	PlanFree     = "free"
	PlanPro      = "pro"
	PlanBusiness = "business"
)

// Статусы подписки.
const (
	SubscriptionTrial    = "trial"
	SubscriptionActive   = "active"
	SubscriptionCanceled = "canceled"
	SubscriptionExpired  = "expired"
)

// Plan описывает тарифный план: цену за месяц и количество кредитов.
type Plan struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	Credits  int     `json:"credits"`
}

var plans = map[string]Plan{
	PlanFree:     {Name: PlanFree, Price: 0, Currency: "USD", Credits: 10},
	PlanPro:      {Name: PlanPro, Price: 19, Currency: "USD", Credits: 100},
	PlanBusiness: {Name: PlanBusiness, Price: 49, Currency: "USD", Credits: 500},
}

// LookupPlan возвращает план по имени.
func LookupPlan(name string) (Plan, bool) {
	p, ok := plans[name]
	return p, ok
}

// Subscription текущая подписка пользователя. У пользователя ровно одна подписка.
type Subscription struct {
	UserID    string    `json:"user_id"`
	Plan      string    `json:"plan"`
	Status    string    `json:"status"`
	Credits   int       `json:"credits"`
	RenewsAt  time.Time `json:"renews_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SubscriptionInfo подписка вместе с деталями плана для ответа API.
type SubscriptionInfo struct {
	Subscription
	PlanDetails Plan `json:"plan_details"`
}

// ExpiringSubscription подписка, у которой подходит дата продления, с контактами владельца.
type ExpiringSubscription struct {
	UserID   string    `json:"user_id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Plan     string    `json:"plan"`
	Status   string    `json:"status"`
	RenewsAt time.Time `json:"renews_at"`
}

// CheckoutRequest тело запроса оформления платного плана.
type CheckoutRequest struct {
	Plan string `json:"plan" validate:"required,oneof=pro business"`
}
