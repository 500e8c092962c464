package models

import "time"

// Статусы окна премиум-доступа.
const (
	WindowStatusActive    = "active"
	WindowStatusExpired   = "expired"
	WindowStatusCancelled = "cancelled"
)

// Статусы денормализованной сводки доступа на пользователе.
const (
	AccessStatusPremium = "premium"
	AccessStatusFree    = "free"
)

// AccessWindow представляет одно событие покупки и его интервал действия.
// Записи никогда не удаляются: статус переводится в expired при ленивом
// истечении или в cancelled при отмене пользователем.
type AccessWindow struct {
	ID            int       `json:"id"`
	UserUID       string    `json:"user_uid"`
	PlanID        int       `json:"plan_id"`
	PlanName      string    `json:"plan_name,omitempty"` // Заполняется join-ом с планом
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	AmountPaid    float64   `json:"amount_paid"` // Цена плана на момент покупки
	CreatedAt     time.Time `json:"created_at"`
}

// DummyWindow используется для приёма запроса на создание окна доступа.
type DummyWindow struct {
	PlanID        int    `json:"plan_id" validate:"required,gt=0"` // Идентификатор плана
	PaymentMethod string `json:"payment_method"`                   // Метод оплаты, по умолчанию mercadopago
}

// AccessState описывает текущее состояние доступа пользователя:
// окно (если есть), статус active/expired/free и оставшиеся дни.
type AccessState struct {
	Window        *AccessWindow `json:"window"`
	Status        string        `json:"status"`
	DaysRemaining int           `json:"days_remaining,omitempty"`
}

// AccessDecision — результат проверки доступа к контенту.
type AccessDecision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`
}

// AccessActivatedEvent публикуется в RabbitMQ после активации премиум-доступа.
type AccessActivatedEvent struct {
	Email    string    `json:"email"`
	Username string    `json:"username"`
	PlanName string    `json:"plan_name"`
	EndDate  time.Time `json:"end_date"`
}
