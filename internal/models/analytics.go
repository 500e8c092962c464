package models

import "time"

// AnalyticsEvent — одно событие клиентской аналитики.
type AnalyticsEvent struct {
	ID        int               `json:"id"`
	UserUID   string            `json:"user_uid"`
	EventType string            `json:"event_type"`
	Payload   map[string]string `json:"payload,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// DummyEvent используется для приёма события аналитики из JSON-запроса.
type DummyEvent struct {
	EventType string            `json:"event_type" validate:"required"`
	Payload   map[string]string `json:"payload"`
}

// EventCount — агрегат количества событий одного типа.
type EventCount struct {
	EventType string `json:"event_type"`
	Count     int    `json:"count"`
}
