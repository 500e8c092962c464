// Package models содержит доменные структуры каталога планов, окон премиум-доступа,
// пользователей, каталога аниме и прогресса просмотра, а также вспомогательные
// Dummy-типы для приёма данных из JSON-запросов.
package models

// Plan представляет приобретаемый уровень премиум-доступа.
// Планы создаются миграцией-сидом и только читаются во время работы;
// деактивация выполняется флагом IsActive, записи не удаляются.
type Plan struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Price        float64  `json:"price"`         // Цена в валюте провайдера, >= 0
	DurationDays int      `json:"duration_days"` // Длительность в днях, 0 — безлимит
	Features     []string `json:"features"`      // Упорядоченный список возможностей
	IsActive     bool     `json:"is_active"`
}
