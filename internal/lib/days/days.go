// Package days содержит вспомогательную арифметику дат для окон премиум-доступа.
package days

import (
	"math"
	"time"
)

// Remaining возвращает число полных или неполных дней от now до end,
// округлённое вверх. Для end в прошлом возвращает 0.
func Remaining(end, now time.Time) int {
	if !end.After(now) {
		return 0
	}
	return int(math.Ceil(end.Sub(now).Hours() / 24))
}

// EndOfWindow вычисляет дату окончания окна доступа: start плюс durationDays.
// Нулевая длительность означает безлимитный план, окно закрывается через сто лет.
func EndOfWindow(start time.Time, durationDays int) time.Time {
	if durationDays == 0 {
		return start.AddDate(100, 0, 0)
	}
	return start.AddDate(0, 0, durationDays)
}
