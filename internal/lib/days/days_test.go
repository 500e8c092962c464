package days

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRemaining(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{"ровно 90 дней", now.AddDate(0, 0, 90), 90},
		{"неполный день округляется вверх", now.Add(time.Hour), 1},
		{"окно уже истекло", now.AddDate(0, 0, -1), 0},
		{"конец совпадает с текущим моментом", now, 0},
		{"полтора дня", now.Add(36 * time.Hour), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Remaining(tt.end, now))
		})
	}
}

func TestEndOfWindow(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, start.AddDate(0, 0, 30), EndOfWindow(start, 30))
	assert.Equal(t, start.AddDate(0, 0, 365), EndOfWindow(start, 365))
	assert.Equal(t, start.AddDate(100, 0, 0), EndOfWindow(start, 0))
}
