package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyWindow(t *testing.T) {
	from := time.Date(2025, 6, 28, 15, 30, 0, 0, time.UTC)

	dates := DailyWindow(from, 7)
	require.Len(t, dates, 7)
	assert.Equal(t, "2025-06-28", dates[0])
	assert.Equal(t, "2025-07-04", dates[6], "window crosses the month boundary")
}

func TestStartOfISOWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"wednesday", time.Date(2025, 6, 4, 10, 0, 0, 0, time.UTC), "2025-06-02"},
		{"monday", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), "2025-06-02"},
		{"sunday", time.Date(2025, 6, 8, 23, 0, 0, 0, time.UTC), "2025-06-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StartOfISOWeek(tt.in)
			assert.Equal(t, tt.want, got.Format(DateFormat))
			assert.Equal(t, time.Monday, got.Weekday())
		})
	}
}

func TestWeeklyWindow(t *testing.T) {
	from := time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)

	weeks := WeeklyWindow(from, 4)
	assert.Equal(t, []string{"2025-06-02", "2025-06-09", "2025-06-16", "2025-06-23"}, weeks)
}

func TestHourlyWindow(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	hours := HourlyWindow(day, 10, 22)
	require.Len(t, hours, 13)
	assert.Equal(t, "2025-06-02T10:00:00", hours[0])
	assert.Equal(t, "2025-06-02T22:00:00", hours[12])
}
