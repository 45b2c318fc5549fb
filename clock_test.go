package reagent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelativeDate(t *testing.T) {
	now := time.Date(2026, 3, 2, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{"today early morning", time.Date(2026, 3, 2, 0, 1, 0, 0, time.UTC), "today"},
		{"tomorrow", time.Date(2026, 3, 3, 23, 0, 0, 0, time.UTC), "tomorrow"},
		{"yesterday", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), "yesterday"},
		{"next week", time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), "in 7 days"},
		{"across year end", time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), "67 days ago"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, relativeDate(now, tc.date))
		})
	}
}

func TestFixedClock(t *testing.T) {
	c := FixedClock{T: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}

	assert.Equal(t, "2026-03-02", c.Today())
	assert.Equal(t, "Monday", c.Weekday())
	assert.Equal(t, "in 2 days", c.RelativeDate(c.T.AddDate(0, 0, 2)))
}
