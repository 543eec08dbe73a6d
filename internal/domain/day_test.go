package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayBounds(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)

	tests := []struct {
		name          string
		instant       time.Time
		expectedStart time.Time
		expectedEnd   time.Time
	}{
		{
			name:          "midday UTC",
			instant:       time.Date(2024, 6, 15, 13, 45, 12, 0, time.UTC),
			expectedStart: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "exactly midnight",
			instant:       time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			expectedStart: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name:          "keeps the instant's zone",
			instant:       time.Date(2024, 6, 15, 1, 30, 0, 0, msk),
			expectedStart: time.Date(2024, 6, 15, 0, 0, 0, 0, msk),
			expectedEnd:   time.Date(2024, 6, 16, 0, 0, 0, 0, msk),
		},
		{
			name:          "end of year",
			instant:       time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
			expectedStart: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			expectedEnd:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := DayBounds(tt.instant)
			assert.True(t, start.Equal(tt.expectedStart), "start = %v", start)
			assert.True(t, end.Equal(tt.expectedEnd), "end = %v", end)
		})
	}
}
