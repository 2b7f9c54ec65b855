package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDueToday(t *testing.T) {
	tests := []struct {
		name   string
		dueDay int
		today  time.Time
		want   bool
	}{
		{
			name:   "exact match",
			dueDay: 15,
			today:  time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
			want:   true,
		},
		{
			name:   "no match",
			dueDay: 15,
			today:  time.Date(2024, time.March, 16, 0, 0, 0, 0, time.UTC),
			want:   false,
		},
		{
			name:   "31st clamps to leap February 29",
			dueDay: 31,
			today:  time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
			want:   true,
		},
		{
			name:   "31st clamps to non-leap February 28",
			dueDay: 31,
			today:  time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC),
			want:   true,
		},
		{
			name:   "30th does not fire on February 28 of a leap year",
			dueDay: 30,
			today:  time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC),
			want:   false,
		},
		{
			name:   "30th clamped to February 29 in a leap year",
			dueDay: 30,
			today:  time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
			want:   true,
		},
		{
			name:   "31st clamps to April 30",
			dueDay: 31,
			today:  time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC),
			want:   true,
		},
		{
			name:   "clamped day does not also fire earlier in the month",
			dueDay: 31,
			today:  time.Date(2024, time.April, 29, 0, 0, 0, 0, time.UTC),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dueToday(tt.dueDay, tt.today))
		})
	}
}
