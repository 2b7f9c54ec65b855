package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMillisRoundTrip(t *testing.T) {
	d := time.Date(2024, time.March, 15, 9, 30, 0, 0, time.UTC)
	assert.Equal(t, d, FromMillis(ToMillis(d)))
}

func TestFromMillisIsUTC(t *testing.T) {
	got := FromMillis(1710494400000)
	assert.Equal(t, time.UTC, got.Location())
}

func TestStartOfDay(t *testing.T) {
	d := time.Date(2024, time.March, 15, 23, 59, 59, 999000000, time.UTC)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), StartOfDay(d))
}

func TestStartOfMonth(t *testing.T) {
	d := time.Date(2024, time.February, 29, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), StartOfMonth(d))
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{
			name: "same day",
			a:    time.Date(2024, time.March, 15, 1, 0, 0, 0, time.UTC),
			b:    time.Date(2024, time.March, 15, 23, 0, 0, 0, time.UTC),
			want: 0,
		},
		{
			name: "one day apart ignoring clock time",
			a:    time.Date(2024, time.March, 15, 23, 0, 0, 0, time.UTC),
			b:    time.Date(2024, time.March, 16, 1, 0, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "across leap day",
			a:    time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			want: 2,
		},
		{
			name: "reversed is negative",
			a:    time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
			want: -5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.a, tt.b))
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want int
	}{
		{"january", time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), 31},
		{"leap february", time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), 29},
		{"non-leap february", time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC), 28},
		{"april", time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC), 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysInMonth(tt.t))
		})
	}
}
