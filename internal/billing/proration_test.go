package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentflow-backend/internal/models"
)

func TestProrate_DailyMidMonth(t *testing.T) {
	// Lease moves in mid-month: 15 occupied days of a 30-day convention
	// charges exactly half the rent.
	res, err := Prorate(ProrationInput{
		MonthlyRent:    120000,
		EffectiveStart: date(2024, time.January, 16),
		PeriodStart:    date(2024, time.January, 1),
		PeriodEnd:      date(2024, time.January, 31),
		Method:         models.ProrationMethodDaily,
	})
	require.NoError(t, err)
	assert.Equal(t, 15, res.OccupiedDays)
	assert.Equal(t, 30, res.DaysInMonth)
	assert.Equal(t, int64(60000), res.Amount)
}

func TestProrate_FullPeriodReturnsExactRent(t *testing.T) {
	// Full occupancy must return the monthly rent untouched, never a
	// rounded reconstruction of it.
	res, err := Prorate(ProrationInput{
		MonthlyRent:    99999, // not divisible by 30
		EffectiveStart: date(2023, time.June, 1),
		PeriodStart:    date(2024, time.January, 1),
		PeriodEnd:      date(2024, time.February, 1),
		Method:         models.ProrationMethodDaily,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(99999), res.Amount)
}

func TestProrate_ZeroOccupancy(t *testing.T) {
	tests := []struct {
		name  string
		input ProrationInput
	}{
		{
			name: "lease starts after period",
			input: ProrationInput{
				MonthlyRent:    120000,
				EffectiveStart: date(2024, time.March, 1),
				PeriodStart:    date(2024, time.January, 1),
				PeriodEnd:      date(2024, time.February, 1),
				Method:         models.ProrationMethodDaily,
			},
		},
		{
			name: "lease ended before period",
			input: func() ProrationInput {
				end := date(2023, time.December, 1)
				return ProrationInput{
					MonthlyRent:    120000,
					EffectiveStart: date(2023, time.January, 1),
					LeaseEnd:       &end,
					PeriodStart:    date(2024, time.January, 1),
					PeriodEnd:      date(2024, time.February, 1),
					Method:         models.ProrationMethodDaily,
				}
			}(),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Prorate(tc.input)
			require.NoError(t, err)
			assert.Zero(t, res.Amount)
			assert.Zero(t, res.OccupiedDays)
		})
	}
}

func TestProrate_LeaseEndInsidePeriod(t *testing.T) {
	end := date(2024, time.January, 11)
	res, err := Prorate(ProrationInput{
		MonthlyRent:    120000,
		EffectiveStart: date(2023, time.May, 1),
		LeaseEnd:       &end,
		PeriodStart:    date(2024, time.January, 1),
		PeriodEnd:      date(2024, time.February, 1),
		Method:         models.ProrationMethodDaily,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, res.OccupiedDays)
	assert.Equal(t, int64(40000), res.Amount)
}

func TestProrate_ExactUsesCalendarMonth(t *testing.T) {
	// February 2024 has 29 days; 10 occupied days of 116000 is
	// 40000 exactly.
	res, err := Prorate(ProrationInput{
		MonthlyRent:    116000,
		EffectiveStart: date(2024, time.February, 20),
		PeriodStart:    date(2024, time.February, 1),
		PeriodEnd:      date(2024, time.March, 1),
		Method:         models.ProrationMethodExact,
	})
	require.NoError(t, err)
	assert.Equal(t, 29, res.DaysInMonth)
	assert.Equal(t, 10, res.OccupiedDays)
	assert.Equal(t, int64(40000), res.Amount)
}

func TestProrate_RoundsHalfUp(t *testing.T) {
	// 100001 * 15 / 30 = 50000.5 -> 50001
	res, err := Prorate(ProrationInput{
		MonthlyRent:    100001,
		EffectiveStart: date(2024, time.January, 16),
		PeriodStart:    date(2024, time.January, 1),
		PeriodEnd:      date(2024, time.January, 31),
		Method:         models.ProrationMethodDaily,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50001), res.Amount)
}

func TestProrate_ConfiguredDaysInMonth(t *testing.T) {
	days := 31
	res, err := Prorate(ProrationInput{
		MonthlyRent:    124000,
		EffectiveStart: date(2024, time.January, 1),
		PeriodStart:    date(2024, time.January, 1),
		PeriodEnd:      date(2024, time.January, 1).AddDate(0, 0, 15),
		Method:         models.ProrationMethodDaily,
		DaysInMonth:    &days,
	})
	require.NoError(t, err)
	assert.Equal(t, 31, res.DaysInMonth)
	assert.Equal(t, 15, res.OccupiedDays)
	assert.Equal(t, int64(60000), res.Amount)
}

func TestProrate_Validation(t *testing.T) {
	valid := ProrationInput{
		MonthlyRent:    120000,
		EffectiveStart: date(2024, time.January, 1),
		PeriodStart:    date(2024, time.January, 1),
		PeriodEnd:      date(2024, time.February, 1),
		Method:         models.ProrationMethodDaily,
	}

	tests := []struct {
		name   string
		mutate func(*ProrationInput)
		field  string
	}{
		{"zero rent", func(in *ProrationInput) { in.MonthlyRent = 0 }, "monthly_rent"},
		{"unknown method", func(in *ProrationInput) { in.Method = "weekly" }, "method"},
		{"inverted period", func(in *ProrationInput) { in.PeriodEnd = in.PeriodStart }, "period_end"},
		{"missing effective start", func(in *ProrationInput) { in.EffectiveStart = time.Time{} }, "effective_start"},
		{"bad days in month", func(in *ProrationInput) { zero := 0; in.DaysInMonth = &zero }, "days_in_month"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			_, err := Prorate(in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}
