package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentflow-backend/internal/timeutil"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewSchedule(t *testing.T) {
	end := date(2024, time.December, 31)

	s, err := NewSchedule(ScheduleParams{
		OrgID:      1,
		LeaseID:    42,
		RentAmount: 120000,
		DueDay:     5,
		StartDate:  date(2024, time.January, 1),
		EndDate:    &end,
	})
	require.NoError(t, err)
	assert.True(t, s.IsActive)
	assert.Equal(t, int64(42), s.LeaseID)
	assert.Equal(t, int64(120000), s.RentAmount)
	assert.Equal(t, 5, s.DueDay)
	assert.Equal(t, timeutil.ToMillis(date(2024, time.January, 1)), s.StartDate)
	require.NotNil(t, s.EndDate)
	assert.Equal(t, timeutil.ToMillis(end), *s.EndDate)
}

func TestNewSchedule_Validation(t *testing.T) {
	start := date(2024, time.March, 1)
	before := date(2024, time.February, 1)

	tests := []struct {
		name   string
		params ScheduleParams
		field  string
	}{
		{
			name:   "zero rent",
			params: ScheduleParams{LeaseID: 1, RentAmount: 0, DueDay: 1, StartDate: start},
			field:  "rent_amount",
		},
		{
			name:   "negative rent",
			params: ScheduleParams{LeaseID: 1, RentAmount: -500, DueDay: 1, StartDate: start},
			field:  "rent_amount",
		},
		{
			name:   "due day zero",
			params: ScheduleParams{LeaseID: 1, RentAmount: 1000, DueDay: 0, StartDate: start},
			field:  "due_day",
		},
		{
			name:   "due day 32",
			params: ScheduleParams{LeaseID: 1, RentAmount: 1000, DueDay: 32, StartDate: start},
			field:  "due_day",
		},
		{
			name:   "end before start",
			params: ScheduleParams{LeaseID: 1, RentAmount: 1000, DueDay: 1, StartDate: start, EndDate: &before},
			field:  "end_date",
		},
		{
			name:   "missing lease",
			params: ScheduleParams{LeaseID: 0, RentAmount: 1000, DueDay: 1, StartDate: start},
			field:  "lease_id",
		},
		{
			name:   "missing start date",
			params: ScheduleParams{LeaseID: 1, RentAmount: 1000, DueDay: 1},
			field:  "start_date",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSchedule(tc.params)
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestWeeklyPlan_SplitsEvenly(t *testing.T) {
	now := date(2024, time.January, 15)

	plan, err := WeeklyPlan(1, 7, 120000, date(2024, time.January, 1), now)
	require.NoError(t, err)
	require.Len(t, plan, 4)

	var sum int64
	dueDays := make([]int, 0, 4)
	for _, s := range plan {
		assert.True(t, s.IsActive)
		assert.Equal(t, int64(7), s.LeaseID)
		sum += s.RentAmount
		dueDays = append(dueDays, s.DueDay)
	}
	assert.Equal(t, int64(120000), sum)
	assert.Equal(t, []int{1, 8, 15, 22}, dueDays)
	assert.Equal(t, int64(30000), plan[0].RentAmount)
	assert.Equal(t, int64(30000), plan[3].RentAmount)
}

func TestWeeklyPlan_RemainderGoesToLastInstallment(t *testing.T) {
	// 100003 / 4 = 25000 remainder 3; the last installment absorbs it.
	plan, err := WeeklyPlan(1, 7, 100003, date(2024, time.June, 1), date(2024, time.June, 1))
	require.NoError(t, err)
	require.Len(t, plan, 4)

	assert.Equal(t, int64(25000), plan[0].RentAmount)
	assert.Equal(t, int64(25000), plan[1].RentAmount)
	assert.Equal(t, int64(25000), plan[2].RentAmount)
	assert.Equal(t, int64(25003), plan[3].RentAmount)
}

func TestWeeklyPlan_SumInvariant(t *testing.T) {
	// No cent may be lost or gained for any rent amount.
	start := date(2024, time.May, 1)
	for _, rent := range []int64{1, 2, 3, 4, 5, 99, 100, 101, 333333, 1000001} {
		plan, err := WeeklyPlan(1, 1, rent, start, start)
		require.NoError(t, err)
		var sum int64
		for _, s := range plan {
			sum += s.RentAmount
		}
		assert.Equalf(t, rent, sum, "rent=%d", rent)
	}
}

func TestWeeklyPlan_TinyRentYieldsZeroCentInstallments(t *testing.T) {
	// Rents below 4 cents cannot fill every installment; the leading ones
	// carry zero and the last one carries the whole rent.
	start := date(2024, time.May, 1)

	plan, err := WeeklyPlan(1, 1, 1, start, start)
	require.NoError(t, err)
	require.Len(t, plan, 4)
	assert.Equal(t, int64(0), plan[0].RentAmount)
	assert.Equal(t, int64(0), plan[1].RentAmount)
	assert.Equal(t, int64(0), plan[2].RentAmount)
	assert.Equal(t, int64(1), plan[3].RentAmount)

	plan, err = WeeklyPlan(1, 1, 3, start, start)
	require.NoError(t, err)
	require.Len(t, plan, 4)
	assert.Equal(t, int64(0), plan[0].RentAmount)
	assert.Equal(t, int64(3), plan[3].RentAmount)
	for _, s := range plan {
		assert.True(t, s.IsActive)
	}
}

func TestWeeklyPlan_DefaultsToFirstOfCurrentMonth(t *testing.T) {
	now := date(2024, time.March, 19)

	plan, err := WeeklyPlan(1, 1, 80000, time.Time{}, now)
	require.NoError(t, err)
	require.Len(t, plan, 4)
	assert.Equal(t, timeutil.ToMillis(date(2024, time.March, 1)), plan[0].StartDate)
	assert.Equal(t, 1, plan[0].DueDay)
	assert.Equal(t, 22, plan[3].DueDay)
}

func TestWeeklyPlan_Validation(t *testing.T) {
	start := date(2024, time.January, 1)

	_, err := WeeklyPlan(1, 1, 0, start, start)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "monthly_rent", verr.Field)

	_, err = WeeklyPlan(1, 0, 1000, start, start)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "lease_id", verr.Field)
}
