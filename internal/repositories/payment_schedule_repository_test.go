package repositories

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentflow-backend/internal/models"
)

// stubRow plays a pgx.Row whose columns come back in scheduleColumns order,
// so a drift between the column list and the scan destinations fails here
// instead of against a live database.
type stubRow struct {
	values []any
}

func (r stubRow) Scan(dest ...any) error {
	if len(dest) != len(r.values) {
		return fmt.Errorf("expected %d scan destinations, got %d", len(r.values), len(dest))
	}
	for i, v := range r.values {
		switch d := dest[i].(type) {
		case *int64:
			*d = v.(int64)
		case *int:
			*d = v.(int)
		case **int64:
			if v == nil {
				*d = nil
			} else {
				val := v.(int64)
				*d = &val
			}
		case *bool:
			*d = v.(bool)
		default:
			return fmt.Errorf("unsupported scan destination %T at column %d", dest[i], i)
		}
	}
	return nil
}

func TestScanSchedule_MatchesColumnOrder(t *testing.T) {
	// Values laid out exactly as scheduleColumns declares:
	// id, org_id, lease_id, rent_amount, due_day, start_date, end_date,
	// is_active, created_at.
	endDate := int64(1719792000000)
	row := stubRow{values: []any{
		int64(11),
		int64(1),
		int64(42),
		int64(120000),
		15,
		int64(1714521600000),
		endDate,
		true,
		int64(1714500000000),
	}}

	s, err := scanSchedule(row)
	require.NoError(t, err)

	assert.Equal(t, &models.PaymentSchedule{
		ID:         11,
		OrgID:      1,
		LeaseID:    42,
		RentAmount: 120000,
		DueDay:     15,
		StartDate:  1714521600000,
		EndDate:    &endDate,
		IsActive:   true,
		CreatedAt:  1714500000000,
	}, s)
}

func TestScanSchedule_NullEndDate(t *testing.T) {
	row := stubRow{values: []any{
		int64(12), int64(1), int64(42), int64(90000), 1,
		int64(1714521600000), nil, true, int64(1714500000000),
	}}

	s, err := scanSchedule(row)
	require.NoError(t, err)
	assert.Nil(t, s.EndDate)
	assert.Equal(t, int64(90000), s.RentAmount)
}

func TestScheduleColumnCountMatchesScanDestinations(t *testing.T) {
	// scanSchedule takes exactly one destination per column; a column added
	// to the list without a matching destination surfaces as a count error.
	columns := strings.Split(scheduleColumns, ",")
	row := stubRow{values: make([]any, len(columns)+1)}

	_, err := scanSchedule(row)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan destinations")
}
