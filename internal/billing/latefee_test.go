package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentflow-backend/internal/models"
)

func int64Ptr(v int64) *int64 { return &v }

func fixedRule(amount int64, graceDays int) *models.LateFeeRule {
	return &models.LateFeeRule{
		ID:              1,
		OrgID:           1,
		GracePeriodDays: graceDays,
		FeeType:         models.FeeTypeFixed,
		FixedAmount:     amount,
		IsActive:        true,
	}
}

func percentageRule(pct float64, graceDays int, max *int64) *models.LateFeeRule {
	return &models.LateFeeRule{
		ID:               2,
		OrgID:            1,
		GracePeriodDays:  graceDays,
		FeeType:          models.FeeTypePercentage,
		PercentageAmount: pct,
		MaxFeeAmount:     max,
		IsActive:         true,
	}
}

func TestResolveRule(t *testing.T) {
	leaseID := int64(9)
	leaseRule := fixedRule(5000, 5)
	leaseRule.LeaseID = &leaseID
	orgRule := fixedRule(2500, 3)

	inactiveLeaseRule := fixedRule(5000, 5)
	inactiveLeaseRule.LeaseID = &leaseID
	inactiveLeaseRule.IsActive = false

	tests := []struct {
		name      string
		leaseRule *models.LateFeeRule
		orgRule   *models.LateFeeRule
		want      *models.LateFeeRule
	}{
		{"lease rule wins", leaseRule, orgRule, leaseRule},
		{"org default when no lease rule", nil, orgRule, orgRule},
		{"inactive lease rule falls back", inactiveLeaseRule, orgRule, orgRule},
		{"no rule at all", nil, nil, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveRule(tc.leaseRule, tc.orgRule))
		})
	}
}

func TestEvaluate_FixedFee(t *testing.T) {
	// Due 2024-01-01, paid 2024-01-08: 7 days late against a 5-day grace
	// period, so the full fixed fee applies.
	rule := fixedRule(5000, 5)
	due := date(2024, time.January, 1)
	paid := date(2024, time.January, 8)

	ev, err := Evaluate(150000, due, &paid, rule, paid)
	require.NoError(t, err)
	assert.Equal(t, models.LedgerStatusPaidLate, ev.Status)
	assert.Equal(t, 7, ev.DaysLate)
	assert.Equal(t, int64(5000), ev.Fee)
}

func TestEvaluate_GraceBoundaryIsStrict(t *testing.T) {
	rule := fixedRule(5000, 5)
	due := date(2024, time.January, 1)

	tests := []struct {
		name     string
		paid     time.Time
		wantFee  int64
		wantStat string
	}{
		{"paid on due date", date(2024, time.January, 1), 0, models.LedgerStatusPaidOnTime},
		{"paid inside grace", date(2024, time.January, 4), 0, models.LedgerStatusPaidOnTime},
		{"paid exactly on boundary", date(2024, time.January, 6), 0, models.LedgerStatusPaidOnTime},
		{"paid one day past boundary", date(2024, time.January, 7), 5000, models.LedgerStatusPaidLate},
		{"paid before due date", date(2023, time.December, 28), 0, models.LedgerStatusPaidOnTime},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ev, err := Evaluate(100000, due, &tc.paid, rule, tc.paid)
			require.NoError(t, err)
			assert.Equal(t, tc.wantFee, ev.Fee)
			assert.Equal(t, tc.wantStat, ev.Status)
		})
	}
}

func TestEvaluate_UnpaidUsesNow(t *testing.T) {
	rule := fixedRule(5000, 5)
	due := date(2024, time.January, 1)

	// Within grace: still pending, no fee.
	ev, err := Evaluate(100000, due, nil, rule, date(2024, time.January, 6))
	require.NoError(t, err)
	assert.Equal(t, models.LedgerStatusPending, ev.Status)
	assert.Zero(t, ev.Fee)

	// Past grace: overdue with a frozen-to-be fee.
	ev, err = Evaluate(100000, due, nil, rule, date(2024, time.January, 10))
	require.NoError(t, err)
	assert.Equal(t, models.LedgerStatusOverdue, ev.Status)
	assert.Equal(t, int64(5000), ev.Fee)
}

func TestEvaluate_PercentageFee(t *testing.T) {
	due := date(2024, time.January, 1)
	late := date(2024, time.February, 1)

	tests := []struct {
		name    string
		amount  int64
		pct     float64
		max     *int64
		wantFee int64
	}{
		{"5 percent of 150000 under cap", 150000, 5, int64Ptr(10000), 7500},
		{"5 percent uncapped", 150000, 5, nil, 7500},
		{"cap applies", 500000, 5, int64Ptr(10000), 10000},
		{"zero cap means uncapped", 500000, 5, int64Ptr(0), 25000},
		{"half cent rounds up", 12345, 2.5, nil, 309}, // 308.625 -> 309
		{"tiny amount", 1, 5, nil, 0},                 // 0.05 -> 0
		{"half-up at exactly .5", 10, 5, nil, 1},      // 0.5 -> 1
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rule := percentageRule(tc.pct, 0, tc.max)
			ev, err := Evaluate(tc.amount, due, &late, rule, late)
			require.NoError(t, err)
			assert.Equal(t, tc.wantFee, ev.Fee)
		})
	}
}

func TestEvaluate_CappedNeverExceedsUncapped(t *testing.T) {
	due := date(2024, time.January, 1)
	late := date(2024, time.March, 1)

	for _, amount := range []int64{100, 9999, 150000, 123457, 999999} {
		uncapped, err := Evaluate(amount, due, &late, percentageRule(7.5, 0, nil), late)
		require.NoError(t, err)
		capped, err := Evaluate(amount, due, &late, percentageRule(7.5, 0, int64Ptr(5000)), late)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, uncapped.Fee, capped.Fee)
		assert.LessOrEqual(t, capped.Fee, int64(5000))
	}
}

func TestEvaluate_NoRuleNoFee(t *testing.T) {
	due := date(2024, time.January, 1)
	paid := date(2024, time.June, 1)

	ev, err := Evaluate(100000, due, &paid, nil, paid)
	require.NoError(t, err)
	assert.Equal(t, models.LedgerStatusPaidLate, ev.Status)
	assert.Zero(t, ev.Fee)
}

func TestEvaluate_Validation(t *testing.T) {
	due := date(2024, time.January, 1)
	paid := date(2024, time.February, 1)

	var verr *ValidationError

	_, err := Evaluate(0, due, &paid, fixedRule(5000, 0), paid)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "amount", verr.Field)

	_, err = Evaluate(1000, time.Time{}, &paid, fixedRule(5000, 0), paid)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "due_date", verr.Field)

	badRule := fixedRule(5000, 0)
	badRule.FeeType = "compound"
	_, err = Evaluate(1000, due, &paid, badRule, paid)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "fee_type", verr.Field)
}
