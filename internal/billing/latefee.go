package billing

import (
	"time"

	"rentflow-backend/internal/models"
	"rentflow-backend/internal/timeutil"
)

// ResolveRule picks the single applicable late-fee rule by specificity:
// an active lease-specific rule beats the active org-wide default
// (lease_id NULL). With neither, nil is returned and no fee ever applies.
func ResolveRule(leaseRule, orgRule *models.LateFeeRule) *models.LateFeeRule {
	if leaseRule != nil && leaseRule.IsActive && leaseRule.LeaseID != nil {
		return leaseRule
	}
	if orgRule != nil && orgRule.IsActive && orgRule.LeaseID == nil {
		return orgRule
	}
	return nil
}

// Evaluation is the outcome of a late-fee check for one ledger entry.
type Evaluation struct {
	Status   string // pending, paid_on_time, paid_late, overdue
	DaysLate int
	Fee      int64 // cents, 0 when no fee applies
}

// Evaluate computes the state of a ledger entry and the late fee it incurs.
// amount is the entry's charge in cents, paidDate is nil for unpaid entries
// (now stands in for it). The grace boundary is strict: an entry paid
// exactly gracePeriodDays after the due date incurs no fee. Day counting is
// whole-day, date granularity.
//
// The caller freezes the returned fee onto the entry; Evaluate itself has
// no side effects and may run concurrently.
func Evaluate(amount int64, dueDate time.Time, paidDate *time.Time, rule *models.LateFeeRule, now time.Time) (Evaluation, error) {
	if amount <= 0 {
		return Evaluation{}, invalidf("amount", "must be greater than zero, got %d", amount)
	}
	if dueDate.IsZero() {
		return Evaluation{}, invalidf("due_date", "is required")
	}
	if paidDate != nil && paidDate.IsZero() {
		return Evaluation{}, invalidf("paid_date", "must be a valid date when present")
	}

	effective := now
	paid := paidDate != nil
	if paid {
		effective = *paidDate
	}

	daysLate := timeutil.DaysBetween(dueDate, effective)
	if daysLate < 0 {
		daysLate = 0
	}

	grace := 0
	if rule != nil {
		grace = rule.GracePeriodDays
	}
	late := daysLate > grace

	ev := Evaluation{DaysLate: daysLate}
	switch {
	case paid && late:
		ev.Status = models.LedgerStatusPaidLate
	case paid:
		ev.Status = models.LedgerStatusPaidOnTime
	case late:
		ev.Status = models.LedgerStatusOverdue
	default:
		ev.Status = models.LedgerStatusPending
	}

	if !late || rule == nil {
		return ev, nil
	}

	fee, err := computeFee(amount, rule)
	if err != nil {
		return Evaluation{}, err
	}
	ev.Fee = fee
	return ev, nil
}

func computeFee(amount int64, rule *models.LateFeeRule) (int64, error) {
	var fee int64
	switch rule.FeeType {
	case models.FeeTypeFixed:
		if rule.FixedAmount < 0 {
			return 0, invalidf("fixed_amount", "must not be negative, got %d", rule.FixedAmount)
		}
		fee = rule.FixedAmount
	case models.FeeTypePercentage:
		if rule.PercentageAmount < 0 {
			return 0, invalidf("percentage_amount", "must not be negative, got %v", rule.PercentageAmount)
		}
		fee = percentOf(amount, rule.PercentageAmount)
	default:
		return 0, invalidf("fee_type", "must be %q or %q, got %q", models.FeeTypeFixed, models.FeeTypePercentage, rule.FeeType)
	}

	// A nil or zero cap means uncapped.
	if rule.MaxFeeAmount != nil && *rule.MaxFeeAmount > 0 && fee > *rule.MaxFeeAmount {
		fee = *rule.MaxFeeAmount
	}
	return fee, nil
}
