package billing

import (
	"time"

	"rentflow-backend/internal/models"
	"rentflow-backend/internal/timeutil"
)

// DefaultDaysInMonth is the denominator for the daily day-count convention
// when the proration rule does not configure one.
const DefaultDaysInMonth = 30

// ProrationInput describes a partial-period rent computation. The billing
// period is the half-open range [PeriodStart, PeriodEnd). LeaseEnd is nil
// for an open-ended lease.
type ProrationInput struct {
	MonthlyRent    int64 // cents
	EffectiveStart time.Time
	LeaseEnd       *time.Time
	PeriodStart    time.Time
	PeriodEnd      time.Time
	Method         string // daily or exact
	DaysInMonth    *int   // daily method only, default 30
}

// ProrationResult carries the rounded amount plus the counts that produced it.
type ProrationResult struct {
	Amount       int64
	OccupiedDays int
	DaysInMonth  int
}

// Prorate computes the partial-period rent for a lease that starts or ends
// inside a billing period. Occupied days are whole days between
// max(periodStart, effectiveStart) and min(periodEnd, leaseEnd-or-periodEnd).
// Zero or negative occupancy charges nothing; occupancy covering the full
// denominator charges exactly MonthlyRent so a full period never loses a
// cent to rounding. Partial periods round half-up.
func Prorate(in ProrationInput) (ProrationResult, error) {
	if in.MonthlyRent <= 0 {
		return ProrationResult{}, invalidf("monthly_rent", "must be greater than zero, got %d", in.MonthlyRent)
	}
	if in.PeriodStart.IsZero() || in.PeriodEnd.IsZero() {
		return ProrationResult{}, invalidf("period", "period_start and period_end are required")
	}
	if !in.PeriodEnd.After(in.PeriodStart) {
		return ProrationResult{}, invalidf("period_end", "must be after period_start")
	}
	if in.EffectiveStart.IsZero() {
		return ProrationResult{}, invalidf("effective_start", "is required")
	}

	var daysInMonth int
	switch in.Method {
	case models.ProrationMethodDaily:
		daysInMonth = DefaultDaysInMonth
		if in.DaysInMonth != nil {
			if *in.DaysInMonth < 1 {
				return ProrationResult{}, invalidf("days_in_month", "must be at least 1, got %d", *in.DaysInMonth)
			}
			daysInMonth = *in.DaysInMonth
		}
	case models.ProrationMethodExact:
		daysInMonth = timeutil.DaysInMonth(in.PeriodStart)
	default:
		return ProrationResult{}, invalidf("method", "must be %q or %q, got %q", models.ProrationMethodDaily, models.ProrationMethodExact, in.Method)
	}

	occupiedEnd := in.PeriodEnd
	if in.LeaseEnd != nil && in.LeaseEnd.Before(occupiedEnd) {
		occupiedEnd = *in.LeaseEnd
	}
	occupiedStart := in.PeriodStart
	if in.EffectiveStart.After(occupiedStart) {
		occupiedStart = in.EffectiveStart
	}

	occupied := timeutil.DaysBetween(occupiedStart, occupiedEnd)
	res := ProrationResult{OccupiedDays: occupied, DaysInMonth: daysInMonth}

	switch {
	case occupied <= 0:
		res.OccupiedDays = 0
		res.Amount = 0
	case occupied >= daysInMonth:
		res.Amount = in.MonthlyRent
	default:
		res.Amount = roundHalfUpDiv(in.MonthlyRent*int64(occupied), int64(daysInMonth))
	}
	return res, nil
}
