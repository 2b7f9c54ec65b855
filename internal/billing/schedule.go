package billing

import (
	"time"

	"rentflow-backend/internal/models"
	"rentflow-backend/internal/timeutil"
)

// ScheduleParams are the validated inputs for a new payment schedule.
type ScheduleParams struct {
	OrgID      int64
	LeaseID    int64
	RentAmount int64 // cents
	DueDay     int   // 1-31
	StartDate  time.Time
	EndDate    *time.Time
}

// NewSchedule validates params and builds an active PaymentSchedule row.
// It does not persist; the caller stores the result through the repository.
func NewSchedule(p ScheduleParams) (*models.PaymentSchedule, error) {
	if p.LeaseID <= 0 {
		return nil, invalidf("lease_id", "must be a positive id")
	}
	if p.RentAmount <= 0 {
		return nil, invalidf("rent_amount", "must be greater than zero, got %d", p.RentAmount)
	}
	if p.DueDay < 1 || p.DueDay > 31 {
		return nil, invalidf("due_day", "must be between 1 and 31, got %d", p.DueDay)
	}
	if p.StartDate.IsZero() {
		return nil, invalidf("start_date", "is required")
	}
	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		return nil, invalidf("end_date", "must not be before start_date")
	}

	s := &models.PaymentSchedule{
		OrgID:      p.OrgID,
		LeaseID:    p.LeaseID,
		RentAmount: p.RentAmount,
		DueDay:     p.DueDay,
		StartDate:  timeutil.ToMillis(timeutil.StartOfDay(p.StartDate)),
		IsActive:   true,
	}
	if p.EndDate != nil {
		end := timeutil.ToMillis(timeutil.StartOfDay(*p.EndDate))
		s.EndDate = &end
	}
	return s, nil
}

// weeklyInstallments is fixed: a monthly rent is always split four ways.
const weeklyInstallments = 4

// WeeklyPlan splits monthlyRent into 4 equal installment schedules spaced
// 7 days apart. Integer division loses up to 3 cents, so the remainder is
// added to the last installment: the installments always sum exactly to
// monthlyRent. Rents under 4 cents produce zero-cent leading installments,
// so the plan rows are built directly; only monthlyRent itself must be
// positive. When start is zero it defaults to the first of the month
// containing now.
func WeeklyPlan(orgID, leaseID, monthlyRent int64, start time.Time, now time.Time) ([]*models.PaymentSchedule, error) {
	if leaseID <= 0 {
		return nil, invalidf("lease_id", "must be a positive id")
	}
	if monthlyRent <= 0 {
		return nil, invalidf("monthly_rent", "must be greater than zero, got %d", monthlyRent)
	}
	if start.IsZero() {
		start = timeutil.StartOfMonth(now)
	}
	start = timeutil.StartOfDay(start)

	base := monthlyRent / weeklyInstallments
	remainder := monthlyRent % weeklyInstallments

	plan := make([]*models.PaymentSchedule, 0, weeklyInstallments)
	for i := 0; i < weeklyInstallments; i++ {
		amount := base
		if i == weeklyInstallments-1 {
			amount += remainder
		}
		installmentStart := start.AddDate(0, 0, 7*i)
		plan = append(plan, &models.PaymentSchedule{
			OrgID:      orgID,
			LeaseID:    leaseID,
			RentAmount: amount,
			DueDay:     installmentStart.Day(),
			StartDate:  timeutil.ToMillis(installmentStart),
			IsActive:   true,
		})
	}
	return plan, nil
}
