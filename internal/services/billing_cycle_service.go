package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"rentflow-backend/internal/billing"
	"rentflow-backend/internal/cache"
	"rentflow-backend/internal/metrics"
	"rentflow-backend/internal/models"
	"rentflow-backend/internal/repositories"
	"rentflow-backend/internal/timeutil"
)

// BillingCycleService runs the daily billing sweep: it writes the rent
// charges that fall due today (prorated when the lease starts or ends
// inside the period) and freezes late fees onto entries past their grace
// period. Both steps are idempotent, so a crashed or repeated run never
// double-bills.
type BillingCycleService struct {
	LeaseRepo     *repositories.LeaseRepository
	ScheduleRepo  *repositories.PaymentScheduleRepository
	LedgerRepo    *repositories.RentLedgerRepository
	RuleRepo      *repositories.LateFeeRuleRepository
	ProrationRepo *repositories.ProrationRuleRepository
	Settings      *SystemSettingService

	cron     *cron.Cron
	cronSpec string
}

func NewBillingCycleService(
	leaseRepo *repositories.LeaseRepository,
	scheduleRepo *repositories.PaymentScheduleRepository,
	ledgerRepo *repositories.RentLedgerRepository,
	ruleRepo *repositories.LateFeeRuleRepository,
	prorationRepo *repositories.ProrationRuleRepository,
	settings *SystemSettingService,
	cronSpec string,
) *BillingCycleService {
	return &BillingCycleService{
		LeaseRepo:     leaseRepo,
		ScheduleRepo:  scheduleRepo,
		LedgerRepo:    ledgerRepo,
		RuleRepo:      ruleRepo,
		ProrationRepo: prorationRepo,
		Settings:      settings,
		cronSpec:      cronSpec,
	}
}

// Start schedules the daily run. The cron expression comes from config; the default
// fires at 02:00 UTC.
func (s *BillingCycleService) Start() error {
	s.cron = cron.New()
	_, err := s.cron.AddFunc(s.cronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()
		if err := s.RunAll(ctx, timeutil.Now()); err != nil {
			log.Printf("[BillingCycle] scheduled run failed: %v", err)
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("[BillingCycle] scheduled with spec %q", s.cronSpec)
	return nil
}

func (s *BillingCycleService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// RunAll executes the cycle for every org that owns a lease.
func (s *BillingCycleService) RunAll(ctx context.Context, now time.Time) error {
	start := timeutil.Now()
	orgIDs, err := s.LeaseRepo.ListOrgIDs(ctx)
	if err != nil {
		metrics.BillingCycleRuns.WithLabelValues("error").Inc()
		return err
	}

	var firstErr error
	for _, orgID := range orgIDs {
		if err := s.RunOrg(ctx, orgID, now); err != nil {
			log.Printf("[BillingCycle] org %d failed: %v", orgID, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	metrics.BillingCycleDuration.Observe(time.Since(start).Seconds())
	if firstErr != nil {
		metrics.BillingCycleRuns.WithLabelValues("error").Inc()
		return firstErr
	}
	metrics.BillingCycleRuns.WithLabelValues("ok").Inc()
	return nil
}

// RunOrg generates today's rent charges and sweeps late fees for one org.
func (s *BillingCycleService) RunOrg(ctx context.Context, orgID int64, now time.Time) error {
	today := timeutil.StartOfDay(now)

	generated, err := s.generateCharges(ctx, orgID, today)
	if err != nil {
		return err
	}
	assessed, err := s.sweepLateFees(ctx, orgID, today)
	if err != nil {
		return err
	}

	if generated > 0 || assessed > 0 {
		cache.InvalidateLedgerCaches(ctx, orgID)
	}
	log.Printf("[BillingCycle] org %d: %d charges generated, %d late fees assessed", orgID, generated, assessed)
	return nil
}

// generateCharges writes a pending ledger entry for every active schedule
// whose due day falls on today. A schedule due on the 31st bills on the
// last day of shorter months.
func (s *BillingCycleService) generateCharges(ctx context.Context, orgID int64, today time.Time) (int, error) {
	schedules, err := s.ScheduleRepo.ListActive(ctx, orgID, timeutil.ToMillis(today))
	if err != nil {
		return 0, err
	}

	count := 0
	for _, schedule := range schedules {
		if !dueToday(schedule.DueDay, today) {
			continue
		}

		exists, err := s.LedgerRepo.ExistsForScheduleAndDueDate(ctx, orgID, schedule.ID, timeutil.ToMillis(today))
		if err != nil {
			return count, err
		}
		if exists {
			continue
		}

		amount, err := s.chargeAmount(ctx, orgID, schedule, today)
		if err != nil {
			log.Printf("[BillingCycle] schedule %d: %v, skipping", schedule.ID, err)
			continue
		}
		if amount == 0 {
			continue
		}

		scheduleID := schedule.ID
		entry := &models.RentLedgerEntry{
			OrgID:           orgID,
			LeaseID:         schedule.LeaseID,
			ScheduleID:      &scheduleID,
			TransactionType: models.TransactionTypeRent,
			Amount:          amount,
			DueDate:         timeutil.ToMillis(today),
			Status:          models.LedgerStatusPending,
		}
		if err := s.LedgerRepo.Create(ctx, entry); err != nil {
			return count, err
		}
		metrics.LedgerEntriesGenerated.Inc()
		count++
	}
	return count, nil
}

// chargeAmount is the schedule's rent, prorated when the lease starts or
// ends inside the calendar month containing the due date.
func (s *BillingCycleService) chargeAmount(ctx context.Context, orgID int64, schedule *models.PaymentSchedule, today time.Time) (int64, error) {
	lease, err := s.LeaseRepo.Get(ctx, orgID, schedule.LeaseID)
	if err != nil {
		return 0, err
	}

	periodStart := timeutil.StartOfMonth(today)
	periodEnd := periodStart.AddDate(0, 1, 0)

	leaseStart := timeutil.FromMillis(lease.StartDate)
	var leaseEnd *time.Time
	if lease.EndDate != nil {
		t := timeutil.FromMillis(*lease.EndDate)
		leaseEnd = &t
	}

	fullPeriod := !leaseStart.After(periodStart) &&
		(leaseEnd == nil || !leaseEnd.Before(periodEnd))
	if fullPeriod {
		return schedule.RentAmount, nil
	}

	rule, err := s.ProrationRepo.GetByLease(ctx, orgID, lease.ID)
	if err != nil {
		return 0, err
	}
	method := models.ProrationMethodDaily
	var daysInMonth *int
	if rule != nil {
		method = rule.Method
		daysInMonth = rule.DaysInMonth
	} else {
		d := s.Settings.DefaultDaysInMonth(ctx, orgID)
		daysInMonth = &d
	}

	res, err := billing.Prorate(billing.ProrationInput{
		MonthlyRent:    schedule.RentAmount,
		EffectiveStart: leaseStart,
		LeaseEnd:       leaseEnd,
		PeriodStart:    periodStart,
		PeriodEnd:      periodEnd,
		Method:         method,
		DaysInMonth:    daysInMonth,
	})
	if err != nil {
		return 0, err
	}
	return res.Amount, nil
}

// sweepLateFees evaluates every unpaid entry due on or before today and
// freezes the fee for entries past their grace period. Entries inside the
// grace window stay untouched and are re-checked tomorrow.
func (s *BillingCycleService) sweepLateFees(ctx context.Context, orgID int64, today time.Time) (int, error) {
	entries, err := s.LedgerRepo.ListUnpaidDueBefore(ctx, orgID, timeutil.ToMillis(today))
	if err != nil {
		return 0, err
	}

	orgRule, err := s.RuleRepo.GetActiveOrgDefault(ctx, orgID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, entry := range entries {
		leaseRule, err := s.RuleRepo.GetActiveForLease(ctx, orgID, entry.LeaseID)
		if err != nil {
			return count, err
		}
		rule := billing.ResolveRule(leaseRule, orgRule)

		ev, err := billing.Evaluate(entry.Amount, timeutil.FromMillis(entry.DueDate), nil, rule, today)
		if err != nil {
			log.Printf("[BillingCycle] entry %d: %v, skipping", entry.ID, err)
			continue
		}
		if ev.Status != models.LedgerStatusOverdue {
			continue
		}

		if ev.Fee > 0 {
			if err := s.LedgerRepo.FreezeLateFee(ctx, orgID, entry.ID, ev.Fee, ev.Status); err != nil {
				return count, err
			}
			metrics.LateFeesAssessed.Inc()
			metrics.LateFeeCentsAssessed.Add(float64(ev.Fee))
			count++
		} else if entry.Status == models.LedgerStatusPending {
			if err := s.LedgerRepo.MarkOverdue(ctx, orgID, entry.ID); err != nil {
				return count, err
			}
		}
	}
	return count, nil
}

// dueToday clamps the configured due day to the month's length, so a
// schedule due on the 31st bills on Feb 28/29, Apr 30, and so on.
func dueToday(dueDay int, today time.Time) bool {
	last := timeutil.DaysInMonth(today)
	effective := dueDay
	if effective > last {
		effective = last
	}
	return today.Day() == effective
}
