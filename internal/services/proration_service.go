package services

import (
	"context"
	"time"

	"rentflow-backend/internal/billing"
	"rentflow-backend/internal/models"
	"rentflow-backend/internal/repositories"
	"rentflow-backend/internal/timeutil"
)

type ProrationService struct {
	Repo      *repositories.ProrationRuleRepository
	LeaseRepo *repositories.LeaseRepository
}

func NewProrationService(repo *repositories.ProrationRuleRepository, leaseRepo *repositories.LeaseRepository) *ProrationService {
	return &ProrationService{Repo: repo, LeaseRepo: leaseRepo}
}

// Preview runs the proration math on caller-supplied inputs without
// touching any stored state.
func (s *ProrationService) Preview(req *models.ProrationPreviewRequest) (*models.ProrationPreviewResponse, error) {
	var leaseEnd *time.Time
	if req.LeaseEnd != nil {
		t := timeutil.FromMillis(*req.LeaseEnd)
		leaseEnd = &t
	}

	res, err := billing.Prorate(billing.ProrationInput{
		MonthlyRent:    req.MonthlyRent,
		EffectiveStart: timeutil.FromMillis(req.EffectiveStart),
		LeaseEnd:       leaseEnd,
		PeriodStart:    timeutil.FromMillis(req.PeriodStart),
		PeriodEnd:      timeutil.FromMillis(req.PeriodEnd),
		Method:         req.Method,
		DaysInMonth:    req.DaysInMonth,
	})
	if err != nil {
		return nil, err
	}

	return &models.ProrationPreviewResponse{
		ProratedAmount: res.Amount,
		OccupiedDays:   res.OccupiedDays,
		DaysInMonth:    res.DaysInMonth,
	}, nil
}

func (s *ProrationService) UpsertRule(ctx context.Context, orgID int64, req *models.CreateProrationRuleRequest) (*models.ProrationRule, error) {
	switch req.Method {
	case models.ProrationMethodDaily, models.ProrationMethodExact:
	default:
		return nil, billing.Invalid("method", "must be daily or exact")
	}
	if req.DaysInMonth != nil && *req.DaysInMonth < 1 {
		return nil, billing.Invalid("days_in_month", "must be at least 1")
	}
	if _, err := s.LeaseRepo.Get(ctx, orgID, req.LeaseID); err != nil {
		return nil, err
	}

	rule := &models.ProrationRule{
		OrgID:       orgID,
		LeaseID:     req.LeaseID,
		Method:      req.Method,
		DaysInMonth: req.DaysInMonth,
	}
	if err := s.Repo.Upsert(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *ProrationService) GetRuleForLease(ctx context.Context, orgID, leaseID int64) (*models.ProrationRule, error) {
	if _, err := s.LeaseRepo.Get(ctx, orgID, leaseID); err != nil {
		return nil, err
	}
	return s.Repo.GetByLease(ctx, orgID, leaseID)
}
