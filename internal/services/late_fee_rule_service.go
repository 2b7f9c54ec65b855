package services

import (
	"context"

	"rentflow-backend/internal/billing"
	"rentflow-backend/internal/models"
	"rentflow-backend/internal/repositories"
)

type LateFeeRuleService struct {
	Repo      *repositories.LateFeeRuleRepository
	LeaseRepo *repositories.LeaseRepository
}

func NewLateFeeRuleService(repo *repositories.LateFeeRuleRepository, leaseRepo *repositories.LeaseRepository) *LateFeeRuleService {
	return &LateFeeRuleService{Repo: repo, LeaseRepo: leaseRepo}
}

func (s *LateFeeRuleService) validate(rule *models.LateFeeRule) error {
	if rule.GracePeriodDays < 0 {
		return billing.Invalid("grace_period_days", "must not be negative")
	}
	switch rule.FeeType {
	case models.FeeTypeFixed:
		if rule.FixedAmount <= 0 {
			return billing.Invalid("fixed_amount", "must be greater than zero for a fixed rule")
		}
	case models.FeeTypePercentage:
		if rule.PercentageAmount <= 0 {
			return billing.Invalid("percentage_amount", "must be greater than zero for a percentage rule")
		}
	default:
		return billing.Invalid("fee_type", "must be fixed or percentage")
	}
	if rule.MaxFeeAmount != nil && *rule.MaxFeeAmount < 0 {
		return billing.Invalid("max_fee_amount", "must not be negative")
	}
	return nil
}

func (s *LateFeeRuleService) CreateRule(ctx context.Context, orgID int64, rule *models.LateFeeRule) (*models.LateFeeRule, error) {
	rule.OrgID = orgID
	rule.IsActive = true
	if err := s.validate(rule); err != nil {
		return nil, err
	}
	if rule.LeaseID != nil {
		if _, err := s.LeaseRepo.Get(ctx, orgID, *rule.LeaseID); err != nil {
			return nil, err
		}
	}
	if err := s.Repo.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *LateFeeRuleService) GetRule(ctx context.Context, orgID, id int64) (*models.LateFeeRule, error) {
	return s.Repo.Get(ctx, orgID, id)
}

func (s *LateFeeRuleService) ListRules(ctx context.Context, orgID int64) ([]*models.LateFeeRule, error) {
	return s.Repo.List(ctx, orgID)
}

func (s *LateFeeRuleService) UpdateRule(ctx context.Context, orgID int64, rule *models.LateFeeRule) (*models.LateFeeRule, error) {
	rule.OrgID = orgID
	if err := s.validate(rule); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}
