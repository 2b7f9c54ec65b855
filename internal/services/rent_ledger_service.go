package services

import (
	"context"
	"encoding/json"
	"time"

	"rentflow-backend/internal/billing"
	"rentflow-backend/internal/cache"
	"rentflow-backend/internal/models"
	"rentflow-backend/internal/repositories"
	"rentflow-backend/internal/timeutil"
)

type RentLedgerService struct {
	Repo      *repositories.RentLedgerRepository
	LeaseRepo *repositories.LeaseRepository
	RuleRepo  *repositories.LateFeeRuleRepository
}

func NewRentLedgerService(
	repo *repositories.RentLedgerRepository,
	leaseRepo *repositories.LeaseRepository,
	ruleRepo *repositories.LateFeeRuleRepository,
) *RentLedgerService {
	return &RentLedgerService{
		Repo:      repo,
		LeaseRepo: leaseRepo,
		RuleRepo:  ruleRepo,
	}
}

func (s *RentLedgerService) CreateEntry(ctx context.Context, orgID int64, req *models.CreateLedgerEntryRequest) (*models.RentLedgerEntry, error) {
	if req.Amount <= 0 {
		return nil, billing.Invalid("amount", "must be greater than zero")
	}
	if req.DueDate <= 0 {
		return nil, billing.Invalid("due_date", "is required")
	}
	switch req.TransactionType {
	case models.TransactionTypeRent, models.TransactionTypeLateFee,
		models.TransactionTypeDeposit, models.TransactionTypeCredit:
	default:
		return nil, billing.Invalid("transaction_type", "unknown transaction type")
	}
	if _, err := s.LeaseRepo.Get(ctx, orgID, req.LeaseID); err != nil {
		return nil, err
	}

	entry := &models.RentLedgerEntry{
		OrgID:           orgID,
		LeaseID:         req.LeaseID,
		InvoiceID:       req.InvoiceID,
		TransactionType: req.TransactionType,
		Amount:          req.Amount,
		DueDate:         req.DueDate,
		Status:          models.LedgerStatusPending,
		Notes:           req.Notes,
	}
	if err := s.Repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	cache.InvalidateLedgerCaches(ctx, orgID)
	return entry, nil
}

func (s *RentLedgerService) GetEntry(ctx context.Context, orgID, id int64) (*models.RentLedgerEntry, error) {
	return s.Repo.Get(ctx, orgID, id)
}

func (s *RentLedgerService) ListEntries(ctx context.Context, orgID int64, filter models.LedgerFilter) ([]*models.RentLedgerEntry, error) {
	return s.Repo.List(ctx, orgID, filter)
}

// Summarize serves the lease summary from Redis when possible; a miss
// falls through to Postgres and repopulates the cache.
func (s *RentLedgerService) Summarize(ctx context.Context, orgID, leaseID int64) (*models.LedgerSummary, error) {
	key := cache.LedgerSummaryKey(orgID, leaseID)
	if data, ok := cache.GetCached(ctx, key); ok {
		summary := &models.LedgerSummary{}
		if err := json.Unmarshal(data, summary); err == nil {
			return summary, nil
		}
	}

	if _, err := s.LeaseRepo.Get(ctx, orgID, leaseID); err != nil {
		return nil, err
	}
	summary, err := s.Repo.Summarize(ctx, orgID, leaseID)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(summary); err == nil {
		cache.SetCached(ctx, key, data, 5*time.Minute)
	}
	return summary, nil
}

// RecordPayment marks an entry paid as of the given date and settles the
// late fee in the same step. An already-frozen fee stands regardless of
// what the rule says today; otherwise the fee is evaluated against the
// payment date and frozen now.
func (s *RentLedgerService) RecordPayment(ctx context.Context, orgID, id int64, req *models.RecordPaymentRequest) (*models.RentLedgerEntry, error) {
	entry, err := s.Repo.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if entry.PaidDate != nil {
		return nil, billing.Invalid("paid_date", "entry is already paid")
	}

	paidMs := timeutil.ToMillis(timeutil.Now())
	if req.PaidDate != nil {
		if *req.PaidDate <= 0 {
			return nil, billing.Invalid("paid_date", "must be a valid epoch-ms timestamp")
		}
		paidMs = *req.PaidDate
	}
	paid := timeutil.FromMillis(paidMs)

	rule, err := s.resolveRule(ctx, orgID, entry.LeaseID)
	if err != nil {
		return nil, err
	}

	ev, err := billing.Evaluate(entry.Amount, timeutil.FromMillis(entry.DueDate), &paid, rule, timeutil.Now())
	if err != nil {
		return nil, err
	}

	fee := ev.Fee
	if entry.LateFeeAmount > 0 {
		fee = entry.LateFeeAmount
	}

	if err := s.Repo.RecordPayment(ctx, orgID, id, paidMs, ev.Status, fee, req.Notes); err != nil {
		return nil, err
	}
	cache.InvalidateLedgerCaches(ctx, orgID)
	return s.Repo.Get(ctx, orgID, id)
}

// AssessLateFee evaluates an unpaid entry against the resolved rule as of
// now and freezes any resulting fee. Safe to call repeatedly: a frozen fee
// is returned as-is without re-evaluation.
func (s *RentLedgerService) AssessLateFee(ctx context.Context, orgID, id int64) (*models.RentLedgerEntry, error) {
	entry, err := s.Repo.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if entry.PaidDate != nil {
		return nil, billing.Invalid("paid_date", "entry is already paid")
	}
	if entry.LateFeeAmount > 0 {
		return entry, nil
	}

	rule, err := s.resolveRule(ctx, orgID, entry.LeaseID)
	if err != nil {
		return nil, err
	}

	ev, err := billing.Evaluate(entry.Amount, timeutil.FromMillis(entry.DueDate), nil, rule, timeutil.Now())
	if err != nil {
		return nil, err
	}

	if ev.Status == models.LedgerStatusOverdue {
		if ev.Fee > 0 {
			if err := s.Repo.FreezeLateFee(ctx, orgID, id, ev.Fee, ev.Status); err != nil {
				return nil, err
			}
		} else if err := s.Repo.MarkOverdue(ctx, orgID, id); err != nil {
			return nil, err
		}
		cache.InvalidateLedgerCaches(ctx, orgID)
	}
	return s.Repo.Get(ctx, orgID, id)
}

// ResolveRuleForLease exposes rule resolution for the preview endpoint.
func (s *RentLedgerService) ResolveRuleForLease(ctx context.Context, orgID, leaseID int64) (*models.LateFeeRule, error) {
	if _, err := s.LeaseRepo.Get(ctx, orgID, leaseID); err != nil {
		return nil, err
	}
	return s.resolveRule(ctx, orgID, leaseID)
}

func (s *RentLedgerService) resolveRule(ctx context.Context, orgID, leaseID int64) (*models.LateFeeRule, error) {
	leaseRule, err := s.RuleRepo.GetActiveForLease(ctx, orgID, leaseID)
	if err != nil {
		return nil, err
	}
	orgRule, err := s.RuleRepo.GetActiveOrgDefault(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return billing.ResolveRule(leaseRule, orgRule), nil
}
