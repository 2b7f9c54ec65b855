package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rentflow-backend/internal/models"
	"rentflow-backend/internal/timeutil"
)

type LateFeeRuleRepository struct {
	DB *pgxpool.Pool
}

func NewLateFeeRuleRepository(db *pgxpool.Pool) *LateFeeRuleRepository {
	return &LateFeeRuleRepository{DB: db}
}

const lateFeeRuleColumns = `id, org_id, lease_id, grace_period_days, fee_type, fixed_amount,
	       percentage_amount, max_fee_amount, is_active, created_at, updated_at`

func scanLateFeeRule(row pgx.Row) (*models.LateFeeRule, error) {
	rule := &models.LateFeeRule{}
	err := row.Scan(
		&rule.ID,
		&rule.OrgID,
		&rule.LeaseID,
		&rule.GracePeriodDays,
		&rule.FeeType,
		&rule.FixedAmount,
		&rule.PercentageAmount,
		&rule.MaxFeeAmount,
		&rule.IsActive,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	return rule, err
}

func (r *LateFeeRuleRepository) Create(ctx context.Context, rule *models.LateFeeRule) error {
	query := `
		INSERT INTO late_fee_rules (org_id, lease_id, grace_period_days, fee_type, fixed_amount, percentage_amount, max_fee_amount, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id
	`
	now := timeutil.ToMillis(timeutil.Now())
	rule.CreatedAt = now
	rule.UpdatedAt = now

	return withRetry(ctx, "create late fee rule", func() error {
		return r.DB.QueryRow(ctx, query,
			rule.OrgID,
			rule.LeaseID,
			rule.GracePeriodDays,
			rule.FeeType,
			rule.FixedAmount,
			rule.PercentageAmount,
			rule.MaxFeeAmount,
			rule.IsActive,
			now,
		).Scan(&rule.ID)
	})
}

func (r *LateFeeRuleRepository) Get(ctx context.Context, orgID, id int64) (*models.LateFeeRule, error) {
	query := `SELECT ` + lateFeeRuleColumns + ` FROM late_fee_rules WHERE org_id = $1 AND id = $2`

	var rule *models.LateFeeRule
	err := withRetry(ctx, "get late fee rule", func() error {
		var scanErr error
		rule, scanErr = scanLateFeeRule(r.DB.QueryRow(ctx, query, orgID, id))
		return scanErr
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &NotFoundError{Resource: "late fee rule", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return rule, nil
}

func (r *LateFeeRuleRepository) List(ctx context.Context, orgID int64) ([]*models.LateFeeRule, error) {
	query := `SELECT ` + lateFeeRuleColumns + ` FROM late_fee_rules WHERE org_id = $1 ORDER BY lease_id NULLS FIRST, id`

	var rules []*models.LateFeeRule
	err := withRetry(ctx, "list late fee rules", func() error {
		rows, err := r.DB.Query(ctx, query, orgID)
		if err != nil {
			return err
		}
		defer rows.Close()

		rules = rules[:0]
		for rows.Next() {
			rule, err := scanLateFeeRule(rows)
			if err != nil {
				return err
			}
			rules = append(rules, rule)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// GetActiveForLease returns the active lease-specific rule, or nil when the
// lease has none. Rule specificity is decided in the billing package; the
// repository only fetches candidates.
func (r *LateFeeRuleRepository) GetActiveForLease(ctx context.Context, orgID, leaseID int64) (*models.LateFeeRule, error) {
	query := `
		SELECT ` + lateFeeRuleColumns + `
		FROM late_fee_rules
		WHERE org_id = $1 AND lease_id = $2 AND is_active = TRUE
		ORDER BY updated_at DESC
		LIMIT 1
	`
	return r.getOptional(ctx, "get lease late fee rule", query, orgID, leaseID)
}

// GetActiveOrgDefault returns the active org-wide rule (lease_id NULL),
// or nil when the org has none.
func (r *LateFeeRuleRepository) GetActiveOrgDefault(ctx context.Context, orgID int64) (*models.LateFeeRule, error) {
	query := `
		SELECT ` + lateFeeRuleColumns + `
		FROM late_fee_rules
		WHERE org_id = $1 AND lease_id IS NULL AND is_active = TRUE
		ORDER BY updated_at DESC
		LIMIT 1
	`
	return r.getOptional(ctx, "get org late fee rule", query, orgID)
}

func (r *LateFeeRuleRepository) Update(ctx context.Context, rule *models.LateFeeRule) error {
	query := `
		UPDATE late_fee_rules
		SET grace_period_days = $1, fee_type = $2, fixed_amount = $3, percentage_amount = $4,
		    max_fee_amount = $5, is_active = $6, updated_at = $7
		WHERE org_id = $8 AND id = $9
	`
	rule.UpdatedAt = timeutil.ToMillis(timeutil.Now())

	var affected int64
	err := withRetry(ctx, "update late fee rule", func() error {
		ct, err := r.DB.Exec(ctx, query,
			rule.GracePeriodDays,
			rule.FeeType,
			rule.FixedAmount,
			rule.PercentageAmount,
			rule.MaxFeeAmount,
			rule.IsActive,
			rule.UpdatedAt,
			rule.OrgID,
			rule.ID,
		)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return &NotFoundError{Resource: "late fee rule", ID: rule.ID}
	}
	return nil
}

func (r *LateFeeRuleRepository) getOptional(ctx context.Context, op, query string, args ...interface{}) (*models.LateFeeRule, error) {
	var rule *models.LateFeeRule
	err := withRetry(ctx, op, func() error {
		var scanErr error
		rule, scanErr = scanLateFeeRule(r.DB.QueryRow(ctx, query, args...))
		return scanErr
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rule, nil
}
