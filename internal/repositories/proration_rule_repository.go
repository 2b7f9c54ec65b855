package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rentflow-backend/internal/models"
	"rentflow-backend/internal/timeutil"
)

type ProrationRuleRepository struct {
	DB *pgxpool.Pool
}

func NewProrationRuleRepository(db *pgxpool.Pool) *ProrationRuleRepository {
	return &ProrationRuleRepository{DB: db}
}

func (r *ProrationRuleRepository) Upsert(ctx context.Context, rule *models.ProrationRule) error {
	query := `
		INSERT INTO proration_rules (org_id, lease_id, method, days_in_month, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (org_id, lease_id)
		DO UPDATE SET method = $3, days_in_month = $4
		RETURNING id
	`
	rule.CreatedAt = timeutil.ToMillis(timeutil.Now())

	return withRetry(ctx, "upsert proration rule", func() error {
		return r.DB.QueryRow(ctx, query,
			rule.OrgID,
			rule.LeaseID,
			rule.Method,
			rule.DaysInMonth,
			rule.CreatedAt,
		).Scan(&rule.ID)
	})
}

// GetByLease returns the lease's proration rule, or nil when none is
// configured (callers fall back to the daily/30 convention).
func (r *ProrationRuleRepository) GetByLease(ctx context.Context, orgID, leaseID int64) (*models.ProrationRule, error) {
	query := `
		SELECT id, org_id, lease_id, method, days_in_month, created_at
		FROM proration_rules
		WHERE org_id = $1 AND lease_id = $2
	`

	rule := &models.ProrationRule{}
	err := withRetry(ctx, "get proration rule", func() error {
		return r.DB.QueryRow(ctx, query, orgID, leaseID).Scan(
			&rule.ID,
			&rule.OrgID,
			&rule.LeaseID,
			&rule.Method,
			&rule.DaysInMonth,
			&rule.CreatedAt,
		)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rule, nil
}
