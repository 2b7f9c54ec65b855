package models

// FeeType values for LateFeeRule.FeeType
const (
	FeeTypeFixed      = "fixed"
	FeeTypePercentage = "percentage"
)

// LateFeeRule defines when and how a late fee is assessed. A rule with a
// nil LeaseID is the org-wide default; a lease-specific rule overrides it.
// FixedAmount and MaxFeeAmount are cents; PercentageAmount is a percentage
// of the ledger entry amount (5 = 5%).
type LateFeeRule struct {
	ID               int64   `json:"id"`
	OrgID            int64   `json:"org_id"`
	LeaseID          *int64  `json:"lease_id"`
	GracePeriodDays  int     `json:"grace_period_days"`
	FeeType          string  `json:"fee_type"`
	FixedAmount      int64   `json:"fixed_amount"`
	PercentageAmount float64 `json:"percentage_amount"`
	MaxFeeAmount     *int64  `json:"max_fee_amount"`
	IsActive         bool    `json:"is_active"`
	CreatedAt        int64   `json:"created_at"`
	UpdatedAt        int64   `json:"updated_at"`
}

// CreateLateFeeRuleRequest is the request body for creating a rule
type CreateLateFeeRuleRequest struct {
	LeaseID          *int64  `json:"lease_id"`
	GracePeriodDays  int     `json:"grace_period_days"`
	FeeType          string  `json:"fee_type"`
	FixedAmount      int64   `json:"fixed_amount"`
	PercentageAmount float64 `json:"percentage_amount"`
	MaxFeeAmount     *int64  `json:"max_fee_amount"`
}

// UpdateLateFeeRuleRequest is the request body for updating a rule
type UpdateLateFeeRuleRequest struct {
	GracePeriodDays  int     `json:"grace_period_days"`
	FeeType          string  `json:"fee_type"`
	FixedAmount      int64   `json:"fixed_amount"`
	PercentageAmount float64 `json:"percentage_amount"`
	MaxFeeAmount     *int64  `json:"max_fee_amount"`
	IsActive         bool    `json:"is_active"`
}
