package models

// ProrationMethod values for ProrationRule.Method
const (
	ProrationMethodDaily = "daily"
	ProrationMethodExact = "exact"
)

// ProrationRule selects the day-count convention used when a lease starts
// or ends inside a billing period. DaysInMonth only applies to the daily
// method and defaults to 30 when nil.
type ProrationRule struct {
	ID          int64  `json:"id"`
	OrgID       int64  `json:"org_id"`
	LeaseID     int64  `json:"lease_id"`
	Method      string `json:"method"`
	DaysInMonth *int   `json:"days_in_month"`
	CreatedAt   int64  `json:"created_at"`
}

// CreateProrationRuleRequest is the request body for creating a rule
type CreateProrationRuleRequest struct {
	LeaseID     int64  `json:"lease_id"`
	Method      string `json:"method"`
	DaysInMonth *int   `json:"days_in_month"`
}

// ProrationPreviewRequest is the request body for POST /api/prorations/preview
type ProrationPreviewRequest struct {
	MonthlyRent    int64  `json:"monthly_rent"`
	EffectiveStart int64  `json:"effective_start"`
	LeaseEnd       *int64 `json:"lease_end"`
	PeriodStart    int64  `json:"period_start"`
	PeriodEnd      int64  `json:"period_end"`
	Method         string `json:"method"`
	DaysInMonth    *int   `json:"days_in_month"`
}

// ProrationPreviewResponse is the computed result
type ProrationPreviewResponse struct {
	ProratedAmount int64 `json:"prorated_amount"`
	OccupiedDays   int   `json:"occupied_days"`
	DaysInMonth    int   `json:"days_in_month"`
}
