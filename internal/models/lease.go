package models

// LeaseStatus values for Lease.Status
const (
	LeaseStatusActive     = "active"
	LeaseStatusEnded      = "ended"
	LeaseStatusTerminated = "terminated"
)

// Lease represents a tenancy for a unit. Money is in minor currency
// units (cents); dates are epoch milliseconds UTC.
type Lease struct {
	ID           int64  `json:"id"`
	OrgID        int64  `json:"org_id"`
	PropertyName string `json:"property_name"`
	UnitName     string `json:"unit_name"`
	TenantName   string `json:"tenant_name"`
	TenantEmail  string `json:"tenant_email"`
	MonthlyRent  int64  `json:"monthly_rent"`
	StartDate    int64  `json:"start_date"`
	EndDate      *int64 `json:"end_date"`
	Status       string `json:"status"`
	CreatedAt    int64  `json:"created_at"`
	UpdatedAt    int64  `json:"updated_at"`
}

// CreateLeaseRequest is the request body for creating a lease
type CreateLeaseRequest struct {
	PropertyName string `json:"property_name"`
	UnitName     string `json:"unit_name"`
	TenantName   string `json:"tenant_name"`
	TenantEmail  string `json:"tenant_email"`
	MonthlyRent  int64  `json:"monthly_rent"`
	StartDate    int64  `json:"start_date"`
	EndDate      *int64 `json:"end_date"`
}

// UpdateLeaseRequest is the request body for updating a lease
type UpdateLeaseRequest struct {
	PropertyName string `json:"property_name"`
	UnitName     string `json:"unit_name"`
	TenantName   string `json:"tenant_name"`
	TenantEmail  string `json:"tenant_email"`
	MonthlyRent  int64  `json:"monthly_rent"`
	EndDate      *int64 `json:"end_date"`
	Status       string `json:"status"`
}
