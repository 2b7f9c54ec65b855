package models

// MaintenancePriority / MaintenanceStatus values
const (
	MaintenancePriorityLow    = "low"
	MaintenancePriorityNormal = "normal"
	MaintenancePriorityUrgent = "urgent"

	MaintenanceStatusOpen       = "open"
	MaintenanceStatusAssigned   = "assigned"
	MaintenanceStatusInProgress = "in_progress"
	MaintenanceStatusCompleted  = "completed"
	MaintenanceStatusCancelled  = "cancelled"
)

// MaintenanceRequest is a work order against a leased unit. Cost is cents.
type MaintenanceRequest struct {
	ID          int64  `json:"id"`
	OrgID       int64  `json:"org_id"`
	LeaseID     int64  `json:"lease_id"`
	VendorID    *int64 `json:"vendor_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	Cost        *int64 `json:"cost"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}

// CreateMaintenanceRequestRequest is the request body for creating a work order
type CreateMaintenanceRequestRequest struct {
	LeaseID     int64  `json:"lease_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// UpdateMaintenanceRequestRequest updates status, assignment, and cost
type UpdateMaintenanceRequestRequest struct {
	VendorID *int64 `json:"vendor_id"`
	Priority string `json:"priority"`
	Status   string `json:"status"`
	Cost     *int64 `json:"cost"`
}
