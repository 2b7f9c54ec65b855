package models

// PaymentSchedule represents a recurring rent-payment schedule for a lease.
// RentAmount is in cents; StartDate/EndDate are epoch milliseconds.
// A lease may carry several active schedules at once (a main schedule plus
// an installment plan); each contributes ledger entries independently.
type PaymentSchedule struct {
	ID         int64  `json:"id"`
	OrgID      int64  `json:"org_id"`
	LeaseID    int64  `json:"lease_id"`
	RentAmount int64  `json:"rent_amount"`
	DueDay     int    `json:"due_day"`
	StartDate  int64  `json:"start_date"`
	EndDate    *int64 `json:"end_date"`
	IsActive   bool   `json:"is_active"`
	CreatedAt  int64  `json:"created_at"`
}

// CreateScheduleRequest is the request body for POST /api/payment-schedules
type CreateScheduleRequest struct {
	LeaseID    int64  `json:"lease_id"`
	RentAmount int64  `json:"rent_amount"`
	DueDay     int    `json:"due_day"`
	StartDate  int64  `json:"start_date"`
	EndDate    *int64 `json:"end_date"`
}

// WeeklyPlanRequest is the request body for POST /api/payment-schedules/weekly-plan
type WeeklyPlanRequest struct {
	LeaseID     int64  `json:"lease_id"`
	MonthlyRent int64  `json:"monthly_rent"`
	StartDate   *int64 `json:"start_date"` // defaults to first of current month
}

// ScheduleChangeRequest is a tenant-initiated advisory request to change a
// schedule. It never mutates the schedule itself; a manager acts on it.
type ScheduleChangeRequest struct {
	ID                 int64  `json:"id"`
	OrgID              int64  `json:"org_id"`
	ScheduleID         int64  `json:"schedule_id"`
	RequestedDueDay    *int   `json:"requested_due_day"`
	RequestedStartDate *int64 `json:"requested_start_date"`
	Reason             string `json:"reason"`
	Status             string `json:"status"` // pending, approved, rejected
	ReviewedByUserID   *int64 `json:"reviewed_by_user_id"`
	CreatedAt          int64  `json:"created_at"`
}

// CreateChangeRequestRequest is the request body for creating a change request
type CreateChangeRequestRequest struct {
	ScheduleID         int64  `json:"schedule_id"`
	RequestedDueDay    *int   `json:"requested_due_day"`
	RequestedStartDate *int64 `json:"requested_start_date"`
	Reason             string `json:"reason"`
}

// ChangeRequestStatus values
const (
	ChangeRequestPending  = "pending"
	ChangeRequestApproved = "approved"
	ChangeRequestRejected = "rejected"
)
