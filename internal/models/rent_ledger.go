package models

// LedgerStatus values for RentLedgerEntry.Status.
// An entry starts pending and moves to exactly one of the other states.
const (
	LedgerStatusPending    = "pending"
	LedgerStatusPaidOnTime = "paid_on_time"
	LedgerStatusPaidLate   = "paid_late"
	LedgerStatusOverdue    = "overdue"
)

// TransactionType values for RentLedgerEntry.TransactionType
const (
	TransactionTypeRent    = "rent"
	TransactionTypeLateFee = "late_fee"
	TransactionTypeDeposit = "deposit"
	TransactionTypeCredit  = "credit"
)

// RentLedgerEntry is one billing obligation against a lease. Amount and
// LateFeeAmount are cents; DueDate/PaidDate are epoch milliseconds.
// The late fee is computed once and frozen onto the entry; later rule
// changes never alter an already-assessed fee.
type RentLedgerEntry struct {
	ID              int64  `json:"id"`
	OrgID           int64  `json:"org_id"`
	LeaseID         int64  `json:"lease_id"`
	InvoiceID       *int64 `json:"invoice_id"`
	ScheduleID      *int64 `json:"schedule_id"`
	TransactionType string `json:"transaction_type"`
	Amount          int64  `json:"amount"`
	DueDate         int64  `json:"due_date"`
	PaidDate        *int64 `json:"paid_date"`
	Status          string `json:"status"`
	LateFeeAmount   int64  `json:"late_fee_amount"`
	Notes           string `json:"notes"`
	CreatedAt       int64  `json:"created_at"`
	UpdatedAt       int64  `json:"updated_at"`
}

// CreateLedgerEntryRequest is the request body for creating a ledger entry
type CreateLedgerEntryRequest struct {
	LeaseID         int64  `json:"lease_id"`
	InvoiceID       *int64 `json:"invoice_id"`
	TransactionType string `json:"transaction_type"`
	Amount          int64  `json:"amount"`
	DueDate         int64  `json:"due_date"`
	Notes           string `json:"notes"`
}

// RecordPaymentRequest marks a ledger entry paid. PaidDate defaults to now.
type RecordPaymentRequest struct {
	PaidDate *int64 `json:"paid_date"`
	Notes    string `json:"notes"`
}

// LedgerFilter narrows ledger listings
type LedgerFilter struct {
	LeaseID int64
	Status  string
	Limit   int
	Offset  int
}

// LedgerSummary aggregates a lease's ledger for dashboards
type LedgerSummary struct {
	LeaseID      int64 `json:"lease_id"`
	TotalCharged int64 `json:"total_charged"`
	TotalPaid    int64 `json:"total_paid"`
	TotalLateFee int64 `json:"total_late_fee"`
	OpenBalance  int64 `json:"open_balance"`
	EntryCount   int   `json:"entry_count"`
}
