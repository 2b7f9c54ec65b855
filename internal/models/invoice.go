package models

// InvoiceStatus values
const (
	InvoiceStatusDraft  = "draft"
	InvoiceStatusIssued = "issued"
	InvoiceStatusPaid   = "paid"
	InvoiceStatusVoid   = "void"
)

// Invoice groups ledger charges for a lease into a billable document.
// TotalAmount is cents; IssuedDate is epoch milliseconds.
type Invoice struct {
	ID            int64  `json:"id"`
	OrgID         int64  `json:"org_id"`
	InvoiceNumber string `json:"invoice_number"`
	LeaseID       int64  `json:"lease_id"`
	TotalAmount   int64  `json:"total_amount"`
	Status        string `json:"status"`
	IssuedDate    int64  `json:"issued_date"`
	Notes         string `json:"notes"`
	CreatedAt     int64  `json:"created_at"`
	UpdatedAt     int64  `json:"updated_at"`
}

// InvoiceItem is one line on an invoice, Amount in cents
type InvoiceItem struct {
	ID          int64  `json:"id"`
	InvoiceID   int64  `json:"invoice_id"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
}

// CreateInvoiceRequest is the request body for creating an invoice
type CreateInvoiceRequest struct {
	LeaseID int64  `json:"lease_id"`
	Notes   string `json:"notes"`
	Items   []struct {
		Description string `json:"description"`
		Amount      int64  `json:"amount"`
	} `json:"items"`
}

// InvoiceWithItems includes the invoice lines
type InvoiceWithItems struct {
	Invoice
	Items []InvoiceItem `json:"items"`
}
