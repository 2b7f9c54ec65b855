package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf/v2"

	"rentflow-backend/internal/models"
	"rentflow-backend/internal/repositories"
	"rentflow-backend/internal/timeutil"
)

// RentRollRow is one lease on the rent-roll report.
type RentRollRow struct {
	Lease   *models.Lease
	Summary *models.LedgerSummary
}

// ReportService builds rent-roll PDFs and ledger CSV exports.
type ReportService struct {
	LeaseRepo  *repositories.LeaseRepository
	LedgerRepo *repositories.RentLedgerRepository
}

func NewReportService(leaseRepo *repositories.LeaseRepository, ledgerRepo *repositories.RentLedgerRepository) *ReportService {
	return &ReportService{LeaseRepo: leaseRepo, LedgerRepo: ledgerRepo}
}

// GetRentRollData gathers every lease with its ledger summary.
func (s *ReportService) GetRentRollData(ctx context.Context, orgID int64) ([]*RentRollRow, error) {
	leases, err := s.LeaseRepo.List(ctx, orgID)
	if err != nil {
		return nil, err
	}

	rows := make([]*RentRollRow, 0, len(leases))
	for _, lease := range leases {
		summary, err := s.LedgerRepo.Summarize(ctx, orgID, lease.ID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, &RentRollRow{Lease: lease, Summary: summary})
	}
	return rows, nil
}

// centsString formats a cent amount as a dollar figure for display.
func centsString(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// GenerateRentRollPDF renders the rent roll as a landscape PDF.
func (s *ReportService) GenerateRentRollPDF(rows []*RentRollRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(277, 10, "RentFlow - Rent Roll", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(277, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format(timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(55, 7, "Property / Unit", "1", 0, "C", true, 0, "")
	pdf.CellFormat(45, 7, "Tenant", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Status", "1", 0, "C", true, 0, "")
	pdf.CellFormat(32, 7, "Monthly Rent", "1", 0, "C", true, 0, "")
	pdf.CellFormat(32, 7, "Charged", "1", 0, "C", true, 0, "")
	pdf.CellFormat(32, 7, "Paid", "1", 0, "C", true, 0, "")
	pdf.CellFormat(28, 7, "Late Fees", "1", 0, "C", true, 0, "")
	pdf.CellFormat(28, 7, "Balance", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	var totalRent, totalBalance int64
	for _, row := range rows {
		unit := row.Lease.PropertyName
		if row.Lease.UnitName != "" {
			unit += " / " + row.Lease.UnitName
		}
		if len(unit) > 30 {
			unit = unit[:27] + "..."
		}
		tenant := row.Lease.TenantName
		if len(tenant) > 24 {
			tenant = tenant[:21] + "..."
		}

		pdf.CellFormat(55, 6, unit, "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, tenant, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, row.Lease.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(32, 6, centsString(row.Lease.MonthlyRent), "1", 0, "R", false, 0, "")
		pdf.CellFormat(32, 6, centsString(row.Summary.TotalCharged), "1", 0, "R", false, 0, "")
		pdf.CellFormat(32, 6, centsString(row.Summary.TotalPaid), "1", 0, "R", false, 0, "")
		pdf.CellFormat(28, 6, centsString(row.Summary.TotalLateFee), "1", 0, "R", false, 0, "")
		pdf.CellFormat(28, 6, centsString(row.Summary.OpenBalance), "1", 1, "R", false, 0, "")

		totalRent += row.Lease.MonthlyRent
		totalBalance += row.Summary.OpenBalance
	}

	pdf.Ln(3)
	pdf.SetFont("Arial", "B", 11)
	if totalBalance > 0 {
		pdf.SetFillColor(255, 200, 200)
	} else {
		pdf.SetFillColor(200, 255, 200)
	}
	pdf.CellFormat(277, 9, fmt.Sprintf("%d leases  |  Monthly rent %s  |  Open balance %s",
		len(rows), centsString(totalRent), centsString(totalBalance)), "1", 1, "C", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateLeaseStatementPDF renders one lease's ledger as a portrait PDF.
func (s *ReportService) GenerateLeaseStatementPDF(ctx context.Context, orgID, leaseID int64) ([]byte, error) {
	lease, err := s.LeaseRepo.Get(ctx, orgID, leaseID)
	if err != nil {
		return nil, err
	}
	entries, err := s.LedgerRepo.List(ctx, orgID, models.LedgerFilter{LeaseID: leaseID})
	if err != nil {
		return nil, err
	}
	summary, err := s.LedgerRepo.Summarize(ctx, orgID, leaseID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "RentFlow - Lease Statement", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format(timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Lease", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Tenant: %s", lease.TenantName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Property: %s %s", lease.PropertyName, lease.UnitName), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Monthly rent: %s", centsString(lease.MonthlyRent)), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Start: %s", timeutil.FromMillis(lease.StartDate).Format(timeutil.DateLayout)), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(28, 7, "Due", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Type", "1", 0, "C", true, 0, "")
	pdf.CellFormat(32, 7, "Amount", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Status", "1", 0, "C", true, 0, "")
	pdf.CellFormat(28, 7, "Paid", "1", 0, "C", true, 0, "")
	pdf.CellFormat(32, 7, "Late Fee", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, e := range entries {
		paid := "-"
		if e.PaidDate != nil {
			paid = timeutil.FromMillis(*e.PaidDate).Format(timeutil.DateLayout)
		}
		pdf.CellFormat(28, 6, timeutil.FromMillis(e.DueDate).Format(timeutil.DateLayout), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, e.TransactionType, "1", 0, "C", false, 0, "")
		pdf.CellFormat(32, 6, centsString(e.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, e.Status, "1", 0, "C", false, 0, "")
		pdf.CellFormat(28, 6, paid, "1", 0, "C", false, 0, "")
		pdf.CellFormat(32, 6, centsString(e.LateFeeAmount), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(5)
	if summary.OpenBalance > 0 {
		pdf.SetFillColor(255, 200, 200)
	} else {
		pdf.SetFillColor(200, 255, 200)
	}
	pdf.SetFont("Arial", "B", 14)
	balanceText := fmt.Sprintf("Balance Due: %s", centsString(summary.OpenBalance))
	if summary.OpenBalance <= 0 {
		balanceText = "FULLY PAID"
	}
	pdf.CellFormat(190, 10, balanceText, "1", 1, "C", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportLedgerCSV writes a lease's ledger (or the whole org when leaseID
// is 0) as CSV with amounts in cents, suitable for spreadsheet import.
func (s *ReportService) ExportLedgerCSV(ctx context.Context, orgID, leaseID int64) ([]byte, error) {
	entries, err := s.LedgerRepo.List(ctx, orgID, models.LedgerFilter{LeaseID: leaseID})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "lease_id", "type", "amount_cents", "due_date", "paid_date", "status", "late_fee_cents", "notes"}); err != nil {
		return nil, err
	}
	for _, e := range entries {
		paid := ""
		if e.PaidDate != nil {
			paid = timeutil.FromMillis(*e.PaidDate).Format(timeutil.DateLayout)
		}
		record := []string{
			strconv.FormatInt(e.ID, 10),
			strconv.FormatInt(e.LeaseID, 10),
			e.TransactionType,
			strconv.FormatInt(e.Amount, 10),
			timeutil.FromMillis(e.DueDate).Format(timeutil.DateLayout),
			paid,
			e.Status,
			strconv.FormatInt(e.LateFeeAmount, 10),
			e.Notes,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
