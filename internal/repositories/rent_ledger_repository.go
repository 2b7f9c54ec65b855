package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rentflow-backend/internal/models"
	"rentflow-backend/internal/timeutil"
)

type RentLedgerRepository struct {
	DB *pgxpool.Pool
}

func NewRentLedgerRepository(db *pgxpool.Pool) *RentLedgerRepository {
	return &RentLedgerRepository{DB: db}
}

const ledgerColumns = `id, org_id, lease_id, invoice_id, schedule_id, transaction_type, amount,
	       due_date, paid_date, status, late_fee_amount, COALESCE(notes, ''), created_at, updated_at`

func scanLedgerEntry(row pgx.Row) (*models.RentLedgerEntry, error) {
	e := &models.RentLedgerEntry{}
	err := row.Scan(
		&e.ID,
		&e.OrgID,
		&e.LeaseID,
		&e.InvoiceID,
		&e.ScheduleID,
		&e.TransactionType,
		&e.Amount,
		&e.DueDate,
		&e.PaidDate,
		&e.Status,
		&e.LateFeeAmount,
		&e.Notes,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

func (r *RentLedgerRepository) Create(ctx context.Context, entry *models.RentLedgerEntry) error {
	query := `
		INSERT INTO rent_ledger (org_id, lease_id, invoice_id, schedule_id, transaction_type, amount, due_date, paid_date, status, late_fee_amount, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
		RETURNING id
	`
	now := timeutil.ToMillis(timeutil.Now())
	entry.CreatedAt = now
	entry.UpdatedAt = now

	return withRetry(ctx, "create ledger entry", func() error {
		return r.DB.QueryRow(ctx, query,
			entry.OrgID,
			entry.LeaseID,
			entry.InvoiceID,
			entry.ScheduleID,
			entry.TransactionType,
			entry.Amount,
			entry.DueDate,
			entry.PaidDate,
			entry.Status,
			entry.LateFeeAmount,
			entry.Notes,
			now,
		).Scan(&entry.ID)
	})
}

func (r *RentLedgerRepository) Get(ctx context.Context, orgID, id int64) (*models.RentLedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM rent_ledger WHERE org_id = $1 AND id = $2`

	var entry *models.RentLedgerEntry
	err := withRetry(ctx, "get ledger entry", func() error {
		var scanErr error
		entry, scanErr = scanLedgerEntry(r.DB.QueryRow(ctx, query, orgID, id))
		return scanErr
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &NotFoundError{Resource: "ledger entry", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *RentLedgerRepository) List(ctx context.Context, orgID int64, filter models.LedgerFilter) ([]*models.RentLedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM rent_ledger WHERE org_id = $1`
	args := []interface{}{orgID}

	if filter.LeaseID > 0 {
		args = append(args, filter.LeaseID)
		query += fmt.Sprintf(" AND lease_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY due_date DESC, id DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	return r.queryMany(ctx, "list ledger entries", query, args...)
}

// ListUnpaidDueBefore returns pending/overdue entries with a due date at or
// before the cutoff and no frozen fee yet. The billing cycle sweeps these.
func (r *RentLedgerRepository) ListUnpaidDueBefore(ctx context.Context, orgID, cutoffMs int64) ([]*models.RentLedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM rent_ledger
		WHERE org_id = $1
		  AND paid_date IS NULL
		  AND late_fee_amount = 0
		  AND status IN ($2, $3)
		  AND due_date <= $4
		ORDER BY due_date, id
	`
	return r.queryMany(ctx, "list unpaid ledger entries", query,
		orgID, models.LedgerStatusPending, models.LedgerStatusOverdue, cutoffMs)
}

// ExistsForScheduleAndDueDate reports whether a schedule already produced an
// entry for a due date, keeping billing cycle runs idempotent.
func (r *RentLedgerRepository) ExistsForScheduleAndDueDate(ctx context.Context, orgID, scheduleID, dueDateMs int64) (bool, error) {
	query := `SELECT COUNT(*) FROM rent_ledger WHERE org_id = $1 AND schedule_id = $2 AND due_date = $3`

	var count int
	err := withRetry(ctx, "check ledger entry exists", func() error {
		return r.DB.QueryRow(ctx, query, orgID, scheduleID, dueDateMs).Scan(&count)
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// RecordPayment sets the paid date, final status, and the frozen late fee
// in one statement. The fee is never touched again afterwards.
func (r *RentLedgerRepository) RecordPayment(ctx context.Context, orgID, id, paidDateMs int64, status string, lateFee int64, notes string) error {
	query := `
		UPDATE rent_ledger
		SET paid_date = $1, status = $2, late_fee_amount = $3,
		    notes = CASE WHEN $4 <> '' THEN $4 ELSE notes END,
		    updated_at = $5
		WHERE org_id = $6 AND id = $7 AND paid_date IS NULL
	`

	var affected int64
	err := withRetry(ctx, "record payment", func() error {
		ct, err := r.DB.Exec(ctx, query, paidDateMs, status, lateFee, notes, timeutil.ToMillis(timeutil.Now()), orgID, id)
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
		return &NotFoundError{Resource: "unpaid ledger entry", ID: id}
	}
	return nil
}

// FreezeLateFee writes the assessed fee and overdue status onto an unpaid
// entry. The late_fee_amount = 0 guard makes assessment write-once.
func (r *RentLedgerRepository) FreezeLateFee(ctx context.Context, orgID, id, fee int64, status string) error {
	query := `
		UPDATE rent_ledger
		SET late_fee_amount = $1, status = $2, updated_at = $3
		WHERE org_id = $4 AND id = $5 AND paid_date IS NULL AND late_fee_amount = 0
	`

	var affected int64
	err := withRetry(ctx, "freeze late fee", func() error {
		ct, err := r.DB.Exec(ctx, query, fee, status, timeutil.ToMillis(timeutil.Now()), orgID, id)
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
		return &NotFoundError{Resource: "assessable ledger entry", ID: id}
	}
	return nil
}

// MarkOverdue flips a pending entry to overdue without touching the fee.
// Used when the grace period has not yet elapsed or no rule applies, so the
// entry stays eligible for a later fee assessment.
func (r *RentLedgerRepository) MarkOverdue(ctx context.Context, orgID, id int64) error {
	query := `
		UPDATE rent_ledger
		SET status = $1, updated_at = $2
		WHERE org_id = $3 AND id = $4 AND paid_date IS NULL AND status = $5
	`
	return withRetry(ctx, "mark ledger entry overdue", func() error {
		_, err := r.DB.Exec(ctx, query,
			models.LedgerStatusOverdue, timeutil.ToMillis(timeutil.Now()), orgID, id, models.LedgerStatusPending)
		return err
	})
}

// Summarize aggregates a lease's ledger for dashboard display.
func (r *RentLedgerRepository) Summarize(ctx context.Context, orgID, leaseID int64) (*models.LedgerSummary, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0),
		       COALESCE(SUM(CASE WHEN paid_date IS NOT NULL THEN amount ELSE 0 END), 0),
		       COALESCE(SUM(late_fee_amount), 0),
		       COUNT(*)
		FROM rent_ledger
		WHERE org_id = $1 AND lease_id = $2
	`

	summary := &models.LedgerSummary{LeaseID: leaseID}
	err := withRetry(ctx, "summarize ledger", func() error {
		return r.DB.QueryRow(ctx, query, orgID, leaseID).Scan(
			&summary.TotalCharged,
			&summary.TotalPaid,
			&summary.TotalLateFee,
			&summary.EntryCount,
		)
	})
	if err != nil {
		return nil, err
	}
	summary.OpenBalance = summary.TotalCharged + summary.TotalLateFee - summary.TotalPaid
	return summary, nil
}

func (r *RentLedgerRepository) queryMany(ctx context.Context, op, query string, args ...interface{}) ([]*models.RentLedgerEntry, error) {
	var entries []*models.RentLedgerEntry
	err := withRetry(ctx, op, func() error {
		rows, err := r.DB.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		entries = entries[:0]
		for rows.Next() {
			e, err := scanLedgerEntry(rows)
			if err != nil {
				return err
			}
			entries = append(entries, e)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}
