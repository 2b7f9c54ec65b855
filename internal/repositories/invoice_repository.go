package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rentflow-backend/internal/models"
	"rentflow-backend/internal/timeutil"
)

type InvoiceRepository struct {
	DB *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

// invoiceNumber formats ORG-YYYYMM-SEQ, e.g. INV-3-202601-0042.
func invoiceNumber(orgID, seq int64, at time.Time) string {
	return fmt.Sprintf("INV-%d-%s-%04d", orgID, at.Format("200601"), seq)
}

const invoiceColumns = `id, org_id, invoice_number, lease_id, total_amount, status,
	       issued_date, COALESCE(notes, ''), created_at, updated_at`

func scanInvoice(row pgx.Row) (*models.Invoice, error) {
	inv := &models.Invoice{}
	err := row.Scan(
		&inv.ID,
		&inv.OrgID,
		&inv.InvoiceNumber,
		&inv.LeaseID,
		&inv.TotalAmount,
		&inv.Status,
		&inv.IssuedDate,
		&inv.Notes,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	return inv, err
}

// CreateWithItems stores the invoice and its lines in one transaction and
// assigns a sequential per-org invoice number.
func (r *InvoiceRepository) CreateWithItems(ctx context.Context, invoice *models.Invoice, items []models.InvoiceItem) error {
	now := timeutil.ToMillis(timeutil.Now())
	invoice.CreatedAt = now
	invoice.UpdatedAt = now

	return withRetry(ctx, "create invoice", func() error {
		tx, err := r.DB.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		var seq int64
		if err := tx.QueryRow(ctx,
			`SELECT COUNT(*) + 1 FROM invoices WHERE org_id = $1`, invoice.OrgID,
		).Scan(&seq); err != nil {
			return err
		}
		invoice.InvoiceNumber = invoiceNumber(invoice.OrgID, seq, timeutil.FromMillis(now))

		if err := tx.QueryRow(ctx, `
			INSERT INTO invoices (org_id, invoice_number, lease_id, total_amount, status, issued_date, notes, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
			RETURNING id
		`,
			invoice.OrgID,
			invoice.InvoiceNumber,
			invoice.LeaseID,
			invoice.TotalAmount,
			invoice.Status,
			invoice.IssuedDate,
			invoice.Notes,
			now,
		).Scan(&invoice.ID); err != nil {
			return err
		}

		for i := range items {
			items[i].InvoiceID = invoice.ID
			if err := tx.QueryRow(ctx, `
				INSERT INTO invoice_items (invoice_id, description, amount)
				VALUES ($1, $2, $3)
				RETURNING id
			`, invoice.ID, items[i].Description, items[i].Amount).Scan(&items[i].ID); err != nil {
				return err
			}
		}
		return tx.Commit(ctx)
	})
}

func (r *InvoiceRepository) Get(ctx context.Context, orgID, id int64) (*models.InvoiceWithItems, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE org_id = $1 AND id = $2`

	var invoice *models.Invoice
	err := withRetry(ctx, "get invoice", func() error {
		var scanErr error
		invoice, scanErr = scanInvoice(r.DB.QueryRow(ctx, query, orgID, id))
		return scanErr
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &NotFoundError{Resource: "invoice", ID: id}
	}
	if err != nil {
		return nil, err
	}

	items, err := r.listItems(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}
	return &models.InvoiceWithItems{Invoice: *invoice, Items: items}, nil
}

func (r *InvoiceRepository) List(ctx context.Context, orgID int64, leaseID int64, status string) ([]*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE org_id = $1`
	args := []interface{}{orgID}
	if leaseID > 0 {
		args = append(args, leaseID)
		query += ` AND lease_id = $2`
	}
	if status != "" {
		args = append(args, status)
		if leaseID > 0 {
			query += ` AND status = $3`
		} else {
			query += ` AND status = $2`
		}
	}
	query += ` ORDER BY issued_date DESC, id DESC`

	var invoices []*models.Invoice
	err := withRetry(ctx, "list invoices", func() error {
		rows, err := r.DB.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		invoices = invoices[:0]
		for rows.Next() {
			inv, err := scanInvoice(rows)
			if err != nil {
				return err
			}
			invoices = append(invoices, inv)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// UpdateStatus moves an invoice along draft -> issued -> paid, or to void.
// Transition legality is checked in the service layer.
func (r *InvoiceRepository) UpdateStatus(ctx context.Context, orgID, id int64, status string) error {
	query := `UPDATE invoices SET status = $1, updated_at = $2 WHERE org_id = $3 AND id = $4`

	var affected int64
	err := withRetry(ctx, "update invoice status", func() error {
		ct, err := r.DB.Exec(ctx, query, status, timeutil.ToMillis(timeutil.Now()), orgID, id)
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
		return &NotFoundError{Resource: "invoice", ID: id}
	}
	return nil
}

func (r *InvoiceRepository) listItems(ctx context.Context, invoiceID int64) ([]models.InvoiceItem, error) {
	query := `SELECT id, invoice_id, description, amount FROM invoice_items WHERE invoice_id = $1 ORDER BY id`

	var items []models.InvoiceItem
	err := withRetry(ctx, "list invoice items", func() error {
		rows, err := r.DB.Query(ctx, query, invoiceID)
		if err != nil {
			return err
		}
		defer rows.Close()

		items = items[:0]
		for rows.Next() {
			var item models.InvoiceItem
			if err := rows.Scan(&item.ID, &item.InvoiceID, &item.Description, &item.Amount); err != nil {
				return err
			}
			items = append(items, item)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
