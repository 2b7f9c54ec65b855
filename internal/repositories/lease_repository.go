package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rentflow-backend/internal/models"
	"rentflow-backend/internal/timeutil"
)

type LeaseRepository struct {
	DB *pgxpool.Pool
}

func NewLeaseRepository(db *pgxpool.Pool) *LeaseRepository {
	return &LeaseRepository{DB: db}
}

const leaseColumns = `id, org_id, property_name, unit_name, tenant_name, tenant_email,
	       monthly_rent, start_date, end_date, status, created_at, updated_at`

func scanLease(row pgx.Row) (*models.Lease, error) {
	lease := &models.Lease{}
	err := row.Scan(
		&lease.ID,
		&lease.OrgID,
		&lease.PropertyName,
		&lease.UnitName,
		&lease.TenantName,
		&lease.TenantEmail,
		&lease.MonthlyRent,
		&lease.StartDate,
		&lease.EndDate,
		&lease.Status,
		&lease.CreatedAt,
		&lease.UpdatedAt,
	)
	return lease, err
}

func (r *LeaseRepository) Create(ctx context.Context, lease *models.Lease) error {
	query := `
		INSERT INTO leases (org_id, property_name, unit_name, tenant_name, tenant_email, monthly_rent, start_date, end_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING id
	`
	now := timeutil.ToMillis(timeutil.Now())
	lease.CreatedAt = now
	lease.UpdatedAt = now

	return withRetry(ctx, "create lease", func() error {
		return r.DB.QueryRow(ctx, query,
			lease.OrgID,
			lease.PropertyName,
			lease.UnitName,
			lease.TenantName,
			lease.TenantEmail,
			lease.MonthlyRent,
			lease.StartDate,
			lease.EndDate,
			lease.Status,
			now,
		).Scan(&lease.ID)
	})
}

func (r *LeaseRepository) Get(ctx context.Context, orgID, id int64) (*models.Lease, error) {
	query := `SELECT ` + leaseColumns + ` FROM leases WHERE org_id = $1 AND id = $2`

	var lease *models.Lease
	err := withRetry(ctx, "get lease", func() error {
		var scanErr error
		lease, scanErr = scanLease(r.DB.QueryRow(ctx, query, orgID, id))
		return scanErr
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &NotFoundError{Resource: "lease", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return lease, nil
}

func (r *LeaseRepository) List(ctx context.Context, orgID int64) ([]*models.Lease, error) {
	query := `SELECT ` + leaseColumns + ` FROM leases WHERE org_id = $1 ORDER BY created_at DESC`

	var leases []*models.Lease
	err := withRetry(ctx, "list leases", func() error {
		rows, err := r.DB.Query(ctx, query, orgID)
		if err != nil {
			return err
		}
		defer rows.Close()

		leases = leases[:0]
		for rows.Next() {
			lease, err := scanLease(rows)
			if err != nil {
				return err
			}
			leases = append(leases, lease)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return leases, nil
}

func (r *LeaseRepository) Update(ctx context.Context, lease *models.Lease) error {
	query := `
		UPDATE leases
		SET property_name = $1, unit_name = $2, tenant_name = $3, tenant_email = $4,
		    monthly_rent = $5, end_date = $6, status = $7, updated_at = $8
		WHERE org_id = $9 AND id = $10
	`
	lease.UpdatedAt = timeutil.ToMillis(timeutil.Now())

	var tag int64
	err := withRetry(ctx, "update lease", func() error {
		ct, err := r.DB.Exec(ctx, query,
			lease.PropertyName,
			lease.UnitName,
			lease.TenantName,
			lease.TenantEmail,
			lease.MonthlyRent,
			lease.EndDate,
			lease.Status,
			lease.UpdatedAt,
			lease.OrgID,
			lease.ID,
		)
		if err != nil {
			return err
		}
		tag = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return err
	}
	if tag == 0 {
		return &NotFoundError{Resource: "lease", ID: lease.ID}
	}
	return nil
}

// ListActiveWithin returns active leases overlapping [start, end) epoch-ms,
// used by the billing cycle to find leases to bill.
func (r *LeaseRepository) ListActiveWithin(ctx context.Context, orgID, startMs, endMs int64) ([]*models.Lease, error) {
	query := `
		SELECT ` + leaseColumns + `
		FROM leases
		WHERE org_id = $1 AND status = $2
		  AND start_date < $3
		  AND (end_date IS NULL OR end_date >= $4)
		ORDER BY id
	`

	var leases []*models.Lease
	err := withRetry(ctx, "list active leases", func() error {
		rows, err := r.DB.Query(ctx, query, orgID, models.LeaseStatusActive, endMs, startMs)
		if err != nil {
			return err
		}
		defer rows.Close()

		leases = leases[:0]
		for rows.Next() {
			lease, err := scanLease(rows)
			if err != nil {
				return err
			}
			leases = append(leases, lease)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return leases, nil
}

// ListOrgIDs returns all org ids that own at least one lease. The billing
// cycle iterates orgs explicitly instead of assuming a single tenant.
func (r *LeaseRepository) ListOrgIDs(ctx context.Context) ([]int64, error) {
	query := `SELECT DISTINCT org_id FROM leases ORDER BY org_id`

	var ids []int64
	err := withRetry(ctx, "list org ids", func() error {
		rows, err := r.DB.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		ids = ids[:0]
		for rows.Next() {
			var id int64
			if err := rows.Scan(&id); err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}
