package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rentflow-backend/internal/models"
	"rentflow-backend/internal/timeutil"
)

type VendorRepository struct {
	DB *pgxpool.Pool
}

func NewVendorRepository(db *pgxpool.Pool) *VendorRepository {
	return &VendorRepository{DB: db}
}

const vendorColumns = `id, org_id, name, trade, COALESCE(phone, ''), COALESCE(email, ''), is_active, created_at`

func scanVendor(row pgx.Row) (*models.Vendor, error) {
	v := &models.Vendor{}
	err := row.Scan(
		&v.ID,
		&v.OrgID,
		&v.Name,
		&v.Trade,
		&v.Phone,
		&v.Email,
		&v.IsActive,
		&v.CreatedAt,
	)
	return v, err
}

func (r *VendorRepository) Create(ctx context.Context, vendor *models.Vendor) error {
	query := `
		INSERT INTO vendors (org_id, name, trade, phone, email, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	vendor.CreatedAt = timeutil.ToMillis(timeutil.Now())
	vendor.IsActive = true

	return withRetry(ctx, "create vendor", func() error {
		return r.DB.QueryRow(ctx, query,
			vendor.OrgID,
			vendor.Name,
			vendor.Trade,
			vendor.Phone,
			vendor.Email,
			vendor.IsActive,
			vendor.CreatedAt,
		).Scan(&vendor.ID)
	})
}

func (r *VendorRepository) Get(ctx context.Context, orgID, id int64) (*models.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE org_id = $1 AND id = $2`

	var vendor *models.Vendor
	err := withRetry(ctx, "get vendor", func() error {
		var scanErr error
		vendor, scanErr = scanVendor(r.DB.QueryRow(ctx, query, orgID, id))
		return scanErr
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &NotFoundError{Resource: "vendor", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return vendor, nil
}

func (r *VendorRepository) List(ctx context.Context, orgID int64, activeOnly bool) ([]*models.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE org_id = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY name, id`

	var vendors []*models.Vendor
	err := withRetry(ctx, "list vendors", func() error {
		rows, err := r.DB.Query(ctx, query, orgID)
		if err != nil {
			return err
		}
		defer rows.Close()

		vendors = vendors[:0]
		for rows.Next() {
			v, err := scanVendor(rows)
			if err != nil {
				return err
			}
			vendors = append(vendors, v)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return vendors, nil
}

func (r *VendorRepository) SetActive(ctx context.Context, orgID, id int64, active bool) error {
	query := `UPDATE vendors SET is_active = $1 WHERE org_id = $2 AND id = $3`

	var affected int64
	err := withRetry(ctx, "set vendor active", func() error {
		ct, err := r.DB.Exec(ctx, query, active, orgID, id)
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
		return &NotFoundError{Resource: "vendor", ID: id}
	}
	return nil
}
