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

type MaintenanceRequestRepository struct {
	DB *pgxpool.Pool
}

func NewMaintenanceRequestRepository(db *pgxpool.Pool) *MaintenanceRequestRepository {
	return &MaintenanceRequestRepository{DB: db}
}

const maintenanceColumns = `id, org_id, lease_id, vendor_id, title, COALESCE(description, ''),
	       priority, status, cost, created_at, updated_at`

func scanMaintenanceRequest(row pgx.Row) (*models.MaintenanceRequest, error) {
	m := &models.MaintenanceRequest{}
	err := row.Scan(
		&m.ID,
		&m.OrgID,
		&m.LeaseID,
		&m.VendorID,
		&m.Title,
		&m.Description,
		&m.Priority,
		&m.Status,
		&m.Cost,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func (r *MaintenanceRequestRepository) Create(ctx context.Context, req *models.MaintenanceRequest) error {
	query := `
		INSERT INTO maintenance_requests (org_id, lease_id, vendor_id, title, description, priority, status, cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id
	`
	now := timeutil.ToMillis(timeutil.Now())
	req.CreatedAt = now
	req.UpdatedAt = now

	return withRetry(ctx, "create maintenance request", func() error {
		return r.DB.QueryRow(ctx, query,
			req.OrgID,
			req.LeaseID,
			req.VendorID,
			req.Title,
			req.Description,
			req.Priority,
			req.Status,
			req.Cost,
			now,
		).Scan(&req.ID)
	})
}

func (r *MaintenanceRequestRepository) Get(ctx context.Context, orgID, id int64) (*models.MaintenanceRequest, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_requests WHERE org_id = $1 AND id = $2`

	var req *models.MaintenanceRequest
	err := withRetry(ctx, "get maintenance request", func() error {
		var scanErr error
		req, scanErr = scanMaintenanceRequest(r.DB.QueryRow(ctx, query, orgID, id))
		return scanErr
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &NotFoundError{Resource: "maintenance request", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *MaintenanceRequestRepository) List(ctx context.Context, orgID int64, leaseID int64, status string) ([]*models.MaintenanceRequest, error) {
	query := `SELECT ` + maintenanceColumns + ` FROM maintenance_requests WHERE org_id = $1`
	args := []interface{}{orgID}

	if leaseID > 0 {
		args = append(args, leaseID)
		query += fmt.Sprintf(" AND lease_id = $%d", len(args))
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	var requests []*models.MaintenanceRequest
	err := withRetry(ctx, "list maintenance requests", func() error {
		rows, err := r.DB.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		requests = requests[:0]
		for rows.Next() {
			req, err := scanMaintenanceRequest(rows)
			if err != nil {
				return err
			}
			requests = append(requests, req)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *MaintenanceRequestRepository) Update(ctx context.Context, req *models.MaintenanceRequest) error {
	query := `
		UPDATE maintenance_requests
		SET vendor_id = $1, priority = $2, status = $3, cost = $4, updated_at = $5
		WHERE org_id = $6 AND id = $7
	`
	req.UpdatedAt = timeutil.ToMillis(timeutil.Now())

	var affected int64
	err := withRetry(ctx, "update maintenance request", func() error {
		ct, err := r.DB.Exec(ctx, query,
			req.VendorID,
			req.Priority,
			req.Status,
			req.Cost,
			req.UpdatedAt,
			req.OrgID,
			req.ID,
		)
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
		return &NotFoundError{Resource: "maintenance request", ID: req.ID}
	}
	return nil
}
