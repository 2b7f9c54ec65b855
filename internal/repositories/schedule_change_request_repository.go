package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rentflow-backend/internal/models"
	"rentflow-backend/internal/timeutil"
)

type ScheduleChangeRequestRepository struct {
	DB *pgxpool.Pool
}

func NewScheduleChangeRequestRepository(db *pgxpool.Pool) *ScheduleChangeRequestRepository {
	return &ScheduleChangeRequestRepository{DB: db}
}

const changeRequestColumns = `id, org_id, schedule_id, requested_due_day, requested_start_date,
	       COALESCE(reason, ''), status, reviewed_by_user_id, created_at`

func scanChangeRequest(row pgx.Row) (*models.ScheduleChangeRequest, error) {
	cr := &models.ScheduleChangeRequest{}
	err := row.Scan(
		&cr.ID,
		&cr.OrgID,
		&cr.ScheduleID,
		&cr.RequestedDueDay,
		&cr.RequestedStartDate,
		&cr.Reason,
		&cr.Status,
		&cr.ReviewedByUserID,
		&cr.CreatedAt,
	)
	return cr, err
}

func (r *ScheduleChangeRequestRepository) Create(ctx context.Context, cr *models.ScheduleChangeRequest) error {
	query := `
		INSERT INTO schedule_change_requests (org_id, schedule_id, requested_due_day, requested_start_date, reason, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	cr.CreatedAt = timeutil.ToMillis(timeutil.Now())
	cr.Status = models.ChangeRequestPending

	return withRetry(ctx, "create change request", func() error {
		return r.DB.QueryRow(ctx, query,
			cr.OrgID,
			cr.ScheduleID,
			cr.RequestedDueDay,
			cr.RequestedStartDate,
			cr.Reason,
			cr.Status,
			cr.CreatedAt,
		).Scan(&cr.ID)
	})
}

func (r *ScheduleChangeRequestRepository) Get(ctx context.Context, orgID, id int64) (*models.ScheduleChangeRequest, error) {
	query := `SELECT ` + changeRequestColumns + ` FROM schedule_change_requests WHERE org_id = $1 AND id = $2`

	var cr *models.ScheduleChangeRequest
	err := withRetry(ctx, "get change request", func() error {
		var scanErr error
		cr, scanErr = scanChangeRequest(r.DB.QueryRow(ctx, query, orgID, id))
		return scanErr
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &NotFoundError{Resource: "change request", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return cr, nil
}

func (r *ScheduleChangeRequestRepository) List(ctx context.Context, orgID int64, status string) ([]*models.ScheduleChangeRequest, error) {
	query := `SELECT ` + changeRequestColumns + ` FROM schedule_change_requests WHERE org_id = $1`
	args := []interface{}{orgID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	var requests []*models.ScheduleChangeRequest
	err := withRetry(ctx, "list change requests", func() error {
		rows, err := r.DB.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		requests = requests[:0]
		for rows.Next() {
			cr, err := scanChangeRequest(rows)
			if err != nil {
				return err
			}
			requests = append(requests, cr)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// Review records the manager's decision. The schedule itself is untouched:
// change requests are advisory, the manager acts on the schedule separately.
func (r *ScheduleChangeRequestRepository) Review(ctx context.Context, orgID, id int64, status string, reviewerID int64) error {
	query := `
		UPDATE schedule_change_requests
		SET status = $1, reviewed_by_user_id = $2
		WHERE org_id = $3 AND id = $4 AND status = $5
	`

	var affected int64
	err := withRetry(ctx, "review change request", func() error {
		ct, err := r.DB.Exec(ctx, query, status, reviewerID, orgID, id, models.ChangeRequestPending)
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
		return &NotFoundError{Resource: "pending change request", ID: id}
	}
	return nil
}
