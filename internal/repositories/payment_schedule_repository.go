package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rentflow-backend/internal/models"
	"rentflow-backend/internal/timeutil"
)

type PaymentScheduleRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentScheduleRepository(db *pgxpool.Pool) *PaymentScheduleRepository {
	return &PaymentScheduleRepository{DB: db}
}

const scheduleColumns = `id, org_id, lease_id, rent_amount, due_day, start_date, end_date, is_active, created_at`

func scanSchedule(row pgx.Row) (*models.PaymentSchedule, error) {
	s := &models.PaymentSchedule{}
	err := row.Scan(
		&s.ID,
		&s.OrgID,
		&s.LeaseID,
		&s.RentAmount,
		&s.DueDay,
		&s.StartDate,
		&s.EndDate,
		&s.IsActive,
		&s.CreatedAt,
	)
	return s, err
}

func (r *PaymentScheduleRepository) Create(ctx context.Context, schedule *models.PaymentSchedule) error {
	query := `
		INSERT INTO payment_schedules (org_id, lease_id, rent_amount, due_day, start_date, end_date, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	schedule.CreatedAt = timeutil.ToMillis(timeutil.Now())

	return withRetry(ctx, "create payment schedule", func() error {
		return r.DB.QueryRow(ctx, query,
			schedule.OrgID,
			schedule.LeaseID,
			schedule.RentAmount,
			schedule.DueDay,
			schedule.StartDate,
			schedule.EndDate,
			schedule.IsActive,
			schedule.CreatedAt,
		).Scan(&schedule.ID)
	})
}

// CreateBatch stores a weekly plan's installment schedules in one
// transaction so a partial plan never survives a failure.
func (r *PaymentScheduleRepository) CreateBatch(ctx context.Context, schedules []*models.PaymentSchedule) error {
	query := `
		INSERT INTO payment_schedules (org_id, lease_id, rent_amount, due_day, start_date, end_date, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	now := timeutil.ToMillis(timeutil.Now())

	return withRetry(ctx, "create schedule batch", func() error {
		tx, err := r.DB.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		for _, s := range schedules {
			s.CreatedAt = now
			if err := tx.QueryRow(ctx, query,
				s.OrgID, s.LeaseID, s.RentAmount, s.DueDay, s.StartDate, s.EndDate, s.IsActive, s.CreatedAt,
			).Scan(&s.ID); err != nil {
				return err
			}
		}
		return tx.Commit(ctx)
	})
}

func (r *PaymentScheduleRepository) Get(ctx context.Context, orgID, id int64) (*models.PaymentSchedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM payment_schedules WHERE org_id = $1 AND id = $2`

	var schedule *models.PaymentSchedule
	err := withRetry(ctx, "get payment schedule", func() error {
		var scanErr error
		schedule, scanErr = scanSchedule(r.DB.QueryRow(ctx, query, orgID, id))
		return scanErr
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &NotFoundError{Resource: "payment schedule", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return schedule, nil
}

func (r *PaymentScheduleRepository) ListByLease(ctx context.Context, orgID, leaseID int64) ([]*models.PaymentSchedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM payment_schedules
		WHERE org_id = $1 AND lease_id = $2
		ORDER BY start_date, id
	`
	return r.queryMany(ctx, "list schedules by lease", query, orgID, leaseID)
}

// ListActive returns all active schedules for an org whose date range
// covers the given epoch-ms instant. Overlapping active schedules per lease
// are expected: a main schedule plus an installment plan both bill.
func (r *PaymentScheduleRepository) ListActive(ctx context.Context, orgID, atMs int64) ([]*models.PaymentSchedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM payment_schedules
		WHERE org_id = $1 AND is_active = TRUE
		  AND start_date <= $2
		  AND (end_date IS NULL OR end_date > $2)
		ORDER BY lease_id, id
	`
	return r.queryMany(ctx, "list active schedules", query, orgID, atMs)
}

// Deactivate marks a schedule superseded. Schedules are never deleted.
func (r *PaymentScheduleRepository) Deactivate(ctx context.Context, orgID, id int64) error {
	query := `UPDATE payment_schedules SET is_active = FALSE WHERE org_id = $1 AND id = $2`

	var affected int64
	err := withRetry(ctx, "deactivate payment schedule", func() error {
		ct, err := r.DB.Exec(ctx, query, orgID, id)
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
		return &NotFoundError{Resource: "payment schedule", ID: id}
	}
	return nil
}

func (r *PaymentScheduleRepository) queryMany(ctx context.Context, op, query string, args ...interface{}) ([]*models.PaymentSchedule, error) {
	var schedules []*models.PaymentSchedule
	err := withRetry(ctx, op, func() error {
		rows, err := r.DB.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		schedules = schedules[:0]
		for rows.Next() {
			s, err := scanSchedule(rows)
			if err != nil {
				return err
			}
			schedules = append(schedules, s)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return schedules, nil
}
