package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rentflow-backend/internal/models"
	"rentflow-backend/internal/timeutil"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, org_id, name, email, password_hash, role, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID,
		&u.OrgID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (org_id, name, email, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id
	`
	now := timeutil.ToMillis(timeutil.Now())
	user.CreatedAt = now
	user.UpdatedAt = now

	return withRetry(ctx, "create user", func() error {
		return r.DB.QueryRow(ctx, query,
			user.OrgID,
			user.Name,
			user.Email,
			user.PasswordHash,
			user.Role,
			user.IsActive,
			now,
		).Scan(&user.ID)
	})
}

func (r *UserRepository) GetByID(ctx context.Context, orgID, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE org_id = $1 AND id = $2`

	var user *models.User
	err := withRetry(ctx, "get user", func() error {
		var scanErr error
		user, scanErr = scanUser(r.DB.QueryRow(ctx, query, orgID, id))
		return scanErr
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &NotFoundError{Resource: "user", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetByEmail looks a user up across orgs for login. Email is unique globally.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user *models.User
	err := withRetry(ctx, "get user by email", func() error {
		var scanErr error
		user, scanErr = scanUser(r.DB.QueryRow(ctx, query, email))
		return scanErr
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) List(ctx context.Context, orgID int64) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE org_id = $1 ORDER BY name, id`

	var users []*models.User
	err := withRetry(ctx, "list users", func() error {
		rows, err := r.DB.Query(ctx, query, orgID)
		if err != nil {
			return err
		}
		defer rows.Close()

		users = users[:0]
		for rows.Next() {
			u, err := scanUser(rows)
			if err != nil {
				return err
			}
			users = append(users, u)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, orgID, id int64, role string) error {
	query := `UPDATE users SET role = $1, updated_at = $2 WHERE org_id = $3 AND id = $4`

	var affected int64
	err := withRetry(ctx, "update user role", func() error {
		ct, err := r.DB.Exec(ctx, query, role, timeutil.ToMillis(timeutil.Now()), orgID, id)
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
		return &NotFoundError{Resource: "user", ID: id}
	}
	return nil
}

func (r *UserRepository) SetActive(ctx context.Context, orgID, id int64, active bool) error {
	query := `UPDATE users SET is_active = $1, updated_at = $2 WHERE org_id = $3 AND id = $4`

	var affected int64
	err := withRetry(ctx, "set user active", func() error {
		ct, err := r.DB.Exec(ctx, query, active, timeutil.ToMillis(timeutil.Now()), orgID, id)
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
		return &NotFoundError{Resource: "user", ID: id}
	}
	return nil
}
