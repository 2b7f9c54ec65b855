package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rentflow-backend/internal/models"
	"rentflow-backend/internal/timeutil"
)

type SystemSettingRepository struct {
	DB *pgxpool.Pool
}

func NewSystemSettingRepository(db *pgxpool.Pool) *SystemSettingRepository {
	return &SystemSettingRepository{DB: db}
}

const settingColumns = `id, org_id, setting_key, setting_value, COALESCE(description, ''), updated_at, updated_by_user_id`

func scanSetting(row pgx.Row) (*models.SystemSetting, error) {
	s := &models.SystemSetting{}
	err := row.Scan(
		&s.ID,
		&s.OrgID,
		&s.SettingKey,
		&s.SettingValue,
		&s.Description,
		&s.UpdatedAt,
		&s.UpdatedByUserID,
	)
	return s, err
}

// Get returns the setting, or nil when the org has not overridden the key
// (callers fall back to built-in defaults).
func (r *SystemSettingRepository) Get(ctx context.Context, orgID int64, key string) (*models.SystemSetting, error) {
	query := `SELECT ` + settingColumns + ` FROM system_settings WHERE org_id = $1 AND setting_key = $2`

	var setting *models.SystemSetting
	err := withRetry(ctx, "get setting", func() error {
		var scanErr error
		setting, scanErr = scanSetting(r.DB.QueryRow(ctx, query, orgID, key))
		return scanErr
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return setting, nil
}

func (r *SystemSettingRepository) List(ctx context.Context, orgID int64) ([]*models.SystemSetting, error) {
	query := `SELECT ` + settingColumns + ` FROM system_settings WHERE org_id = $1 ORDER BY setting_key`

	var settings []*models.SystemSetting
	err := withRetry(ctx, "list settings", func() error {
		rows, err := r.DB.Query(ctx, query, orgID)
		if err != nil {
			return err
		}
		defer rows.Close()

		settings = settings[:0]
		for rows.Next() {
			s, err := scanSetting(rows)
			if err != nil {
				return err
			}
			settings = append(settings, s)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *SystemSettingRepository) Upsert(ctx context.Context, orgID int64, key, value string, updatedBy int64) error {
	query := `
		INSERT INTO system_settings (org_id, setting_key, setting_value, updated_at, updated_by_user_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (org_id, setting_key)
		DO UPDATE SET setting_value = $3, updated_at = $4, updated_by_user_id = $5
	`
	return withRetry(ctx, "upsert setting", func() error {
		_, err := r.DB.Exec(ctx, query, orgID, key, value, timeutil.ToMillis(timeutil.Now()), updatedBy)
		return err
	})
}
