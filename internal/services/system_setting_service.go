package services

import (
	"context"
	"strconv"

	"rentflow-backend/internal/billing"
	"rentflow-backend/internal/models"
	"rentflow-backend/internal/repositories"
)

// Built-in defaults used when an org has not overridden a setting.
const (
	defaultGraceDays    = 5
	defaultDaysInMonth  = 30
	defaultDunningDays  = 3
)

type SystemSettingService struct {
	Repo *repositories.SystemSettingRepository
}

func NewSystemSettingService(repo *repositories.SystemSettingRepository) *SystemSettingService {
	return &SystemSettingService{Repo: repo}
}

func (s *SystemSettingService) ListSettings(ctx context.Context, orgID int64) ([]*models.SystemSetting, error) {
	return s.Repo.List(ctx, orgID)
}

func (s *SystemSettingService) UpdateSetting(ctx context.Context, orgID int64, key, value string, updatedBy int64) error {
	switch key {
	case models.SettingDefaultGraceDays, models.SettingDefaultDaysInMonth, models.SettingDunningReminderDays:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return billing.Invalid(key, "must be a non-negative integer")
		}
		if key == models.SettingDefaultDaysInMonth && n < 1 {
			return billing.Invalid(key, "must be at least 1")
		}
	default:
		return billing.Invalid("setting_key", "unknown setting key")
	}
	return s.Repo.Upsert(ctx, orgID, key, value, updatedBy)
}

func (s *SystemSettingService) intSetting(ctx context.Context, orgID int64, key string, fallback int) int {
	setting, err := s.Repo.Get(ctx, orgID, key)
	if err != nil || setting == nil {
		return fallback
	}
	n, err := strconv.Atoi(setting.SettingValue)
	if err != nil {
		return fallback
	}
	return n
}

// DefaultGraceDays is used when building an org-wide rule from scratch.
func (s *SystemSettingService) DefaultGraceDays(ctx context.Context, orgID int64) int {
	return s.intSetting(ctx, orgID, models.SettingDefaultGraceDays, defaultGraceDays)
}

// DefaultDaysInMonth is the day-count denominator when no proration rule
// configures one.
func (s *SystemSettingService) DefaultDaysInMonth(ctx context.Context, orgID int64) int {
	return s.intSetting(ctx, orgID, models.SettingDefaultDaysInMonth, defaultDaysInMonth)
}

// DunningReminderDays is how many days before the due date a reminder entry
// is surfaced to the dashboard.
func (s *SystemSettingService) DunningReminderDays(ctx context.Context, orgID int64) int {
	return s.intSetting(ctx, orgID, models.SettingDunningReminderDays, defaultDunningDays)
}
