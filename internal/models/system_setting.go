package models

// Well-known setting keys. Dunning cadence and billing defaults are plain
// org-scoped settings; handlers validate values, the billing engine only
// sees resolved numbers.
const (
	SettingDefaultGraceDays    = "default_grace_period_days"
	SettingDefaultDaysInMonth  = "default_days_in_month"
	SettingDunningReminderDays = "dunning_reminder_days"
)

type SystemSetting struct {
	ID              int64  `json:"id"`
	OrgID           int64  `json:"org_id"`
	SettingKey      string `json:"setting_key"`
	SettingValue    string `json:"setting_value"`
	Description     string `json:"description"`
	UpdatedAt       int64  `json:"updated_at"`
	UpdatedByUserID int64  `json:"updated_by_user_id"`
}

// UpdateSettingRequest is the request body for updating a setting
type UpdateSettingRequest struct {
	Value string `json:"value"`
}
