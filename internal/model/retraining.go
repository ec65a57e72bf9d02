package model

import "time"

// RetrainingConfig holds the retraining recurrence spec. The latest row is
// authoritative. NextRun is nil unless the scheduler is enabled and the full
// weekly spec is present; when set it is strictly in the future at the time
// it was computed. Weekday ordinals follow time.Weekday (0=Sunday).
type RetrainingConfig struct {
	ID              uint64     `gorm:"primaryKey" json:"id"`
	Interval        string     `gorm:"size:16" json:"interval"`
	Enabled         bool       `json:"enabled"`
	WeeklyJobDay    *int       `json:"weekly_job_day"`
	WeeklyJobHour   *int       `json:"weekly_job_hour"`
	WeeklyJobMinute *int       `json:"weekly_job_minute"`
	MonthlyJobDay   *int       `json:"monthly_job_day"`
	MonthlyJobHour  *int       `json:"monthly_job_hour"`
	MonthlyJobMinute *int      `json:"monthly_job_minute"`
	LastRun         *time.Time `json:"last_run"`
	NextRun         *time.Time `json:"next_run"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	UpdatedBy       string     `gorm:"size:64" json:"updated_by"`
}

// HasWeeklySpec reports whether every weekly recurrence field is present.
func (c *RetrainingConfig) HasWeeklySpec() bool {
	return c.WeeklyJobDay != nil && c.WeeklyJobHour != nil && c.WeeklyJobMinute != nil
}
