package req

import "time"

// FeatureUpdateRequest carries a partial feature update. Nil fields leave
// the stored value untouched.
type FeatureUpdateRequest struct {
	FeatureType *string `json:"feature_type"`
	Version     *string `json:"version"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

// ThresholdUpdateRequest carries a threshold update. Value is mandatory;
// the other fields are partial.
type ThresholdUpdateRequest struct {
	Value          *float64 `json:"value" binding:"required"`
	MinValue       *float64 `json:"min_value"`
	MaxValue       *float64 `json:"max_value"`
	ApprovalStatus *string  `json:"approval_status"`
}

// SchedulerUpdateRequest replaces the retraining recurrence spec.
type SchedulerUpdateRequest struct {
	ID               uint64 `json:"id" binding:"required"`
	Interval         string `json:"interval" binding:"required"`
	Enabled          bool   `json:"enabled"`
	WeeklyJobDay     *int   `json:"weekly_job_day"`
	WeeklyJobHour    *int   `json:"weekly_job_hour"`
	WeeklyJobMinute  *int   `json:"weekly_job_minute"`
	MonthlyJobDay    *int   `json:"monthly_job_day"`
	MonthlyJobHour   *int   `json:"monthly_job_hour"`
	MonthlyJobMinute *int   `json:"monthly_job_minute"`
}

// MarkRunRequest records a completed retraining run. RunAt defaults to the
// current time when omitted.
type MarkRunRequest struct {
	RunAt *time.Time `json:"run_at"`
}

// SaveRuleSetRequest replaces the full override set for one tuple. Checks
// absent from Parameters are saved as disabled, matching the wholesale
// replace semantics.
type SaveRuleSetRequest struct {
	CustomerID   string          `json:"customer_id" binding:"required"`
	AccountNo    string          `json:"account_no" binding:"required"`
	TransferType string          `json:"transfer_type" binding:"required"`
	Parameters   map[string]bool `json:"parameters"`
}

// RuleSetKeyRequest addresses one override tuple.
type RuleSetKeyRequest struct {
	CustomerID   string `form:"customer_id" binding:"required"`
	AccountNo    string `form:"account_no" binding:"required"`
	TransferType string `form:"transfer_type" binding:"required"`
}
