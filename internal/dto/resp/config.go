package resp

import "time"

type FeatureItem struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Enabled     bool      `json:"enabled"`
	Active      bool      `json:"active"`
	Status      string    `json:"status"`
	FeatureType string    `json:"feature_type"`
	Version     string    `json:"version"`
	UpdatedAt   time.Time `json:"updated_at"`
	UpdatedBy   string    `json:"updated_by"`
}

type ToggleFeatureResponse struct {
	Success bool `json:"success"`
	Enabled bool `json:"enabled"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type ThresholdItem struct {
	ID             uint64     `json:"id"`
	Name           string     `json:"name"`
	ThresholdType  string     `json:"threshold_type"`
	Value          float64    `json:"value"`
	MinValue       *float64   `json:"min_value"`
	MaxValue       *float64   `json:"max_value"`
	PreviousValue  *float64   `json:"previous_value"`
	Description    string     `json:"description"`
	Active         bool       `json:"active"`
	Check          string     `json:"check"`
	ApprovalStatus string     `json:"approval_status"`
	EffectiveFrom  *time.Time `json:"effective_from"`
	EffectiveTo    *time.Time `json:"effective_to"`
	UpdatedAt      time.Time  `json:"updated_at"`
	UpdatedBy      string     `json:"updated_by"`
}

type SchedulerItem struct {
	ID               uint64     `json:"id"`
	Interval         string     `json:"interval"`
	Enabled          bool       `json:"enabled"`
	WeeklyJobDay     *int       `json:"weekly_job_day"`
	WeeklyJobHour    *int       `json:"weekly_job_hour"`
	WeeklyJobMinute  *int       `json:"weekly_job_minute"`
	WeeklyJobDayName string     `json:"weekly_job_day_name,omitempty"`
	WeeklyJobTime    string     `json:"weekly_job_time,omitempty"`
	MonthlyJobDay    *int       `json:"monthly_job_day"`
	MonthlyJobHour   *int       `json:"monthly_job_hour"`
	MonthlyJobMinute *int       `json:"monthly_job_minute"`
	LastRun          *time.Time `json:"last_run"`
	NextRun          *time.Time `json:"next_run"`
	UpdatedAt        time.Time  `json:"updated_at"`
	UpdatedBy        string     `json:"updated_by"`
}

type ModelVersionItem struct {
	ID               uint64     `json:"id"`
	ModelName        string     `json:"model_name"`
	VersionNumber    string     `json:"version_number"`
	ModelPath        string     `json:"model_path"`
	Active           bool       `json:"active"`
	Accuracy         *float64   `json:"accuracy"`
	Precision        *float64   `json:"precision"`
	Recall           *float64   `json:"recall"`
	F1Score          *float64   `json:"f1_score"`
	TrainingDataSize int64      `json:"training_data_size"`
	ModelSize        int64      `json:"model_size"`
	Notes            string     `json:"notes"`
	CreatedAt        time.Time  `json:"created_at"`
	DeployedAt       *time.Time `json:"deployed_at"`
	DeployedBy       string     `json:"deployed_by"`
}

type TrainingRunItem struct {
	ID           uint64    `json:"id"`
	RunDate      time.Time `json:"run_date"`
	ModelVersion string    `json:"model_version"`
	Status       string    `json:"status"`
	DataSize     int64     `json:"data_size"`
	Metrics      string    `json:"metrics"`
}

type RuleSetSummaryItem struct {
	CustomerID   string `json:"customer_id"`
	AccountNo    string `json:"account_no"`
	TransferType string `json:"transfer_type"`
	EnabledCount int    `json:"enabled_count"`
}

type RuleSetDetail struct {
	CustomerID   string          `json:"customer_id"`
	AccountNo    string          `json:"account_no"`
	TransferType string          `json:"transfer_type"`
	Parameters   map[string]bool `json:"parameters"`
	IsNew        bool            `json:"is_new"`
}

type AuditLogItem struct {
	ID        int64     `json:"id"`
	Entity    string    `json:"entity"`
	EntityKey string    `json:"entity_key"`
	OldValue  string    `json:"old_value"`
	NewValue  string    `json:"new_value"`
	Operator  string    `json:"operator"`
	TraceID   string    `json:"trace_id"`
	CreatedAt time.Time `json:"created_at"`
}

type AuditLogPage struct {
	Items []AuditLogItem `json:"items"`
	Total int64          `json:"total"`
}
