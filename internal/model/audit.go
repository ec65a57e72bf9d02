package model

import "time"

// ConfigAudit is one append-only audit row written alongside every mutation.
// OldValue/NewValue hold JSON snapshots of the changed entity.
type ConfigAudit struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Entity    string    `json:"entity" gorm:"size:32;index"`
	EntityKey string    `json:"entity_key" gorm:"size:192;index"`
	OldValue  string    `json:"old_value" gorm:"type:text"`
	NewValue  string    `json:"new_value" gorm:"type:text"`
	Operator  string    `json:"operator" gorm:"size:64"`
	TraceID   string    `json:"trace_id" gorm:"size:36;index"`
	IP        string    `json:"ip" gorm:"size:45"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// Audited entity names.
const (
	EntityFeature      = "feature"
	EntityThreshold    = "threshold"
	EntityScheduler    = "scheduler"
	EntityModelVersion = "model_version"
	EntityCustomerRule = "customer_rule"
)
