package model

import (
	"time"

	"fraudconfig/pkg/constraints"
)

// ThresholdConfig is a numeric detection parameter with an advisory
// [MinValue, MaxValue] range and an approval workflow field.
type ThresholdConfig struct {
	ID             uint64     `gorm:"primaryKey" json:"id"`
	Name           string     `gorm:"size:128;uniqueIndex" json:"name"`
	ThresholdType  string     `gorm:"size:64" json:"threshold_type"`
	Value          float64    `json:"value"`
	MinValue       *float64   `json:"min_value"`
	MaxValue       *float64   `json:"max_value"`
	PreviousValue  *float64   `json:"previous_value"`
	Description    string     `gorm:"type:text" json:"description"`
	Active         bool       `json:"active"`
	EffectiveFrom  *time.Time `json:"effective_from"`
	EffectiveTo    *time.Time `json:"effective_to"`
	ApprovalStatus string     `gorm:"size:32" json:"approval_status"`
	ApprovedBy     string     `gorm:"size:64" json:"approved_by"`
	Rationale      string     `gorm:"type:text" json:"rationale"`
	Revision       int64      `gorm:"default:0" json:"revision"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	CreatedBy      string     `gorm:"size:64" json:"created_by"`
	UpdatedBy      string     `gorm:"size:64" json:"updated_by"`
}

// ThresholdCheck reports whether value lies inside [min, max]. A missing min
// is treated as 0 and a missing max as unbounded. Read paths use the label
// as an advisory flag only; the write path enforces it.
func ThresholdCheck(value float64, min, max *float64) string {
	if InRange(value, min, max) {
		return constraints.CheckValid
	}
	return constraints.CheckOutOfRange
}

// InRange is the underlying inequality shared by the advisory read-time
// check and the enforced write-time check.
func InRange(value float64, min, max *float64) bool {
	lo := 0.0
	if min != nil {
		lo = *min
	}
	if value < lo {
		return false
	}
	if max != nil && value > *max {
		return false
	}
	return true
}
