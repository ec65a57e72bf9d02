package model

import (
	"time"

	"fraudconfig/pkg/constraints"
)

// FeatureConfig is a named detection feature switch. Enabled says whether the
// check runs; Active is the lifecycle bit distinguishing "available but off"
// from "retired".
type FeatureConfig struct {
	ID              uint64    `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"size:128;uniqueIndex" json:"name"`
	Description     string    `gorm:"type:text" json:"description"`
	Enabled         bool      `json:"enabled"`
	Active          bool      `json:"active"`
	FeatureType     string    `gorm:"size:64" json:"feature_type"`
	Version         string    `gorm:"size:32" json:"version"`
	RollbackVersion string    `gorm:"size:32" json:"rollback_version"`
	Revision        int64     `gorm:"default:0" json:"revision"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	CreatedBy       string    `gorm:"size:64" json:"created_by"`
	UpdatedBy       string    `gorm:"size:64" json:"updated_by"`
}

// FeatureStatus derives the display status from the active/enabled pair.
// Exactly one label applies to every combination.
func FeatureStatus(active, enabled bool) string {
	switch {
	case active && enabled:
		return constraints.StatusActive
	case active:
		return constraints.StatusDisabled
	default:
		return constraints.StatusInactive
	}
}
