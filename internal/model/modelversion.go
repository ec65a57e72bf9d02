package model

import "time"

// ModelVersion records one trained fraud model artifact and its evaluation
// metrics. Active marks the version currently served for its ModelName.
type ModelVersion struct {
	ID               uint64     `gorm:"primaryKey" json:"id"`
	ModelName        string     `gorm:"size:128;index" json:"model_name"`
	VersionNumber    string     `gorm:"size:32" json:"version_number"`
	ModelPath        string     `gorm:"size:512" json:"model_path"`
	ScalerPath       string     `gorm:"size:512" json:"scaler_path"`
	ThresholdPath    string     `gorm:"size:512" json:"threshold_path"`
	Active           bool       `json:"active"`
	Accuracy         *float64   `json:"accuracy"`
	Precision        *float64   `json:"precision"`
	Recall           *float64   `json:"recall"`
	F1Score          *float64   `json:"f1_score"`
	TrainingDataSize int64      `json:"training_data_size"`
	ModelSize        int64      `json:"model_size"`
	Notes            string     `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time  `json:"created_at"`
	DeployedAt       *time.Time `json:"deployed_at"`
	RetiredAt        *time.Time `json:"retired_at"`
	CreatedBy        string     `gorm:"size:64" json:"created_by"`
	DeployedBy       string     `gorm:"size:64" json:"deployed_by"`
}

// TrainingRun is one row of the append-only retraining history. This service
// only reads it; the pipeline writes it.
type TrainingRun struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	RunDate      time.Time `gorm:"index" json:"run_date"`
	ModelVersion string    `gorm:"size:32" json:"model_version"`
	Status       string    `gorm:"size:32" json:"status"`
	DataSize     int64     `json:"data_size"`
	Metrics      string    `gorm:"type:text" json:"metrics"`
}
