package repository

import (
	"context"

	"fraudconfig/internal/model"

	"gorm.io/gorm"
)

// TrainingRunInterface reads the append-only retraining history. The
// pipeline owns the writes; this service never inserts rows.
type TrainingRunInterface interface {
	ListRecent(ctx context.Context, limit int) ([]*model.TrainingRun, error)
}

type TrainingRunRepository struct {
	db *gorm.DB
}

func NewTrainingRunRepository(db *gorm.DB) *TrainingRunRepository {
	return &TrainingRunRepository{db: db}
}

func (r *TrainingRunRepository) ListRecent(ctx context.Context, limit int) ([]*model.TrainingRun, error) {
	var runs []*model.TrainingRun
	err := r.db.WithContext(ctx).Order("run_date DESC").Limit(limit).Find(&runs).Error
	return runs, err
}
