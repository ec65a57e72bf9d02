package repository

import (
	"context"
	"errors"

	"fraudconfig/internal/model"

	"gorm.io/gorm"
)

// RetrainingInterface defines persistence for the scheduler singleton.
// The latest row by ID is the authoritative configuration.
type RetrainingInterface interface {
	Latest(ctx context.Context) (*model.RetrainingConfig, error)
	GetByID(ctx context.Context, id uint64) (*model.RetrainingConfig, error)
	Save(ctx context.Context, config *model.RetrainingConfig) error
	WithTx(tx *gorm.DB) RetrainingInterface
}

type RetrainingRepository struct {
	db *gorm.DB
}

func NewRetrainingRepository(db *gorm.DB) *RetrainingRepository {
	return &RetrainingRepository{db: db}
}

func (r *RetrainingRepository) Latest(ctx context.Context) (*model.RetrainingConfig, error) {
	var config model.RetrainingConfig
	if err := r.db.WithContext(ctx).Order("id DESC").First(&config).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &config, nil
}

func (r *RetrainingRepository) GetByID(ctx context.Context, id uint64) (*model.RetrainingConfig, error) {
	var config model.RetrainingConfig
	if err := r.db.WithContext(ctx).First(&config, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &config, nil
}

func (r *RetrainingRepository) Save(ctx context.Context, config *model.RetrainingConfig) error {
	return r.db.WithContext(ctx).Save(config).Error
}

func (r *RetrainingRepository) WithTx(tx *gorm.DB) RetrainingInterface {
	return &RetrainingRepository{db: tx}
}
