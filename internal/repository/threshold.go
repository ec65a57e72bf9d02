package repository

import (
	"context"
	"errors"

	"fraudconfig/internal/model"

	"gorm.io/gorm"
)

// ThresholdInterface defines persistence for numeric threshold parameters.
type ThresholdInterface interface {
	GetByID(ctx context.Context, id uint64) (*model.ThresholdConfig, error)
	GetAll(ctx context.Context) ([]*model.ThresholdConfig, error)
	List(ctx context.Context, search string) ([]*model.ThresholdConfig, error)
	Save(ctx context.Context, threshold *model.ThresholdConfig) error
	WithTx(tx *gorm.DB) ThresholdInterface
}

type ThresholdRepository struct {
	db *gorm.DB
}

func NewThresholdRepository(db *gorm.DB) *ThresholdRepository {
	return &ThresholdRepository{db: db}
}

// GetByID returns (nil, nil) when no row exists.
func (r *ThresholdRepository) GetByID(ctx context.Context, id uint64) (*model.ThresholdConfig, error) {
	var threshold model.ThresholdConfig
	if err := r.db.WithContext(ctx).First(&threshold, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &threshold, nil
}

func (r *ThresholdRepository) GetAll(ctx context.Context) ([]*model.ThresholdConfig, error) {
	var thresholds []*model.ThresholdConfig
	err := r.db.WithContext(ctx).Find(&thresholds).Error
	return thresholds, err
}

func (r *ThresholdRepository) List(ctx context.Context, search string) ([]*model.ThresholdConfig, error) {
	var thresholds []*model.ThresholdConfig
	query := r.db.WithContext(ctx)

	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	err := query.Order("name ASC").Find(&thresholds).Error
	return thresholds, err
}

func (r *ThresholdRepository) Save(ctx context.Context, threshold *model.ThresholdConfig) error {
	return r.db.WithContext(ctx).Save(threshold).Error
}

func (r *ThresholdRepository) WithTx(tx *gorm.DB) ThresholdInterface {
	return &ThresholdRepository{db: tx}
}
