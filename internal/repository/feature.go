package repository

import (
	"context"
	"errors"

	"fraudconfig/internal/model"

	"gorm.io/gorm"
)

// FeatureInterface defines persistence for detection feature flags.
type FeatureInterface interface {
	GetByID(ctx context.Context, id uint64) (*model.FeatureConfig, error)
	GetAll(ctx context.Context) ([]*model.FeatureConfig, error)
	List(ctx context.Context, search string) ([]*model.FeatureConfig, error)
	Save(ctx context.Context, feature *model.FeatureConfig) error
	WithTx(tx *gorm.DB) FeatureInterface
}

type FeatureRepository struct {
	db *gorm.DB
}

func NewFeatureRepository(db *gorm.DB) *FeatureRepository {
	return &FeatureRepository{db: db}
}

// GetByID returns (nil, nil) when no row exists.
func (r *FeatureRepository) GetByID(ctx context.Context, id uint64) (*model.FeatureConfig, error) {
	var feature model.FeatureConfig
	if err := r.db.WithContext(ctx).First(&feature, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &feature, nil
}

func (r *FeatureRepository) GetAll(ctx context.Context) ([]*model.FeatureConfig, error) {
	var features []*model.FeatureConfig
	err := r.db.WithContext(ctx).Find(&features).Error
	return features, err
}

func (r *FeatureRepository) List(ctx context.Context, search string) ([]*model.FeatureConfig, error) {
	var features []*model.FeatureConfig
	query := r.db.WithContext(ctx)

	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	err := query.Order("name ASC").Find(&features).Error
	return features, err
}

func (r *FeatureRepository) Save(ctx context.Context, feature *model.FeatureConfig) error {
	return r.db.WithContext(ctx).Save(feature).Error
}

func (r *FeatureRepository) WithTx(tx *gorm.DB) FeatureInterface {
	return &FeatureRepository{db: tx}
}
