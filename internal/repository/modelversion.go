package repository

import (
	"context"
	"errors"

	"fraudconfig/internal/model"

	"gorm.io/gorm"
)

// ModelVersionInterface defines persistence for model version metadata.
type ModelVersionInterface interface {
	GetByID(ctx context.Context, id uint64) (*model.ModelVersion, error)
	List(ctx context.Context) ([]*model.ModelVersion, error)
	Save(ctx context.Context, version *model.ModelVersion) error
	DeactivateSiblings(ctx context.Context, modelName string, keepID uint64) error
	WithTx(tx *gorm.DB) ModelVersionInterface
}

type ModelVersionRepository struct {
	db *gorm.DB
}

func NewModelVersionRepository(db *gorm.DB) *ModelVersionRepository {
	return &ModelVersionRepository{db: db}
}

// GetByID returns (nil, nil) when no row exists.
func (r *ModelVersionRepository) GetByID(ctx context.Context, id uint64) (*model.ModelVersion, error) {
	var version model.ModelVersion
	if err := r.db.WithContext(ctx).First(&version, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &version, nil
}

func (r *ModelVersionRepository) List(ctx context.Context) ([]*model.ModelVersion, error) {
	var versions []*model.ModelVersion
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&versions).Error
	return versions, err
}

func (r *ModelVersionRepository) Save(ctx context.Context, version *model.ModelVersion) error {
	return r.db.WithContext(ctx).Save(version).Error
}

// DeactivateSiblings clears the active flag on every other version of the
// same model name, so at most one version per model is active after an
// activation commits.
func (r *ModelVersionRepository) DeactivateSiblings(ctx context.Context, modelName string, keepID uint64) error {
	return r.db.WithContext(ctx).
		Model(&model.ModelVersion{}).
		Where("model_name = ? AND id <> ? AND active = ?", modelName, keepID, true).
		Updates(map[string]any{"active": false}).Error
}

func (r *ModelVersionRepository) WithTx(tx *gorm.DB) ModelVersionInterface {
	return &ModelVersionRepository{db: tx}
}
