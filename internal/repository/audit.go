package repository

import (
	"context"

	"fraudconfig/internal/model"

	"gorm.io/gorm"
)

// AuditInterface defines the interface for audit log persistence.
type AuditInterface interface {
	Create(ctx context.Context, audit *model.ConfigAudit) error
	List(ctx context.Context, entity string, offset, limit int) ([]model.ConfigAudit, int64, error)
	ListByEntityKey(ctx context.Context, entity, entityKey string) ([]model.ConfigAudit, error)
	PingContext(ctx context.Context) error
	WithTx(tx *gorm.DB) AuditInterface
}

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, audit *model.ConfigAudit) error {
	return r.db.WithContext(ctx).Create(audit).Error
}

func (r *AuditRepository) List(ctx context.Context, entity string, offset, limit int) ([]model.ConfigAudit, int64, error) {
	var audits []model.ConfigAudit
	var total int64

	db := r.db.WithContext(ctx).Model(&model.ConfigAudit{})
	if entity != "" {
		db = db.Where("entity = ?", entity)
	}
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).Order("id DESC").Find(&audits).Error; err != nil {
		return nil, 0, err
	}

	return audits, total, nil
}

func (r *AuditRepository) ListByEntityKey(ctx context.Context, entity, entityKey string) ([]model.ConfigAudit, error) {
	var audits []model.ConfigAudit
	err := r.db.WithContext(ctx).
		Where("entity = ? AND entity_key = ?", entity, entityKey).
		Order("created_at DESC").
		Find(&audits).Error
	return audits, err
}

func (r *AuditRepository) PingContext(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *AuditRepository) WithTx(tx *gorm.DB) AuditInterface {
	return &AuditRepository{db: tx}
}
