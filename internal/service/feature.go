package service

import (
	"context"
	"encoding/json"
	"time"

	"fraudconfig/internal/dto/req"
	"fraudconfig/internal/dto/resp"
	"fraudconfig/internal/metrics"
	"fraudconfig/internal/model"
	"fraudconfig/internal/repository"
	v1 "fraudconfig/pkg/api/v1"
	"fraudconfig/pkg/constraints"
	"fraudconfig/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FeatureService manages detection feature flags. Every mutation runs as one
// transaction carrying the row update, the audit entry, and the outbox task
// for the etcd mirror.
type FeatureService struct {
	runTx       TxRunner
	featureRepo repository.FeatureInterface
	auditRepo   repository.AuditInterface
	outboxRepo  repository.OutboxInterface
	mirrorRepo  *repository.MirrorRepository
	now         func() time.Time
}

func NewFeatureService(db *gorm.DB, featureRepo repository.FeatureInterface, auditRepo repository.AuditInterface, outboxRepo repository.OutboxInterface, mirrorRepo *repository.MirrorRepository) *FeatureService {
	return &FeatureService{
		runTx:       NewGormTxRunner(db),
		featureRepo: featureRepo,
		auditRepo:   auditRepo,
		outboxRepo:  outboxRepo,
		mirrorRepo:  mirrorRepo,
		now:         time.Now,
	}
}

func (s *FeatureService) List(ctx context.Context, search string) ([]resp.FeatureItem, error) {
	features, err := s.featureRepo.List(ctx, search)
	if err != nil {
		return nil, err
	}
	items := make([]resp.FeatureItem, 0, len(features))
	for _, f := range features {
		items = append(items, featureItem(f))
	}
	return items, nil
}

func (s *FeatureService) Get(ctx context.Context, id uint64) (*resp.FeatureItem, error) {
	f, err := s.featureRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrNotFound
	}
	item := featureItem(f)
	return &item, nil
}

// Toggle flips the enabled bit and reports the new state.
func (s *FeatureService) Toggle(ctx context.Context, id uint64, operator string) (bool, error) {
	var enabled bool
	var taskID int64
	var key, payload string

	err := s.runTx(ctx, func(tx *gorm.DB) error {
		txFeature := s.featureRepo.WithTx(tx)

		f, err := txFeature.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if f == nil {
			return ErrNotFound
		}

		old := *f
		f.Enabled = !f.Enabled
		f.Revision++
		f.UpdatedAt = s.now()
		f.UpdatedBy = operator
		if err := txFeature.Save(ctx, f); err != nil {
			return err
		}
		enabled = f.Enabled

		if err := s.audit(ctx, tx, &old, f, operator); err != nil {
			return err
		}

		key, payload = featureMirrorPayload(f)
		taskID, err = enqueueMirror(ctx, s.outboxRepo.WithTx(tx), key, payload)
		return err
	})
	if err != nil {
		return false, err
	}

	metrics.RecordConfigUpdate(model.EntityFeature)
	go pushMirror(s.mirrorRepo, s.outboxRepo, taskID, key, payload)
	return enabled, nil
}

// Update applies a partial update: nil request fields keep stored values.
func (s *FeatureService) Update(ctx context.Context, id uint64, r req.FeatureUpdateRequest, operator string) error {
	var taskID int64
	var key, payload string

	err := s.runTx(ctx, func(tx *gorm.DB) error {
		txFeature := s.featureRepo.WithTx(tx)

		f, err := txFeature.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if f == nil {
			return ErrNotFound
		}

		old := *f
		if r.FeatureType != nil {
			f.FeatureType = *r.FeatureType
		}
		if r.Version != nil {
			f.RollbackVersion = f.Version
			f.Version = *r.Version
		}
		if r.Description != nil {
			f.Description = *r.Description
		}
		if r.Active != nil {
			f.Active = *r.Active
		}
		f.Revision++
		f.UpdatedAt = s.now()
		f.UpdatedBy = operator
		if err := txFeature.Save(ctx, f); err != nil {
			return err
		}

		if err := s.audit(ctx, tx, &old, f, operator); err != nil {
			return err
		}

		key, payload = featureMirrorPayload(f)
		taskID, err = enqueueMirror(ctx, s.outboxRepo.WithTx(tx), key, payload)
		return err
	})
	if err != nil {
		return err
	}

	metrics.RecordConfigUpdate(model.EntityFeature)
	go pushMirror(s.mirrorRepo, s.outboxRepo, taskID, key, payload)
	return nil
}

func (s *FeatureService) Audits(ctx context.Context, id uint64) ([]resp.AuditLogItem, error) {
	f, err := s.featureRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrNotFound
	}
	audits, err := s.auditRepo.ListByEntityKey(ctx, model.EntityFeature, f.Name)
	if err != nil {
		return nil, err
	}
	return auditItems(audits), nil
}

func (s *FeatureService) Health(ctx context.Context) error {
	if err := s.auditRepo.PingContext(ctx); err != nil {
		logger.Warn("mysql health check failed", zap.Error(err))
		return err
	}
	if s.mirrorRepo != nil {
		if err := s.mirrorRepo.Health(ctx); err != nil {
			logger.Warn("etcd health check failed", zap.Error(err))
			return err
		}
	}
	return nil
}

func (s *FeatureService) audit(ctx context.Context, tx *gorm.DB, before, after *model.FeatureConfig, operator string) error {
	oldJSON, _ := json.Marshal(before)
	newJSON, _ := json.Marshal(after)
	return s.auditRepo.WithTx(tx).Create(ctx, &model.ConfigAudit{
		Entity:    model.EntityFeature,
		EntityKey: after.Name,
		OldValue:  string(oldJSON),
		NewValue:  string(newJSON),
		Operator:  operator,
		TraceID:   GetTraceID(ctx),
	})
}

func featureItem(f *model.FeatureConfig) resp.FeatureItem {
	return resp.FeatureItem{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Enabled:     f.Enabled,
		Active:      f.Active,
		Status:      model.FeatureStatus(f.Active, f.Enabled),
		FeatureType: f.FeatureType,
		Version:     f.Version,
		UpdatedAt:   f.UpdatedAt,
		UpdatedBy:   f.UpdatedBy,
	}
}

func featureMirrorPayload(f *model.FeatureConfig) (string, string) {
	state := v1.FeatureState{
		Name:    f.Name,
		Enabled: f.Enabled,
		Active:  f.Active,
		Status:  model.FeatureStatus(f.Active, f.Enabled),
		Type:    f.FeatureType,
		Version: f.Version,
	}
	stateJSON, _ := json.Marshal(state)
	entry := v1.MirrorEntry{
		Kind:    constraints.KindFeature,
		Key:     f.Name,
		Value:   string(stateJSON),
		Version: f.Revision,
		Action:  constraints.PUT,
	}
	return BuildFeatureMirrorKey(f.Name), entry.ToJSON()
}

func auditItems(audits []model.ConfigAudit) []resp.AuditLogItem {
	items := make([]resp.AuditLogItem, 0, len(audits))
	for _, a := range audits {
		items = append(items, resp.AuditLogItem{
			ID:        a.ID,
			Entity:    a.Entity,
			EntityKey: a.EntityKey,
			OldValue:  a.OldValue,
			NewValue:  a.NewValue,
			Operator:  a.Operator,
			TraceID:   a.TraceID,
			CreatedAt: a.CreatedAt,
		})
	}
	return items
}
