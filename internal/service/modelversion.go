package service

import (
	"context"
	"encoding/json"
	"time"

	"fraudconfig/internal/dto/resp"
	"fraudconfig/internal/metrics"
	"fraudconfig/internal/model"
	"fraudconfig/internal/repository"
	"fraudconfig/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ModelService exposes model version metadata and the retraining history.
type ModelService struct {
	runTx       TxRunner
	versionRepo repository.ModelVersionInterface
	runRepo     repository.TrainingRunInterface
	auditRepo   repository.AuditInterface
	now         func() time.Time
}

const trainingRunPageSize = 100

func NewModelService(db *gorm.DB, versionRepo repository.ModelVersionInterface, runRepo repository.TrainingRunInterface, auditRepo repository.AuditInterface) *ModelService {
	return &ModelService{
		runTx:       NewGormTxRunner(db),
		versionRepo: versionRepo,
		runRepo:     runRepo,
		auditRepo:   auditRepo,
		now:         time.Now,
	}
}

func (s *ModelService) ListVersions(ctx context.Context) ([]resp.ModelVersionItem, error) {
	versions, err := s.versionRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]resp.ModelVersionItem, 0, len(versions))
	for _, v := range versions {
		items = append(items, modelVersionItem(v))
	}
	return items, nil
}

func (s *ModelService) GetVersion(ctx context.Context, id uint64) (*resp.ModelVersionItem, error) {
	v, err := s.versionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrNotFound
	}
	item := modelVersionItem(v)
	return &item, nil
}

// Activate marks one version as served and clears the flag on its siblings
// within the same transaction, so at most one version per model name stays
// active.
func (s *ModelService) Activate(ctx context.Context, id uint64, operator string) error {
	err := s.runTx(ctx, func(tx *gorm.DB) error {
		txVersion := s.versionRepo.WithTx(tx)

		v, err := txVersion.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if v == nil {
			return ErrNotFound
		}

		old := *v
		now := s.now()
		v.Active = true
		v.DeployedAt = &now
		v.DeployedBy = operator
		if err := txVersion.Save(ctx, v); err != nil {
			return err
		}
		if err := txVersion.DeactivateSiblings(ctx, v.ModelName, v.ID); err != nil {
			return err
		}

		oldJSON, _ := json.Marshal(old)
		newJSON, _ := json.Marshal(v)
		return s.auditRepo.WithTx(tx).Create(ctx, &model.ConfigAudit{
			Entity:    model.EntityModelVersion,
			EntityKey: v.ModelName + "/" + v.VersionNumber,
			OldValue:  string(oldJSON),
			NewValue:  string(newJSON),
			Operator:  operator,
			TraceID:   GetTraceID(ctx),
		})
	})
	if err != nil {
		return err
	}

	metrics.RecordConfigUpdate(model.EntityModelVersion)
	logger.Info("model version activated", zap.Uint64("id", id), zap.String("operator", operator))
	return nil
}

func (s *ModelService) ListTrainingRuns(ctx context.Context) ([]resp.TrainingRunItem, error) {
	runs, err := s.runRepo.ListRecent(ctx, trainingRunPageSize)
	if err != nil {
		return nil, err
	}
	items := make([]resp.TrainingRunItem, 0, len(runs))
	for _, r := range runs {
		items = append(items, resp.TrainingRunItem{
			ID:           r.ID,
			RunDate:      r.RunDate,
			ModelVersion: r.ModelVersion,
			Status:       r.Status,
			DataSize:     r.DataSize,
			Metrics:      r.Metrics,
		})
	}
	return items, nil
}

func modelVersionItem(v *model.ModelVersion) resp.ModelVersionItem {
	return resp.ModelVersionItem{
		ID:               v.ID,
		ModelName:        v.ModelName,
		VersionNumber:    v.VersionNumber,
		ModelPath:        v.ModelPath,
		Active:           v.Active,
		Accuracy:         v.Accuracy,
		Precision:        v.Precision,
		Recall:           v.Recall,
		F1Score:          v.F1Score,
		TrainingDataSize: v.TrainingDataSize,
		ModelSize:        v.ModelSize,
		Notes:            v.Notes,
		CreatedAt:        v.CreatedAt,
		DeployedAt:       v.DeployedAt,
		DeployedBy:       v.DeployedBy,
	}
}
