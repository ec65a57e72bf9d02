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

	"gorm.io/gorm"
)

// ThresholdService manages numeric detection thresholds. The range check is
// advisory on reads and a hard precondition on writes: an out-of-range value
// rejects the whole update and the stored value stays untouched.
type ThresholdService struct {
	runTx         TxRunner
	thresholdRepo repository.ThresholdInterface
	auditRepo     repository.AuditInterface
	outboxRepo    repository.OutboxInterface
	mirrorRepo    *repository.MirrorRepository
	now           func() time.Time
}

func NewThresholdService(db *gorm.DB, thresholdRepo repository.ThresholdInterface, auditRepo repository.AuditInterface, outboxRepo repository.OutboxInterface, mirrorRepo *repository.MirrorRepository) *ThresholdService {
	return &ThresholdService{
		runTx:         NewGormTxRunner(db),
		thresholdRepo: thresholdRepo,
		auditRepo:     auditRepo,
		outboxRepo:    outboxRepo,
		mirrorRepo:    mirrorRepo,
		now:           time.Now,
	}
}

func (s *ThresholdService) List(ctx context.Context, search string) ([]resp.ThresholdItem, error) {
	thresholds, err := s.thresholdRepo.List(ctx, search)
	if err != nil {
		return nil, err
	}
	items := make([]resp.ThresholdItem, 0, len(thresholds))
	for _, t := range thresholds {
		items = append(items, thresholdItem(t))
	}
	return items, nil
}

func (s *ThresholdService) Get(ctx context.Context, id uint64) (*resp.ThresholdItem, error) {
	t, err := s.thresholdRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNotFound
	}
	item := thresholdItem(t)
	return &item, nil
}

// Update sets a new threshold value, optionally moving the bounds and the
// approval status in the same write. The effective bounds for the check are
// the supplied ones where present, the stored ones otherwise.
func (s *ThresholdService) Update(ctx context.Context, id uint64, r req.ThresholdUpdateRequest, operator string) error {
	t, err := s.thresholdRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrNotFound
	}

	min := t.MinValue
	if r.MinValue != nil {
		min = r.MinValue
	}
	max := t.MaxValue
	if r.MaxValue != nil {
		max = r.MaxValue
	}
	value := *r.Value

	if !model.InRange(value, min, max) {
		metrics.RecordValidationReject()
		return validationErrorf("threshold value %v out of range", value)
	}

	var taskID int64
	var key, payload string

	err = s.runTx(ctx, func(tx *gorm.DB) error {
		txThreshold := s.thresholdRepo.WithTx(tx)

		// Re-read inside the transaction so the previous-value chain stays
		// consistent under concurrent updates.
		cur, err := txThreshold.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if cur == nil {
			return ErrNotFound
		}

		old := *cur
		prev := cur.Value
		cur.PreviousValue = &prev
		cur.Value = value
		if r.MinValue != nil {
			cur.MinValue = r.MinValue
		}
		if r.MaxValue != nil {
			cur.MaxValue = r.MaxValue
		}
		if r.ApprovalStatus != nil && *r.ApprovalStatus != "" {
			cur.ApprovalStatus = *r.ApprovalStatus
		}
		cur.Revision++
		cur.UpdatedAt = s.now()
		cur.UpdatedBy = operator
		if err := txThreshold.Save(ctx, cur); err != nil {
			return err
		}

		oldJSON, _ := json.Marshal(old)
		newJSON, _ := json.Marshal(cur)
		if err := s.auditRepo.WithTx(tx).Create(ctx, &model.ConfigAudit{
			Entity:    model.EntityThreshold,
			EntityKey: cur.Name,
			OldValue:  string(oldJSON),
			NewValue:  string(newJSON),
			Operator:  operator,
			TraceID:   GetTraceID(ctx),
		}); err != nil {
			return err
		}

		key, payload = thresholdMirrorPayload(cur)
		taskID, err = enqueueMirror(ctx, s.outboxRepo.WithTx(tx), key, payload)
		return err
	})
	if err != nil {
		return err
	}

	metrics.RecordConfigUpdate(model.EntityThreshold)
	go pushMirror(s.mirrorRepo, s.outboxRepo, taskID, key, payload)
	return nil
}

func thresholdItem(t *model.ThresholdConfig) resp.ThresholdItem {
	return resp.ThresholdItem{
		ID:             t.ID,
		Name:           t.Name,
		ThresholdType:  t.ThresholdType,
		Value:          t.Value,
		MinValue:       t.MinValue,
		MaxValue:       t.MaxValue,
		PreviousValue:  t.PreviousValue,
		Description:    t.Description,
		Active:         t.Active,
		Check:          model.ThresholdCheck(t.Value, t.MinValue, t.MaxValue),
		ApprovalStatus: t.ApprovalStatus,
		EffectiveFrom:  t.EffectiveFrom,
		EffectiveTo:    t.EffectiveTo,
		UpdatedAt:      t.UpdatedAt,
		UpdatedBy:      t.UpdatedBy,
	}
}

func thresholdMirrorPayload(t *model.ThresholdConfig) (string, string) {
	state := v1.ThresholdState{
		Name:   t.Name,
		Type:   t.ThresholdType,
		Value:  t.Value,
		Min:    t.MinValue,
		Max:    t.MaxValue,
		Active: t.Active,
	}
	stateJSON, _ := json.Marshal(state)
	entry := v1.MirrorEntry{
		Kind:    constraints.KindThreshold,
		Key:     t.Name,
		Value:   string(stateJSON),
		Version: t.Revision,
		Action:  constraints.PUT,
	}
	return BuildThresholdMirrorKey(t.Name), entry.ToJSON()
}
