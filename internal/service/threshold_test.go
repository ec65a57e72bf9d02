package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fraudconfig/internal/dto/req"
	"fraudconfig/internal/model"
	"fraudconfig/pkg/constraints"
)

func floatPtr(v float64) *float64 { return &v }

func newThresholdFixture() (*ThresholdService, *fakeThresholdRepo, *fakeAuditRepo, *fakeOutboxRepo) {
	thresholdRepo := &fakeThresholdRepo{thresholds: map[uint64]*model.ThresholdConfig{
		1: {
			ID:            1,
			Name:          "velocity_limit_10min",
			ThresholdType: "count",
			Value:         5,
			MinValue:      floatPtr(1),
			MaxValue:      floatPtr(100),
			Active:        true,
		},
	}}
	auditRepo := &fakeAuditRepo{}
	outboxRepo := &fakeOutboxRepo{}
	svc := NewThresholdService(nil, thresholdRepo, auditRepo, outboxRepo, nil)
	svc.runTx = stubTx()
	svc.now = func() time.Time { return time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC) }
	return svc, thresholdRepo, auditRepo, outboxRepo
}

func TestThresholdUpdateRejectsOutOfRange(t *testing.T) {
	svc, thresholdRepo, auditRepo, outboxRepo := newThresholdFixture()

	err := svc.Update(context.Background(), 1, req.ThresholdUpdateRequest{Value: floatPtr(500)}, "alice")
	if err == nil {
		t.Fatal("expected out-of-range value to be rejected")
	}
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(thresholdRepo.saved) != 0 {
		t.Fatalf("rejected update must not persist, got %d saves", len(thresholdRepo.saved))
	}
	if len(auditRepo.created) != 0 || len(outboxRepo.created) != 0 {
		t.Fatal("rejected update must not write audit or outbox rows")
	}
	if got := thresholdRepo.thresholds[1].Value; got != 5 {
		t.Fatalf("stored value changed after rejected write: %v", got)
	}
}

func TestThresholdUpdateAppliesValueAndChainsPrevious(t *testing.T) {
	svc, thresholdRepo, auditRepo, outboxRepo := newThresholdFixture()

	err := svc.Update(context.Background(), 1, req.ThresholdUpdateRequest{Value: floatPtr(10)}, "alice")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	stored := thresholdRepo.thresholds[1]
	if stored.Value != 10 {
		t.Fatalf("Value = %v, want 10", stored.Value)
	}
	if stored.PreviousValue == nil || *stored.PreviousValue != 5 {
		t.Fatalf("PreviousValue = %v, want 5", stored.PreviousValue)
	}
	if stored.Revision != 1 {
		t.Fatalf("Revision = %d, want 1", stored.Revision)
	}
	if stored.UpdatedBy != "alice" {
		t.Fatalf("UpdatedBy = %q, want alice", stored.UpdatedBy)
	}
	if len(auditRepo.created) != 1 {
		t.Fatalf("audit rows = %d, want 1", len(auditRepo.created))
	}
	if auditRepo.created[0].Entity != model.EntityThreshold {
		t.Fatalf("audit entity = %q", auditRepo.created[0].Entity)
	}
	if len(outboxRepo.created) != 1 {
		t.Fatalf("outbox rows = %d, want 1", len(outboxRepo.created))
	}
}

func TestThresholdUpdateWidensBoundsInSameWrite(t *testing.T) {
	svc, thresholdRepo, _, _ := newThresholdFixture()

	// 500 is outside the stored [1,100] but inside the bounds supplied with
	// the same request, so the write goes through.
	err := svc.Update(context.Background(), 1, req.ThresholdUpdateRequest{
		Value:    floatPtr(500),
		MaxValue: floatPtr(1000),
	}, "alice")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	stored := thresholdRepo.thresholds[1]
	if stored.Value != 500 {
		t.Fatalf("Value = %v, want 500", stored.Value)
	}
	if stored.MaxValue == nil || *stored.MaxValue != 1000 {
		t.Fatalf("MaxValue = %v, want 1000", stored.MaxValue)
	}
}

func TestThresholdUpdateUnknownID(t *testing.T) {
	svc, _, _, _ := newThresholdFixture()

	err := svc.Update(context.Background(), 99, req.ThresholdUpdateRequest{Value: floatPtr(10)}, "alice")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestThresholdGetReportsAdvisoryCheck(t *testing.T) {
	svc, thresholdRepo, _, _ := newThresholdFixture()

	// An out-of-range value already in storage is surfaced, not hidden.
	thresholdRepo.thresholds[1].Value = 999

	item, err := svc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if item.Check != constraints.CheckOutOfRange {
		t.Fatalf("Check = %q, want %q", item.Check, constraints.CheckOutOfRange)
	}
	if item.Value != 999 {
		t.Fatalf("Value = %v, want 999 (reads never reject)", item.Value)
	}
}
