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

func intPtr(v int) *int { return &v }

func newSchedulerFixture(now time.Time) (*SchedulerService, *fakeRetrainingRepo, *fakeAuditRepo) {
	retrainingRepo := &fakeRetrainingRepo{config: &model.RetrainingConfig{
		ID:       1,
		Interval: constraints.IntervalWeekly,
	}}
	auditRepo := &fakeAuditRepo{}
	svc := NewSchedulerService(nil, retrainingRepo, auditRepo)
	svc.runTx = stubTx()
	svc.now = func() time.Time { return now }
	return svc, retrainingRepo, auditRepo
}

func TestSchedulerUpdateComputesNextRun(t *testing.T) {
	// 2026-09-02 is a Wednesday.
	now := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	svc, retrainingRepo, auditRepo := newSchedulerFixture(now)

	item, err := svc.Update(context.Background(), req.SchedulerUpdateRequest{
		ID:              1,
		Interval:        constraints.IntervalWeekly,
		Enabled:         true,
		WeeklyJobDay:    intPtr(int(time.Friday)),
		WeeklyJobHour:   intPtr(3),
		WeeklyJobMinute: intPtr(30),
	}, "alice")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	want := time.Date(2026, 9, 4, 3, 30, 0, 0, time.UTC)
	if item.NextRun == nil || !item.NextRun.Equal(want) {
		t.Fatalf("NextRun = %v, want %v", item.NextRun, want)
	}
	if item.WeeklyJobDayName != "Friday" {
		t.Fatalf("WeeklyJobDayName = %q, want Friday", item.WeeklyJobDayName)
	}
	if item.WeeklyJobTime != "03:30" {
		t.Fatalf("WeeklyJobTime = %q, want 03:30", item.WeeklyJobTime)
	}
	if retrainingRepo.config.NextRun == nil || !retrainingRepo.config.NextRun.Equal(want) {
		t.Fatalf("stored NextRun = %v, want %v", retrainingRepo.config.NextRun, want)
	}
	if len(auditRepo.created) != 1 {
		t.Fatalf("audit rows = %d, want 1", len(auditRepo.created))
	}
}

func TestSchedulerUpdateClearsNextRunWhenDisabled(t *testing.T) {
	now := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	svc, retrainingRepo, _ := newSchedulerFixture(now)
	prev := now.Add(24 * time.Hour)
	retrainingRepo.config.NextRun = &prev

	item, err := svc.Update(context.Background(), req.SchedulerUpdateRequest{
		ID:              1,
		Interval:        constraints.IntervalWeekly,
		Enabled:         false,
		WeeklyJobDay:    intPtr(int(time.Friday)),
		WeeklyJobHour:   intPtr(3),
		WeeklyJobMinute: intPtr(30),
	}, "alice")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if item.NextRun != nil {
		t.Fatalf("NextRun = %v, want nil for a disabled scheduler", item.NextRun)
	}
}

func TestSchedulerUpdateClearsNextRunWithoutWeeklySpec(t *testing.T) {
	now := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	svc, _, _ := newSchedulerFixture(now)

	item, err := svc.Update(context.Background(), req.SchedulerUpdateRequest{
		ID:            1,
		Interval:      constraints.IntervalWeekly,
		Enabled:       true,
		WeeklyJobDay:  intPtr(int(time.Friday)),
		WeeklyJobHour: intPtr(3),
		// minute missing: the weekly spec is incomplete
	}, "alice")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if item.NextRun != nil {
		t.Fatalf("NextRun = %v, want nil with a partial weekly spec", item.NextRun)
	}
}

func TestSchedulerUpdateRejectsBadSpec(t *testing.T) {
	now := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	svc, retrainingRepo, _ := newSchedulerFixture(now)

	_, err := svc.Update(context.Background(), req.SchedulerUpdateRequest{
		ID:              1,
		Interval:        constraints.IntervalWeekly,
		Enabled:         true,
		WeeklyJobDay:    intPtr(9),
		WeeklyJobHour:   intPtr(3),
		WeeklyJobMinute: intPtr(30),
	}, "alice")
	if !IsValidation(err) {
		t.Fatalf("err = %v, want validation error for weekday 9", err)
	}
	if len(retrainingRepo.saved) != 0 {
		t.Fatal("rejected spec must not be saved")
	}

	_, err = svc.Update(context.Background(), req.SchedulerUpdateRequest{
		ID:       1,
		Interval: "daily",
	}, "alice")
	if !IsValidation(err) {
		t.Fatalf("err = %v, want validation error for unknown interval", err)
	}
}

func TestSchedulerMarkRunRollsForward(t *testing.T) {
	now := time.Date(2026, 9, 4, 3, 31, 0, 0, time.UTC)
	svc, retrainingRepo, _ := newSchedulerFixture(now)
	retrainingRepo.config.Enabled = true
	retrainingRepo.config.WeeklyJobDay = intPtr(int(time.Friday))
	retrainingRepo.config.WeeklyJobHour = intPtr(3)
	retrainingRepo.config.WeeklyJobMinute = intPtr(30)

	runAt := time.Date(2026, 9, 4, 3, 30, 0, 0, time.UTC)
	item, err := svc.MarkRun(context.Background(), runAt, "pipeline")
	if err != nil {
		t.Fatalf("MarkRun: %v", err)
	}
	if item.LastRun == nil || !item.LastRun.Equal(runAt) {
		t.Fatalf("LastRun = %v, want %v", item.LastRun, runAt)
	}
	want := time.Date(2026, 9, 11, 3, 30, 0, 0, time.UTC)
	if item.NextRun == nil || !item.NextRun.Equal(want) {
		t.Fatalf("NextRun = %v, want %v", item.NextRun, want)
	}
}

func TestSchedulerGetWithoutConfig(t *testing.T) {
	now := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	svc, retrainingRepo, _ := newSchedulerFixture(now)
	retrainingRepo.config = nil

	_, err := svc.Get(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
