package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fraudconfig/internal/dto/req"
	"fraudconfig/internal/dto/resp"
	"fraudconfig/internal/metrics"
	"fraudconfig/internal/model"
	"fraudconfig/internal/repository"
	"fraudconfig/internal/schedule"
	"fraudconfig/pkg/constraints"

	"gorm.io/gorm"
)

// SchedulerService manages the retraining recurrence spec and keeps the
// cached next-run timestamp consistent with it. Nothing here fires jobs; the
// pipeline reads NextRun on its own.
type SchedulerService struct {
	runTx          TxRunner
	retrainingRepo repository.RetrainingInterface
	auditRepo      repository.AuditInterface
	now            func() time.Time
}

func NewSchedulerService(db *gorm.DB, retrainingRepo repository.RetrainingInterface, auditRepo repository.AuditInterface) *SchedulerService {
	return &SchedulerService{
		runTx:          NewGormTxRunner(db),
		retrainingRepo: retrainingRepo,
		auditRepo:      auditRepo,
		now:            time.Now,
	}
}

func (s *SchedulerService) Get(ctx context.Context) (*resp.SchedulerItem, error) {
	config, err := s.retrainingRepo.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if config == nil {
		return nil, ErrNotFound
	}
	item := schedulerItem(config)
	return &item, nil
}

// Update replaces the recurrence spec and recomputes NextRun. NextRun is
// cleared unless the scheduler is enabled and the full weekly spec is
// present; when computed it is strictly in the future.
func (s *SchedulerService) Update(ctx context.Context, r req.SchedulerUpdateRequest, operator string) (*resp.SchedulerItem, error) {
	if r.Interval != constraints.IntervalWeekly && r.Interval != constraints.IntervalMonthly {
		return nil, validationErrorf("unknown interval %q", r.Interval)
	}

	var item resp.SchedulerItem
	err := s.runTx(ctx, func(tx *gorm.DB) error {
		txRetraining := s.retrainingRepo.WithTx(tx)

		config, err := txRetraining.GetByID(ctx, r.ID)
		if err != nil {
			return err
		}
		if config == nil {
			return ErrNotFound
		}

		old := *config
		config.Interval = r.Interval
		config.Enabled = r.Enabled
		config.WeeklyJobDay = r.WeeklyJobDay
		config.WeeklyJobHour = r.WeeklyJobHour
		config.WeeklyJobMinute = r.WeeklyJobMinute
		config.MonthlyJobDay = r.MonthlyJobDay
		config.MonthlyJobHour = r.MonthlyJobHour
		config.MonthlyJobMinute = r.MonthlyJobMinute
		config.UpdatedAt = s.now()
		config.UpdatedBy = operator

		next, err := s.computeNextRun(config)
		if err != nil {
			return err
		}
		config.NextRun = next

		if err := txRetraining.Save(ctx, config); err != nil {
			return err
		}

		oldJSON, _ := json.Marshal(old)
		newJSON, _ := json.Marshal(config)
		if err := s.auditRepo.WithTx(tx).Create(ctx, &model.ConfigAudit{
			Entity:    model.EntityScheduler,
			EntityKey: fmt.Sprintf("%d", config.ID),
			OldValue:  string(oldJSON),
			NewValue:  string(newJSON),
			Operator:  operator,
			TraceID:   GetTraceID(ctx),
		}); err != nil {
			return err
		}

		item = schedulerItem(config)
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordConfigUpdate(model.EntityScheduler)
	return &item, nil
}

// MarkRun stamps a completed retraining run and rolls NextRun forward from
// the run time. Called by the pipeline once a run finishes.
func (s *SchedulerService) MarkRun(ctx context.Context, runAt time.Time, operator string) (*resp.SchedulerItem, error) {
	var item resp.SchedulerItem
	err := s.runTx(ctx, func(tx *gorm.DB) error {
		txRetraining := s.retrainingRepo.WithTx(tx)

		config, err := txRetraining.Latest(ctx)
		if err != nil {
			return err
		}
		if config == nil {
			return ErrNotFound
		}

		config.LastRun = &runAt
		config.UpdatedAt = s.now()
		config.UpdatedBy = operator

		next, err := s.computeNextRun(config)
		if err != nil {
			return err
		}
		config.NextRun = next

		if err := txRetraining.Save(ctx, config); err != nil {
			return err
		}
		item = schedulerItem(config)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// computeNextRun returns nil unless the scheduler is enabled, set to weekly,
// and carries the full weekly spec; spec fields out of range reject the write.
func (s *SchedulerService) computeNextRun(config *model.RetrainingConfig) (*time.Time, error) {
	if !config.Enabled || config.Interval != constraints.IntervalWeekly || !config.HasWeeklySpec() {
		return nil, nil
	}
	next, err := schedule.NextWeeklyRun(s.now(), time.Weekday(*config.WeeklyJobDay), *config.WeeklyJobHour, *config.WeeklyJobMinute)
	if err != nil {
		return nil, validationErrorf("invalid weekly spec: %v", err)
	}
	return &next, nil
}

func schedulerItem(config *model.RetrainingConfig) resp.SchedulerItem {
	item := resp.SchedulerItem{
		ID:               config.ID,
		Interval:         config.Interval,
		Enabled:          config.Enabled,
		WeeklyJobDay:     config.WeeklyJobDay,
		WeeklyJobHour:    config.WeeklyJobHour,
		WeeklyJobMinute:  config.WeeklyJobMinute,
		MonthlyJobDay:    config.MonthlyJobDay,
		MonthlyJobHour:   config.MonthlyJobHour,
		MonthlyJobMinute: config.MonthlyJobMinute,
		LastRun:          config.LastRun,
		NextRun:          config.NextRun,
		UpdatedAt:        config.UpdatedAt,
		UpdatedBy:        config.UpdatedBy,
	}
	if config.WeeklyJobDay != nil {
		item.WeeklyJobDayName = schedule.WeekdayName(time.Weekday(*config.WeeklyJobDay))
	}
	if config.WeeklyJobHour != nil && config.WeeklyJobMinute != nil {
		item.WeeklyJobTime = schedule.FormatClock(*config.WeeklyJobHour, *config.WeeklyJobMinute)
	}
	return item
}
