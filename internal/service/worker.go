package service

import (
	"context"
	"time"

	"fraudconfig/internal/metrics"
	"fraudconfig/internal/model"
	"fraudconfig/internal/repository"
	"fraudconfig/pkg/logger"

	"go.uber.org/zap"
)

// OutboxWorker drains pending mirror pushes that the post-commit fast path
// missed, retrying transient etcd failures with a bounded retry count.
type OutboxWorker struct {
	outboxRepo repository.OutboxInterface
	mirrorRepo *repository.MirrorRepository
	interval   time.Duration
}

const (
	outboxBatchSize  = 10
	outboxMaxRetries = 5
)

func NewOutboxWorker(outboxRepo repository.OutboxInterface, mirrorRepo *repository.MirrorRepository, interval time.Duration) *OutboxWorker {
	return &OutboxWorker{
		outboxRepo: outboxRepo,
		mirrorRepo: mirrorRepo,
		interval:   interval,
	}
}

func (w *OutboxWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	logger.Info("outbox worker started", zap.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			logger.Info("outbox worker stopped")
			return
		case <-ticker.C:
			w.processPending(ctx)
		}
	}
}

func (w *OutboxWorker) processPending(ctx context.Context) {
	tasks, err := w.outboxRepo.FetchPending(ctx, outboxBatchSize)
	if err != nil {
		logger.Error("failed to fetch pending outbox tasks", zap.Error(err))
		return
	}

	for _, task := range tasks {
		logger.Debug("processing outbox task", zap.Int64("id", task.ID), zap.String("key", task.Key))

		entry, err := decodeMirrorEntry(task.Payload)
		if err != nil {
			logger.Error("corrupt outbox payload", zap.Int64("id", task.ID), zap.Error(err))
			w.outboxRepo.UpdateStatus(ctx, task.ID, model.StatusFailed, task.RetryCount)
			continue
		}

		if err := applyMirrorEntry(ctx, w.mirrorRepo, task.Key, entry); err != nil {
			metrics.RecordMirrorFailure()
			logger.Warn("failed to push task to etcd", zap.Int64("id", task.ID), zap.Error(err))
			newRetryCount := task.RetryCount + 1
			if newRetryCount >= outboxMaxRetries {
				logger.Error("outbox task max retries reached", zap.Int64("id", task.ID))
				w.outboxRepo.UpdateStatus(ctx, task.ID, model.StatusFailed, newRetryCount)
			} else {
				w.outboxRepo.UpdateStatus(ctx, task.ID, model.StatusPending, newRetryCount)
			}
			continue
		}

		metrics.RecordMirrorPush()
		if err := w.outboxRepo.UpdateStatus(ctx, task.ID, model.StatusCompleted, task.RetryCount); err != nil {
			logger.Error("failed to mark outbox task completed", zap.Int64("id", task.ID), zap.Error(err))
		}
	}
}
