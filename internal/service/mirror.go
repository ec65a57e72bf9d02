package service

import (
	"context"
	"encoding/json"
	"fmt"

	"fraudconfig/internal/model"
	"fraudconfig/internal/repository"
	v1 "fraudconfig/pkg/api/v1"
	"fraudconfig/pkg/constraints"
	"fraudconfig/pkg/logger"

	"go.uber.org/zap"
)

// MirrorRootPrefix is the etcd namespace the decision engines watch.
const MirrorRootPrefix = "/fraudconfig/"

// BuildFeatureMirrorKey maps a feature flag to its etcd key.
func BuildFeatureMirrorKey(name string) string {
	return fmt.Sprintf("%s%s/%s", MirrorRootPrefix, constraints.KindFeature, name)
}

// BuildThresholdMirrorKey maps a threshold to its etcd key.
func BuildThresholdMirrorKey(name string) string {
	return fmt.Sprintf("%s%s/%s", MirrorRootPrefix, constraints.KindThreshold, name)
}

// BuildRuleSetMirrorKey maps one override tuple to its etcd key.
func BuildRuleSetMirrorKey(customerID, accountNo, transferType string) string {
	return fmt.Sprintf("%s%s/%s/%s/%s", MirrorRootPrefix, constraints.KindCustomerRules, customerID, accountNo, transferType)
}

// enqueueMirror creates the outbox row carrying an already-serialized
// MirrorEntry. Must run on transaction-scoped repositories.
func enqueueMirror(ctx context.Context, outboxRepo repository.OutboxInterface, key, payload string) (int64, error) {
	task := &model.OutboxTask{
		Key:     key,
		Payload: payload,
		Status:  model.StatusPending,
		TraceID: GetTraceID(ctx),
	}
	if err := outboxRepo.Create(ctx, task); err != nil {
		return 0, err
	}
	return task.ID, nil
}

// pushMirror attempts the etcd push right after commit so engines see the
// change without waiting for the outbox worker; the worker retries failures.
func pushMirror(mirrorRepo *repository.MirrorRepository, outboxRepo repository.OutboxInterface, taskID int64, key, payload string) {
	if mirrorRepo == nil {
		return
	}
	entry, err := decodeMirrorEntry(payload)
	if err != nil {
		logger.Error("invalid mirror payload", zap.Int64("task_id", taskID), zap.Error(err))
		return
	}
	if err := applyMirrorEntry(context.Background(), mirrorRepo, key, entry); err != nil {
		logger.Warn("mirror push failed, outbox worker will retry",
			zap.String("key", key), zap.Error(err))
		return
	}
	_ = outboxRepo.UpdateStatus(context.Background(), taskID, model.StatusCompleted, 0)
}

func decodeMirrorEntry(payload string) (v1.MirrorEntry, error) {
	var entry v1.MirrorEntry
	err := json.Unmarshal([]byte(payload), &entry)
	return entry, err
}

func applyMirrorEntry(ctx context.Context, mirrorRepo *repository.MirrorRepository, key string, entry v1.MirrorEntry) error {
	if entry.Action == constraints.DELETE {
		return mirrorRepo.DeleteEntry(ctx, key)
	}
	_, err := mirrorRepo.SaveIfNewer(ctx, key, entry)
	return err
}
