package service

import (
	"context"
	"encoding/json"
	"time"

	"fraudconfig/internal/repository"
	v1 "fraudconfig/pkg/api/v1"
	"fraudconfig/pkg/logger"

	clientv3 "go.etcd.io/etcd/client/v3"
	"go.etcd.io/etcd/client/v3/concurrency"
	"go.uber.org/zap"
)

// Reconciler periodically re-derives the etcd mirror from the authoritative
// MySQL state and fixes drift: entries missing in etcd or carrying stale
// values get re-pushed. A distributed lock keeps only one instance active.
type Reconciler struct {
	etcdClient    *clientv3.Client
	mirrorRepo    *repository.MirrorRepository
	featureRepo   repository.FeatureInterface
	thresholdRepo repository.ThresholdInterface
	cfg           ReconcilerConfig
}

type ReconcilerConfig struct {
	Interval   time.Duration
	BatchSize  int
	BatchDelay time.Duration
}

func NewReconciler(client *clientv3.Client, mirrorRepo *repository.MirrorRepository, featureRepo repository.FeatureInterface, thresholdRepo repository.ThresholdInterface, cfg ReconcilerConfig) *Reconciler {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	return &Reconciler{
		etcdClient:    client,
		mirrorRepo:    mirrorRepo,
		featureRepo:   featureRepo,
		thresholdRepo: thresholdRepo,
		cfg:           cfg,
	}
}

func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	session, err := concurrency.NewSession(r.etcdClient, concurrency.WithTTL(10))
	if err != nil {
		logger.Error("failed to create etcd concurrency session", zap.Error(err))
		return
	}
	defer session.Close()

	mutex := concurrency.NewMutex(session, "/locks/fraudconfig-reconciler")

	logger.Info("reconciler started", zap.Duration("interval", r.cfg.Interval))

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			lockCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err := mutex.Lock(lockCtx)
			cancel()

			if err != nil {
				if err == context.DeadlineExceeded {
					logger.Debug("reconciliation skipped, another instance holds the lock")
				} else {
					logger.Error("failed to acquire reconciliation lock", zap.Error(err))
				}
				continue
			}

			r.reconcile(ctx)

			if err := mutex.Unlock(context.Background()); err != nil {
				logger.Warn("failed to release reconciliation lock", zap.Error(err))
			}
		}
	}
}

func (r *Reconciler) reconcile(ctx context.Context) {
	want := make(map[string]v1.MirrorEntry)

	features, err := r.featureRepo.GetAll(ctx)
	if err != nil {
		logger.Error("recon: failed to fetch features from db", zap.Error(err))
		return
	}
	for _, f := range features {
		key, payload := featureMirrorPayload(f)
		entry, _ := decodeMirrorEntry(payload)
		want[key] = entry
	}

	thresholds, err := r.thresholdRepo.GetAll(ctx)
	if err != nil {
		logger.Error("recon: failed to fetch thresholds from db", zap.Error(err))
		return
	}
	for _, t := range thresholds {
		key, payload := thresholdMirrorPayload(t)
		entry, _ := decodeMirrorEntry(payload)
		want[key] = entry
	}

	resp, err := r.mirrorRepo.GetWithRevision(ctx, MirrorRootPrefix)
	if err != nil {
		logger.Error("recon: failed to fetch mirror from etcd", zap.Error(err))
		return
	}
	have := make(map[string]*v1.MirrorEntry)
	for _, kv := range resp.Kvs {
		var entry v1.MirrorEntry
		if err := json.Unmarshal(kv.Value, &entry); err == nil {
			have[string(kv.Key)] = &entry
		}
	}

	var fixed, scanned int
	for key, wantEntry := range want {
		haveEntry, exists := have[key]

		reason := ""
		if !exists {
			reason = "missing_in_etcd"
		} else if haveEntry.Value != wantEntry.Value {
			reason = "value_mismatch"
		}
		if reason == "" {
			continue
		}

		logger.Warn("recon: fixing inconsistency", zap.String("key", key), zap.String("reason", reason))
		if _, err := r.mirrorRepo.SaveIfNewer(ctx, key, wantEntry); err != nil {
			logger.Error("recon: failed to fix etcd", zap.String("key", key), zap.Error(err))
			continue
		}
		fixed++

		scanned++
		if r.cfg.BatchDelay > 0 && scanned%r.cfg.BatchSize == 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(r.cfg.BatchDelay):
			}
		}
	}

	logger.Info("reconciliation finished",
		zap.Int("db_count", len(want)),
		zap.Int("etcd_count", len(have)),
		zap.Int("fixed", fixed))
}
