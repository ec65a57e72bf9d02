package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fraudconfig/internal/api"
	"fraudconfig/internal/config"
	"fraudconfig/internal/model"
	"fraudconfig/internal/repository"
	"fraudconfig/internal/service"
	"fraudconfig/pkg/logger"

	"github.com/redis/go-redis/v9"
	clientv3 "go.etcd.io/etcd/client/v3"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	logger.InitLogger(cfg.Server.Environment)
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("application startup failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb, err := initRedis(cfg.Redis)
	if err != nil {
		return err
	}
	defer rdb.Close()

	etcdCli, err := initEtcd(cfg.Etcd)
	if err != nil {
		return err
	}
	defer etcdCli.Close()

	db, err := initDB(cfg.MySQL)
	if err != nil {
		return err
	}

	// Repositories
	mirrorRepo := repository.NewMirrorRepository(etcdCli)
	featureRepo := repository.NewFeatureRepository(db)
	thresholdRepo := repository.NewThresholdRepository(db)
	retrainingRepo := repository.NewRetrainingRepository(db)
	versionRepo := repository.NewModelVersionRepository(db)
	runRepo := repository.NewTrainingRunRepository(db)
	ruleRepo := repository.NewCustomerRuleRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	outboxRepo := repository.NewOutboxRepository(db)

	// Services
	featureSvc := service.NewFeatureService(db, featureRepo, auditRepo, outboxRepo, mirrorRepo)
	thresholdSvc := service.NewThresholdService(db, thresholdRepo, auditRepo, outboxRepo, mirrorRepo)
	schedulerSvc := service.NewSchedulerService(db, retrainingRepo, auditRepo)
	modelSvc := service.NewModelService(db, versionRepo, runRepo, auditRepo)
	ruleSvc := service.NewCustomerRuleService(db, ruleRepo, auditRepo, outboxRepo, mirrorRepo)
	auditSvc := service.NewAuditService(auditRepo)
	authSvc := service.NewAuthService(rdb, cfg.Auth.AdminUser, cfg.Auth.AdminPassword,
		cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)

	// Background workers
	outboxWorker := service.NewOutboxWorker(outboxRepo, mirrorRepo, cfg.Workers.OutboxInterval)
	reconciler := service.NewReconciler(etcdCli, mirrorRepo, featureRepo, thresholdRepo, service.ReconcilerConfig{
		Interval:   cfg.Workers.ReconcilerInterval,
		BatchSize:  cfg.Workers.ReconcilerBatchSize,
		BatchDelay: cfg.Workers.ReconcilerBatchDelay,
	})

	go func() {
		logger.Info("starting outbox worker")
		outboxWorker.Run(ctx)
	}()
	go func() {
		logger.Info("starting reconciler")
		reconciler.Run(ctx)
	}()

	// HTTP server
	r := api.RegisterRoutes(api.Handlers{
		Feature:   api.NewFeatureHandler(featureSvc),
		Threshold: api.NewThresholdHandler(thresholdSvc),
		Scheduler: api.NewSchedulerHandler(schedulerSvc),
		Model:     api.NewModelHandler(modelSvc),
		Customer:  api.NewCustomerRuleHandler(ruleSvc),
		Audit:     api.NewAuditHandler(auditSvc),
		Auth:      api.NewAuthHandler(authSvc),
	}, rdb, cfg.RateLimit.RequestsPerSecond)

	srv := &http.Server{
		Addr:    cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info("server starting",
			zap.String("addr", cfg.Server.Port),
			zap.String("env", cfg.Server.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	// Signal all workers to stop
	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exited properly")
	return nil
}

// -- Infrastructure Initializers --

func initRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

func initEtcd(cfg config.EtcdConfig) (*clientv3.Client, error) {
	client, err := clientv3.New(clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: cfg.DialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to etcd: %w", err)
	}
	return client, nil
}

func initDB(cfg config.MySQLConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mysql: %w", err)
	}

	// Simple auto-migrate for dev convenience
	err = db.AutoMigrate(
		&model.FeatureConfig{},
		&model.ThresholdConfig{},
		&model.RetrainingConfig{},
		&model.ModelVersion{},
		&model.TrainingRun{},
		&model.CustomerRuleConfig{},
		&model.ConfigAudit{},
		&model.OutboxTask{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}
