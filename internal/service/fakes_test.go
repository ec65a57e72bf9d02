package service

import (
	"context"

	"fraudconfig/internal/model"
	"fraudconfig/internal/repository"
	"fraudconfig/pkg/logger"

	"gorm.io/gorm"
)

func init() {
	logger.InitLogger("test")
}

// stubTx runs the transactional closure directly; the fakes below are not
// transaction-aware, so WithTx returns the fake itself.
func stubTx() TxRunner {
	return func(ctx context.Context, fn func(tx *gorm.DB) error) error {
		return fn(nil)
	}
}

type fakeFeatureRepo struct {
	features map[uint64]*model.FeatureConfig
	saved    []*model.FeatureConfig
}

func (f *fakeFeatureRepo) GetByID(ctx context.Context, id uint64) (*model.FeatureConfig, error) {
	if feature, ok := f.features[id]; ok {
		cp := *feature
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeFeatureRepo) GetAll(ctx context.Context) ([]*model.FeatureConfig, error) {
	var out []*model.FeatureConfig
	for _, feature := range f.features {
		out = append(out, feature)
	}
	return out, nil
}

func (f *fakeFeatureRepo) List(ctx context.Context, search string) ([]*model.FeatureConfig, error) {
	return f.GetAll(ctx)
}

func (f *fakeFeatureRepo) Save(ctx context.Context, feature *model.FeatureConfig) error {
	cp := *feature
	f.features[feature.ID] = &cp
	f.saved = append(f.saved, &cp)
	return nil
}

func (f *fakeFeatureRepo) WithTx(tx *gorm.DB) repository.FeatureInterface { return f }

type fakeThresholdRepo struct {
	thresholds map[uint64]*model.ThresholdConfig
	saved      []*model.ThresholdConfig
}

func (f *fakeThresholdRepo) GetByID(ctx context.Context, id uint64) (*model.ThresholdConfig, error) {
	if t, ok := f.thresholds[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeThresholdRepo) GetAll(ctx context.Context) ([]*model.ThresholdConfig, error) {
	var out []*model.ThresholdConfig
	for _, t := range f.thresholds {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeThresholdRepo) List(ctx context.Context, search string) ([]*model.ThresholdConfig, error) {
	return f.GetAll(ctx)
}

func (f *fakeThresholdRepo) Save(ctx context.Context, t *model.ThresholdConfig) error {
	cp := *t
	f.thresholds[t.ID] = &cp
	f.saved = append(f.saved, &cp)
	return nil
}

func (f *fakeThresholdRepo) WithTx(tx *gorm.DB) repository.ThresholdInterface { return f }

type fakeRetrainingRepo struct {
	config *model.RetrainingConfig
	saved  []*model.RetrainingConfig
}

func (f *fakeRetrainingRepo) Latest(ctx context.Context) (*model.RetrainingConfig, error) {
	if f.config == nil {
		return nil, nil
	}
	cp := *f.config
	return &cp, nil
}

func (f *fakeRetrainingRepo) GetByID(ctx context.Context, id uint64) (*model.RetrainingConfig, error) {
	if f.config == nil || f.config.ID != id {
		return nil, nil
	}
	cp := *f.config
	return &cp, nil
}

func (f *fakeRetrainingRepo) Save(ctx context.Context, config *model.RetrainingConfig) error {
	cp := *config
	f.config = &cp
	f.saved = append(f.saved, &cp)
	return nil
}

func (f *fakeRetrainingRepo) WithTx(tx *gorm.DB) repository.RetrainingInterface { return f }

type fakeAuditRepo struct {
	created []*model.ConfigAudit
}

func (f *fakeAuditRepo) Create(ctx context.Context, audit *model.ConfigAudit) error {
	f.created = append(f.created, audit)
	return nil
}

func (f *fakeAuditRepo) List(ctx context.Context, entity string, offset, limit int) ([]model.ConfigAudit, int64, error) {
	var out []model.ConfigAudit
	for _, a := range f.created {
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (f *fakeAuditRepo) ListByEntityKey(ctx context.Context, entity, entityKey string) ([]model.ConfigAudit, error) {
	var out []model.ConfigAudit
	for _, a := range f.created {
		if a.Entity == entity && a.EntityKey == entityKey {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAuditRepo) PingContext(ctx context.Context) error { return nil }

func (f *fakeAuditRepo) WithTx(tx *gorm.DB) repository.AuditInterface { return f }

type fakeOutboxRepo struct {
	created []*model.OutboxTask
}

func (f *fakeOutboxRepo) Create(ctx context.Context, task *model.OutboxTask) error {
	task.ID = int64(len(f.created) + 1)
	f.created = append(f.created, task)
	return nil
}

func (f *fakeOutboxRepo) FetchPending(ctx context.Context, limit int) ([]model.OutboxTask, error) {
	var out []model.OutboxTask
	for _, t := range f.created {
		if t.Status == model.StatusPending {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeOutboxRepo) UpdateStatus(ctx context.Context, id int64, status int, retryCount int) error {
	for _, t := range f.created {
		if t.ID == id {
			t.Status = status
			t.RetryCount = retryCount
		}
	}
	return nil
}

func (f *fakeOutboxRepo) WithTx(tx *gorm.DB) repository.OutboxInterface { return f }

// fakeRuleRepo records the order of mutating calls so tests can assert the
// delete-then-insert happens as one unit.
type fakeRuleRepo struct {
	rows  []*model.CustomerRuleConfig
	calls []string
}

func (f *fakeRuleRepo) ListByTuple(ctx context.Context, customerID, accountNo, transferType string) ([]*model.CustomerRuleConfig, error) {
	var out []*model.CustomerRuleConfig
	for _, r := range f.rows {
		if r.CustomerID == customerID && r.AccountNo == accountNo && r.TransferType == transferType {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRuleRepo) SummariesByCustomer(ctx context.Context, customerID string) ([]model.RuleSetSummary, error) {
	return f.summaries(func(r *model.CustomerRuleConfig) bool { return r.CustomerID == customerID }), nil
}

func (f *fakeRuleRepo) SummariesByAccount(ctx context.Context, accountNo string) ([]model.RuleSetSummary, error) {
	return f.summaries(func(r *model.CustomerRuleConfig) bool { return r.AccountNo == accountNo }), nil
}

func (f *fakeRuleRepo) summaries(match func(*model.CustomerRuleConfig) bool) []model.RuleSetSummary {
	grouped := map[string]*model.RuleSetSummary{}
	for _, r := range f.rows {
		if !match(r) {
			continue
		}
		key := r.CustomerID + "/" + r.AccountNo + "/" + r.TransferType
		g, ok := grouped[key]
		if !ok {
			g = &model.RuleSetSummary{CustomerID: r.CustomerID, AccountNo: r.AccountNo, TransferType: r.TransferType}
			grouped[key] = g
		}
		if r.Enabled {
			g.EnabledCount++
		}
	}
	var out []model.RuleSetSummary
	for _, g := range grouped {
		out = append(out, *g)
	}
	return out
}

func (f *fakeRuleRepo) ReplaceSet(ctx context.Context, customerID, accountNo, transferType string, rows []*model.CustomerRuleConfig) error {
	f.calls = append(f.calls, "replace")
	if err := f.deleteTuple(customerID, accountNo, transferType); err != nil {
		return err
	}
	f.rows = append(f.rows, rows...)
	return nil
}

func (f *fakeRuleRepo) DeleteSet(ctx context.Context, customerID, accountNo, transferType string) error {
	f.calls = append(f.calls, "delete")
	return f.deleteTuple(customerID, accountNo, transferType)
}

func (f *fakeRuleRepo) deleteTuple(customerID, accountNo, transferType string) error {
	var kept []*model.CustomerRuleConfig
	for _, r := range f.rows {
		if r.CustomerID == customerID && r.AccountNo == accountNo && r.TransferType == transferType {
			continue
		}
		kept = append(kept, r)
	}
	f.rows = kept
	return nil
}

func (f *fakeRuleRepo) WithTx(tx *gorm.DB) repository.CustomerRuleInterface { return f }
