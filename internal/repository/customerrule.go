package repository

import (
	"context"

	"fraudconfig/internal/model"

	"gorm.io/gorm"
)

// CustomerRuleInterface defines persistence for per-customer rule overrides.
// ReplaceSet and DeleteSet must run on a transaction-scoped instance obtained
// via WithTx, so the delete-then-insert is never observable half-applied.
type CustomerRuleInterface interface {
	ListByTuple(ctx context.Context, customerID, accountNo, transferType string) ([]*model.CustomerRuleConfig, error)
	SummariesByCustomer(ctx context.Context, customerID string) ([]model.RuleSetSummary, error)
	SummariesByAccount(ctx context.Context, accountNo string) ([]model.RuleSetSummary, error)
	ReplaceSet(ctx context.Context, customerID, accountNo, transferType string, rows []*model.CustomerRuleConfig) error
	DeleteSet(ctx context.Context, customerID, accountNo, transferType string) error
	WithTx(tx *gorm.DB) CustomerRuleInterface
}

type CustomerRuleRepository struct {
	db *gorm.DB
}

func NewCustomerRuleRepository(db *gorm.DB) *CustomerRuleRepository {
	return &CustomerRuleRepository{db: db}
}

func (r *CustomerRuleRepository) ListByTuple(ctx context.Context, customerID, accountNo, transferType string) ([]*model.CustomerRuleConfig, error) {
	var rows []*model.CustomerRuleConfig
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND account_no = ? AND transfer_type = ?", customerID, accountNo, transferType).
		Find(&rows).Error
	return rows, err
}

func (r *CustomerRuleRepository) SummariesByCustomer(ctx context.Context, customerID string) ([]model.RuleSetSummary, error) {
	return r.summaries(ctx, "customer_id = ?", customerID)
}

func (r *CustomerRuleRepository) SummariesByAccount(ctx context.Context, accountNo string) ([]model.RuleSetSummary, error) {
	return r.summaries(ctx, "account_no = ?", accountNo)
}

func (r *CustomerRuleRepository) summaries(ctx context.Context, cond string, arg string) ([]model.RuleSetSummary, error) {
	var summaries []model.RuleSetSummary
	err := r.db.WithContext(ctx).
		Model(&model.CustomerRuleConfig{}).
		Select("customer_id, account_no, transfer_type, SUM(enabled) AS enabled_count").
		Where(cond, arg).
		Group("customer_id, account_no, transfer_type").
		Scan(&summaries).Error
	return summaries, err
}

// ReplaceSet swaps the full override set for one tuple. The caller wraps it
// in a transaction together with the audit and outbox writes.
func (r *CustomerRuleRepository) ReplaceSet(ctx context.Context, customerID, accountNo, transferType string, rows []*model.CustomerRuleConfig) error {
	if err := r.DeleteSet(ctx, customerID, accountNo, transferType); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(rows).Error
}

func (r *CustomerRuleRepository) DeleteSet(ctx context.Context, customerID, accountNo, transferType string) error {
	return r.db.WithContext(ctx).
		Where("customer_id = ? AND account_no = ? AND transfer_type = ?", customerID, accountNo, transferType).
		Delete(&model.CustomerRuleConfig{}).Error
}

func (r *CustomerRuleRepository) WithTx(tx *gorm.DB) CustomerRuleInterface {
	return &CustomerRuleRepository{db: tx}
}
