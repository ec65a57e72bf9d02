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
	v1 "fraudconfig/pkg/api/v1"
	"fraudconfig/pkg/constraints"

	"gorm.io/gorm"
)

// CustomerRuleService manages per-(customer, account, transfer type)
// override sets. A save replaces the full set inside one transaction, so a
// concurrent reader never observes a half-replaced set.
type CustomerRuleService struct {
	runTx      TxRunner
	ruleRepo   repository.CustomerRuleInterface
	auditRepo  repository.AuditInterface
	outboxRepo repository.OutboxInterface
	mirrorRepo *repository.MirrorRepository
	now        func() time.Time
}

func NewCustomerRuleService(db *gorm.DB, ruleRepo repository.CustomerRuleInterface, auditRepo repository.AuditInterface, outboxRepo repository.OutboxInterface, mirrorRepo *repository.MirrorRepository) *CustomerRuleService {
	return &CustomerRuleService{
		runTx:      NewGormTxRunner(db),
		ruleRepo:   ruleRepo,
		auditRepo:  auditRepo,
		outboxRepo: outboxRepo,
		mirrorRepo: mirrorRepo,
		now:        time.Now,
	}
}

// Search returns grouped summaries by customer or account. Exactly one of
// the two selectors must be set.
func (s *CustomerRuleService) Search(ctx context.Context, customerID, accountNo string) ([]resp.RuleSetSummaryItem, error) {
	var summaries []model.RuleSetSummary
	var err error

	switch {
	case customerID != "" && accountNo == "":
		summaries, err = s.ruleRepo.SummariesByCustomer(ctx, customerID)
	case accountNo != "" && customerID == "":
		summaries, err = s.ruleRepo.SummariesByAccount(ctx, accountNo)
	default:
		return nil, validationErrorf("exactly one of customer_id or account_no must be given")
	}
	if err != nil {
		return nil, err
	}

	items := make([]resp.RuleSetSummaryItem, 0, len(summaries))
	for _, g := range summaries {
		items = append(items, resp.RuleSetSummaryItem{
			CustomerID:   g.CustomerID,
			AccountNo:    g.AccountNo,
			TransferType: g.TransferType,
			EnabledCount: g.EnabledCount,
		})
	}
	return items, nil
}

// GetSet returns the override set for one tuple. A tuple with no stored rows
// is reported as new, with every known check defaulting to enabled.
func (s *CustomerRuleService) GetSet(ctx context.Context, customerID, accountNo, transferType string) (*resp.RuleSetDetail, error) {
	rows, err := s.ruleRepo.ListByTuple(ctx, customerID, accountNo, transferType)
	if err != nil {
		return nil, err
	}

	detail := &resp.RuleSetDetail{
		CustomerID:   customerID,
		AccountNo:    accountNo,
		TransferType: transferType,
		Parameters:   make(map[string]bool, len(constraints.RuleParameters)),
		IsNew:        len(rows) == 0,
	}
	for _, p := range constraints.RuleParameters {
		detail.Parameters[p] = detail.IsNew
	}
	for _, row := range rows {
		detail.Parameters[row.ParameterName] = row.Enabled
	}
	return detail, nil
}

// SaveSet replaces the full override set for the tuple: delete then insert,
// with audit and mirror outbox rows, all in one transaction.
func (s *CustomerRuleService) SaveSet(ctx context.Context, r req.SaveRuleSetRequest, operator string) error {
	for p := range r.Parameters {
		if !knownParameter(p) {
			return validationErrorf("unknown rule parameter %q", p)
		}
	}

	var taskID int64
	var key, payload string

	err := s.runTx(ctx, func(tx *gorm.DB) error {
		txRule := s.ruleRepo.WithTx(tx)

		oldRows, err := txRule.ListByTuple(ctx, r.CustomerID, r.AccountNo, r.TransferType)
		if err != nil {
			return err
		}

		now := s.now()
		params := make(map[string]bool, len(constraints.RuleParameters))
		rows := make([]*model.CustomerRuleConfig, 0, len(constraints.RuleParameters))
		for _, p := range constraints.RuleParameters {
			enabled := r.Parameters[p]
			params[p] = enabled
			rows = append(rows, &model.CustomerRuleConfig{
				CustomerID:    r.CustomerID,
				AccountNo:     r.AccountNo,
				TransferType:  r.TransferType,
				ParameterName: p,
				Enabled:       enabled,
				CreatedAt:     now,
				UpdatedAt:     now,
				CreatedBy:     operator,
				UpdatedBy:     operator,
			})
		}

		if err := txRule.ReplaceSet(ctx, r.CustomerID, r.AccountNo, r.TransferType, rows); err != nil {
			return err
		}

		oldJSON, _ := json.Marshal(oldRows)
		newJSON, _ := json.Marshal(rows)
		if err := s.auditRepo.WithTx(tx).Create(ctx, &model.ConfigAudit{
			Entity:    model.EntityCustomerRule,
			EntityKey: ruleSetKey(r.CustomerID, r.AccountNo, r.TransferType),
			OldValue:  string(oldJSON),
			NewValue:  string(newJSON),
			Operator:  operator,
			TraceID:   GetTraceID(ctx),
		}); err != nil {
			return err
		}

		key, payload = ruleSetMirrorPayload(r.CustomerID, r.AccountNo, r.TransferType, params, now)
		taskID, err = enqueueMirror(ctx, s.outboxRepo.WithTx(tx), key, payload)
		return err
	})
	if err != nil {
		return err
	}

	metrics.RecordConfigUpdate(model.EntityCustomerRule)
	go pushMirror(s.mirrorRepo, s.outboxRepo, taskID, key, payload)
	return nil
}

// DeleteSet removes every override for the tuple and tombstones the mirror.
func (s *CustomerRuleService) DeleteSet(ctx context.Context, customerID, accountNo, transferType string, operator string) error {
	var taskID int64
	var key, payload string

	err := s.runTx(ctx, func(tx *gorm.DB) error {
		txRule := s.ruleRepo.WithTx(tx)

		oldRows, err := txRule.ListByTuple(ctx, customerID, accountNo, transferType)
		if err != nil {
			return err
		}
		if len(oldRows) == 0 {
			return ErrNotFound
		}

		if err := txRule.DeleteSet(ctx, customerID, accountNo, transferType); err != nil {
			return err
		}

		oldJSON, _ := json.Marshal(oldRows)
		if err := s.auditRepo.WithTx(tx).Create(ctx, &model.ConfigAudit{
			Entity:    model.EntityCustomerRule,
			EntityKey: ruleSetKey(customerID, accountNo, transferType),
			OldValue:  string(oldJSON),
			NewValue:  "",
			Operator:  operator,
			TraceID:   GetTraceID(ctx),
		}); err != nil {
			return err
		}

		key = BuildRuleSetMirrorKey(customerID, accountNo, transferType)
		entry := v1.MirrorEntry{
			Kind:    constraints.KindCustomerRules,
			Key:     ruleSetKey(customerID, accountNo, transferType),
			Version: s.now().UnixMilli(),
			Action:  constraints.DELETE,
		}
		payload = entry.ToJSON()
		taskID, err = enqueueMirror(ctx, s.outboxRepo.WithTx(tx), key, payload)
		return err
	})
	if err != nil {
		return err
	}

	metrics.RecordConfigUpdate(model.EntityCustomerRule)
	go pushMirror(s.mirrorRepo, s.outboxRepo, taskID, key, payload)
	return nil
}

func knownParameter(name string) bool {
	for _, p := range constraints.RuleParameters {
		if p == name {
			return true
		}
	}
	return false
}

func ruleSetKey(customerID, accountNo, transferType string) string {
	return fmt.Sprintf("%s/%s/%s", customerID, accountNo, transferType)
}

func ruleSetMirrorPayload(customerID, accountNo, transferType string, params map[string]bool, at time.Time) (string, string) {
	state := v1.RuleSetState{
		CustomerID:   customerID,
		AccountNo:    accountNo,
		TransferType: transferType,
		Parameters:   params,
	}
	stateJSON, _ := json.Marshal(state)
	entry := v1.MirrorEntry{
		Kind:    constraints.KindCustomerRules,
		Key:     ruleSetKey(customerID, accountNo, transferType),
		Value:   string(stateJSON),
		Version: at.UnixMilli(),
		Action:  constraints.PUT,
	}
	return BuildRuleSetMirrorKey(customerID, accountNo, transferType), entry.ToJSON()
}
