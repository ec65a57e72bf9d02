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

func newRuleFixture() (*CustomerRuleService, *fakeRuleRepo, *fakeAuditRepo, *fakeOutboxRepo) {
	ruleRepo := &fakeRuleRepo{}
	auditRepo := &fakeAuditRepo{}
	outboxRepo := &fakeOutboxRepo{}
	svc := NewCustomerRuleService(nil, ruleRepo, auditRepo, outboxRepo, nil)
	svc.runTx = stubTx()
	svc.now = func() time.Time { return time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC) }
	return svc, ruleRepo, auditRepo, outboxRepo
}

func TestRuleSetSaveWritesAllParameters(t *testing.T) {
	svc, ruleRepo, auditRepo, outboxRepo := newRuleFixture()

	err := svc.SaveSet(context.Background(), req.SaveRuleSetRequest{
		CustomerID:   "C100",
		AccountNo:    "ACC-1",
		TransferType: "domestic",
		Parameters: map[string]bool{
			constraints.ParamVelocity10Min: true,
			constraints.ParamAutoencoderCheck:   true,
		},
	}, "alice")
	if err != nil {
		t.Fatalf("SaveSet: %v", err)
	}

	rows, _ := ruleRepo.ListByTuple(context.Background(), "C100", "ACC-1", "domestic")
	if len(rows) != len(constraints.RuleParameters) {
		t.Fatalf("stored rows = %d, want %d", len(rows), len(constraints.RuleParameters))
	}
	byName := map[string]bool{}
	for _, r := range rows {
		byName[r.ParameterName] = r.Enabled
	}
	if !byName[constraints.ParamVelocity10Min] || !byName[constraints.ParamAutoencoderCheck] {
		t.Fatal("parameters sent as enabled must be stored enabled")
	}
	// Absent parameters are persisted as disabled rows, not skipped.
	if byName[constraints.ParamVelocity1Hour] || byName[constraints.ParamMonthlySpending] {
		t.Fatal("parameters absent from the request must be stored disabled")
	}
	if len(auditRepo.created) != 1 {
		t.Fatalf("audit rows = %d, want 1", len(auditRepo.created))
	}
	if len(outboxRepo.created) != 1 {
		t.Fatalf("outbox rows = %d, want 1", len(outboxRepo.created))
	}
}

func TestRuleSetSaveReplacesExistingSet(t *testing.T) {
	svc, ruleRepo, _, _ := newRuleFixture()

	for _, body := range []map[string]bool{
		{constraints.ParamVelocity10Min: true},
		{constraints.ParamNewBeneficiary: true},
	} {
		err := svc.SaveSet(context.Background(), req.SaveRuleSetRequest{
			CustomerID:   "C100",
			AccountNo:    "ACC-1",
			TransferType: "domestic",
			Parameters:   body,
		}, "alice")
		if err != nil {
			t.Fatalf("SaveSet: %v", err)
		}
	}

	rows, _ := ruleRepo.ListByTuple(context.Background(), "C100", "ACC-1", "domestic")
	if len(rows) != len(constraints.RuleParameters) {
		t.Fatalf("resave left %d rows, want %d", len(rows), len(constraints.RuleParameters))
	}
	for _, r := range rows {
		want := r.ParameterName == constraints.ParamNewBeneficiary
		if r.Enabled != want {
			t.Fatalf("%s enabled = %v after resave, want %v", r.ParameterName, r.Enabled, want)
		}
	}
}

func TestRuleSetSaveRejectsUnknownParameter(t *testing.T) {
	svc, ruleRepo, _, _ := newRuleFixture()

	err := svc.SaveSet(context.Background(), req.SaveRuleSetRequest{
		CustomerID:   "C100",
		AccountNo:    "ACC-1",
		TransferType: "domestic",
		Parameters:   map[string]bool{"cosmic_ray_check": true},
	}, "alice")
	if !IsValidation(err) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if len(ruleRepo.calls) != 0 {
		t.Fatal("rejected save must not touch storage")
	}
}

func TestRuleSetGetDefaults(t *testing.T) {
	svc, ruleRepo, _, _ := newRuleFixture()

	// Unknown tuple: reported new, every check defaults enabled.
	detail, err := svc.GetSet(context.Background(), "C100", "ACC-1", "domestic")
	if err != nil {
		t.Fatalf("GetSet: %v", err)
	}
	if !detail.IsNew {
		t.Fatal("unseen tuple must be reported as new")
	}
	for _, p := range constraints.RuleParameters {
		if !detail.Parameters[p] {
			t.Fatalf("%s should default enabled for a new tuple", p)
		}
	}

	// Existing tuple with a single stored row: missing rows read as disabled.
	ruleRepo.rows = append(ruleRepo.rows, &model.CustomerRuleConfig{
		CustomerID:    "C100",
		AccountNo:     "ACC-1",
		TransferType:  "domestic",
		ParameterName: constraints.ParamIsolationForest,
		Enabled:       true,
	})
	detail, err = svc.GetSet(context.Background(), "C100", "ACC-1", "domestic")
	if err != nil {
		t.Fatalf("GetSet: %v", err)
	}
	if detail.IsNew {
		t.Fatal("tuple with stored rows must not be reported as new")
	}
	if !detail.Parameters[constraints.ParamIsolationForest] {
		t.Fatal("stored enabled row lost")
	}
	if detail.Parameters[constraints.ParamAutoencoderCheck] {
		t.Fatal("missing row must read as disabled for an existing tuple")
	}
}

func TestRuleSetDelete(t *testing.T) {
	svc, ruleRepo, auditRepo, _ := newRuleFixture()

	err := svc.DeleteSet(context.Background(), "C100", "ACC-1", "domestic", "alice")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleting an absent tuple: err = %v, want ErrNotFound", err)
	}

	if err := svc.SaveSet(context.Background(), req.SaveRuleSetRequest{
		CustomerID:   "C100",
		AccountNo:    "ACC-1",
		TransferType: "domestic",
		Parameters:   map[string]bool{constraints.ParamVelocity10Min: true},
	}, "alice"); err != nil {
		t.Fatalf("SaveSet: %v", err)
	}
	if err := svc.DeleteSet(context.Background(), "C100", "ACC-1", "domestic", "alice"); err != nil {
		t.Fatalf("DeleteSet: %v", err)
	}
	rows, _ := ruleRepo.ListByTuple(context.Background(), "C100", "ACC-1", "domestic")
	if len(rows) != 0 {
		t.Fatalf("rows after delete = %d, want 0", len(rows))
	}
	if len(auditRepo.created) != 2 {
		t.Fatalf("audit rows = %d, want save + delete", len(auditRepo.created))
	}
}

func TestRuleSetSearchSelectors(t *testing.T) {
	svc, ruleRepo, _, _ := newRuleFixture()
	ruleRepo.rows = []*model.CustomerRuleConfig{
		{CustomerID: "C100", AccountNo: "ACC-1", TransferType: "domestic", ParameterName: constraints.ParamVelocity10Min, Enabled: true},
		{CustomerID: "C100", AccountNo: "ACC-1", TransferType: "domestic", ParameterName: constraints.ParamAutoencoderCheck, Enabled: true},
		{CustomerID: "C100", AccountNo: "ACC-2", TransferType: "overseas", ParameterName: constraints.ParamVelocity10Min, Enabled: false},
	}

	items, err := svc.Search(context.Background(), "C100", "")
	if err != nil {
		t.Fatalf("Search by customer: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("summaries = %d, want 2", len(items))
	}

	items, err = svc.Search(context.Background(), "", "ACC-1")
	if err != nil {
		t.Fatalf("Search by account: %v", err)
	}
	if len(items) != 1 || items[0].EnabledCount != 2 {
		t.Fatalf("account summary = %+v, want one tuple with 2 enabled", items)
	}

	if _, err := svc.Search(context.Background(), "C100", "ACC-1"); !IsValidation(err) {
		t.Fatalf("both selectors: err = %v, want validation error", err)
	}
	if _, err := svc.Search(context.Background(), "", ""); !IsValidation(err) {
		t.Fatalf("no selector: err = %v, want validation error", err)
	}
}
