package model

import "time"

// CustomerRuleConfig is one per-(customer, account, transfer type) toggle for
// a named check, overriding the system-wide default. The full set for one
// tuple is replaced wholesale on save, inside a single transaction.
type CustomerRuleConfig struct {
	ID            uint64    `gorm:"primaryKey" json:"id"`
	CustomerID    string    `gorm:"size:64;index:idx_rule_tuple" json:"customer_id"`
	AccountNo     string    `gorm:"size:64;index:idx_rule_tuple" json:"account_no"`
	TransferType  string    `gorm:"size:32;index:idx_rule_tuple" json:"transfer_type"`
	ParameterName string    `gorm:"size:64" json:"parameter_name"`
	Enabled       bool      `json:"enabled"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	CreatedBy     string    `gorm:"size:64" json:"created_by"`
	UpdatedBy     string    `gorm:"size:64" json:"updated_by"`
}

// RuleSetSummary is a grouped view of one override tuple with the number of
// enabled checks, used by the search screens.
type RuleSetSummary struct {
	CustomerID   string `json:"customer_id"`
	AccountNo    string `json:"account_no"`
	TransferType string `json:"transfer_type"`
	EnabledCount int    `json:"enabled_count"`
}
