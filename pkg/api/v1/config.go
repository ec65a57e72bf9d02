package v1

import (
	"encoding/json"

	"fraudconfig/pkg/constraints"
)

// MirrorEntry is the unit of configuration pushed to etcd for the decision
// engines. Version is a per-key monotonic counter used for CAS on write.
type MirrorEntry struct {
	Kind    string             `json:"kind"`
	Key     string             `json:"key"`
	Value   string             `json:"value"`
	Version int64              `json:"version"`
	Action  constraints.Action `json:"action"`
}

// FeatureState is the payload mirrored for a feature flag.
type FeatureState struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Active  bool   `json:"active"`
	Status  string `json:"status"`
	Type    string `json:"type"`
	Version string `json:"version"`
}

// ThresholdState is the payload mirrored for a numeric threshold.
type ThresholdState struct {
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	Value  float64  `json:"value"`
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
	Active bool     `json:"active"`
}

// RuleSetState is the payload mirrored for one (customer, account,
// transfer type) override set. Parameters holds every known rule toggle.
type RuleSetState struct {
	CustomerID   string          `json:"customer_id"`
	AccountNo    string          `json:"account_no"`
	TransferType string          `json:"transfer_type"`
	Parameters   map[string]bool `json:"parameters"`
}

func (e *MirrorEntry) ToJSON() string {
	b, err := json.Marshal(e)
	if err != nil {
		panic("mirror entry serialization failed: " + err.Error())
	}
	return string(b)
}
