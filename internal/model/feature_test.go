package model

import (
	"testing"

	"fraudconfig/pkg/constraints"
)

func TestFeatureStatus_Exhaustive(t *testing.T) {
	tests := []struct {
		active  bool
		enabled bool
		want    string
	}{
		{true, true, constraints.StatusActive},
		{true, false, constraints.StatusDisabled},
		{false, true, constraints.StatusInactive},
		{false, false, constraints.StatusInactive},
	}

	for _, tt := range tests {
		got := FeatureStatus(tt.active, tt.enabled)
		if got != tt.want {
			t.Errorf("FeatureStatus(%v, %v) = %q, want %q", tt.active, tt.enabled, got, tt.want)
		}
		if got != constraints.StatusActive && got != constraints.StatusDisabled && got != constraints.StatusInactive {
			t.Errorf("FeatureStatus(%v, %v) returned undefined label %q", tt.active, tt.enabled, got)
		}
	}
}
