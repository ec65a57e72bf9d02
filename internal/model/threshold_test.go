package model

import (
	"testing"

	"fraudconfig/pkg/constraints"
)

func ptr(v float64) *float64 { return &v }

func TestThresholdCheck(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		min   *float64
		max   *float64
		want  string
	}{
		{"inside range", 50, ptr(0), ptr(100), constraints.CheckValid},
		{"at lower bound", 0, ptr(0), ptr(100), constraints.CheckValid},
		{"at upper bound", 100, ptr(0), ptr(100), constraints.CheckValid},
		{"below min", -1, ptr(0), ptr(100), constraints.CheckOutOfRange},
		{"above max", 150, ptr(0), ptr(100), constraints.CheckOutOfRange},
		{"missing min treated as zero", -0.5, nil, ptr(100), constraints.CheckOutOfRange},
		{"missing max unbounded", 1e12, ptr(0), nil, constraints.CheckValid},
		{"both bounds missing, negative", -3, nil, nil, constraints.CheckOutOfRange},
		{"both bounds missing, positive", 3, nil, nil, constraints.CheckValid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ThresholdCheck(tt.value, tt.min, tt.max); got != tt.want {
				t.Errorf("ThresholdCheck(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
