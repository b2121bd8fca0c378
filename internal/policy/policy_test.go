// ABOUTME: Tests for the policy table.
// ABOUTME: Verifies band classification boundaries and weight sums.
package policy

import (
	"math"
	"testing"
)

func TestClassifyACWR(t *testing.T) {
	tests := []struct {
		ratio     float64
		wantLevel string
	}{
		{0.0, "very_low"},
		{0.49, "very_low"},
		{0.5, "low"},
		{0.79, "low"},
		{0.8, "optimal"},
		{1.0, "optimal"},
		{1.3, "optimal"},
		{1.31, "elevated"},
		{1.5, "elevated"},
		{1.51, "high"},
		{2.0, "high"},
		{2.01, "very_high"},
		{7.0, "very_high"},
	}

	for _, tt := range tests {
		band := ClassifyACWR(tt.ratio)
		if band.Level != tt.wantLevel {
			t.Errorf("ClassifyACWR(%.2f) = %s, want %s", tt.ratio, band.Level, tt.wantLevel)
		}
	}
}

func TestACWRMultipliersMonotonic(t *testing.T) {
	for i := 1; i < len(ACWRBands); i++ {
		if ACWRBands[i].Level == "very_low" || ACWRBands[i-1].Level == "very_low" {
			continue
		}
		if ACWRBands[i].Multiplier < ACWRBands[i-1].Multiplier {
			t.Errorf("risk multiplier decreases from %s to %s", ACWRBands[i-1].Level, ACWRBands[i].Level)
		}
	}
}

func TestReadinessWeightsSum(t *testing.T) {
	full := WeightSleep + WeightHRV + WeightBodyBattery + WeightRestingHR + WeightWellness
	if math.Abs(full-1.0) > 1e-9 {
		t.Errorf("full weights sum to %f, want 1.0", full)
	}

	reduced := WeightSleepNoWellness + WeightHRVNoWellness + WeightBodyBatteryNoWellness + WeightRestingHRNoWellness
	if math.Abs(reduced-1.0) > 1e-9 {
		t.Errorf("wellness-absent weights sum to %f, want 1.0", reduced)
	}
}

func TestPhaseSharesLeaveRoomForTaper(t *testing.T) {
	sum := PhaseShareBase + PhaseShareBuild + PhaseSharePeak
	if sum >= 1.0 {
		t.Errorf("phase shares sum to %f, no room left for taper", sum)
	}
}
