package effect

import (
	"math"
	"testing"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		value float64
		want  string
	}{
		{name: "rate shown as percent", kind: KindPopulationGrowth, value: 0.05, want: "+5.00%"},
		{name: "negative rate", kind: KindGDPGrowth, value: -0.0025, want: "-0.25%"},
		{name: "percent points unchanged", kind: KindBudgetAllocationCap, value: -20, want: "-20.00%"},
		{name: "multiplier shown around 100", kind: KindUnitCostMultiplier, value: 1.25, want: "+25.00%"},
		{name: "dampening multiplier", kind: KindUnitCostMultiplier, value: 0.8, want: "-20.00%"},
		{name: "integer floors toward negative infinity", kind: KindPopulationDelta, value: 2.7, want: "+2"},
		{name: "negative integer floors", kind: KindPopulationDelta, value: -1.2, want: "-2"},
		{name: "decimal delta", kind: KindStatDelta, value: 0.25, want: "+0.25"},
		{name: "NaN renders as dash", kind: KindStatDelta, value: math.NaN(), want: "—"},
		{name: "unknown kind falls back to decimal", kind: Kind("bogus"), value: 1.5, want: "+1.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatValue(tt.kind, tt.value); got != tt.want {
				t.Errorf("FormatValue(%s, %v) = %q, want %q", tt.kind, tt.value, got, tt.want)
			}
		})
	}
}

func TestCodecRoundTrip(t *testing.T) {
	for _, kind := range []Kind{KindPopulationGrowth, KindUnitCostMultiplier, KindBudgetAllocationCap} {
		codec := CodecFor(kind)
		stored := 0.42
		if kind == KindUnitCostMultiplier {
			stored = 1.42
		}
		display := codec.StoredToDisplay(stored)
		back := codec.DisplayToStored(display)
		if math.Abs(back-stored) > 1e-9 {
			t.Errorf("%s: round trip %v -> %v -> %v", kind, stored, display, back)
		}
	}
}
