package budget

import (
	"testing"

	"nations-server/internal/effect"
	"nations-server/internal/shared/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		allocation Allocation
		effects    []effect.ResolvedEffect
		wantErr    bool
	}{
		{
			name:       "all zero is valid",
			allocation: Allocation{},
		},
		{
			name:       "sum at the default cap",
			allocation: Allocation{Health: 50, Defense: 50},
		},
		{
			name:       "negative percentage rejected",
			allocation: Allocation{Health: -1},
			wantErr:    true,
		},
		{
			name:       "percentage above 100 rejected",
			allocation: Allocation{Defense: 101},
			wantErr:    true,
		},
		{
			name:       "below a forced minimum rejected",
			allocation: Allocation{Defense: 10},
			effects: []effect.ResolvedEffect{
				{Kind: effect.KindBudgetMinistryMinPct, Target: "defense", Value: 20, Permanent: true},
			},
			wantErr: true,
		},
		{
			name:       "at the forced minimum accepted",
			allocation: Allocation{Defense: 20},
			effects: []effect.ResolvedEffect{
				{Kind: effect.KindBudgetMinistryMinPct, Target: "defense", Value: 20, Permanent: true},
			},
		},
		{
			name:       "debt lowers the cap",
			allocation: Allocation{Health: 50, Defense: 40},
			effects: []effect.ResolvedEffect{
				{Kind: effect.KindBudgetAllocationCap, Value: -20, Permanent: true},
			},
			wantErr: true,
		},
		{
			name:       "surplus raises the cap",
			allocation: Allocation{Health: 60, Defense: 50},
			effects: []effect.ResolvedEffect{
				{Kind: effect.KindBudgetAllocationCap, Value: 30, Permanent: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.allocation, tt.effects)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected a validation error, got nil")
				}
				if errors.GetType(err) != errors.ErrorTypeValidation {
					t.Errorf("error type = %s, want validation", errors.GetType(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestAllocationPctRoundTrip(t *testing.T) {
	var a Allocation
	a.SetPct("research", 12.5)
	if got := a.Pct("research"); got != 12.5 {
		t.Errorf("Pct(research) = %v, want 12.5", got)
	}
	a.SetPct("bogus", 99)
	if got := a.Total(); got != 12.5 {
		t.Errorf("Total() = %v, want 12.5 after ignoring an unknown ministry", got)
	}
}
