package mobilisation

import "testing"

func TestLevelForScore(t *testing.T) {
	defaults := DefaultThresholds()

	tests := []struct {
		name       string
		score      int
		thresholds map[string]int
		want       string
	}{
		{name: "zero score is peace", score: 0, thresholds: defaults, want: "peace"},
		{name: "just below alert", score: 99, thresholds: defaults, want: "peace"},
		{name: "alert boundary inclusive", score: 100, thresholds: defaults, want: "alert"},
		{name: "mid crisis", score: 250, thresholds: defaults, want: "crisis"},
		{name: "war boundary", score: 400, thresholds: defaults, want: "war"},
		{name: "score cap stays war", score: 500, thresholds: defaults, want: "war"},
		{name: "nil thresholds fall back to defaults", score: 320, thresholds: nil, want: "mobilisation"},
		{name: "below every threshold picks the lowest level", score: 5, thresholds: map[string]int{"crisis": 200, "war": 400}, want: "crisis"},
		{name: "equal thresholds resolve to the higher level", score: 50, thresholds: map[string]int{"peace": 0, "alert": 0}, want: "alert"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelForScore(tt.score, tt.thresholds); got != tt.want {
				t.Errorf("LevelForScore(%d) = %q, want %q", tt.score, got, tt.want)
			}
		})
	}
}

func TestClampScore(t *testing.T) {
	if got := ClampScore(-10); got != 0 {
		t.Errorf("ClampScore(-10) = %d, want 0", got)
	}
	if got := ClampScore(9999); got != ScoreMax {
		t.Errorf("ClampScore(9999) = %d, want %d", got, ScoreMax)
	}
	if got := ClampScore(250); got != 250 {
		t.Errorf("ClampScore(250) = %d, want 250", got)
	}
}

func TestLabelFor(t *testing.T) {
	if got := LabelFor("war"); got != "Guerre" {
		t.Errorf("LabelFor(war) = %q, want Guerre", got)
	}
	if got := LabelFor("unknown"); got != "unknown" {
		t.Errorf("LabelFor(unknown) = %q, want the key itself", got)
	}
}
