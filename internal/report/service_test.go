package report

import (
	"strings"
	"testing"
)

func TestReportSeed(t *testing.T) {
	if got := reportSeed(3, 1950, 4); got != 53404 {
		t.Errorf("reportSeed(3, 1950, 4) = %d, want 53404", got)
	}
	// Different months of the same country must reshuffle the phrases.
	if reportSeed(3, 1950, 4) == reportSeed(3, 1950, 5) {
		t.Error("consecutive months share a seed")
	}
	if reportSeed(3, 1950, 12) == reportSeed(4, 1950, 12) {
		t.Error("different countries share a seed")
	}
}

func TestLoadBank(t *testing.T) {
	bank, err := loadBank()
	if err != nil {
		t.Fatalf("loadBank: %v", err)
	}

	for _, phrase := range bank.Funding.Sufficient {
		if !strings.Contains(phrase, "[ministère]") {
			t.Errorf("sufficient funding phrase lacks the ministry placeholder: %q", phrase)
		}
	}
	for _, phrase := range bank.Funding.Insufficient {
		if !strings.Contains(phrase, "[ministère]") {
			t.Errorf("insufficient funding phrase lacks the ministry placeholder: %q", phrase)
		}
	}

	variantLists := [][]string{
		bank.Magnitude.None,
		bank.Magnitude.WeakImprove, bank.Magnitude.WeakDecline,
		bank.Magnitude.ModerateImprove, bank.Magnitude.ModerateDecline,
		bank.Magnitude.StrongImprove, bank.Magnitude.StrongDecline,
	}
	for i, list := range variantLists {
		if len(list) == 0 {
			t.Fatalf("magnitude list %d is empty", i)
		}
		for _, phrase := range list {
			if !strings.Contains(phrase, "[stat]") {
				t.Errorf("magnitude phrase lacks the stat placeholder: %q", phrase)
			}
		}
	}

	for _, phrase := range []string{
		bank.Gravity.PositiveBehind, bank.Gravity.PositiveAhead,
		bank.Gravity.NegativeBehind, bank.Gravity.NegativeAhead,
	} {
		if phrase == "" {
			t.Error("gravity phrase missing")
		}
	}
}
