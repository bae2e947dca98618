package effect

import (
	"testing"

	"github.com/google/uuid"
)

func TestEffectsForCountryOrderAndFiltering(t *testing.T) {
	rc := ResolveContext{
		CountryEffects: []CountryEffect{
			{ID: uuid.New(), Kind: KindPopulationGrowth, Value: 0.01, DurationKind: DurationDays, DaysRemaining: 3, Name: "Baby boom"},
			{ID: uuid.New(), Kind: KindGDPGrowth, Value: 0.02, DurationKind: DurationDays, DaysRemaining: 0, Name: "Expired"},
			{ID: uuid.New(), Kind: KindStatDelta, Target: "science", Value: 0.1, DurationKind: DurationPermanent},
		},
		MobilisationLevel: "war",
		LevelEffects: []LevelEffects{
			{Level: "peace", Effects: []Spec{{Kind: KindGDPGrowth, Value: 0.001}}},
			{Level: "war", Effects: []Spec{{Kind: KindGDPGrowth, Value: -0.002, Label: "Économie de guerre"}}},
		},
		GlobalEffects: []Spec{
			{Kind: KindPopulationGrowth, Value: 0.0002, Label: "Croissance mondiale"},
		},
	}

	resolved := NewResolver().EffectsForCountry(rc)

	if len(resolved) != 4 {
		t.Fatalf("resolved %d effects, want 4", len(resolved))
	}

	// Country rows first, then the matching mobilisation level, then global.
	wantSources := []Source{SourceCountry, SourceCountry, SourceMobilisation, SourceGlobal}
	for i, want := range wantSources {
		if resolved[i].Source != want {
			t.Errorf("resolved[%d].Source = %s, want %s", i, resolved[i].Source, want)
		}
	}

	if resolved[0].Label != "Baby boom" {
		t.Errorf("resolved[0].Label = %q, want the stored name", resolved[0].Label)
	}
	if resolved[2].Value != -0.002 {
		t.Errorf("mobilisation effect value = %v, want the war level's", resolved[2].Value)
	}
	// The permanent country row kept no label, so the kind label applies.
	if resolved[1].Label == "" {
		t.Error("unnamed effect got no fallback label")
	}
}

func TestEffectsForCountryExtraSource(t *testing.T) {
	extra := func(ResolveContext) []ResolvedEffect {
		return []ResolvedEffect{{Kind: KindGDPGrowth, Value: 0.003, Source: Source("event"), Permanent: true}}
	}

	resolved := NewResolver(extra).EffectsForCountry(ResolveContext{})
	if len(resolved) != 1 || resolved[0].Source != Source("event") {
		t.Fatalf("extra source not appended: %+v", resolved)
	}
}
