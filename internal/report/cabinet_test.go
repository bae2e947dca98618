package report

import (
	"reflect"
	"strings"
	"testing"

	"nations-server/internal/country"
	"nations-server/internal/projection"
	"nations-server/internal/rules"
)

func TestPickIndex(t *testing.T) {
	// hash(0, "a", 0) = (0*31+97)*31+0 = 3007, 3007 % 100 = 7.
	if got := pickIndex(0, "a", 0, 100); got != 7 {
		t.Errorf("pickIndex(0, a, 0, 100) = %d, want 7", got)
	}

	// A negative intermediate hash still maps into range.
	if got := pickIndex(-1000000, "a", 0, 100); got != 7 {
		t.Errorf("pickIndex(-1000000, a, 0, 100) = %d, want 7", got)
	}

	for seed := int64(-3); seed <= 3; seed++ {
		for index := 0; index < 5; index++ {
			a := pickIndex(seed, "education:science", index, 12)
			b := pickIndex(seed, "education:science", index, 12)
			if a != b {
				t.Fatalf("pickIndex not deterministic for seed %d index %d", seed, index)
			}
			if a < 0 || a >= 12 {
				t.Fatalf("pickIndex out of range: %d", a)
			}
		}
	}

	if got := pickIndex(42, "anything", 1, 0); got != 0 {
		t.Errorf("pickIndex with no variants = %d, want 0", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		rateLike bool
		want     magnitude
	}{
		{name: "tiny rate is noise", value: 0.0004, rateLike: true, want: magNone},
		{name: "rate weak boundary", value: 0.0005, rateLike: true, want: magWeak},
		{name: "rate moderate", value: 0.003, rateLike: true, want: magModerate},
		{name: "rate strong", value: 0.005, rateLike: true, want: magStrong},
		{name: "negative rate classified by magnitude", value: -0.003, rateLike: true, want: magModerate},
		{name: "tiny delta is noise", value: 0.01, want: magNone},
		{name: "delta weak", value: 0.05, want: magWeak},
		{name: "delta moderate", value: 0.15, want: magModerate},
		{name: "delta strong boundary", value: 0.30, want: magStrong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.value, tt.rateLike); got != tt.want {
				t.Errorf("classify(%v, %v) = %d, want %d", tt.value, tt.rateLike, got, tt.want)
			}
		})
	}
}

func emptyInputs() projection.Inputs {
	inputs := projection.Inputs{
		BudgetPopulationSources: make(projection.SourceMap),
		BudgetGDPSources:        make(projection.SourceMap),
		BudgetStatSources:       make(map[country.StatKey]projection.SourceMap),
	}
	for _, stat := range country.StatKeys {
		inputs.BudgetStatSources[stat] = make(projection.SourceMap)
	}
	return inputs
}

func TestBuildCabinetReportSilence(t *testing.T) {
	expected := &projection.Projection{Inputs: emptyInputs()}

	// A well-funded ministry whose action is negligible stays silent.
	expected.Inputs.BudgetStatSources[country.StatScience][rules.MinistryEducation] = projection.SourceContribution{
		MinistryID: rules.MinistryEducation,
		Label:      "Éducation",
		Value:      0.001,
		Raw:        0.001,
	}

	blocks, err := BuildCabinetReport(expected, 7)
	if err != nil {
		t.Fatalf("BuildCabinetReport: %v", err)
	}
	if len(blocks) != 0 {
		t.Fatalf("expected no blocks, got %d", len(blocks))
	}
}

func TestBuildCabinetReportInsufficientFunding(t *testing.T) {
	expected := &projection.Projection{Inputs: emptyInputs()}

	// Starved ministry: negative contribution, below the weak threshold.
	// The shortfall alone must force a block.
	expected.Inputs.BudgetStatSources[country.StatScience][rules.MinistryResearch] = projection.SourceContribution{
		MinistryID: rules.MinistryResearch,
		Label:      "Recherche",
		Value:      -0.01,
		Raw:        -0.01,
	}

	blocks, err := BuildCabinetReport(expected, 7)
	if err != nil {
		t.Fatalf("BuildCabinetReport: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}

	block := blocks[0]
	if block.MinistryID != rules.MinistryResearch {
		t.Errorf("block ministry = %s, want research", block.MinistryID)
	}
	if len(block.Paragraphs) < 2 {
		t.Fatalf("expected a funding paragraph plus stat sentences, got %d", len(block.Paragraphs))
	}
	if !strings.Contains(block.Paragraphs[0], "Recherche") {
		t.Errorf("funding paragraph does not name the ministry: %q", block.Paragraphs[0])
	}

	bank, err := loadBank()
	if err != nil {
		t.Fatalf("loadBank: %v", err)
	}
	found := false
	for _, phrase := range bank.Funding.Insufficient {
		candidate := strings.ReplaceAll(phrase, "[ministère]", "Recherche")
		if block.Paragraphs[0] == candidate {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("funding paragraph not drawn from the insufficient variants: %q", block.Paragraphs[0])
	}
}

func TestBuildCabinetReportGravitySentence(t *testing.T) {
	expected := &projection.Projection{Inputs: emptyInputs()}

	expected.Inputs.BudgetStatSources[country.StatMilitarism][rules.MinistryDefense] = projection.SourceContribution{
		MinistryID: rules.MinistryDefense,
		Label:      "Défense",
		Value:      0.5,
		Raw:        0.45,
		Gravity: &projection.GravityInfo{
			Base:       0.45,
			WorldAvg:   6,
			CountryVal: 4,
			GravityPct: 15,
			Factor:     1.05,
		},
	}

	blocks, err := BuildCabinetReport(expected, 3)
	if err != nil {
		t.Fatalf("BuildCabinetReport: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}

	bank, err := loadBank()
	if err != nil {
		t.Fatalf("loadBank: %v", err)
	}

	var sentence string
	for _, p := range blocks[0].Paragraphs[1:] {
		if strings.Contains(p, "le militarisme") {
			sentence = p
			break
		}
	}
	if sentence == "" {
		t.Fatal("no paragraph mentions the militarism stat")
	}
	if !strings.HasSuffix(sentence, bank.Gravity.PositiveBehind) {
		t.Errorf("missing catch-up sentence on a below-average country: %q", sentence)
	}
}

func TestBuildCabinetReportDeterministic(t *testing.T) {
	expected := &projection.Projection{Inputs: emptyInputs()}
	expected.Inputs.BudgetGDPSources[rules.MinistryIndustry] = projection.SourceContribution{
		MinistryID: rules.MinistryIndustry,
		Label:      "Industrie",
		Value:      0.004,
		Raw:        0.004,
	}
	expected.Inputs.BudgetStatSources[country.StatIndustry][rules.MinistryIndustry] = projection.SourceContribution{
		MinistryID: rules.MinistryIndustry,
		Label:      "Industrie",
		Value:      0.2,
		Raw:        0.2,
	}

	a, err := BuildCabinetReport(expected, 1234)
	if err != nil {
		t.Fatalf("BuildCabinetReport: %v", err)
	}
	b, err := BuildCabinetReport(expected, 1234)
	if err != nil {
		t.Fatalf("BuildCabinetReport: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different reports")
	}

	c, err := BuildCabinetReport(expected, 1235)
	if err != nil {
		t.Fatalf("BuildCabinetReport: %v", err)
	}
	if len(a) != len(c) {
		t.Fatalf("seed changed the block structure: %d vs %d", len(a), len(c))
	}
}

func TestCapitalize(t *testing.T) {
	if got := capitalize("la population progresse"); got != "La population progresse" {
		t.Errorf("capitalize = %q", got)
	}
	if got := capitalize("étonnant"); got != "Étonnant" {
		t.Errorf("capitalize of an accented rune = %q", got)
	}
	if got := capitalize(""); got != "" {
		t.Errorf("capitalize of empty = %q", got)
	}
}
