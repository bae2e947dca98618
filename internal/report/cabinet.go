package report

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"nations-server/internal/country"
	"nations-server/internal/projection"
	"nations-server/internal/rules"
)

// MinistryBlock is one ministry's paragraph group in the cabinet report.
type MinistryBlock struct {
	MinistryID rules.MinistryID `json:"ministry_id"`
	Label      string           `json:"label"`
	Paragraphs []string         `json:"paragraphs"`
}

// Magnitude thresholds on the absolute contribution. Growth targets are
// monthly rates, bounded stats are direct deltas, so the two scales
// differ.
const (
	rateWeak     = 0.0005
	rateModerate = 0.002
	rateStrong   = 0.005

	deltaWeak     = 0.02
	deltaModerate = 0.10
	deltaStrong   = 0.30
)

type magnitude int

const (
	magNone magnitude = iota
	magWeak
	magModerate
	magStrong
)

// reportTarget names one thing a ministry can move, with its French
// display form and whether the contribution is a rate or a delta.
type reportTarget struct {
	key      string
	display  string
	rateLike bool
}

var reportTargets = []reportTarget{
	{key: "population", display: "la population", rateLike: true},
	{key: "gdp", display: "le PIB", rateLike: true},
	{key: string(country.StatMilitarism), display: "le militarisme"},
	{key: string(country.StatIndustry), display: "l'industrie"},
	{key: string(country.StatScience), display: "la science"},
	{key: string(country.StatStability), display: "la stabilité"},
}

func classify(value float64, rateLike bool) magnitude {
	abs := value
	if abs < 0 {
		abs = -abs
	}
	weak, moderate, strong := deltaWeak, deltaModerate, deltaStrong
	if rateLike {
		weak, moderate, strong = rateWeak, rateModerate, rateStrong
	}
	switch {
	case abs < weak:
		return magNone
	case abs < moderate:
		return magWeak
	case abs < strong:
		return magModerate
	default:
		return magStrong
	}
}

func (b *PhraseBank) magnitudeVariants(mag magnitude, improve bool) []string {
	switch mag {
	case magWeak:
		if improve {
			return b.Magnitude.WeakImprove
		}
		return b.Magnitude.WeakDecline
	case magModerate:
		if improve {
			return b.Magnitude.ModerateImprove
		}
		return b.Magnitude.ModerateDecline
	case magStrong:
		if improve {
			return b.Magnitude.StrongImprove
		}
		return b.Magnitude.StrongDecline
	}
	return b.Magnitude.None
}

func (b *PhraseBank) gravityPhrase(positive, behind bool) string {
	switch {
	case positive && behind:
		return b.Gravity.PositiveBehind
	case positive:
		return b.Gravity.PositiveAhead
	case behind:
		return b.Gravity.NegativeBehind
	default:
		return b.Gravity.NegativeAhead
	}
}

// capitalize uppercases the first rune, so sentences that open with a
// substituted stat name ("la population devrait…") read properly.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// ministryContribution returns the ministry's contribution toward one
// target, or false when the ministry does not touch it.
func ministryContribution(inputs *projection.Inputs, id rules.MinistryID, target reportTarget) (projection.SourceContribution, bool) {
	switch target.key {
	case "population":
		c, ok := inputs.BudgetPopulationSources[id]
		return c, ok
	case "gdp":
		c, ok := inputs.BudgetGDPSources[id]
		return c, ok
	default:
		c, ok := inputs.BudgetStatSources[country.StatKey(target.key)][id]
		return c, ok
	}
}

// BuildCabinetReport renders the monthly prose blocks from a projection.
// The seed fixes every phrase choice, so the same country and month
// always read the same report. A ministry only gets a block when at
// least one of its contributions is significant or its funding falls
// short; ministries whose action is entirely negligible stay silent.
func BuildCabinetReport(expected *projection.Projection, seed int64) ([]MinistryBlock, error) {
	bank, err := loadBank()
	if err != nil {
		return nil, err
	}

	blocks := make([]MinistryBlock, 0, len(rules.Ministries))
	for _, ministry := range rules.Ministries {
		insufficient := false
		significant := 0
		paragraphs := make([]string, 0, len(reportTargets))

		for i, target := range reportTargets {
			contribution, ok := ministryContribution(&expected.Inputs, ministry.ID, target)
			if !ok {
				continue
			}
			if contribution.Value < 0 {
				insufficient = true
			}

			mag := classify(contribution.Value, target.rateLike)
			if mag != magNone {
				significant++
			}

			variants := bank.magnitudeVariants(mag, contribution.Value >= 0)
			key := string(ministry.ID) + ":" + target.key
			phrase := variants[pickIndex(seed, key, i+1, len(variants))]
			sentence := capitalize(strings.ReplaceAll(phrase, "[stat]", target.display))

			if g := contribution.Gravity; g != nil && g.WorldAvg > 0 && mag != magNone {
				sentence += " " + bank.gravityPhrase(contribution.Value >= 0, g.CountryVal < g.WorldAvg)
			}
			paragraphs = append(paragraphs, sentence)
		}

		if len(paragraphs) == 0 || (significant == 0 && !insufficient) {
			continue
		}

		fundingVariants := bank.Funding.Sufficient
		if insufficient {
			fundingVariants = bank.Funding.Insufficient
		}
		funding := fundingVariants[pickIndex(seed, string(ministry.ID)+":funding", 0, len(fundingVariants))]
		funding = strings.ReplaceAll(funding, "[ministère]", ministry.Label)

		blocks = append(blocks, MinistryBlock{
			MinistryID: ministry.ID,
			Label:      ministry.Label,
			Paragraphs: append([]string{funding}, paragraphs...),
		})
	}

	return blocks, nil
}
