package report

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

//go:embed phrases.toml
var phrasesTOML []byte

// PhraseBank holds the French phrase variants the report generator
// draws from. Each magnitude list carries twelve variants so the same
// bucket reads differently across ministries and months.
type PhraseBank struct {
	Funding struct {
		Sufficient   []string `toml:"sufficient"`
		Insufficient []string `toml:"insufficient"`
	} `toml:"funding"`
	Magnitude struct {
		None            []string `toml:"none"`
		WeakImprove     []string `toml:"weak_improve"`
		WeakDecline     []string `toml:"weak_decline"`
		ModerateImprove []string `toml:"moderate_improve"`
		ModerateDecline []string `toml:"moderate_decline"`
		StrongImprove   []string `toml:"strong_improve"`
		StrongDecline   []string `toml:"strong_decline"`
	} `toml:"magnitude"`
	Gravity struct {
		PositiveBehind string `toml:"positive_behind"`
		PositiveAhead  string `toml:"positive_ahead"`
		NegativeBehind string `toml:"negative_behind"`
		NegativeAhead  string `toml:"negative_ahead"`
	} `toml:"gravity"`
}

var (
	bankOnce sync.Once
	bank     PhraseBank
	bankErr  error
)

func loadBank() (*PhraseBank, error) {
	bankOnce.Do(func() {
		if err := toml.Unmarshal(phrasesTOML, &bank); err != nil {
			bankErr = fmt.Errorf("error parsing embedded phrase bank: %w", err)
			return
		}
		if len(bank.Funding.Sufficient) == 0 || len(bank.Magnitude.None) == 0 {
			bankErr = fmt.Errorf("embedded phrase bank is incomplete")
		}
	})
	if bankErr != nil {
		return nil, bankErr
	}
	return &bank, nil
}
