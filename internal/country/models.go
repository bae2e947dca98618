package country

import "time"

// StatKey identifies one of the four bounded country stats.
type StatKey string

const (
	StatMilitarism StatKey = "militarism"
	StatIndustry   StatKey = "industry"
	StatScience    StatKey = "science"
	StatStability  StatKey = "stability"
)

// StatKeys lists the bounded stats in display order.
var StatKeys = []StatKey{StatMilitarism, StatIndustry, StatScience, StatStability}

// Snapshot is the point-in-time view of a country's simulated values.
// Militarism, industry and science live in [0,10], stability in [-3,3],
// all with two-decimal precision. It is read-only to the calculation
// layer; only the tick job and admin edits mutate the underlying row.
type Snapshot struct {
	ID                int       `json:"id"`
	Name              string    `json:"name"`
	PlayerID          *int      `json:"player_id,omitempty"`
	Population        int64     `json:"population"`
	GDP               float64   `json:"gdp"`
	Militarism        float64   `json:"militarism"`
	Industry          float64   `json:"industry"`
	Science           float64   `json:"science"`
	Stability         float64   `json:"stability"`
	MobilisationScore int       `json:"mobilisation_score"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Stat returns the value of a bounded stat by key, or 0 for unknown keys.
func (s *Snapshot) Stat(key StatKey) float64 {
	switch key {
	case StatMilitarism:
		return s.Militarism
	case StatIndustry:
		return s.Industry
	case StatScience:
		return s.Science
	case StatStability:
		return s.Stability
	}
	return 0
}

// WorldAverages holds the mean of every simulated value over all
// countries. Used as the regression target for the gravity adjustment.
type WorldAverages struct {
	Population float64 `json:"population"`
	GDP        float64 `json:"gdp"`
	Militarism float64 `json:"militarism"`
	Industry   float64 `json:"industry"`
	Science    float64 `json:"science"`
	Stability  float64 `json:"stability"`
}

// Stat returns the world average of a bounded stat by key.
func (w *WorldAverages) Stat(key StatKey) float64 {
	switch key {
	case StatMilitarism:
		return w.Militarism
	case StatIndustry:
		return w.Industry
	case StatScience:
		return w.Science
	case StatStability:
		return w.Stability
	}
	return 0
}
