// Package mobilisation derives a country's mobilisation level from its
// 0-500 score and the configured level thresholds.
package mobilisation

// Level is one of the five ordered mobilisation tiers.
type Level struct {
	Key              string `json:"key"`
	Label            string `json:"label"`
	DefaultThreshold int    `json:"default_threshold"`
}

// Levels lists the tiers from lowest to highest default threshold.
var Levels = []Level{
	{Key: "peace", Label: "Paix", DefaultThreshold: 0},
	{Key: "alert", Label: "Alerte", DefaultThreshold: 100},
	{Key: "crisis", Label: "Crise", DefaultThreshold: 200},
	{Key: "mobilisation", Label: "Mobilisation générale", DefaultThreshold: 300},
	{Key: "war", Label: "Guerre", DefaultThreshold: 400},
}

// ScoreMax bounds the mobilisation score.
const ScoreMax = 500

// LabelFor returns the display label of a level key, or the key itself
// when unknown.
func LabelFor(key string) string {
	for _, l := range Levels {
		if l.Key == key {
			return l.Label
		}
	}
	return key
}

// DefaultThresholds returns the built-in threshold map, used when the
// mobilisation_level_thresholds rule is missing or malformed.
func DefaultThresholds() map[string]int {
	thresholds := make(map[string]int, len(Levels))
	for _, l := range Levels {
		thresholds[l.Key] = l.DefaultThreshold
	}
	return thresholds
}

// LevelForScore returns the level whose threshold is the highest one at or
// below score, ties broken by the higher threshold. With no thresholds
// configured the lowest level applies.
func LevelForScore(score int, thresholds map[string]int) string {
	if len(thresholds) == 0 {
		thresholds = DefaultThresholds()
	}
	if len(thresholds) == 0 {
		return Levels[0].Key
	}

	bestKey := ""
	bestThreshold := -1
	lowestKey := ""
	lowestThreshold := 0

	// Iterate the canonical level order first so equal thresholds resolve
	// deterministically, then any extra configured keys.
	for _, l := range Levels {
		threshold, ok := thresholds[l.Key]
		if !ok {
			continue
		}
		if lowestKey == "" || threshold < lowestThreshold {
			lowestKey, lowestThreshold = l.Key, threshold
		}
		if threshold <= score && threshold >= bestThreshold {
			bestKey, bestThreshold = l.Key, threshold
		}
	}

	if bestKey == "" {
		// Score below every threshold: fall back to the lowest configured level.
		if lowestKey != "" {
			return lowestKey
		}
		return Levels[0].Key
	}
	return bestKey
}

// ClampScore bounds a score into [0, ScoreMax].
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > ScoreMax {
		return ScoreMax
	}
	return score
}
