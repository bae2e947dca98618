package projection

// Gravity factor bounds. The factor can dampen a contribution to a tenth
// or at most double it, whatever the configured sensitivity.
const (
	gravityFactorMin = 0.1
	gravityFactorMax = 2.0
)

// gravityFactor computes the regression-to-world-mean multiplier for one
// budget contribution. A country below the world average gets positive
// contributions amplified and negative ones dampened; above average the
// reverse. A zero world average disables the adjustment entirely.
func gravityFactor(gravityPct, worldAvg, countryVal, contribution float64) float64 {
	if worldAvg == 0 {
		return 1
	}

	ratio := (worldAvg - countryVal) / worldAvg
	if contribution < 0 {
		ratio = -ratio
	}

	factor := 1 + (gravityPct/100)*ratio
	if factor < gravityFactorMin {
		return gravityFactorMin
	}
	if factor > gravityFactorMax {
		return gravityFactorMax
	}
	return factor
}
