// Depth-damage curves, logarithmic regressions over the de Moel & Huizinga
// (2017) depth-damage tables.
package hazard

import "math"

// Regression coefficients shared by both curves.
const (
	damageLogCoeff  = 0.1746
	damageIntercept = 0.6483
)

// Curve thresholds. The mitigation retrofit elevates the structure, so
// shallow water that would flood an unmodified house passes under an
// elevated one: the mitigated curve floors a full meter higher and
// saturates a meter deeper.
const (
	unmitigatedSaturation = 6.0
	unmitigatedFloor      = 0.025
	mitigatedSaturation   = 7.0
	mitigatedFloor        = 1.025
)

// UnmitigatedFraction returns the damage fraction in [0,1] for a structure
// with no adaptation measure. Saturates to total loss at 6m depth, zero
// below 2.5cm.
func UnmitigatedFraction(depth float64) float64 {
	if depth >= unmitigatedSaturation {
		return 1
	}
	if depth < unmitigatedFloor {
		return 0
	}
	return clampFraction(damageLogCoeff*math.Log(depth) + damageIntercept)
}

// MitigatedFraction returns the damage fraction in [0,1] for an elevated
// structure. The curve evaluates the same regression on the depth reduced
// by the elevation offset, saturating at 7m and flooring just above the
// elevation height. For any depth between floor and saturation the
// mitigated damage is strictly below the unmitigated damage.
func MitigatedFraction(depth float64) float64 {
	if depth >= mitigatedSaturation {
		return 1
	}
	if depth < mitigatedFloor {
		return 0
	}
	return clampFraction(damageLogCoeff*math.Log(depth-1) + damageIntercept)
}

func clampFraction(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
