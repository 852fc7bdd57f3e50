// Package prospect implements the prospect-theory expected utility engine.
// Households weigh a small set of hazard scenarios, distorting each
// scenario's objective probability through a sampled heterogeneity
// parameter and their current risk perception, and valuing monetary
// outcomes with a loss-averse power law. Parameter draws come from an
// injected random source so runs stay reproducible.
package prospect

import (
	"math"
	"math/rand"
)

// Parameter distributions from Haer et al. (2017). One set is sampled per
// decision, modeling household heterogeneity.
const (
	DeltaMean  = 0.69 // probability weighting curvature
	DeltaStd   = 0.025
	LambdaMean = 2.25 // loss aversion
	LambdaStd  = 1.0
	ThetaMean  = 0.88 // diminishing sensitivity
	ThetaStd   = 0.065
)

// minDelta keeps the weighting exponent finite when a draw lands near zero.
const minDelta = 0.05

// ScenarioOutlook is one hazard scenario as a household sees it: its
// subjective base-rate probability and the monetary damage it would cause
// with and without the adaptation measure in place. Outlook lists are
// built zipped, one entry per scenario, so probabilities and damages
// can never go out of step.
type ScenarioOutlook struct {
	Scenario          string
	Probability       float64
	DamageMitigated   float64
	DamageUnmitigated float64
}

// Params is one sampled set of prospect-theory parameters.
type Params struct {
	Delta  float64 // probability weighting curvature
	Lambda float64 // loss aversion coefficient
	Theta  float64 // diminishing sensitivity exponent
}

// Engine computes expected utilities. Not safe for concurrent use; each
// simulation owns one engine seeded from the run seed.
type Engine struct {
	rng *rand.Rand
}

// NewEngine creates an engine drawing its stochastic parameters from rng.
func NewEngine(rng *rand.Rand) *Engine {
	return &Engine{rng: rng}
}

// Sample draws a fresh parameter set. Draws that would make the weighting
// or value transforms ill-defined are clamped into range.
func (e *Engine) Sample() Params {
	p := Params{
		Delta:  e.sampleNormal(DeltaMean, DeltaStd),
		Lambda: e.sampleNormal(LambdaMean, LambdaStd),
		Theta:  e.sampleNormal(ThetaMean, ThetaStd),
	}
	if p.Delta < minDelta {
		p.Delta = minDelta
	}
	if p.Lambda < 0 {
		p.Lambda = 0
	}
	if p.Theta < 0 {
		p.Theta = 0
	}
	return p
}

// Compare returns the household's total expected utility for taking the
// adaptation measure and for skipping it, each summed over all scenarios.
// One parameter set is sampled per call and shared by both actions, so the
// comparison reflects the outcome difference rather than draw noise.
func (e *Engine) Compare(outlooks []ScenarioOutlook, perception, cost, subsidy float64) (adapt, noAdapt float64) {
	params := e.Sample()
	adapt = e.ExpectedUtility(outlooks, perception, cost, subsidy, true, params)
	noAdapt = e.ExpectedUtility(outlooks, perception, cost, subsidy, false, params)
	return adapt, noAdapt
}

// ExpectedUtility returns the total expected utility of one action under a
// given parameter set. For adapt, each scenario's outcome is the net
// measure cost plus the mitigated damage; otherwise the unmitigated damage
// alone. cost minus subsidy may be negative; an over-subsidized measure
// is a net gain, not an error.
func (e *Engine) ExpectedUtility(outlooks []ScenarioOutlook, perception, cost, subsidy float64, adapt bool, p Params) float64 {
	total := 0.0
	for _, o := range outlooks {
		var outcome float64
		if adapt {
			outcome = -(cost - subsidy) - o.DamageMitigated
		} else {
			outcome = -o.DamageUnmitigated
		}
		total += WeightProbability(o.Probability, perception, p) * Value(outcome, p)
	}
	return total
}

// WeightProbability converts an objective probability into a subjective
// decision weight: the Tversky-style curvature under the sampled
// heterogeneity parameter, then stretched or compressed by the household's
// risk perception, up to a factor of ten in either direction around the
// neutral perception of 0.5. Degenerate probabilities pass through
// unweighted so the transform never produces a non-finite result.
func WeightProbability(prob, perception float64, p Params) float64 {
	if prob <= 0 {
		return 0
	}
	if prob >= 1 {
		return 1
	}

	pd := math.Pow(prob, p.Delta)
	qd := math.Pow(1-prob, p.Delta)
	w := pd / math.Pow(pd+qd, 1/p.Delta)

	// Perception amplification: 10^(2*(perception-0.5)) spans [0.1, 10].
	w *= math.Pow(10, 2*(clamp01(perception)-0.5))

	if w > 1 {
		w = 1
	}
	if w < 0 || math.IsNaN(w) {
		w = 0
	}
	return w
}

// Value maps a monetary outcome to utility with loss aversion and
// diminishing sensitivity. Losses hurt more than equivalent gains help.
func Value(x float64, p Params) float64 {
	if x == 0 {
		return 0
	}
	if x > 0 {
		return math.Pow(x, p.Theta)
	}
	return -p.Lambda * math.Pow(-x, p.Theta)
}

func (e *Engine) sampleNormal(mean, std float64) float64 {
	return e.rng.NormFloat64()*std + mean
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
