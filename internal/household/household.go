// Package household provides the household agent: its state, its creation
// from the hazard layer and income distribution, and its per-step belief
// update and adaptation decision.
package household

import (
	"math/rand"

	"github.com/talgya/flood-adapt/internal/geometry"
	"github.com/talgya/flood-adapt/internal/perception"
	"github.com/talgya/flood-adapt/internal/prospect"
)

// IncomeCategory buckets households by income tier, which sets the savings
// range they start in.
type IncomeCategory uint8

const (
	IncomeLow IncomeCategory = iota
	IncomeMiddle
	IncomeHigh
)

// String returns the tier name.
func (c IncomeCategory) String() string {
	switch c {
	case IncomeLow:
		return "low"
	case IncomeMiddle:
		return "middle"
	case IncomeHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Agent is one household in the simulation.
type Agent struct {
	ID       int
	Location geometry.Point // immutable after creation
	Income   IncomeCategory
	Savings  float64

	// Per-scenario hazard estimates, computed once at creation and zipped
	// with the scenario probabilities. Immutable after creation.
	Outlook         []prospect.ScenarioOutlook
	EstimatedDepths []float64 // aligned with Outlook, for reporting

	// Realized flood figures: zero until the shock step, then set exactly
	// once and held constant.
	ActualDepth  float64
	ActualDamage float64
	shocked      bool

	// Beliefs. RiskPerception is always in [0,1]; prior is nil before the
	// first update.
	RiskPerception  float64
	PriorPerception *float64

	// Derived each step, not persisted state.
	UtilityAdapt   float64
	UtilityNoAdapt float64

	// Adaptation status. IsAdapted never reverts; AdaptedAtStep is -1
	// until the household adapts.
	IsAdapted     bool
	AdaptedAtStep int
}

// StepInput carries everything a household reads during one step beyond its
// own state.
type StepInput struct {
	Step         int
	SocialSignal float64 // mean neighbor perception from the step snapshot
	MediaSignal  float64
	Flooded      bool // the flood shock hits this step

	Cost             float64 // adaptation measure price before subsidy
	Subsidy          float64
	ReserveThreshold float64

	SavingsNoiseMin float64
	SavingsNoiseMax float64
}

// Step runs one tick for the household: capture the prior perception,
// blend in this step's signals, re-derive the expected utilities, apply
// the adaptation rule, and perturb savings.
func (a *Agent) Step(in StepInput, upd *perception.Updater, eng *prospect.Engine, rng *rand.Rand) {
	prior := a.RiskPerception
	a.PriorPerception = &prior

	a.RiskPerception = upd.Update(a.PriorPerception, in.SocialSignal, in.MediaSignal, in.Flooded)

	a.UtilityAdapt, a.UtilityNoAdapt = eng.Compare(a.Outlook, a.RiskPerception, in.Cost, in.Subsidy)

	// Adapt once: the utilities must favor the measure and savings must
	// cover the net cost while leaving the reserve intact.
	if !a.IsAdapted &&
		a.UtilityAdapt > a.UtilityNoAdapt &&
		a.Savings > in.Cost-in.Subsidy+in.ReserveThreshold {
		a.IsAdapted = true
		a.AdaptedAtStep = in.Step
		a.Savings -= in.Cost - in.Subsidy
	}

	// Routine income/expense variance, applied every step.
	noise := in.SavingsNoiseMin + rng.Float64()*(in.SavingsNoiseMax-in.SavingsNoiseMin)
	a.Savings *= noise
	if a.Savings < 0 {
		a.Savings = 0
	}
}

// ApplyShock records the realized flood for this household: depth from the
// realized hazard map and damage from the curve matching its adaptation
// status at this moment. Applies exactly once; later calls are no-ops so a
// re-entered shock step cannot overwrite the realized figures.
func (a *Agent) ApplyShock(depth float64, damage float64) {
	if a.shocked {
		return
	}
	a.shocked = true
	if depth < 0 {
		depth = 0
	}
	a.ActualDepth = depth
	a.ActualDamage = damage
}

// Shocked reports whether the flood shock has been applied to this household.
func (a *Agent) Shocked() bool { return a.shocked }
