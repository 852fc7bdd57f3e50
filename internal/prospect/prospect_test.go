package prospect

import (
	"math"
	"math/rand"
	"testing"
)

func TestWeightProbabilityBounded(t *testing.T) {
	eng := NewEngine(rand.New(rand.NewSource(1)))

	probs := []float64{0, 1e-9, 0.002, 0.01, 0.1, 0.5, 0.9, 0.999, 1}
	perceptions := []float64{0, 0.25, 0.5, 0.75, 1, -0.5, 1.5}

	for i := 0; i < 200; i++ {
		p := eng.Sample()
		for _, prob := range probs {
			for _, rp := range perceptions {
				w := WeightProbability(prob, rp, p)
				if math.IsNaN(w) || math.IsInf(w, 0) {
					t.Fatalf("non-finite weight for prob=%g perception=%g", prob, rp)
				}
				if w < 0 || w > 1 {
					t.Fatalf("weight out of [0,1]: %g for prob=%g perception=%g", w, prob, rp)
				}
			}
		}
	}
}

func TestWeightDegenerateProbabilities(t *testing.T) {
	p := Params{Delta: DeltaMean, Lambda: LambdaMean, Theta: ThetaMean}

	if got := WeightProbability(0, 1, p); got != 0 {
		t.Fatalf("weight of impossible event = %g, want 0", got)
	}
	if got := WeightProbability(1, 0, p); got != 1 {
		t.Fatalf("weight of certain event = %g, want 1", got)
	}
}

func TestPerceptionAmplifiesWeight(t *testing.T) {
	p := Params{Delta: DeltaMean, Lambda: LambdaMean, Theta: ThetaMean}

	low := WeightProbability(0.01, 0.0, p)
	neutral := WeightProbability(0.01, 0.5, p)
	high := WeightProbability(0.01, 1.0, p)

	if !(low < neutral && neutral < high) {
		t.Fatalf("perception should order weights: low=%g neutral=%g high=%g", low, neutral, high)
	}
	ratio := high / low
	if ratio < 50 || ratio > 150 {
		t.Fatalf("perception swing should span about two orders of magnitude, got ratio %g", ratio)
	}
}

func TestValueLossAversion(t *testing.T) {
	p := Params{Delta: DeltaMean, Lambda: LambdaMean, Theta: ThetaMean}

	loss := Value(-1000, p)
	gain := Value(1000, p)

	if loss >= 0 {
		t.Fatalf("loss utility should be negative, got %g", loss)
	}
	if gain <= 0 {
		t.Fatalf("gain utility should be positive, got %g", gain)
	}
	if -loss <= gain {
		t.Fatalf("losses should loom larger than gains: |%g| vs %g", loss, gain)
	}
	if got := Value(0, p); got != 0 {
		t.Fatalf("zero outcome utility = %g, want 0", got)
	}
}

func TestFullySubsidizedMeasurePreferred(t *testing.T) {
	// A household with maximal risk perception, a deep flood scenario, and
	// the measure fully covered by subsidy should prefer adapting in the
	// overwhelming majority of stochastic trials.
	eng := NewEngine(rand.New(rand.NewSource(7)))

	const scale = 150000.0
	outlooks := []ScenarioOutlook{
		{
			Scenario:          "100yr",
			Probability:       0.01,
			DamageMitigated:   0.890 * scale, // depth 5, elevated
			DamageUnmitigated: 0.929 * scale, // depth 5
		},
		{Scenario: "none", Probability: 0.99},
	}

	const trials = 1000
	wins := 0
	for i := 0; i < trials; i++ {
		adapt, noAdapt := eng.Compare(outlooks, 1.0, 35000, 35000)
		if adapt > noAdapt {
			wins++
		}
	}

	if wins < trials*95/100 {
		t.Fatalf("adapt preferred in only %d/%d trials, want >= 95%%", wins, trials)
	}
}

func TestOverSubsidizedCostIsNotAnError(t *testing.T) {
	eng := NewEngine(rand.New(rand.NewSource(3)))

	outlooks := []ScenarioOutlook{
		{Scenario: "none", Probability: 1.0},
	}

	// Subsidy above cost: the adapt outcome is a pure gain.
	adapt, noAdapt := eng.Compare(outlooks, 0.5, 1000, 5000)
	if math.IsNaN(adapt) || math.IsInf(adapt, 0) {
		t.Fatalf("non-finite utility for net-positive cash position: %g", adapt)
	}
	if adapt <= noAdapt {
		t.Fatalf("free money should be preferred: adapt=%g noAdapt=%g", adapt, noAdapt)
	}
}
