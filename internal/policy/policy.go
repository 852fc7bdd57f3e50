// Package policy models the government actor: it subsidizes adaptation
// measures, runs an information campaign that biases the media signal, and
// tracks what both cost over the run.
package policy

// NeutralMedia is the media signal absent any information campaign.
const NeutralMedia = 0.5

// DefaultCampaignCostRate is the per-step campaign cost for a full-strength
// information bias of +/-0.5.
const DefaultCampaignCostRate = 10000.0

// Government holds the policy levers and the running spending total.
type Government struct {
	// SubsidyLevel is paid out once per household that adapts.
	SubsidyLevel float64
	// InformationBias shifts the media signal off the neutral midpoint;
	// positive values push risk awareness up, negative play it down.
	InformationBias float64
	// CampaignCostRate scales the per-step cost of a non-neutral campaign.
	CampaignCostRate float64

	spending    float64
	prevAdapted int
}

// New creates a government with the given subsidy level and information bias.
func New(subsidyLevel, informationBias float64) *Government {
	return &Government{
		SubsidyLevel:     subsidyLevel,
		InformationBias:  informationBias,
		CampaignCostRate: DefaultCampaignCostRate,
	}
}

// MediaSignal returns the risk signal broadcast to households this step:
// the neutral midpoint shifted by the information bias, clamped to [0,1].
func (g *Government) MediaSignal() float64 {
	v := NeutralMedia + g.InformationBias
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Step accrues this tick's spending: campaign cost proportional to how far
// the bias sits from neutral, plus subsidy payouts for every household that
// newly adapted since the previous tick. Called exactly once per tick,
// after all households have stepped.
func (g *Government) Step(totalAdapted int) {
	if g.InformationBias != 0 {
		bias := g.InformationBias
		if bias < 0 {
			bias = -bias
		}
		g.spending += g.CampaignCostRate * bias / NeutralMedia
	}

	delta := totalAdapted - g.prevAdapted
	if delta > 0 {
		g.spending += g.SubsidyLevel * float64(delta)
	}
	g.prevAdapted = totalAdapted
}

// Spending returns the cumulative government spending. Never decreases.
func (g *Government) Spending() float64 { return g.spending }
