// Package perception implements the Bayesian risk perception update:
// each step a household blends its prior perception with its own flood
// experience, the mean perception of its network neighbors, and the media
// signal shaped by government information policy. The result is always a
// value in [0,1].
package perception

// Updater holds the blending weights and trust bands. The zero value is not
// usable; construct with NewUpdater.
type Updater struct {
	// Self-persistence and experience weights switch on whether a flood
	// happened this step. A flood overwhelms the prior (b=1, a=0.1); calm
	// years decay perception slowly back toward baseline (b=0.04, a=1).
	SelfWeightCalm       float64
	SelfWeightFlood      float64
	ExperienceWeightCalm float64
	ExperienceWeightFlood float64

	// Trust gating bands for social and media signals: a signal within
	// AgreeBand of the prior is fully trusted, one further than
	// DismissBand away is discounted entirely, anything between gets
	// half weight.
	AgreeBand   float64
	DismissBand float64
}

// NewUpdater returns an updater with the model's standard weights.
func NewUpdater() *Updater {
	return &Updater{
		SelfWeightCalm:        1.0,
		SelfWeightFlood:       0.1,
		ExperienceWeightCalm:  0.04,
		ExperienceWeightFlood: 1.0,
		AgreeBand:             0.2,
		DismissBand:           0.8,
	}
}

// Update blends the four signals into a new perception value in [0,1].
// prior is nil on a household's first step and treated as 0.
func (u *Updater) Update(prior *float64, social, media float64, flooded bool) float64 {
	p := 0.0
	if prior != nil {
		p = *prior
	}

	selfWeight := u.SelfWeightCalm
	expWeight := u.ExperienceWeightCalm
	experience := 0.0
	if flooded {
		selfWeight = u.SelfWeightFlood
		expWeight = u.ExperienceWeightFlood
		experience = 1.0
	}

	socialWeight := u.trustWeight(social, p)
	mediaWeight := u.trustWeight(media, p)

	sum := selfWeight + expWeight + socialWeight + mediaWeight
	blended := (selfWeight*p + expWeight*experience + socialWeight*social + mediaWeight*media) / sum
	return clamp01(blended)
}

// trustWeight gates an external signal by how far it sits from the prior:
// strong agreement reinforces, strong disagreement is dismissed, and an
// ambiguous difference gets partial weight.
func (u *Updater) trustWeight(signal, prior float64) float64 {
	diff := signal - prior
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff <= u.AgreeBand:
		return 1.0
	case diff > u.DismissBand:
		return 0.0
	default:
		return 0.5
	}
}

// SocialSignal aggregates neighbor perceptions into a single signal. A
// household with no neighbors hears no dissent, which reads as maximal
// agreement: 1.0, never a mean over an empty set.
func SocialSignal(neighborPerceptions []float64) float64 {
	if len(neighborPerceptions) == 0 {
		return 1.0
	}
	sum := 0.0
	for _, v := range neighborPerceptions {
		sum += v
	}
	return sum / float64(len(neighborPerceptions))
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
