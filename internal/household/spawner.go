// Household spawning: places the initial population inside the model
// domain and computes each household's per-scenario hazard estimates once.
package household

import (
	"math/rand"
	"sort"

	"github.com/talgya/flood-adapt/internal/config"
	"github.com/talgya/flood-adapt/internal/geometry"
	"github.com/talgya/flood-adapt/internal/hazard"
	"github.com/talgya/flood-adapt/internal/prospect"
)

// Spawner creates households for the simulation.
type Spawner struct {
	rng    *rand.Rand
	world  *geometry.World
	hazard *hazard.Set
	cfg    *config.Config
	nextID int
}

// NewSpawner creates a household spawner with its own RNG stream derived
// from the run seed.
func NewSpawner(seed int64, world *geometry.World, hz *hazard.Set, cfg *config.Config) *Spawner {
	return &Spawner{
		rng:    rand.New(rand.NewSource(seed + 300)),
		world:  world,
		hazard: hz,
		cfg:    cfg,
	}
}

// SpawnPopulation creates the configured number of households.
func (s *Spawner) SpawnPopulation() ([]*Agent, error) {
	agents := make([]*Agent, 0, s.cfg.Population)
	for i := 0; i < s.cfg.Population; i++ {
		a, err := s.spawnOne()
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, nil
}

func (s *Spawner) spawnOne() (*Agent, error) {
	id := s.nextID
	s.nextID++

	loc := s.world.RandomLocation(s.rng)
	income := s.drawIncome()
	tier := s.tierFor(income)
	savings := tier.SavingsMin + s.rng.Float64()*(tier.SavingsMax-tier.SavingsMin)

	outlook, depths, err := s.buildOutlook(loc)
	if err != nil {
		return nil, err
	}

	return &Agent{
		ID:              id,
		Location:        loc,
		Income:          income,
		Savings:         savings,
		Outlook:         outlook,
		EstimatedDepths: depths,
		AdaptedAtStep:   -1,
	}, nil
}

// buildOutlook queries every configured scenario once, zipping each
// scenario's probability with its estimated damages. The explicit no-event
// scenario takes the probability mass the flood scenarios leave over, with
// zero damage.
func (s *Spawner) buildOutlook(loc geometry.Point) ([]prospect.ScenarioOutlook, []float64, error) {
	names := make([]string, 0, len(s.cfg.ScenarioProbabilities))
	for name := range s.cfg.ScenarioProbabilities {
		names = append(names, name)
	}
	sort.Strings(names)

	outlook := make([]prospect.ScenarioOutlook, 0, len(names)+1)
	depths := make([]float64, 0, len(names)+1)

	remaining := 1.0
	for _, name := range names {
		p := s.cfg.ScenarioProbabilities[name]
		depth, err := s.hazard.DepthAt(loc, name)
		if err != nil {
			return nil, nil, err
		}
		outlook = append(outlook, prospect.ScenarioOutlook{
			Scenario:          name,
			Probability:       p,
			DamageMitigated:   s.hazard.Damage(depth, true),
			DamageUnmitigated: s.hazard.Damage(depth, false),
		})
		depths = append(depths, depth)
		remaining -= p
	}

	if remaining < 0 {
		remaining = 0
	}
	outlook = append(outlook, prospect.ScenarioOutlook{
		Scenario:    hazard.ScenarioNone,
		Probability: remaining,
	})
	depths = append(depths, 0)

	return outlook, depths, nil
}

// drawIncome samples the income tier from the configured weights.
func (s *Spawner) drawIncome() IncomeCategory {
	wLow := s.cfg.IncomeLow.Weight
	wMid := s.cfg.IncomeMiddle.Weight
	wHigh := s.cfg.IncomeHigh.Weight
	r := s.rng.Float64() * (wLow + wMid + wHigh)
	switch {
	case r < wLow:
		return IncomeLow
	case r < wLow+wMid:
		return IncomeMiddle
	default:
		return IncomeHigh
	}
}

func (s *Spawner) tierFor(c IncomeCategory) config.TierConfig {
	switch c {
	case IncomeLow:
		return s.cfg.IncomeLow
	case IncomeMiddle:
		return s.cfg.IncomeMiddle
	default:
		return s.cfg.IncomeHigh
	}
}
