// Package engine drives the flood adaptation simulation: it sequences
// household updates each step, applies the one-time flood shock, and keeps
// the social signal consistent by reading all neighbor perceptions from a
// start-of-step snapshot.
package engine

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/talgya/flood-adapt/internal/config"
	"github.com/talgya/flood-adapt/internal/geometry"
	"github.com/talgya/flood-adapt/internal/hazard"
	"github.com/talgya/flood-adapt/internal/household"
	"github.com/talgya/flood-adapt/internal/network"
	"github.com/talgya/flood-adapt/internal/perception"
	"github.com/talgya/flood-adapt/internal/policy"
	"github.com/talgya/flood-adapt/internal/prospect"
)

// Simulation holds the complete model state and wires the systems together.
type Simulation struct {
	Config     *config.Config
	World      *geometry.World
	Hazard     *hazard.Set
	Graph      *network.Graph
	Agents     []*household.Agent
	Government *policy.Government
	Collector  *Collector

	updater *perception.Updater
	utility *prospect.Engine
	rng     *rand.Rand

	step         int
	shockApplied bool
}

// New assembles a simulation from configuration: world geometry, hazard
// rasters, social network, government, and the household population.
func New(cfg *config.Config) (*Simulation, error) {
	world := geometry.DefaultWorld()
	hz := hazard.NewSet(world, cfg.Seed, cfg.DamageScale)

	graph, err := network.Generate(cfg.Network.Kind, cfg.Population, network.Params{
		ConnectionProbability: cfg.Network.ConnectionProbability,
		Edges:                 cfg.Network.Edges,
		NearestNeighbours:     cfg.Network.NearestNeighbours,
	}, cfg.Seed+100)
	if err != nil {
		return nil, fmt.Errorf("build network: %w", err)
	}

	spawner := household.NewSpawner(cfg.Seed, world, hz, cfg)
	agents, err := spawner.SpawnPopulation()
	if err != nil {
		return nil, fmt.Errorf("spawn households: %w", err)
	}

	sim := &Simulation{
		Config:     cfg,
		World:      world,
		Hazard:     hz,
		Graph:      graph,
		Agents:     agents,
		Government: policy.New(cfg.SubsidyLevel, cfg.InformationBias),
		Collector:  NewCollector(),
		updater:    perception.NewUpdater(),
		utility:    prospect.NewEngine(rand.New(rand.NewSource(cfg.Seed + 200))),
		rng:        rand.New(rand.NewSource(cfg.Seed + 100)),
	}

	slog.Info("simulation assembled",
		"population", len(agents),
		"network", cfg.Network.Kind,
		"edges", graph.EdgeCount(),
		"flood_map", cfg.FloodMap,
		"flood_step", cfg.FloodStep,
	)
	return sim, nil
}

// CurrentStep returns the number of steps processed so far.
func (s *Simulation) CurrentStep() int { return s.step }

// Step advances the simulation by one tick.
func (s *Simulation) Step() error {
	flooded := s.step == s.Config.FloodStep

	// The shock hits before households act, so this step's perception
	// updates see it and damage reflects adaptation taken in earlier
	// steps only.
	if flooded {
		if err := s.applyFloodShock(); err != nil {
			return err
		}
	}

	// Snapshot all perceptions first: every household's social signal
	// reads the values from the start of the step, never a neighbor
	// already updated in the same pass.
	snapshot := make([]float64, len(s.Agents))
	for i, a := range s.Agents {
		snapshot[i] = a.RiskPerception
	}

	media := s.Government.MediaSignal()

	// Random activation order, drawn from the run RNG.
	for _, i := range s.rng.Perm(len(s.Agents)) {
		a := s.Agents[i]
		a.Step(household.StepInput{
			Step:             s.step,
			SocialSignal:     s.socialSignal(i, snapshot),
			MediaSignal:      media,
			Flooded:          flooded,
			Cost:             s.Config.AdaptationCost,
			Subsidy:          s.Config.SubsidyLevel,
			ReserveThreshold: s.Config.ReserveThreshold,
			SavingsNoiseMin:  s.Config.SavingsNoiseMin,
			SavingsNoiseMax:  s.Config.SavingsNoiseMax,
		}, s.updater, s.utility, s.rng)
	}

	// Government accounting runs once per tick, after all households.
	s.Government.Step(s.TotalAdapted())

	s.Collector.Record(s)
	s.step++
	return nil
}

// socialSignal averages the snapshot perceptions of a household's
// neighbors; an isolated household hears no dissent and reads 1.0.
func (s *Simulation) socialSignal(i int, snapshot []float64) float64 {
	neighbors := s.Graph.Neighbors(i)
	if len(neighbors) == 0 {
		return 1.0
	}
	values := make([]float64, len(neighbors))
	for j, n := range neighbors {
		values[j] = snapshot[n]
	}
	return perception.SocialSignal(values)
}

// applyFloodShock realizes the configured hazard scenario for every
// household: sampled depth (clamped to non-negative) and damage from the curve
// matching the household's adaptation status at this moment. Idempotent:
// a second invocation leaves all realized figures unchanged.
func (s *Simulation) applyFloodShock() error {
	if s.shockApplied {
		return nil
	}
	s.shockApplied = true

	for _, a := range s.Agents {
		depth, err := s.Hazard.DepthAt(a.Location, s.Config.FloodMap)
		if err != nil {
			return fmt.Errorf("flood shock: %w", err)
		}
		a.ApplyShock(depth, s.Hazard.Damage(depth, a.IsAdapted))
	}

	slog.Info("flood shock applied",
		"step", s.step,
		"scenario", s.Config.FloodMap,
		"adapted_households", s.TotalAdapted(),
	)
	return nil
}

// TotalAdapted returns the number of households that have adapted.
func (s *Simulation) TotalAdapted() int {
	count := 0
	for _, a := range s.Agents {
		if a.IsAdapted {
			count++
		}
	}
	return count
}
