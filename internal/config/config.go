// Package config provides configuration loading for the flood adaptation
// model. Settings come from a YAML file with CLI flags layered on top;
// Default() is a complete, runnable configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/talgya/flood-adapt/internal/hazard"
	"github.com/talgya/flood-adapt/internal/network"
)

// TierConfig describes one income tier: its share of the population and the
// savings range new households in it draw from.
type TierConfig struct {
	Weight     float64 `yaml:"weight"`
	SavingsMin float64 `yaml:"savings_min"`
	SavingsMax float64 `yaml:"savings_max"`
}

// NetworkConfig selects and parameterizes the social network generator.
type NetworkConfig struct {
	// Kind is one of erdos_renyi, barabasi_albert, watts_strogatz, no_network.
	Kind string `yaml:"kind"`
	// ConnectionProbability is the edge probability (erdos_renyi) or
	// rewiring probability (watts_strogatz).
	ConnectionProbability float64 `yaml:"connection_probability"`
	// Edges is the number of edges each new node brings (barabasi_albert).
	Edges int `yaml:"edges"`
	// NearestNeighbours is the ring lattice degree (watts_strogatz).
	NearestNeighbours int `yaml:"nearest_neighbours"`
}

// Config is the full run configuration.
type Config struct {
	Seed       int64 `yaml:"seed"`
	Population int   `yaml:"population"`
	Steps      int   `yaml:"steps"`

	// FloodStep is the step index at which the one-time flood shock hits.
	FloodStep int `yaml:"flood_step"`
	// FloodMap names the realized hazard scenario used for the shock.
	FloodMap string `yaml:"flood_map"`

	Network NetworkConfig `yaml:"network"`

	SubsidyLevel    float64 `yaml:"subsidy_level"`
	InformationBias float64 `yaml:"information_bias"`

	// AdaptationCost is the price of the elevation retrofit before subsidy.
	AdaptationCost float64 `yaml:"adaptation_cost"`
	// ReserveThreshold is the savings cushion a household keeps after
	// paying for the measure.
	ReserveThreshold float64 `yaml:"reserve_threshold"`
	// DamageScale converts a [0,1] damage fraction into currency.
	DamageScale float64 `yaml:"damage_scale"`

	// SavingsNoiseMin/Max bound the multiplicative income/expense noise
	// applied to savings every step.
	SavingsNoiseMin float64 `yaml:"savings_noise_min"`
	SavingsNoiseMax float64 `yaml:"savings_noise_max"`

	// Income tier mix and savings ranges.
	IncomeLow    TierConfig `yaml:"income_low"`
	IncomeMiddle TierConfig `yaml:"income_middle"`
	IncomeHigh   TierConfig `yaml:"income_high"`

	// ScenarioProbabilities are the subjective base rates per hazard
	// scenario; the no-event scenario takes the remaining mass.
	ScenarioProbabilities map[string]float64 `yaml:"scenario_probabilities"`

	// DatabasePath enables SQLite results recording when non-empty.
	DatabasePath string `yaml:"database_path"`
	// APIPort enables the read-only observation API when non-zero.
	APIPort int `yaml:"api_port"`
}

// Default returns the standard run configuration.
func Default() *Config {
	return &Config{
		Seed:       42,
		Population: 100,
		Steps:      80,
		FloodStep:  70,
		FloodMap:   hazard.ScenarioHarvey,
		Network: NetworkConfig{
			Kind:                  network.KindWattsStrogatz,
			ConnectionProbability: 0.4,
			Edges:                 3,
			NearestNeighbours:     5,
		},
		SubsidyLevel:     0,
		InformationBias:  0,
		AdaptationCost:   35000,
		ReserveThreshold: 5000,
		DamageScale:      150000,
		SavingsNoiseMin:  0.95,
		SavingsNoiseMax:  1.05,
		IncomeLow:        TierConfig{Weight: 0.35, SavingsMin: 0, SavingsMax: 20000},
		IncomeMiddle:     TierConfig{Weight: 0.45, SavingsMin: 20000, SavingsMax: 70000},
		IncomeHigh:       TierConfig{Weight: 0.20, SavingsMin: 70000, SavingsMax: 250000},
		ScenarioProbabilities: map[string]float64{
			hazard.ScenarioHarvey: 0.02,
			hazard.Scenario100yr:  0.01,
			hazard.Scenario500yr:  0.002,
		},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the simulation cannot run
// with. Unknown names are reported with the valid choices.
func (c *Config) Validate() error {
	if c.Population <= 0 {
		return fmt.Errorf("population must be positive, got %d", c.Population)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", c.Steps)
	}

	mapOK := false
	for _, name := range hazard.FloodMapNames() {
		if c.FloodMap == name {
			mapOK = true
			break
		}
	}
	if !mapOK {
		return fmt.Errorf("unknown flood map choice %q (valid choices: %s)",
			c.FloodMap, strings.Join(hazard.FloodMapNames(), ", "))
	}

	kindOK := false
	for _, k := range network.ValidKinds {
		if c.Network.Kind == k {
			kindOK = true
			break
		}
	}
	if !kindOK {
		return fmt.Errorf("unknown network kind %q (valid kinds: %s)",
			c.Network.Kind, strings.Join(network.ValidKinds, ", "))
	}

	if c.SavingsNoiseMin <= 0 || c.SavingsNoiseMax < c.SavingsNoiseMin {
		return fmt.Errorf("savings noise band [%g, %g] is not a valid range",
			c.SavingsNoiseMin, c.SavingsNoiseMax)
	}

	totalWeight := c.IncomeLow.Weight + c.IncomeMiddle.Weight + c.IncomeHigh.Weight
	if totalWeight <= 0 {
		return fmt.Errorf("income tier weights must sum to a positive value")
	}

	probSum := 0.0
	for name, p := range c.ScenarioProbabilities {
		known := false
		for _, valid := range hazard.FloodMapNames() {
			if name == valid {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("scenario probability for unknown scenario %q (valid scenarios: %s)",
				name, strings.Join(hazard.FloodMapNames(), ", "))
		}
		if p < 0 {
			return fmt.Errorf("scenario probability for %q is negative", name)
		}
		probSum += p
	}
	if probSum > 1 {
		return fmt.Errorf("scenario probabilities sum to %g, must not exceed 1", probSum)
	}

	return nil
}
