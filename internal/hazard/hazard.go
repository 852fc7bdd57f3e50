// Package hazard provides the flood hazard layer: named scenario rasters,
// depth-at-location queries, and depth-damage curves for unmitigated and
// elevated (mitigated) structures.
package hazard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/talgya/flood-adapt/internal/geometry"
)

// Scenario names. Each flood scenario has its own depth raster; ScenarioNone
// is the explicit no-event case with zero depth everywhere.
const (
	ScenarioHarvey = "harvey"
	Scenario100yr  = "100yr"
	Scenario500yr  = "500yr"
	ScenarioNone   = "none"
)

// rasterShapes defines the synthetic raster parameters per scenario.
// Severity rises with return period; Harvey sits between the two design
// storms but wets a wider area.
var rasterShapes = map[string]rasterParams{
	ScenarioHarvey: {seed: 11, severity: 5.5, spread: 0.55},
	Scenario100yr:  {seed: 23, severity: 4.0, spread: 0.40},
	Scenario500yr:  {seed: 37, severity: 7.0, spread: 0.65},
}

// FloodMapNames returns the scenario names that carry depth rasters, in a
// stable order. ScenarioNone is excluded: it has no raster to query.
func FloodMapNames() []string {
	names := make([]string, 0, len(rasterShapes))
	for name := range rasterShapes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Set holds the queryable rasters for every known scenario.
type Set struct {
	world   *geometry.World
	rasters map[string]*Raster
	scale   float64 // monetary value of total structure loss
}

// DefaultRasterCols and DefaultRasterRows size the generated depth grids.
const (
	DefaultRasterCols = 200
	DefaultRasterRows = 120
)

// NewSet generates the scenario rasters over the given world geometry.
// The seed offsets each scenario's own generation seed so a run seed
// reshapes all rasters together. scale converts a [0,1] damage fraction
// into a currency amount.
func NewSet(world *geometry.World, seed int64, scale float64) *Set {
	s := &Set{
		world:   world,
		rasters: make(map[string]*Raster, len(rasterShapes)),
		scale:   scale,
	}
	for name, p := range rasterShapes {
		p.seed += seed
		s.rasters[name] = generateRaster(world, DefaultRasterCols, DefaultRasterRows, p)
	}
	return s
}

// Scenarios returns the flood scenario names in a stable order, without the
// no-event scenario.
func (s *Set) Scenarios() []string {
	return FloodMapNames()
}

// ValidScenarios returns every queryable scenario name including ScenarioNone.
func (s *Set) ValidScenarios() []string {
	return append(s.Scenarios(), ScenarioNone)
}

// DepthAt returns the flood depth at a location for the named scenario,
// clamped to zero. Negative raster readings mean the ground is above the
// flood surface and are treated as dry. Unknown scenario names are a
// configuration error carrying the valid choices.
func (s *Set) DepthAt(loc geometry.Point, scenario string) (float64, error) {
	if scenario == ScenarioNone {
		return 0, nil
	}
	raster, ok := s.rasters[scenario]
	if !ok {
		return 0, fmt.Errorf("unknown flood scenario %q (valid scenarios: %s)",
			scenario, strings.Join(s.ValidScenarios(), ", "))
	}
	depth := raster.DepthAt(loc)
	if depth < 0 {
		depth = 0
	}
	return depth, nil
}

// Damage converts a flood depth into a monetary damage amount, using the
// mitigated curve for elevated structures.
func (s *Set) Damage(depth float64, mitigated bool) float64 {
	if mitigated {
		return MitigatedFraction(depth) * s.scale
	}
	return UnmitigatedFraction(depth) * s.scale
}

// Scale returns the monetary value of a total structure loss.
func (s *Set) Scale() float64 { return s.scale }
