// Synthetic flood depth rasters. Each scenario gets its own deterministic
// raster generated from multi-octave simplex noise over the world geometry,
// with severity scaled by return period. Cell values are water depth in
// meters relative to ground level; negative values mean the ground sits
// above the flood surface.
package hazard

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/flood-adapt/internal/geometry"
)

// Raster is a regular grid of depth samples covering the world bounds.
type Raster struct {
	bounds   geometry.Rect
	cols     int
	rows     int
	cellW    float64
	cellH    float64
	cells    []float64
	MaxDepth float64 // highest sample in the grid, for summaries
}

// DepthAt returns the raw depth sample at the cell containing the location.
// Locations outside the raster bounds read as dry ground.
func (r *Raster) DepthAt(loc geometry.Point) float64 {
	if !r.bounds.Contains(loc) {
		return -1
	}
	col := int((loc.X - r.bounds.MinX) / r.cellW)
	row := int((loc.Y - r.bounds.MinY) / r.cellH)
	if col >= r.cols {
		col = r.cols - 1
	}
	if row >= r.rows {
		row = r.rows - 1
	}
	return r.cells[row*r.cols+col]
}

// rasterParams shapes a generated raster for one scenario.
type rasterParams struct {
	seed     int64
	severity float64 // peak depth in meters for the deepest cells
	spread   float64 // how far inland the flood surface reaches, 0..1
}

// generateRaster builds a depth raster over the world from simplex noise.
// The flood surface is deepest in the floodplain and falls off outside it;
// ground outside the wetted area reads negative (above flood level).
func generateRaster(world *geometry.World, cols, rows int, p rasterParams) *Raster {
	bounds := world.Bounds()
	r := &Raster{
		bounds: bounds,
		cols:   cols,
		rows:   rows,
		cellW:  bounds.Width() / float64(cols),
		cellH:  bounds.Height() / float64(rows),
		cells:  make([]float64, cols*rows),
	}

	// Two independent noise layers: one for the flood surface, one for
	// local ground relief.
	surface := opensimplex.NewNormalized(p.seed)
	relief := opensimplex.NewNormalized(p.seed + 1)

	r.MaxDepth = math.Inf(-1)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cx := bounds.MinX + (float64(col)+0.5)*r.cellW
			cy := bounds.MinY + (float64(row)+0.5)*r.cellH
			loc := geometry.Pt(cx, cy)

			// Normalized noise coordinates.
			nx := (cx - bounds.MinX) / bounds.Width()
			ny := (cy - bounds.MinY) / bounds.Height()

			wet := octaveNoise(surface, nx, ny, 4, 3.0, 0.5)
			ground := octaveNoise(relief, nx, ny, 3, 5.0, 0.5)

			// Flood surface reaches further with higher spread; the
			// floodplain floods first.
			reach := p.spread
			if world.InFloodplain(loc) {
				reach += 0.35
			}

			depth := (wet*reach-ground*(1-p.spread))*p.severity - 0.3
			r.cells[row*r.cols+col] = depth
			if depth > r.MaxDepth {
				r.MaxDepth = depth
			}
		}
	}
	return r
}

// octaveNoise sums several noise octaves with decreasing amplitude.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxValue := 0.0
	freq := frequency
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*freq, y*freq) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		freq *= 2
	}
	return total / maxValue
}
