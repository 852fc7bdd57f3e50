// Package geometry holds the immutable world geometry the simulation runs
// over: the model domain, the floodplain polygon, and household placement.
package geometry

import (
	"math"
	"math/rand"
)

// Point is a 2D coordinate in the model's projected plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is a shorthand constructor for Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// DistanceTo returns the Euclidean distance between two points.
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Polygon is a closed polygon defined by its vertices in order.
type Polygon struct {
	Vertices []Point
}

// NewPolygon creates a polygon from a list of vertices.
func NewPolygon(pts ...Point) Polygon {
	return Polygon{Vertices: pts}
}

// Bounds returns the bounding box of the polygon.
func (p Polygon) Bounds() Rect {
	if len(p.Vertices) == 0 {
		return Rect{}
	}
	r := Rect{
		MinX: p.Vertices[0].X, MaxX: p.Vertices[0].X,
		MinY: p.Vertices[0].Y, MaxY: p.Vertices[0].Y,
	}
	for _, v := range p.Vertices[1:] {
		r.MinX = math.Min(r.MinX, v.X)
		r.MaxX = math.Max(r.MaxX, v.X)
		r.MinY = math.Min(r.MinY, v.Y)
		r.MaxY = math.Max(r.MaxY, v.Y)
	}
	return r
}

// Contains reports whether the point lies inside the polygon, using the
// even-odd ray casting rule. Points exactly on an edge may fall either way.
func (p Polygon) Contains(pt Point) bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi, vj := p.Vertices[i], p.Vertices[j]
		if (vi.Y > pt.Y) != (vj.Y > pt.Y) &&
			pt.X < (vj.X-vi.X)*(pt.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// World is the immutable geography the model runs over. It is constructed
// once at setup and passed explicitly into household placement and hazard
// queries; nothing in the simulation holds geography as package state.
type World struct {
	Domain     Polygon // model domain outline
	Floodplain Polygon // low-lying area, subset of the domain
	bounds     Rect
}

// NewWorld builds a world geometry value from a domain and floodplain outline.
func NewWorld(domain, floodplain Polygon) *World {
	return &World{
		Domain:     domain,
		Floodplain: floodplain,
		bounds:     domain.Bounds(),
	}
}

// Bounds returns the bounding box of the model domain.
func (w *World) Bounds() Rect { return w.bounds }

// InDomain reports whether the location lies within the model domain.
func (w *World) InDomain(p Point) bool { return w.Domain.Contains(p) }

// InFloodplain reports whether the location lies within the floodplain.
func (w *World) InFloodplain(p Point) bool { return w.Floodplain.Contains(p) }

// RandomLocation draws a uniform random location inside the model domain by
// rejection sampling over the bounding box.
func (w *World) RandomLocation(rng *rand.Rand) Point {
	for {
		p := Point{
			X: w.bounds.MinX + rng.Float64()*w.bounds.Width(),
			Y: w.bounds.MinY + rng.Float64()*w.bounds.Height(),
		}
		if w.Domain.Contains(p) {
			return p
		}
	}
}

// DefaultWorld returns the built-in coastal study area: a roughly rectangular
// domain with an irregular floodplain hugging its low (southern) half. Units
// are meters in an arbitrary projected plane.
func DefaultWorld() *World {
	domain := NewPolygon(
		Pt(0, 0), Pt(20000, 0), Pt(21500, 4000), Pt(20500, 9500),
		Pt(18000, 12000), Pt(4000, 12500), Pt(500, 9000), Pt(-500, 3500),
	)
	floodplain := NewPolygon(
		Pt(500, 500), Pt(19500, 300), Pt(20600, 3800), Pt(19000, 6500),
		Pt(12000, 7200), Pt(5000, 6800), Pt(1500, 5000),
	)
	return NewWorld(domain, floodplain)
}
