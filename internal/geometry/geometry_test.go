package geometry

import (
	"math/rand"
	"testing"
)

func TestPolygonContains(t *testing.T) {
	square := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))

	tests := []struct {
		name string
		pt   Point
		want bool
	}{
		{"center", Pt(5, 5), true},
		{"near edge inside", Pt(9.99, 5), true},
		{"outside right", Pt(10.01, 5), false},
		{"outside above", Pt(5, 11), false},
		{"far away", Pt(-100, -100), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := square.Contains(tt.pt); got != tt.want {
				t.Fatalf("Contains(%+v) = %v, want %v", tt.pt, got, tt.want)
			}
		})
	}
}

func TestPolygonContainsConcave(t *testing.T) {
	// L-shape: the notch at the top-right is outside.
	l := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 5), Pt(5, 5), Pt(5, 10), Pt(0, 10))

	if !l.Contains(Pt(2, 8)) {
		t.Fatal("point in the vertical arm should be inside")
	}
	if l.Contains(Pt(8, 8)) {
		t.Fatal("point in the notch should be outside")
	}
}

func TestPolygonBounds(t *testing.T) {
	p := NewPolygon(Pt(-3, 2), Pt(7, -1), Pt(4, 9))
	b := p.Bounds()
	if b.MinX != -3 || b.MaxX != 7 || b.MinY != -1 || b.MaxY != 9 {
		t.Fatalf("bounds = %+v", b)
	}
}

func TestRandomLocationInsideDomain(t *testing.T) {
	world := DefaultWorld()
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		p := world.RandomLocation(rng)
		if !world.InDomain(p) {
			t.Fatalf("random location outside domain: %+v", p)
		}
		if !world.Bounds().Contains(p) {
			t.Fatalf("random location outside bounds: %+v", p)
		}
	}
}

func TestFloodplainInsideDomain(t *testing.T) {
	world := DefaultWorld()
	rng := rand.New(rand.NewSource(2))

	// Sampled floodplain points must also be domain points.
	found := 0
	for i := 0; i < 2000; i++ {
		p := world.RandomLocation(rng)
		if world.InFloodplain(p) {
			found++
			if !world.InDomain(p) {
				t.Fatalf("floodplain point outside domain: %+v", p)
			}
		}
	}
	if found == 0 {
		t.Fatal("no sampled points fell inside the floodplain")
	}
}
