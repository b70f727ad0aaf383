package pcschart

import (
	"math"
	"testing"
)

func TestArc_StaysOnCircle(t *testing.T) {
	center := Pt(100, 100)
	testCases := []struct {
		name         string
		start, sweep float64
		wantCurves   int
	}{
		{name: "quarter", start: 0, sweep: math.Pi / 2, wantCurves: 1},
		{name: "full", start: -math.Pi / 2, sweep: 2 * math.Pi, wantCurves: 4},
		{name: "small", start: 1, sweep: 0.1, wantCurves: 1},
		{name: "counter clockwise", start: 0, sweep: -3, wantCurves: 2},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var p Path
			p.Arc(center, 50, tc.start, tc.sweep)
			if p.Segments[0].Kind != MoveTo {
				t.Fatalf("Arc() on an empty path starts with %v, want M", p.Segments[0].Kind)
			}
			if got := len(p.Segments) - 1; got != tc.wantCurves {
				t.Errorf("Arc() made %d curves, want %d", got, tc.wantCurves)
			}
			for _, poly := range p.Flatten(16) {
				for _, pt := range poly {
					// the cubic approximation is well under a pixel off.
					if d := math.Hypot(pt.X-center.X, pt.Y-center.Y); math.Abs(d-50) > 0.05 {
						t.Errorf("point %v at distance %v, want 50", pt, d)
					}
				}
			}
			end := p.Current()
			want := polar(center, 50, tc.start+tc.sweep)
			if math.Abs(end.X-want.X) > epsilon || math.Abs(end.Y-want.Y) > epsilon {
				t.Errorf("Arc() ends at %v, want %v", end, want)
			}
		})
	}
}

func TestSector_Shape(t *testing.T) {
	p := Sector(Pt(0, 0), 10, 0, math.Pi)
	if p.Segments[0].Kind != MoveTo || p.Segments[0].Points[0] != (Point{}) {
		t.Errorf("Sector() must start at the center, got %v", p.Segments[0])
	}
	if p.Segments[1].Kind != LineTo {
		t.Errorf("Sector() must draw the first radius, got %v", p.Segments[1].Kind)
	}
	if p.Segments[len(p.Segments)-1].Kind != Close {
		t.Errorf("Sector() must be closed")
	}
}

func TestFlatten(t *testing.T) {
	var p Path
	p.MoveTo(Pt(0, 0)).LineTo(Pt(10, 0)).QuadTo(Pt(10, 10), Pt(0, 10)).Close()
	p.MoveTo(Pt(20, 20)).LineTo(Pt(30, 20))

	polys := p.Flatten(4)
	if len(polys) != 2 {
		t.Fatalf("Flatten() = %d polygons, want 2", len(polys))
	}
	if got := len(polys[0]); got != 6 {
		t.Errorf("first polygon has %d points, want 6", got)
	}
	if last := polys[0][5]; last != Pt(0, 10) {
		t.Errorf("quad ends at %v, want (0,10)", last)
	}
	if got := len(polys[1]); got != 2 {
		t.Errorf("second polygon has %d points, want 2", got)
	}
}
