package pcschart

import "math"

// SegmentKind identifies the segment type in a Path.
type SegmentKind int

const (
	MoveTo SegmentKind = iota
	LineTo
	QuadTo
	CubeTo
	Close
)

func (k SegmentKind) String() string {
	switch k {
	case MoveTo:
		return "M"
	case LineTo:
		return "L"
	case QuadTo:
		return "Q"
	case CubeTo:
		return "C"
	case Close:
		return "Z"
	}
	return "?"
}

// Segment is one command of a Path. Points holds the control points followed
// by the end point: none for Close, 1 for MoveTo and LineTo, 2 for QuadTo and
// 3 for CubeTo.
type Segment struct {
	Kind   SegmentKind
	Points []Point
}

// Path is a sequence of segments. Its zero value is an empty path.
type Path struct {
	Segments []Segment
}

// MoveTo starts a new sub path at p.
func (p *Path) MoveTo(to Point) *Path {
	p.Segments = append(p.Segments, Segment{Kind: MoveTo, Points: []Point{to}})
	return p
}

// LineTo adds a straight line to p.
func (p *Path) LineTo(to Point) *Path {
	p.Segments = append(p.Segments, Segment{Kind: LineTo, Points: []Point{to}})
	return p
}

// QuadTo adds a quadratic Bézier curve.
func (p *Path) QuadTo(ctrl, to Point) *Path {
	p.Segments = append(p.Segments, Segment{Kind: QuadTo, Points: []Point{ctrl, to}})
	return p
}

// CubeTo adds a cubic Bézier curve.
func (p *Path) CubeTo(c1, c2, to Point) *Path {
	p.Segments = append(p.Segments, Segment{Kind: CubeTo, Points: []Point{c1, c2, to}})
	return p
}

// Close closes the current sub path.
func (p *Path) Close() *Path {
	p.Segments = append(p.Segments, Segment{Kind: Close})
	return p
}

// IsEmpty reports whether the path has no segment.
func (p Path) IsEmpty() bool { return len(p.Segments) == 0 }

// Current returns the end point of the last segment, or the zero point.
func (p Path) Current() Point {
	for i := len(p.Segments) - 1; i >= 0; i-- {
		s := p.Segments[i]
		if len(s.Points) > 0 {
			return s.Points[len(s.Points)-1]
		}
	}
	return Point{}
}

// Arc appends a circular arc of the given center and radius, from angle start
// sweeping by sweep radians (positive is clockwise on screen). The arc is
// made of cubic Bézier curves of at most a quarter turn each.
//
// If the path is empty, the arc starts with a MoveTo, otherwise with a LineTo
// from the current point to the start of the arc.
func (p *Path) Arc(center Point, radius, start, sweep float64) *Path {
	from := polar(center, radius, start)
	if p.IsEmpty() {
		p.MoveTo(from)
	} else {
		p.LineTo(from)
	}
	if sweep == 0 || radius == 0 {
		return p
	}
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	step := sweep / float64(n)
	// control point distance for a unit circle arc of angle step.
	k := 4.0 / 3.0 * math.Tan(step/4)
	a := start
	for range n {
		b := a + step
		p0 := polar(center, radius, a)
		p3 := polar(center, radius, b)
		c1 := Point{p0.X - k*radius*math.Sin(a), p0.Y + k*radius*math.Cos(a)}
		c2 := Point{p3.X + k*radius*math.Sin(b), p3.Y - k*radius*math.Cos(b)}
		p.CubeTo(c1, c2, p3)
		a = b
	}
	return p
}

// Circle returns a closed path for a full circle.
func Circle(center Point, radius float64) Path {
	var p Path
	p.Arc(center, radius, -math.Pi/2, 2*math.Pi).Close()
	return p
}

// Sector returns a closed pie sector: from center, along the arc, back to center.
func Sector(center Point, radius, start, sweep float64) Path {
	var p Path
	p.MoveTo(center)
	p.Arc(center, radius, start, sweep)
	p.Close()
	return p
}

// Flatten returns the polygons approximating p, one per sub path. Curves are
// subdivided in n straight lines each.
func (p Path) Flatten(n int) [][]Point {
	if n < 1 {
		n = 1
	}
	var polys [][]Point
	var cur []Point
	var last Point
	flush := func() {
		if len(cur) > 0 {
			polys = append(polys, cur)
		}
		cur = nil
	}
	for _, s := range p.Segments {
		switch s.Kind {
		case MoveTo:
			flush()
			last = s.Points[0]
			cur = append(cur, last)
		case LineTo:
			last = s.Points[0]
			cur = append(cur, last)
		case QuadTo:
			p0, c, p2 := last, s.Points[0], s.Points[1]
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				u := 1 - t
				cur = append(cur, Point{
					u*u*p0.X + 2*u*t*c.X + t*t*p2.X,
					u*u*p0.Y + 2*u*t*c.Y + t*t*p2.Y,
				})
			}
			last = p2
		case CubeTo:
			p0, c1, c2, p3 := last, s.Points[0], s.Points[1], s.Points[2]
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				u := 1 - t
				cur = append(cur, Point{
					u*u*u*p0.X + 3*u*u*t*c1.X + 3*u*t*t*c2.X + t*t*t*p3.X,
					u*u*u*p0.Y + 3*u*u*t*c1.Y + 3*u*t*t*c2.Y + t*t*t*p3.Y,
				})
			}
			last = p3
		case Close:
			flush()
		}
	}
	flush()
	return polys
}

// polar returns the point at angle a and distance r from c.
func polar(c Point, r, a float64) Point {
	return Point{c.X + r*math.Cos(a), c.Y + r*math.Sin(a)}
}
