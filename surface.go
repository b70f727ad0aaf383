package pcschart

import "image/color"

// Point is a position on a surface, in pixels. Y grows downwards.
type Point struct{ X, Y float64 }

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Rect is an axis aligned rectangle. W and H are never negative.
type Rect struct{ X, Y, W, H float64 }

// Bottom returns the Y coordinate of the lower edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// Align is the horizontal anchoring of a text relative to its position.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// Baseline is the vertical anchoring of a text relative to its position.
type Baseline int

const (
	BaselineAlphabetic Baseline = iota // position is on the baseline
	BaselineMiddle                     // position is on the middle of the em box
	BaselineTop                        // position is on the top of the em box
)

// TextStyle describes how a text is drawn.
type TextStyle struct {
	Color    color.Color
	Size     float64 // in pixels
	Bold     bool
	Align    Align
	Baseline Baseline
	Angle    float64 // rotation in radians around the position, clockwise on screen
}

// Surface is a fixed size 2D raster target.
//
// It is the only thing the renderers know about the output: any back-end
// implementing these primitives can display the charts.
type Surface interface {
	// Size returns the dimensions of the surface in pixels.
	Size() (width, height float64)
	// Clear fills the whole surface with c, discarding previous content.
	Clear(c color.Color)
	// FillPath fills the closed path p with c (non-zero winding).
	FillPath(p Path, c color.Color)
	// FillRect fills r with c.
	FillRect(r Rect, c color.Color)
	// Text draws s at the given position.
	Text(s string, at Point, style TextStyle)
	// StrokeLine draws a straight line of the given width.
	StrokeLine(from, to Point, width float64, c color.Color)
}
