package pcschart

import (
	"image/color"
	"math"
)

// top is the angle of 12 o'clock in screen coordinates.
const top = -math.Pi / 2

// PieSlice is the geometry of one slice.
type PieSlice struct {
	Datum
	Fraction float64 // share of the total
	Start    float64 // angle in radians, screen coordinates
	Sweep    float64 // clockwise when positive
	Color    color.Color
}

// End returns the angle where the slice ends.
func (s PieSlice) End() float64 { return s.Start + s.Sweep }

// PieLayout is the geometry of a pie chart.
type PieLayout struct {
	Center      Point
	Radius      float64
	InnerRadius float64
	Total       float64
	Slices      []PieSlice
}

// LayoutPie computes the pie geometry for a surface of the given size.
//
// It returns false when there is nothing to draw: no data, a zero total or no
// room for the pie.
func LayoutPie(width, height float64, data []Datum, st Style) (PieLayout, bool) {
	l := PieLayout{
		Center: Point{width / 2, height / 2},
		Radius: math.Min(width/2, height/2) - st.Margin,
		Total:  Total(data),
	}
	// fractions are computed on scaled values, the total may overflow.
	scale := MaxMagnitude(data)
	var sum float64
	for _, d := range data {
		sum += finite(d.Value) / scale
	}
	if sum == 0 || l.Radius <= 0 {
		return l, false
	}
	l.InnerRadius = l.Radius * math.Max(0, math.Min(1, st.DonutRatio))

	l.Slices = make([]PieSlice, len(data))
	var cumulated float64
	for i, d := range data {
		d.Value = finite(d.Value)
		fraction := d.Value / scale / sum
		l.Slices[i] = PieSlice{
			Datum:    d,
			Fraction: fraction,
			Start:    top + 2*math.Pi*cumulated,
			Sweep:    2 * math.Pi * fraction,
			Color:    st.SliceColor(i),
		}
		cumulated += fraction
	}
	return l, true
}

// RenderPie draws an allocation donut with the default style.
func RenderPie(s Surface, labels []string, values []float64, title string) {
	DefaultStyle().RenderPie(s, labels, values, title)
}

// RenderPie draws an allocation donut: one slice per value proportional to
// its share of the total, starting at 12 o'clock and going clockwise.
//
// A zero total draws no slice at all.
func (st Style) RenderPie(s Surface, labels []string, values []float64, title string) {
	w, h := s.Size()
	s.Clear(st.Background)

	l, ok := LayoutPie(w, h, Zip(labels, values), st)
	if !ok {
		st.placeholder(s, w, h)
		return
	}

	for _, slice := range l.Slices {
		if slice.Sweep == 0 {
			continue
		}
		s.FillPath(Sector(l.Center, l.Radius, slice.Start, slice.Sweep), slice.Color)
	}
	if l.InnerRadius > 0 {
		s.FillPath(Circle(l.Center, l.InnerRadius), st.Background)
	}
	if title != "" {
		s.Text(title, l.Center, TextStyle{
			Color:    st.Foreground,
			Size:     st.TitleSize,
			Bold:     true,
			Align:    AlignCenter,
			Baseline: BaselineMiddle,
		})
	}
}

// placeholder draws the empty chart text, if any.
func (st Style) placeholder(s Surface, w, h float64) {
	if st.Placeholder == "" {
		return
	}
	s.Text(st.Placeholder, Point{w / 2, h / 2}, TextStyle{
		Color:    st.Foreground,
		Size:     st.LabelSize,
		Align:    AlignCenter,
		Baseline: BaselineMiddle,
	})
}
