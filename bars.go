package pcschart

import (
	"image/color"
	"math"
)

// Bar is the geometry of one bar.
type Bar struct {
	Datum
	Rect    Rect  // zero height for a zero value, always touching ZeroY
	LabelAt Point // anchor of the rotated label, below the plot area
	Color   color.Color
}

// BarLayout is the geometry of a diverging bar chart.
type BarLayout struct {
	Plot         Rect
	ZeroY        float64 // the baseline, in the vertical middle of Plot
	MaxMagnitude float64 // largest absolute value, at least 1
	Scale        float64 // pixels per unit of value
	Slot         float64 // horizontal room for each bar, gap included
	Bars         []Bar
}

// LayoutBars computes the bar chart geometry for a surface of the given size.
//
// It returns false when there is no data.
func LayoutBars(width, height float64, data []Datum, st Style) (BarLayout, bool) {
	l := BarLayout{
		Plot: Rect{
			X: st.Padding,
			Y: st.Padding,
			W: math.Max(0, width-2*st.Padding),
			H: math.Max(0, height-2*st.Padding),
		},
		MaxMagnitude: MaxMagnitude(data),
	}
	l.ZeroY = l.Plot.Y + l.Plot.H/2
	if len(data) == 0 {
		return l, false
	}

	half := math.Max(0, l.Plot.H/2-st.Inset)
	l.Scale = half / l.MaxMagnitude
	l.Slot = l.Plot.W / float64(len(data))

	fraction := math.Max(0, math.Min(1, st.BarFraction))
	barWidth := l.Slot * fraction
	gap := (l.Slot - barWidth) / 2

	l.Bars = make([]Bar, len(data))
	for i, d := range data {
		v := finite(d.Value)
		d.Value = v
		x := l.Plot.X + float64(i)*l.Slot + gap
		height := math.Abs(v) / l.MaxMagnitude * half
		y := l.ZeroY
		if v > 0 {
			y = l.ZeroY - height
		}
		l.Bars[i] = Bar{
			Datum:   d,
			Rect:    Rect{X: x, Y: y, W: barWidth, H: height},
			LabelAt: Point{x + barWidth/2, l.Plot.Bottom() + st.LabelSize},
			Color:   st.BarColor(v),
		}
	}
	return l, true
}

// RenderBars draws a diverging bar chart with the default style.
func RenderBars(s Surface, labels []string, values []float64, title string) {
	DefaultStyle().RenderBars(s, labels, values, title)
}

// RenderBars draws one bar per value, growing up from the middle baseline
// for positive values and down for negative ones.
func (st Style) RenderBars(s Surface, labels []string, values []float64, title string) {
	w, h := s.Size()
	s.Clear(st.Background)

	l, ok := LayoutBars(w, h, Zip(labels, values), st)
	if !ok {
		st.placeholder(s, w, h)
		return
	}

	if title != "" {
		s.Text(title, Point{w / 2, st.Padding / 2}, TextStyle{
			Color:    st.Foreground,
			Size:     st.TitleSize,
			Bold:     true,
			Align:    AlignCenter,
			Baseline: BaselineMiddle,
		})
	}

	labelStyle := TextStyle{
		Color:    st.Foreground,
		Size:     st.LabelSize,
		Align:    AlignRight,
		Baseline: BaselineMiddle,
		Angle:    st.LabelAngle,
	}
	for _, b := range l.Bars {
		if b.Rect.H > 0 {
			s.FillRect(b.Rect, b.Color)
		}
		if b.Label != "" {
			s.Text(b.Label, b.LabelAt, labelStyle)
		}
	}

	// on top of the bars touching it.
	s.StrokeLine(Point{l.Plot.X, l.ZeroY}, Point{l.Plot.Right(), l.ZeroY}, st.AxisWidth, st.Axis)
}
