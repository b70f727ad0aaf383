package pcschart

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Style holds every visual constant used by the renderers.
//
// A Style is a value: renderers read it, never modify it.
type Style struct {
	Background color.Color   // surface clear color, also fills the donut hole
	Foreground color.Color   // titles, labels and placeholder
	Palette    []color.Color // pie slice colors, cycled by slice position
	Positive   color.Color   // bars for values >= 0
	Negative   color.Color   // bars for values < 0
	Axis       color.Color   // zero line

	// Pie
	Margin     float64 // distance between the pie and the closest surface edge
	DonutRatio float64 // inner radius relative to the outer one, 0 draws a full pie

	// Bars
	Padding     float64 // inset of the plot area on all sides
	Inset       float64 // space kept between the tallest bar and the plot edge
	BarFraction float64 // share of the slot used by the bar, the rest is the gap
	LabelAngle  float64 // rotation of the bar labels, in radians
	AxisWidth   float64

	TitleSize   float64
	LabelSize   float64
	Placeholder string // drawn in the middle of an empty chart, nothing if ""
}

// DefaultPalette is the slice palette of DefaultStyle.
var DefaultPalette = []string{
	"#5470c6", "#91cc75", "#fac858", "#ee6666", "#73c0de",
	"#3ba272", "#fc8452", "#9a60b4", "#ea7ccc",
}

// DefaultStyle returns the style used by RenderPie and RenderBars.
func DefaultStyle() Style {
	palette, _ := ParsePalette(DefaultPalette) // known valid
	return Style{
		Background:  mustColor("#ffffff"),
		Foreground:  mustColor("#333333"),
		Palette:     palette,
		Positive:    mustColor("#e74c3c"),
		Negative:    mustColor("#27ae60"),
		Axis:        mustColor("#999999"),
		Margin:      20,
		DonutRatio:  0.5,
		Padding:     40,
		Inset:       10,
		BarFraction: 0.7,
		LabelAngle:  -math.Pi / 4,
		AxisWidth:   1,
		TitleSize:   16,
		LabelSize:   11,
	}
}

// SliceColor returns the palette color for the i-th slice.
func (s Style) SliceColor(i int) color.Color {
	if len(s.Palette) == 0 {
		return s.Foreground
	}
	return s.Palette[i%len(s.Palette)]
}

// BarColor returns the bar color for value v.
func (s Style) BarColor(v float64) color.Color {
	if v < 0 {
		return s.Negative
	}
	return s.Positive
}

// ParseColor parses a "#rgb" or "#rrggbb" color.
func ParseColor(hex string) (color.Color, error) {
	hex = strings.TrimSpace(hex)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return c, nil
}

// ParsePalette parses a list of hex colors.
func ParsePalette(hexes []string) ([]color.Color, error) {
	palette := make([]color.Color, 0, len(hexes))
	for _, h := range hexes {
		c, err := ParseColor(h)
		if err != nil {
			return nil, err
		}
		palette = append(palette, c)
	}
	return palette, nil
}

// Hex returns the "#rrggbb" representation of c, and its alpha in [0,1].
func Hex(c color.Color) (hex string, alpha float64) {
	if c == nil {
		return "#000000", 0
	}
	_, _, _, a := c.RGBA()
	if a == 0 {
		return "#000000", 0
	}
	cf, _ := colorful.MakeColor(c)
	return cf.Hex(), float64(a) / 0xffff
}

func mustColor(hex string) color.Color {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}
