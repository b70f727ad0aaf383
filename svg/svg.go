// Package svg implements a chart surface producing an SVG document.
package svg

import (
	"fmt"
	"html"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/etnz/pcschart"
)

// Surface accumulates SVG elements. Its zero value is not usable, use New.
type Surface struct {
	width, height float64
	FontFamily    string
	body          strings.Builder
}

// New returns an empty SVG surface of the given size.
func New(width, height float64) *Surface {
	return &Surface{width: width, height: height, FontFamily: "sans-serif"}
}

func (s *Surface) Size() (float64, float64) { return s.width, s.height }

func (s *Surface) Clear(c color.Color) {
	s.body.Reset()
	fmt.Fprintf(&s.body, `<rect x="0" y="0" width="%s" height="%s"%s/>`+"\n", num(s.width), num(s.height), fill(c))
}

func (s *Surface) FillPath(p pcschart.Path, c color.Color) {
	if p.IsEmpty() {
		return
	}
	fmt.Fprintf(&s.body, `<path d="%s"%s/>`+"\n", pathData(p), fill(c))
}

func (s *Surface) FillRect(r pcschart.Rect, c color.Color) {
	fmt.Fprintf(&s.body, `<rect x="%s" y="%s" width="%s" height="%s"%s/>`+"\n",
		num(r.X), num(r.Y), num(r.W), num(r.H), fill(c))
}

func (s *Surface) StrokeLine(from, to pcschart.Point, width float64, c color.Color) {
	hex, alpha := pcschart.Hex(c)
	fmt.Fprintf(&s.body, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"%s/>`+"\n",
		num(from.X), num(from.Y), num(to.X), num(to.Y), hex, num(width), opacity("stroke-opacity", alpha))
}

func (s *Surface) Text(str string, at pcschart.Point, style pcschart.TextStyle) {
	if str == "" {
		return
	}
	anchor := "start"
	switch style.Align {
	case pcschart.AlignCenter:
		anchor = "middle"
	case pcschart.AlignRight:
		anchor = "end"
	}
	baseline := "alphabetic"
	switch style.Baseline {
	case pcschart.BaselineMiddle:
		baseline = "middle"
	case pcschart.BaselineTop:
		baseline = "hanging"
	}
	weight := ""
	if style.Bold {
		weight = ` font-weight="bold"`
	}
	transform := ""
	if style.Angle != 0 {
		transform = fmt.Sprintf(` transform="rotate(%s %s %s)"`, num(style.Angle*180/math.Pi), num(at.X), num(at.Y))
	}
	fmt.Fprintf(&s.body, `<text x="%s" y="%s" font-family="%s" font-size="%s"%s text-anchor="%s" dominant-baseline="%s"%s%s>%s</text>`+"\n",
		num(at.X), num(at.Y), html.EscapeString(s.FontFamily), num(style.Size), weight, anchor, baseline, transform, fill(style.Color), html.EscapeString(str))
}

// String returns the complete SVG document.
func (s *Surface) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`+"\n",
		num(s.width), num(s.height), num(s.width), num(s.height))
	b.WriteString(s.body.String())
	b.WriteString("</svg>\n")
	return b.String()
}

// WriteTo writes the complete SVG document to w.
func (s *Surface) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

func pathData(p pcschart.Path) string {
	var b strings.Builder
	for i, seg := range p.Segments {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(seg.Kind.String())
		for _, pt := range seg.Points {
			b.WriteByte(' ')
			b.WriteString(num(pt.X))
			b.WriteByte(',')
			b.WriteString(num(pt.Y))
		}
	}
	return b.String()
}

func fill(c color.Color) string {
	hex, alpha := pcschart.Hex(c)
	return fmt.Sprintf(` fill="%s"%s`, hex, opacity("fill-opacity", alpha))
}

func opacity(attr string, alpha float64) string {
	if alpha >= 1 {
		return ""
	}
	return fmt.Sprintf(` %s="%s"`, attr, num(alpha))
}

// num formats a coordinate with at most 2 decimals.
func num(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		return "0" // no "-0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
