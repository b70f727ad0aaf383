// Package raster implements a chart surface on top of an in-memory RGBA image.
//
// Fills are anti-aliased by golang.org/x/image/vector, texts use the Go fonts
// (or a caller supplied TrueType font) and rotated texts are composed with an
// affine transform.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/etnz/pcschart"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Options configures a raster Surface.
type Options struct {
	Font     []byte // TrueType or OpenType font for texts, Go Regular if nil
	BoldFont []byte // for titles, Go Bold if nil (or Font if only Font is set)
}

// Surface draws on an *image.RGBA.
//
// It is not safe for concurrent use.
type Surface struct {
	img     *image.RGBA
	z       *vector.Rasterizer
	regular *opentype.Font
	bold    *opentype.Font
	faces   map[faceKey]font.Face
}

type faceKey struct {
	size float64
	bold bool
}

var (
	goRegular, goBold *opentype.Font
)

func init() {
	var err error
	// embedded fonts, parsing cannot fail.
	if goRegular, err = opentype.Parse(goregular.TTF); err != nil {
		panic(err)
	}
	if goBold, err = opentype.Parse(gobold.TTF); err != nil {
		panic(err)
	}
}

// New returns a surface of the given size using the Go fonts.
func New(width, height int) *Surface {
	s, _ := NewWithOptions(width, height, Options{}) // Go fonts never fail
	return s
}

// NewWithOptions returns a surface of the given size.
func NewWithOptions(width, height int, opts Options) (*Surface, error) {
	s := &Surface{
		img:     image.NewRGBA(image.Rect(0, 0, max(0, width), max(0, height))),
		z:       vector.NewRasterizer(max(0, width), max(0, height)),
		regular: goRegular,
		bold:    goBold,
		faces:   make(map[faceKey]font.Face),
	}
	if opts.Font != nil {
		f, err := opentype.Parse(opts.Font)
		if err != nil {
			return nil, fmt.Errorf("parsing font: %w", err)
		}
		s.regular, s.bold = f, f
	}
	if opts.BoldFont != nil {
		f, err := opentype.Parse(opts.BoldFont)
		if err != nil {
			return nil, fmt.Errorf("parsing bold font: %w", err)
		}
		s.bold = f
	}
	return s, nil
}

// Image returns the underlying image.
func (s *Surface) Image() *image.RGBA { return s.img }

// EncodePNG writes the image as a PNG.
func (s *Surface) EncodePNG(w io.Writer) error { return png.Encode(w, s.img) }

func (s *Surface) Size() (float64, float64) {
	b := s.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s *Surface) Clear(c color.Color) {
	draw.Draw(s.img, s.img.Bounds(), uniform(c), image.Point{}, draw.Src)
}

func (s *Surface) FillPath(p pcschart.Path, c color.Color) {
	s.begin()
	open := false
	for _, seg := range p.Segments {
		switch seg.Kind {
		case pcschart.MoveTo:
			if open {
				s.z.ClosePath()
			}
			s.z.MoveTo(f32(seg.Points[0]))
			open = true
		case pcschart.LineTo:
			s.z.LineTo(f32(seg.Points[0]))
		case pcschart.QuadTo:
			bx, by := f32(seg.Points[0])
			cx, cy := f32(seg.Points[1])
			s.z.QuadTo(bx, by, cx, cy)
		case pcschart.CubeTo:
			bx, by := f32(seg.Points[0])
			cx, cy := f32(seg.Points[1])
			dx, dy := f32(seg.Points[2])
			s.z.CubeTo(bx, by, cx, cy, dx, dy)
		case pcschart.Close:
			if open {
				s.z.ClosePath()
			}
			open = false
		}
	}
	if open {
		s.z.ClosePath()
	}
	s.fill(c)
}

func (s *Surface) FillRect(r pcschart.Rect, c color.Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	s.polygon(c,
		pcschart.Pt(r.X, r.Y),
		pcschart.Pt(r.Right(), r.Y),
		pcschart.Pt(r.Right(), r.Bottom()),
		pcschart.Pt(r.X, r.Bottom()),
	)
}

func (s *Surface) StrokeLine(from, to pcschart.Point, width float64, c color.Color) {
	dx, dy := to.X-from.X, to.Y-from.Y
	length := math.Hypot(dx, dy)
	if length == 0 || width <= 0 {
		return
	}
	n := pcschart.Pt(-dy/length*width/2, dx/length*width/2)
	s.polygon(c,
		pcschart.Pt(from.X+n.X, from.Y+n.Y),
		pcschart.Pt(to.X+n.X, to.Y+n.Y),
		pcschart.Pt(to.X-n.X, to.Y-n.Y),
		pcschart.Pt(from.X-n.X, from.Y-n.Y),
	)
}

func (s *Surface) Text(str string, at pcschart.Point, style pcschart.TextStyle) {
	if str == "" || style.Size <= 0 {
		return
	}
	face := s.face(style.Size, style.Bold)
	advance := float64(font.MeasureString(face, str)) / 64
	m := face.Metrics()
	ascent, descent := float64(m.Ascent)/64, float64(m.Descent)/64

	// offset of the text origin (left of the baseline) relative to 'at'.
	var ox, oy float64
	switch style.Align {
	case pcschart.AlignCenter:
		ox = -advance / 2
	case pcschart.AlignRight:
		ox = -advance
	}
	switch style.Baseline {
	case pcschart.BaselineMiddle:
		oy = (ascent - descent) / 2
	case pcschart.BaselineTop:
		oy = ascent
	}

	src := uniform(style.Color)
	if style.Angle == 0 {
		d := &font.Drawer{Dst: s.img, Src: src, Face: face, Dot: fixedPoint(at.X+ox, at.Y+oy)}
		d.DrawString(str)
		return
	}

	// draw horizontally on a transparent tile, then rotate it around 'at'.
	const margin = 2
	tile := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(advance))+2*margin, int(math.Ceil(ascent+descent))+2*margin))
	d := &font.Drawer{Dst: tile, Src: src, Face: face, Dot: fixedPoint(margin, margin+ascent)}
	d.DrawString(str)

	// 'at' expressed in tile coordinates.
	tx, ty := margin-ox, margin+ascent-oy
	sin, cos := math.Sincos(style.Angle)
	m2 := f64.Aff3{
		cos, -sin, at.X - (cos*tx - sin*ty),
		sin, cos, at.Y - (sin*tx + cos*ty),
	}
	draw.BiLinear.Transform(s.img, m2, tile, tile.Bounds(), draw.Over, nil)
}

// face returns a cached font face.
func (s *Surface) face(size float64, bold bool) font.Face {
	k := faceKey{size, bold}
	if f, ok := s.faces[k]; ok {
		return f
	}
	f := s.regular
	if bold {
		f = s.bold
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		// only for invalid sizes, fall back to a basic face.
		face, _ = opentype.NewFace(goRegular, &opentype.FaceOptions{Size: 12, DPI: 72})
	}
	s.faces[k] = face
	return face
}

// begin resets the rasterizer for a new shape.
func (s *Surface) begin() {
	b := s.img.Bounds()
	s.z.Reset(b.Dx(), b.Dy())
	s.z.DrawOp = draw.Over
}

// fill draws the current shape with c.
func (s *Surface) fill(c color.Color) {
	s.z.Draw(s.img, s.img.Bounds(), uniform(c), image.Point{})
}

// uniform returns the source image of c, a nil color is transparent.
func uniform(c color.Color) *image.Uniform {
	if c == nil {
		c = color.Transparent
	}
	return image.NewUniform(c)
}

func (s *Surface) polygon(c color.Color, pts ...pcschart.Point) {
	s.begin()
	s.z.MoveTo(f32(pts[0]))
	for _, p := range pts[1:] {
		s.z.LineTo(f32(p))
	}
	s.z.ClosePath()
	s.fill(c)
}

func f32(p pcschart.Point) (float32, float32) { return float32(p.X), float32(p.Y) }

func fixedPoint(x, y float64) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(math.Round(x * 64)), Y: fixed.Int26_6(math.Round(y * 64))}
}
