package pcschart

import (
	"fmt"
	"image/color"
	"io"
	"strings"
)

// OpKind identifies a recorded drawing operation.
type OpKind string

const (
	OpClear  OpKind = "clear"
	OpPath   OpKind = "path"
	OpRect   OpKind = "rect"
	OpText   OpKind = "text"
	OpStroke OpKind = "line"
)

// Op is a drawing operation captured by a Recorder.
type Op struct {
	Kind  OpKind
	Color color.Color
	Path  Path      // OpPath
	Rect  Rect      // OpRect
	From  Point     // OpStroke
	To    Point     // OpStroke
	Width float64   // OpStroke
	Text  string    // OpText
	At    Point     // OpText
	Style TextStyle // OpText
}

// Recorder is a Surface that keeps the operations in memory.
//
// Clear discards the operations recorded so far, like it would discard the
// pixels of a raster surface.
type Recorder struct {
	Width, Height float64
	Ops           []Op
}

// NewRecorder returns an empty recorder of the given size.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{Width: width, Height: height}
}

func (r *Recorder) Size() (float64, float64) { return r.Width, r.Height }

func (r *Recorder) Clear(c color.Color) {
	r.Ops = append(r.Ops[:0], Op{Kind: OpClear, Color: c})
}

func (r *Recorder) FillPath(p Path, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpPath, Path: p, Color: c})
}

func (r *Recorder) FillRect(rect Rect, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpRect, Rect: rect, Color: c})
}

func (r *Recorder) Text(s string, at Point, style TextStyle) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Text: s, At: at, Style: style, Color: style.Color})
}

func (r *Recorder) StrokeLine(from, to Point, width float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpStroke, From: from, To: to, Width: width, Color: c})
}

// Filter returns the recorded operations of the given kind, in order.
func (r *Recorder) Filter(kind OpKind) []Op {
	var ops []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			ops = append(ops, op)
		}
	}
	return ops
}

// Dump writes a human readable listing of the operations.
func (r *Recorder) Dump(w io.Writer) error {
	for i, op := range r.Ops {
		hex, _ := Hex(op.Color)
		var detail string
		switch op.Kind {
		case OpPath:
			var b strings.Builder
			for _, s := range op.Path.Segments {
				b.WriteString(s.Kind.String())
				for _, p := range s.Points {
					fmt.Fprintf(&b, " %.1f,%.1f", p.X, p.Y)
				}
				b.WriteString(" ")
			}
			detail = strings.TrimSpace(b.String())
		case OpRect:
			detail = fmt.Sprintf("x=%.1f y=%.1f w=%.1f h=%.1f", op.Rect.X, op.Rect.Y, op.Rect.W, op.Rect.H)
		case OpText:
			detail = fmt.Sprintf("%q at %.1f,%.1f align=%s angle=%.2f", op.Text, op.At.X, op.At.Y, op.Style.Align, op.Style.Angle)
		case OpStroke:
			detail = fmt.Sprintf("%.1f,%.1f -> %.1f,%.1f width=%.1f", op.From.X, op.From.Y, op.To.X, op.To.Y, op.Width)
		}
		line := fmt.Sprintf("%3d %-5s %s %s", i, op.Kind, hex, detail)
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}
