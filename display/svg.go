package ottava

import (
	"fmt"
	"strings"

	Og "github.com/craque/ottava/glyph"
	Mt "github.com/craque/ottava/types"
)

// cellPad is the gap between glyphs in a month document, px.
const cellPad = 8

// SVGAdapter serializes draw primitives into SVG elements.
// The origin offset places a glyph inside a larger document;
// positions stay structured fields until this final step.
type SVGAdapter struct {
	b      strings.Builder
	dx, dy float64
}

func NewSVGAdapter() *SVGAdapter {
	return &SVGAdapter{}
}

// Open writes the document header for the given canvas size.
func (s *SVGAdapter) Open(w, h float64) {
	fmt.Fprintf(&s.b,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`+"\n",
		w, h, w, h)
}

// SetOrigin moves the drawing origin for subsequent primitives.
func (s *SVGAdapter) SetOrigin(dx, dy float64) {
	s.dx = dx
	s.dy = dy
}

// Close finishes the document and returns it.
func (s *SVGAdapter) Close() string {
	s.b.WriteString("</svg>\n")
	return s.b.String()
}

// Draw emits one primitive. Transparent fills on rectangles are
// skipped entirely unless the rectangle carries a stroke: SVG has
// no use for an invisible element.
func (s *SVGAdapter) Draw(p Mt.DrawPrimitive) error {
	switch p.Kind {
	case Mt.KindRect:
		if p.Fill == "" && p.Stroke == "" {
			return nil
		}
		fmt.Fprintf(&s.b, `<rect x="%g" y="%g" width="%g" height="%g" fill="%s"`,
			p.X+s.dx, p.Y+s.dy, p.W, p.H, fillAttr(p.Fill))
		if p.Stroke != "" {
			fmt.Fprintf(&s.b, ` stroke="%s" stroke-width="%g"`, p.Stroke, p.StrokeW)
		}
		s.b.WriteString(" />\n")

	case Mt.KindCircle:
		fmt.Fprintf(&s.b, `<circle cx="%g" cy="%g" r="%g" fill="%s"`,
			p.X+s.dx, p.Y+s.dy, p.Radius, fillAttr(p.Fill))
		if p.Stroke != "" {
			fmt.Fprintf(&s.b, ` stroke="%s" stroke-width="%g"`, p.Stroke, p.StrokeW)
		}
		s.b.WriteString(" />\n")

	case Mt.KindText:
		if p.Text == "" {
			return nil
		}
		fmt.Fprintf(&s.b, `<text x="%g" y="%g" fill="%s" font-size="10">%s</text>`+"\n",
			p.X+s.dx, p.Y+s.dy, fillAttr(p.Fill), p.Text)

	default:
		return fmt.Errorf("unknown primitive kind: %d", p.Kind)
	}
	return nil
}

func fillAttr(fill string) string {
	if fill == "" {
		return "none"
	}
	return fill
}

// MonthSVG renders a full 5x7 grid of composed cells as one
// SVG document, each glyph offset into its grid slot.
func MonthSVG(cells []Mt.CalendarCell, c Og.GlyphConfig) (string, error) {
	span := c.TotalWidth() + cellPad

	a := NewSVGAdapter()
	a.Open(float64(Og.GridCols)*span+cellPad, float64(Og.GridRows)*span+cellPad)

	for _, cell := range cells {
		a.SetOrigin(float64(cell.Col)*span+cellPad, float64(cell.Row)*span+cellPad)
		if err := RenderGlyph(a, cell.Glyph); err != nil {
			return "", err
		}
	}

	return a.Close(), nil
}
