package ottava

import (
	"errors"
	"fmt"

	Mt "github.com/craque/ottava/types"
)

// ErrVectorLength means a metric vector did not carry
// exactly the eight values a glyph encodes.
var ErrVectorLength = errors.New("metric vector must hold exactly 8 values")

// Day-number anchor inside the glyph, px from the top-left corner.
const (
	labelX = 2
	labelY = 12
)

// Stroke for the two square outlines.
const (
	frameStroke = "#666666"
	frameWidth  = 1
	labelColor  = "#333333"
)

// Layout resolves one glyph: an eight-value vector plus config
// becomes the full ordered list of draw primitives for one day.
// Pure and deterministic; identical inputs always yield
// deep-equal results.
//
// Values above c.MaxValue are not clamped: their bars simply
// extend past the full-value length and may cross the circle.
//
// Draw order is significant and fixed:
// circle, then per direction/phase {missing placeholder, data bar},
// then center square, enclosing square, day label.
func Layout(vec Mt.MetricVector, dateLabel string, c GlyphConfig) (Mt.GlyphResult, error) {
	if len(vec) != Mt.VectorLen {
		return nil, fmt.Errorf("%w: got %d", ErrVectorLength, len(vec))
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	// value -> bar length in px
	valScale, err := Scale(0, c.MaxValue, 0, c.BarLength)
	if err != nil {
		return nil, fmt.Errorf("value scale: %w", err)
	}

	// The stack is the center band occupied by the bar slots,
	// centered on the glyph midline. The index scale places
	// each bar's perpendicular offset within it.
	total := c.TotalWidth()
	mid := total / 2
	stack := float64(c.BarsPerSide) * c.BarWidth
	idxScale, err := Scale(0, float64(c.BarsPerSide), mid-stack/2, mid+stack/2)
	if err != nil {
		return nil, fmt.Errorf("index scale: %w", err)
	}

	out := make(Mt.GlyphResult, 0, 4+2*Mt.VectorLen)

	// Background circle with its penumbra stroke.
	out = append(out, Mt.DrawPrimitive{
		Kind:    Mt.KindCircle,
		Class:   Mt.ClassBackground,
		X:       mid,
		Y:       mid,
		Radius:  mid,
		Fill:    c.Background,
		Stroke:  c.Penumbra,
		StrokeW: c.PenumbraWidth,
	})

	// Bars grow outward from the center square toward the circle.
	// Every slot gets two rectangles: the placeholder first
	// (visible only for a zero value), the data bar atop it.
	for d := 0; d < c.SidesCount; d++ {
		dir := Mt.Direction(d)
		for p := 0; p < c.BarsPerSide; p++ {
			val := vec[d*c.BarsPerSide+p]
			offset := idxScale(float64(p))

			ph := barRect(dir, mid, stack, offset, c.BarLength, c.BarWidth)
			ph.Class = Mt.ClassMissing
			ph.Phase = Mt.Phase(p)
			if val == 0 {
				ph.Fill = c.Empty
			}
			out = append(out, ph)

			bar := barRect(dir, mid, stack, offset, valScale(val), c.BarWidth)
			bar.Class = Mt.ClassBar
			bar.Phase = Mt.Phase(p)
			bar.Fill = c.Colors[d][p]
			out = append(out, bar)
		}
	}

	// Center square over the bar roots.
	out = append(out, Mt.DrawPrimitive{
		Kind:    Mt.KindRect,
		Class:   Mt.ClassCenter,
		X:       mid - stack/2,
		Y:       mid - stack/2,
		W:       stack,
		H:       stack,
		Fill:    c.Background,
		Stroke:  frameStroke,
		StrokeW: frameWidth,
	})

	// Enclosing square frame.
	out = append(out, Mt.DrawPrimitive{
		Kind:    Mt.KindRect,
		Class:   Mt.ClassFrame,
		W:       total,
		H:       total,
		Stroke:  frameStroke,
		StrokeW: frameWidth,
	})

	// Day-of-month label.
	out = append(out, Mt.DrawPrimitive{
		Kind:  Mt.KindText,
		Class: Mt.ClassLabel,
		X:     labelX,
		Y:     labelY,
		Fill:  labelColor,
		Text:  dateLabel,
	})

	return out, nil
}

// barRect positions one bar rectangle for its direction.
// /offset/ is the perpendicular position of the slot,
// /length/ the resolved extent along the axis.
// Bars are one px narrower than their slot to keep a seam.
func barRect(dir Mt.Direction, mid, stack, offset, length, barWidth float64) Mt.DrawPrimitive {
	r := Mt.DrawPrimitive{Kind: Mt.KindRect, Dir: dir}
	switch dir {
	case Mt.Left:
		r.X = mid - stack/2 - length
		r.Y = offset
		r.W = length
		r.H = barWidth - 1
	case Mt.Right:
		r.X = mid + stack/2
		r.Y = offset
		r.W = length
		r.H = barWidth - 1
	case Mt.Up:
		r.X = offset
		r.Y = mid - stack/2 - length
		r.W = barWidth - 1
		r.H = length
	case Mt.Down:
		r.X = offset
		r.Y = mid + stack/2
		r.W = barWidth - 1
		r.H = length
	}
	return r
}
