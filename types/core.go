package types

/*

	These are the "immutable" core types of Ottava,
	provided for cross-package use (e.g. Plugins) and testing.

	There are no functions defined here.
	Struct constructors and validation live in their own packages.
	Methods taking these types should create local aliases,
	for example: type Cells []Mt.CalendarCell

*/

import "time"

// VectorLen is the fixed width of a MetricVector:
// four directions, each with a pre and post value.
const VectorLen = 8

// MetricVector is one day's eight measurements in
// direction/phase order: Left(pre,post), Right(pre,post),
// Up(pre,post), Down(pre,post). Values are non-negative.
type MetricVector []float64

// Direction is one of the four fixed glyph axes.
// Each maps to one measured activity.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// DirectionNames are display labels indexed by Direction.
var DirectionNames = map[Direction]string{
	Left:  "left",
	Right: "right",
	Up:    "up",
	Down:  "down",
}

// Phase is the pre/post sub-value within a direction,
// e.g. before/after an intervention.
type Phase int

const (
	Pre Phase = iota
	Post
)

// PhaseNames are display labels indexed by Phase.
var PhaseNames = map[Phase]string{
	Pre:  "pre",
	Post: "post",
}

// PrimitiveKind tags which shape a DrawPrimitive describes.
type PrimitiveKind int

const (
	KindRect PrimitiveKind = iota
	KindCircle
	KindText
)

// PrimitiveClass is the semantic role of a primitive inside a glyph.
// Classes make layout results checkable without a rendering surface.
type PrimitiveClass int

const (
	ClassBackground PrimitiveClass = iota // enclosing circle
	ClassMissing                          // full-length placeholder for a zero value
	ClassBar                              // one direction/phase data bar
	ClassCenter                           // center square
	ClassFrame                            // enclosing square
	ClassLabel                            // day-of-month text
)

// DrawPrimitive is one abstract, backend-agnostic draw instruction.
// Position and size are structured fields in glyph pixel space;
// a RenderAdapter owns any backend-specific serialization.
//
// Field use by Kind:
//   - KindRect:   X,Y top-left corner, W,H extent
//   - KindCircle: X,Y center, Radius
//   - KindText:   X,Y anchor, Text content
//
// An empty Fill means transparent: the primitive occupies its slot
// in the sequence but draws nothing.
type DrawPrimitive struct {
	Kind    PrimitiveKind
	Class   PrimitiveClass
	Dir     Direction // meaningful for ClassMissing and ClassBar
	Phase   Phase     // meaningful for ClassMissing and ClassBar
	X       float64
	Y       float64
	W       float64
	H       float64
	Radius  float64
	Fill    string // hex color, "" = transparent
	Stroke  string // hex color, "" = no stroke
	StrokeW float64
	Text    string
}

// GlyphResult is one glyph's complete visual description,
// in draw order: later primitives layer atop earlier ones.
// It is a pure value, never mutated after creation.
type GlyphResult []DrawPrimitive

// CalendarCell is one position of the 5x7 month grid
// with its composed glyph. Recomputed per render pass.
type CalendarCell struct {
	Row   int
	Col   int
	Label string
	Glyph GlyphResult
}

// CellSnapshot is a dated CalendarCell for persistence.
// The Date carries the month being displayed;
// the cell label carries the day within it.
//
// Note on zero vs. missing: a cell value of exactly 0 is drawn
// as the emptyColor placeholder, the same as absent data.
// Sources that can emit meaningful zeros inherit this conflation.
type CellSnapshot struct {
	Date time.Time
	Cell CalendarCell
}
