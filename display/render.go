package ottava

import (
	Mt "github.com/craque/ottava/types"
)

// RenderAdapter turns one abstract draw primitive into marks on a
// concrete surface. Implementations own all surface semantics;
// the layout core never touches a drawing resource directly.
type RenderAdapter interface {
	Draw(p Mt.DrawPrimitive) error
}

// RenderGlyph walks one glyph in its draw order.
// Ordering is significant: later primitives layer atop earlier ones.
func RenderGlyph(a RenderAdapter, g Mt.GlyphResult) error {
	for _, p := range g {
		if err := a.Draw(p); err != nil {
			return err
		}
	}
	return nil
}
