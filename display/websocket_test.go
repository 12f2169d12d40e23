package ottava_test

import (
	"testing"

	Od "github.com/craque/ottava/display"
	Og "github.com/craque/ottava/glyph"
	Mt "github.com/craque/ottava/types"
)

func TestPrimitiveKindToString(t *testing.T) {
	tests := []struct {
		name string
		kind Mt.PrimitiveKind
	}{
		{"rect", Mt.KindRect},
		{"circle", Mt.KindCircle},
		{"text", Mt.KindText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Od.PrimitiveKindToString(tt.kind)
			assertString(t, got, tt.name)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		got := Od.PrimitiveKindToString(Mt.PrimitiveKind(99))
		assertString(t, got, "unknown")
	})
}

func TestView_GetGridDataD3(t *testing.T) {
	t.Run("Empty view returns empty grid", func(t *testing.T) {
		view := &Od.View{}
		got := view.GetGridDataD3()
		assertInt(t, len(got), 0)
	})

	t.Run("Composed view flattens every cell", func(t *testing.T) {
		view := makeTestView(t)
		got := view.GetGridDataD3()
		assertInt(t, len(got), Og.GridCells)

		for _, cell := range got {
			assertInt(t, len(cell.Primitives), 20)

			// draw order starts with the background circle
			assertString(t, cell.Primitives[0].Kind, "circle")
			// and ends with the day label
			last := cell.Primitives[len(cell.Primitives)-1]
			assertString(t, last.Kind, "text")
			assertString(t, last.Text, cell.Label)
		}
	})
}
