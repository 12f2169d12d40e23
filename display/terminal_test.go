package ottava_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	Od "github.com/craque/ottava/display"
	Og "github.com/craque/ottava/glyph"
	Oo "github.com/craque/ottava/obvy"
	Mt "github.com/craque/ottava/types"
	"github.com/gdamore/tcell/v2"
)

func TestScreen(t *testing.T) {
	s := mkTestScreen(t, "")
	defer s.Fini()
	s.Clear()

	t.Run("Check test screen", func(t *testing.T) {
		b, x, y := s.GetContents()
		if len(b) != x*y || x != 80 || y != 25 {
			t.Fatalf("Contents (%v, %v, %v) wrong", len(b), x, y)
		}
		for i := 0; i < x*y; i++ {
			if len(b[i].Runes) == 1 && b[i].Runes[0] != ' ' {
				t.Errorf("Incorrect contents at %v: %v", i, b[i].Runes)
			}
			if b[i].Style != tcell.StyleDefault {
				t.Errorf("Incorrect style at %v: %v", i, b[i].Style)
			}
		}
	})
}

func TestCalcCellOrigin(t *testing.T) {
	tests := []struct {
		name     string
		row, col int
		wantX    int
		wantY    int
	}{
		{"Top left cell sits at the gutter", 0, 0, 2, 2},
		{"Second column shifts by glyph width plus seam", 0, 1, 18, 2},
		{"Second row shifts by glyph height plus seam", 1, 0, 2, 11},
		{"Bottom right cell", 4, 6, 98, 38},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := Od.CalcCellOrigin(tt.row, tt.col, 2)
			assertInt(t, x, tt.wantX)
			assertInt(t, y, tt.wantY)
		})
	}
}

func TestScreenAdapter_CellFor(t *testing.T) {
	s := mkTestScreen(t, "")
	defer s.Fini()

	sa := &Od.ScreenAdapter{Screen: s, OX: 10, OY: 5, PxPerCol: 8}

	t.Run("Origin maps to the adapter offset", func(t *testing.T) {
		x, y := sa.CellFor(0, 0)
		assertInt(t, x, 10)
		assertInt(t, y, 5)
	})

	t.Run("Rows are twice as tall as columns", func(t *testing.T) {
		x, y := sa.CellFor(16, 16)
		assertInt(t, x, 12)
		assertInt(t, y, 6)
	})
}

func TestScreenAdapter_Draw(t *testing.T) {
	t.Run("Filled rect sets background cells", func(t *testing.T) {
		s := mkTestScreen(t, "")
		defer s.Fini()
		s.Clear()

		sa := &Od.ScreenAdapter{Screen: s, OX: 0, OY: 0, PxPerCol: 8}
		p := Mt.DrawPrimitive{Kind: Mt.KindRect, X: 0, Y: 0, W: 40, H: 16, Fill: "#1f77b4"}
		err := sa.Draw(p)
		assertError(t, err, nil)
		s.Show()

		mainc, _, style, _ := s.GetContent(0, 0)
		if mainc != ' ' {
			t.Errorf("got rune %q, want blank", mainc)
		}
		_, bg, _ := style.Decompose()
		if bg != tcell.GetColor("#1f77b4") {
			t.Errorf("got background %v, want #1f77b4", bg)
		}
	})

	t.Run("Transparent rect draws nothing", func(t *testing.T) {
		s := mkTestScreen(t, "")
		defer s.Fini()
		s.Clear()

		sa := &Od.ScreenAdapter{Screen: s, OX: 0, OY: 0, PxPerCol: 8}
		p := Mt.DrawPrimitive{Kind: Mt.KindRect, X: 0, Y: 0, W: 50, H: 10}
		err := sa.Draw(p)
		assertError(t, err, nil)
		s.Show()

		_, _, style, _ := s.GetContent(0, 0)
		if style != tcell.StyleDefault {
			t.Errorf("transparent rect changed style: %v", style)
		}
	})

	t.Run("Text places runes with foreground color", func(t *testing.T) {
		s := mkTestScreen(t, "")
		defer s.Fini()
		s.Clear()

		sa := &Od.ScreenAdapter{Screen: s, OX: 0, OY: 0, PxPerCol: 8}
		p := Mt.DrawPrimitive{Kind: Mt.KindText, X: 0, Y: 0, Fill: "#333333", Text: "14"}
		err := sa.Draw(p)
		assertError(t, err, nil)
		s.Show()

		mainc, _, _, _ := s.GetContent(0, 0)
		if mainc != '1' {
			t.Errorf("got rune %q, want '1'", mainc)
		}
		mainc, _, _, _ = s.GetContent(1, 0)
		if mainc != '4' {
			t.Errorf("got rune %q, want '4'", mainc)
		}
	})

	t.Run("Unknown kind returns an error", func(t *testing.T) {
		s := mkTestScreen(t, "")
		defer s.Fini()

		sa := &Od.ScreenAdapter{Screen: s, OX: 0, OY: 0, PxPerCol: 8}
		p := Mt.DrawPrimitive{Kind: Mt.PrimitiveKind(99)}
		err := sa.Draw(p)
		assertGotError(t, err)
	})
}

func TestView_RenderPass(t *testing.T) {
	view := makeTestView(t)

	t.Run("Grid has one cell per slot", func(t *testing.T) {
		assertInt(t, len(view.Cells), Og.GridCells)
	})

	t.Run("Cells carry the displayed month", func(t *testing.T) {
		// June 2025 starts on a Sunday, so day 1 is at (0,0)
		found := false
		for _, cell := range view.Cells {
			if cell.Row == 0 && cell.Col == 0 {
				assertString(t, cell.Label, "1")
				found = true
			}
		}
		if !found {
			t.Fatal("cell (0,0) missing from grid")
		}
	})

	t.Run("Provider error keeps the previous grid", func(t *testing.T) {
		prev := view.Cells
		view.Provider = &failingProvider{}
		err := view.RenderPass()
		assertError(t, err, nil)
		if len(view.Cells) != len(prev) {
			t.Errorf("grid replaced after provider failure")
		}
	})
}

func TestView_StepMonth(t *testing.T) {
	view := makeTestView(t)
	s := mkTestScreen(t, "")
	defer s.Fini()
	view.Screen = s

	view.StepMonth(1)
	if view.Month != time.July || view.Year != 2025 {
		t.Errorf("got %s %d, want July 2025", view.Month, view.Year)
	}

	// Step across the year boundary
	view.Month, view.Year = time.December, 2025
	view.StepMonth(1)
	if view.Month != time.January || view.Year != 2026 {
		t.Errorf("got %s %d, want January 2026", view.Month, view.Year)
	}
}

func TestView_HandleMouseClick(t *testing.T) {
	view := makeTestView(t)

	t.Run("Click inside a glyph selects its cell", func(t *testing.T) {
		// cell (1,2) starts at (34, 11)
		view.HandleMouseClick(35, 12)
		if !view.ShowCell {
			t.Fatal("click inside glyph did not select")
		}
		assertInt(t, view.SelectRow, 1)
		assertInt(t, view.SelectCol, 2)
	})

	t.Run("Click in a seam clears the selection", func(t *testing.T) {
		view.HandleMouseClick(0, 0)
		if view.ShowCell {
			t.Error("click outside grid kept selection")
		}
	})
}

func TestView_StatsMiddleware(t *testing.T) {
	view := makeTestView(t)
	handler := view.StatsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	r := httptest.NewRequest("GET", "/api/version", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assertStatus(t, w.Code, http.StatusNoContent)
}

func TestProviderFromConfig(t *testing.T) {
	t.Run("No config falls back to random", func(t *testing.T) {
		p, err := Od.ProviderFromConfig(nil)
		assertError(t, err, nil)
		vec, err := p.NextVector()
		assertError(t, err, nil)
		assertInt(t, len(vec), Mt.VectorLen)
	})

	t.Run("Unknown source name is an error", func(t *testing.T) {
		t.Setenv("OTTAVA_SOURCE", "bogus")
		_, err := Od.ProviderFromConfig(nil)
		assertGotError(t, err)
	})
}

// failingProvider always errors, for render failure paths.
type failingProvider struct{}

func (f *failingProvider) NextVector() (Mt.MetricVector, error) {
	return nil, errors.New("source unavailable")
}

func mkTestScreen(t *testing.T, charset string) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen(charset)
	if s == nil {
		t.Fatalf("Failed to get SimulationScreen")
	}
	if err := s.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	return s
}

// makeTestView builds a View around deterministic data, no real screen.
func makeTestView(t *testing.T) *Od.View {
	t.Helper()

	cfg := Og.DefaultGlyphConfig()
	view := &Od.View{
		Config:   cfg,
		Provider: Og.NewSeededRandomProvider(cfg.MaxValue, 1),
		Stats:    Oo.NewStatsInternal(),
		Month:    time.June,
		Year:     2025,
	}

	if err := view.RenderPass(); err != nil {
		t.Fatalf("Failed to compose test grid: %v", err)
	}

	return view
}

func assertString(t testing.TB, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func assertStringContains(t testing.TB, got, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Errorf("got %q, want it to contain %q", got, want)
	}
}

func assertInt(t testing.TB, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("got %d, want %d", got, want)
	}
}

func assertStatus(t testing.TB, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("got status %d, want %d", got, want)
	}
}

func assertError(t testing.TB, got, want error) {
	t.Helper()
	if !errors.Is(got, want) {
		t.Errorf("got error %v, want %v", got, want)
	}
}

func assertGotError(t testing.TB, got error) {
	t.Helper()
	if got == nil {
		t.Error("wanted an error but didn't get one")
	}
}
