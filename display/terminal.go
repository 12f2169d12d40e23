package ottava

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"os"
	"runtime/debug"
	"strconv"
	"sync"
	"time"

	Og "github.com/craque/ottava/glyph"
	Oo "github.com/craque/ottava/obvy"
	Mp "github.com/craque/ottava/plugin"
	Mt "github.com/craque/ottava/types"
	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	screenGutter = 2

	// terminal footprint of one glyph
	glyphCols = 15
	glyphRows = 8
)

// View is the month of glyphs currently on screen
type View struct {
	MU         sync.Mutex         // State locks to read data
	Config     Og.GlyphConfig     // layout parameters for every glyph
	Provider   Og.MetricsProvider // vector source, one call per cell
	Output     Mp.SnapshotStore   // optional snapshot persistence
	Screen     tcell.Screen       // the screen itself
	Stats      *Oo.StatsInternal  // Internal status for prometheus
	Supervisor *RenderSupervisor  // periodic render passes
	server     *http.Server       // Prometheus metrics server
	Month      time.Month         // month being displayed
	Year       int
	Cells      []Mt.CalendarCell // latest composed grid, read by handlers
	SelectRow  int               // Selected cell with MouseClick
	SelectCol  int
	ShowCell   bool // Display the selected cell ID
}

// ScreenAdapter draws abstract primitives into a block of terminal
// cells. Glyph pixel space is downscaled: one column is PxPerCol
// glyph px wide, one row twice that (terminal cells are tall).
type ScreenAdapter struct {
	Screen   tcell.Screen
	OX, OY   int // top-left terminal cell of the glyph
	PxPerCol float64
}

// CellFor downscales a glyph-space point to a terminal cell.
func (sa *ScreenAdapter) CellFor(x, y float64) (int, int) {
	return sa.OX + int(x/sa.PxPerCol), sa.OY + int(y/(2*sa.PxPerCol))
}

// Draw maps one primitive onto terminal cells.
// Transparent rectangles are layout no-ops here.
func (sa *ScreenAdapter) Draw(p Mt.DrawPrimitive) error {
	switch p.Kind {
	case Mt.KindRect:
		if p.Fill == "" {
			return nil
		}
		style := tcell.StyleDefault.Background(tcell.GetColor(p.Fill))
		x1, y1 := sa.CellFor(p.X, p.Y)
		x2, y2 := sa.CellFor(p.X+p.W, p.Y+p.H)
		// a thin bar still occupies one cell
		for row := y1; row <= y2 && row-y1 < glyphRows; row++ {
			for col := x1; col <= x2 && col-x1 < glyphCols; col++ {
				sa.Screen.SetContent(col, row, ' ', nil, style)
			}
		}

	case Mt.KindCircle:
		if p.Fill == "" {
			return nil
		}
		style := tcell.StyleDefault.Background(tcell.GetColor(p.Fill))
		for row := 0; row < glyphRows; row++ {
			for col := 0; col < glyphCols; col++ {
				// center of this terminal cell in glyph px
				px := (float64(col) + 0.5) * sa.PxPerCol
				py := (float64(row) + 0.5) * 2 * sa.PxPerCol
				if math.Hypot(px-p.X, py-p.Y) <= p.Radius {
					sa.Screen.SetContent(sa.OX+col, sa.OY+row, ' ', nil, style)
				}
			}
		}

	case Mt.KindText:
		style := tcell.StyleDefault.Foreground(tcell.GetColor(p.Fill))
		col, row := sa.CellFor(p.X, p.Y)
		for i, r := range p.Text {
			sa.Screen.SetContent(col+i, row, r, nil, style)
		}

	default:
		return fmt.Errorf("unknown primitive kind: %d", p.Kind)
	}
	return nil
}

// CalcCellOrigin figures out where a grid cell starts on screen.
// Each glyph gets its fixed footprint plus a one-cell seam.
func CalcCellOrigin(row, col, gutter int) (int, int) {
	return gutter + col*(glyphCols+1), gutter + row*(glyphRows+1)
}

// RenderPass composes a fresh grid for the displayed month:
// one vector per cell from the Provider, then the pure layout.
// The composed cells replace View.Cells under lock and are
// mirrored to the snapshot store when one is attached.
func (v *View) RenderPass() error {
	start := time.Now()

	v.MU.Lock()
	month, year := v.Month, v.Year
	cfg := v.Config
	v.MU.Unlock()

	labels := Og.MonthLabels(month, year)

	data := make([]Mt.MetricVector, Og.GridCells)
	for k := range data {
		vec, err := v.Provider.NextVector()
		if err != nil {
			// Only log the error, keep the previous grid otherwise
			slog.Error("Failed to fetch vector", slog.Any("Error", err))
			return nil
		}
		data[k] = vec
	}

	cells, err := Og.ComposeGrid(labels, data, cfg)
	if err != nil {
		slog.Error("Failed to compose grid", slog.Any("Error", err))
		return err
	}

	v.MU.Lock()
	v.Cells = cells
	v.MU.Unlock()

	if v.Output != nil {
		date := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		for k := range cells {
			snap := &Mt.CellSnapshot{Date: date, Cell: cells[k]}
			if err := v.Output.WriteCell(snap); err != nil {
				slog.Error("Failed to store snapshot", slog.Any("Error", err))
				break
			}
		}
	}

	duration := time.Since(start).Seconds()
	v.Stats.RecRenderTimer(duration)

	return nil
}

// DrawMonthView draws the composed grid with tcell
func (v *View) DrawMonthView() {
	width, height := v.GetScreenSize()

	v.MU.Lock()
	cells := v.Cells
	month, year := v.Month, v.Year
	cfg := v.Config
	showCell := v.ShowCell
	selectRow, selectCol := v.SelectRow, v.SelectCol
	v.MU.Unlock()

	v.DrawViewBorder(width-2, height-1)
	v.DrawText(2, 0, width, 1, fmt.Sprintf(" %s %d ", month, year))

	pxPerCol := cfg.TotalWidth() / float64(glyphCols)
	for _, cell := range cells {
		ox, oy := CalcCellOrigin(cell.Row, cell.Col, screenGutter)
		sa := &ScreenAdapter{Screen: v.Screen, OX: ox, OY: oy, PxPerCol: pxPerCol}
		if err := RenderGlyph(sa, cell.Glyph); err != nil {
			slog.Error("Failed to draw glyph", slog.Any("Error", err))
		}
	}

	// A MouseClick has happened on a glyph, show which day it is
	if showCell {
		for _, cell := range cells {
			if cell.Row == selectRow && cell.Col == selectCol && cell.Label != "" {
				label := fmt.Sprintf("... day %s ...", cell.Label)
				v.DrawText(4, height-2, width, height-2, label)
			}
		}
	}

	v.DrawText(1, height-1, width, height+10, "/[/ prev month | /]/ next month | /r/ refresh | /ESC/ to quit")
	v.DrawText(width-9, height-1, width, height+10, "OTTAVA")
}

// DrawText displays the text string at the given (x1, y1) with box size (x2, y2)
func (v *View) DrawText(x1, y1, x2, y2 int, text string) {
	row := y1
	col := x1
	style := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorLightSteelBlue)
	for _, r := range text {
		v.Screen.SetContent(col, row, r, nil, style)
		col++
		if col >= x2 {
			row++
			col = x1
		}
		if row > y2 {
			break
		}
	}
}

// DrawViewBorder displays the outline of the View
func (v *View) DrawViewBorder(width, height int) {
	hvStyle := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorPink)
	v.Screen.SetContent(0, 0, tcell.RuneULCorner, nil, hvStyle)
	for i := 1; i < width; i++ {
		v.Screen.SetContent(i, 0, tcell.RuneHLine, nil, hvStyle)
	}
	v.Screen.SetContent(width, 0, tcell.RuneURCorner, nil, hvStyle)

	for i := 1; i < height; i++ {
		v.Screen.SetContent(0, i, tcell.RuneVLine, nil, hvStyle)
	}

	v.Screen.SetContent(0, height, tcell.RuneLLCorner, nil, hvStyle)

	for i := 1; i < height; i++ {
		v.Screen.SetContent(width, i, tcell.RuneVLine, nil, hvStyle)
	}

	v.Screen.SetContent(width, height, tcell.RuneLRCorner, nil, hvStyle)

	for i := 1; i < width; i++ {
		v.Screen.SetContent(i, height, tcell.RuneHLine, nil, hvStyle)
	}
}

// StepMonth moves the displayed month and forces a fresh pass.
func (v *View) StepMonth(delta int) {
	v.MU.Lock()
	v.Month, v.Year = Og.MonthStep(v.Month, v.Year, delta)
	v.MU.Unlock()

	if err := v.RenderPass(); err != nil {
		slog.Error("Failed to render month", slog.Any("Error", err))
	}
	v.UpdateScreen()
}

// Exit cleanly
func (v *View) exit() {
	v.MU.Lock()
	defer v.MU.Unlock()
	v.Screen.Fini()
	os.Exit(0)
}

// Running Loop to handle events
func (v *View) handleKeyBoardEvent() {
	for {
		ev := v.Screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			v.ResizeScreen()
		case *tcell.EventKey:
			// Catch quit and exit
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				v.exit()
			}

			switch ev.Rune() {
			case '[':
				v.StepMonth(-1)
			case ']':
				v.StepMonth(1)
			case 'r':
				if err := v.RenderPass(); err != nil {
					slog.Error("Failed to refresh", slog.Any("Error", err))
				}
				v.UpdateScreen()
			}

		case *tcell.EventMouse:
			// Button1 is Left Mouse Button
			if ev.Buttons() == tcell.Button1 {
				v.HandleMouseClick(ev.Position())
			}
		}
	}
}

// HandleMouseClick maps a click back to the grid cell under it.
func (v *View) HandleMouseClick(x, y int) {
	v.MU.Lock()
	defer v.MU.Unlock()

	// Assume there is no selection so the last one is cleared.
	v.ShowCell = false

	for i := 0; i < Og.GridRows; i++ {
		for j := 0; j < Og.GridCols; j++ {
			ox, oy := CalcCellOrigin(i, j, screenGutter)
			if x >= ox && x < ox+glyphCols && y >= oy && y < oy+glyphRows {
				v.SelectRow = i
				v.SelectCol = j
				v.ShowCell = true
				return
			}
		}
	}
}

// GetScreenSize provides the terminal size for drawing
func (v *View) GetScreenSize() (int, int) {
	width, height := v.Screen.Size()
	return width, height
}

// ResizeScreen resizes the month view after terminal changes
func (v *View) ResizeScreen() {
	v.Screen.Sync()
	v.UpdateScreen()
}

func (v *View) UpdateScreen() {
	v.Screen.Clear()
	v.DrawMonthView()
	v.Screen.Show()
}

// run runs a loop and updates periodically
// each iteration pulls fresh vectors through the Provider
// and recomposes the grid, which is then drawn by DrawMonthView
func (v *View) run() {
	// Panic recovery and logging
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Panic in run loop", slog.Any("panic", r))
			slog.Error("Recovered from panic", slog.String("stack", string(debug.Stack())))
			debug.PrintStack()
		}
	}()

	// Main application loop
	slog.Info("Starting month view")
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if err := v.RenderPass(); err != nil {
			slog.Error("Failed to RenderPass", slog.Any("Error", err))
			return
		}
		v.UpdateScreen()
	}
}

// RespWriter is a wrapper with StatsMiddleware, used for Prometheus
type RespWriter struct {
	http.ResponseWriter
	Status int
}

// WriteHeader is a helper for StatsMiddleware, used for Prometheus
func (w *RespWriter) WriteHeader(status int) {
	w.Status = status
	w.ResponseWriter.WriteHeader(status)
}

// Write is a helper for StatsMiddleware, used for Prometheus
func (w *RespWriter) Write(b []byte) (int, error) {
	return w.ResponseWriter.Write(b)
}

func (v *View) StatsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := &RespWriter{
			ResponseWriter: w,
			Status:         200,
		}
		next.ServeHTTP(wrapped, r)

		v.Stats.RecWWW(strconv.Itoa(wrapped.Status), r.Method)
	})
}

// NewView creates the tcell screen that displays the month grid
func NewView(cfg Og.GlyphConfig, provider Og.MetricsProvider) (*View, error) {
	if provider == nil {
		slog.Error("Could not get a vector source for display")
		return nil, errors.New("vector source not found")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		slog.Error("Could not get new screen", slog.Any("Error", err))
		return nil, err
	}
	if err := screen.Init(); err != nil {
		slog.Error("Could not initialize screen", slog.Any("Error", err))
		return nil, err
	}

	// Define and configure the default screen
	defStyle := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorPink)
	screen.SetStyle(defStyle)
	screen.EnableMouse()

	// create an attached prometheus registry
	stats := Oo.NewStatsInternal()

	now := time.Now()
	view := &View{
		Config:   cfg,
		Provider: provider,
		Screen:   screen,
		Stats:    stats,
		Month:    now.Month(),
		Year:     now.Year(),
	}

	if err := view.RenderPass(); err != nil {
		slog.Error("Could not compose initial grid", slog.Any("Error", err))
		return nil, err
	}
	view.UpdateScreen()

	return view, nil
}

// StartGlyphViewWithConfig is called by main to run the program.
// This also starts up the /metrics endpoint that is populated by prometheus.
func StartGlyphViewWithConfig(c []Og.ConfigFile) error {
	cfg := Og.GlyphConfigFromEnv()

	provider, err := ProviderFromConfig(c)
	if err != nil {
		slog.Error("Failed to init vector source", slog.Any("Error", err))
		return err
	}

	view, err := NewView(cfg, provider)
	if err != nil {
		slog.Error("Could not start month view", slog.Any("Error", err))
		return err
	}

	AttachSnapshotStore(view)

	// Server for stats endpoint
	view.server = &http.Server{
		Addr:    ":8090",
		Handler: otelhttp.NewHandler(view.SetupMux(), "ottava-http"),
	}

	// Run Ottava
	go view.run()

	// Run stats endpoint
	go func() {
		addr := ":8090"
		slog.Info("Starting Ottava stats endpoint...", slog.String("Port", addr))
		if err := view.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not start stats endpoint", slog.Any("Error", err))
		}
	}()

	view.handleKeyBoardEvent()

	return err
}

// StartWebNoTUI serves the month grid over HTTP only.
func StartWebNoTUI(c []Og.ConfigFile) error {
	cfg := Og.GlyphConfigFromEnv()

	provider, err := ProviderFromConfig(c)
	if err != nil {
		slog.Error("Failed to init vector source", slog.Any("Error", err))
		return err
	}

	// Create View without tcell screen
	now := time.Now()
	view := &View{
		Config:   cfg,
		Provider: provider,
		Stats:    Oo.NewStatsInternal(),
		Month:    now.Month(),
		Year:     now.Year(),
	}

	AttachSnapshotStore(view)

	if err := view.RenderPass(); err != nil {
		slog.Error("Could not compose initial grid", slog.Any("Error", err))
		return err
	}

	// Server for stats endpoint
	view.server = &http.Server{
		Addr:    ":8090",
		Handler: otelhttp.NewHandler(view.SetupMux(), "ottava-http"),
	}

	// Periodic render passes
	view.NewRenderSupervisor().Start()

	// Run stats endpoint (blocks)
	addr := ":8090"
	slog.Info("Starting Ottava web server...", slog.String("Port", addr))
	if err := view.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Could not start web server", slog.Any("Error", err))
		return err
	}

	return nil
}

// ProviderFromConfig picks the vector source named by
// OTTAVA_SOURCE, fed with the first config stanza.
// Without a config or a source name, random data it is.
func ProviderFromConfig(c []Og.ConfigFile) (Og.MetricsProvider, error) {
	source := Og.FillEnvVar("OTTAVA_SOURCE")
	if source == "ENOENT" {
		source = "random"
	}

	var cf Og.ConfigFile
	if len(c) > 0 {
		cf = c[0]
	}

	return Mp.SourceLookup(source, cf)
}

// AttachSnapshotStore opens the badger store when OTTAVA_DB is set.
func AttachSnapshotStore(v *View) {
	path := Og.FillEnvVar("OTTAVA_DB")
	if path == "ENOENT" {
		return
	}

	output, err := Mp.NewBadgerOutput(path, Og.GridCells)
	if err != nil {
		slog.Error("Failed to open snapshot store", slog.Any("Error", err))
		return
	}
	v.Output = output
	slog.Info("Snapshot store enabled", slog.String("path", path))
}
