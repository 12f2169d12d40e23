package ottava

import (
	"encoding/json"
	"net/http"

	Og "github.com/craque/ottava/glyph"
	Mt "github.com/craque/ottava/types"
	"github.com/gorilla/mux"
)

// SetupMux handles all data serving:
// - Prometheus metric endpoint
// - Websocket specialized for D3.js UI
// - Version for programmatic use
// - Month grid as SVG and as raw primitives
func (v *View) SetupMux() *mux.Router {
	r := mux.NewRouter()

	r.Handle("/metrics", v.Stats.Handler())
	r.HandleFunc("/ws", v.WebsocketHandler)
	r.HandleFunc("/api/version", v.VersionHandler)
	r.HandleFunc("/api/month.svg", v.MonthSVGHandler)
	r.HandleFunc("/api/glyph-data", v.GlyphDataHandler)

	// Static files for D3 frontend
	r.PathPrefix("/").Handler(http.FileServer(http.Dir("./web/")))

	api := r.PathPrefix("/api").Subrouter()
	api.Use(v.StatsMiddleware)

	return r
}

var Version = "dev"

func (v *View) VersionHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"version": Version})
}

// MonthSVGHandler renders the current grid as one SVG document.
func (v *View) MonthSVGHandler(w http.ResponseWriter, r *http.Request) {
	v.MU.Lock()
	cells := v.Cells
	cfg := v.Config
	v.MU.Unlock()

	doc, err := MonthSVG(cells, cfg)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(doc))
}

// GlyphDataHandler serves the composed cells as JSON,
// one primitive list per day, for clients that draw themselves.
func (v *View) GlyphDataHandler(w http.ResponseWriter, r *http.Request) {
	v.MU.Lock()
	cells := v.Cells
	cfg := v.Config
	month, year := v.Month, v.Year
	v.MU.Unlock()

	type CellData struct {
		Row         int     `json:"row"`
		Col         int     `json:"col"`
		Label       string  `json:"label"`
		Primitives  int     `json:"primitives"`
		PercentUsed float64 `json:"percentUsed"`
	}

	var allCells []CellData

	for _, cell := range cells {
		allCells = append(allCells, CellData{
			Row:         cell.Row,
			Col:         cell.Col,
			Label:       cell.Label,
			Primitives:  len(cell.Glyph),
			PercentUsed: CellPercentUsed(cell.Glyph, cfg),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"month": month.String(),
		"year":  year,
		"days":  Og.DaysInMonth(month, year),
		"cells": allCells,
	})
}

// CellPercentUsed is the mean bar fill of one glyph, 0-100.
// Bars extend along their direction axis, so the extent is W
// for Left/Right and H for Up/Down.
func CellPercentUsed(g Mt.GlyphResult, c Og.GlyphConfig) float64 {
	if c.BarLength <= 0 {
		return 0
	}

	var sum float64
	var bars int
	for _, p := range g {
		if p.Class != Mt.ClassBar {
			continue
		}
		extent := p.H
		if p.Dir == Mt.Left || p.Dir == Mt.Right {
			extent = p.W
		}
		sum += extent
		bars++
	}
	if bars == 0 {
		return 0
	}

	return Og.FloatPrecise(sum/(float64(bars)*c.BarLength)*100, 2)
}
