package ottava

import (
	"net/http"
	"time"

	Mt "github.com/craque/ottava/types"
	"github.com/gorilla/websocket"
)

// PrimitiveD3 is one draw primitive flattened for the D3 frontend.
type PrimitiveD3 struct {
	Kind    string  `json:"kind"`    // "rect", "circle" or "text"
	X       float64 `json:"x"`       // glyph-local px
	Y       float64 `json:"y"`       // glyph-local px
	W       float64 `json:"w"`       // rect only
	H       float64 `json:"h"`       // rect only
	Radius  float64 `json:"radius"`  // circle only
	Fill    string  `json:"fill"`    // empty means transparent
	Stroke  string  `json:"stroke"`  // frame outline
	StrokeW float64 `json:"strokeW"` // frame outline width
	Text    string  `json:"text"`    // day label
}

// CellD3 is one calendar cell with its primitives in draw order.
type CellD3 struct {
	Row        int           `json:"row"`
	Col        int           `json:"col"`
	Label      string        `json:"label"`
	Primitives []PrimitiveD3 `json:"primitives"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (v *View) WebsocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// Send the grid periodically
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for range ticker.C {
		gridData := v.GetGridDataD3()
		if err := conn.WriteJSON(gridData); err != nil {
			return // Connection closed
		}
	}
}

// GetGridDataD3 flattens the composed grid into the wire format.
func (v *View) GetGridDataD3() []CellD3 {
	v.MU.Lock()
	cells := v.Cells
	v.MU.Unlock()

	// Make sure we're not nil
	if cells == nil {
		return []CellD3{}
	}

	var grid []CellD3

	for _, cell := range cells {
		d3cell := CellD3{
			Row:   cell.Row,
			Col:   cell.Col,
			Label: cell.Label,
		}
		for _, p := range cell.Glyph {
			d3cell.Primitives = append(d3cell.Primitives, PrimitiveD3{
				Kind:    PrimitiveKindToString(p.Kind),
				X:       p.X,
				Y:       p.Y,
				W:       p.W,
				H:       p.H,
				Radius:  p.Radius,
				Fill:    p.Fill,
				Stroke:  p.Stroke,
				StrokeW: p.StrokeW,
				Text:    p.Text,
			})
		}
		grid = append(grid, d3cell)
	}
	return grid
}

func PrimitiveKindToString(kind Mt.PrimitiveKind) string {
	switch kind {
	case Mt.KindRect:
		return "rect"
	case Mt.KindCircle:
		return "circle"
	case Mt.KindText:
		return "text"
	default:
		return "unknown"
	}
}
