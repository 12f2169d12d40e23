package ottava

import (
	"errors"
	"fmt"
	"sync"

	Mt "github.com/craque/ottava/types"
)

// Fixed month grid shape: 5 rows of 7 columns.
const (
	GridRows  = 5
	GridCols  = 7
	GridCells = GridRows * GridCols
)

// ErrGridSize means the composer was not given exactly
// one label and one vector per grid cell.
var ErrGridSize = errors.New("grid inputs must hold exactly 35 entries")

// ComposeGrid lays out all 35 glyphs of one month view.
//
// Index contract:
// the cell at (row i, col j) draws labels[j*5+i] and data[i*7+j].
// MonthLabels emits its labels in that column-major order, so the
// two stay paired; any other label source must do the same.
//
// Cells are independent pure computations and are laid out
// concurrently; assembly into grid order is deterministic.
// On any cell error nothing is returned but the first error.
func ComposeGrid(labels []string, data []Mt.MetricVector, c GlyphConfig) ([]Mt.CalendarCell, error) {
	if len(labels) != GridCells || len(data) != GridCells {
		return nil, fmt.Errorf("%w: got %d labels, %d vectors", ErrGridSize, len(labels), len(data))
	}

	cells := make([]Mt.CalendarCell, GridCells)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i := 0; i < GridRows; i++ {
		for j := 0; j < GridCols; j++ {
			wg.Add(1)
			go func(i, j int) {
				defer wg.Done()

				label := labels[j*GridRows+i]
				glyph, err := Layout(data[i*GridCols+j], label, c)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					return
				}

				cells[i*GridCols+j] = Mt.CalendarCell{
					Row:   i,
					Col:   j,
					Label: label,
					Glyph: glyph,
				}
			}(i, j)
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return cells, nil
}
