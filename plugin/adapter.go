package plugin

/*

	The Adapter sits aside /ottava/
	Contains core interfaces for Plugin

*/

import (
	"time"

	Mt "github.com/craque/ottava/types"
)

// SnapshotStore can be used to define a place for composed
// calendar cells to go, cell-by-cell or in batches if supported
// by the output type. Snapshots are retained for diffing past
// render passes against fresh data.
type SnapshotStore interface {
	WriteCell(snap *Mt.CellSnapshot) error                       // Write singleton cell data
	WriteBatch(snaps []*Mt.CellSnapshot) error                   // Write batches of cells
	QueryRange(start, end time.Time) ([]*Mt.CellSnapshot, error) // Time range query tool
	Flush() error                                                // Flush any buffered data
	Close() error                                                // Close the adapter and release resources
	Type() string                                                // ID for output
}
