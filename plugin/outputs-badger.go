package plugin

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"log/slog"
	"sync"
	"time"

	Mt "github.com/craque/ottava/types"
	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
)

// BadgerOutput persists CellSnapshots in an embedded BadgerDB.
// Writes are buffered and flushed in batches.
type BadgerOutput struct {
	MU        sync.Mutex
	DB        *badger.DB
	BatchSize int
	Buffer    []*Mt.CellSnapshot
}

func NewBadgerOutput(path string, batchSize int) (*BadgerOutput, error) {
	opts := badger.DefaultOptions(path).
		WithCompression(options.ZSTD).
		WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		slog.Error("BadgerOutput failed to open database", slog.Any("error", err))
		return nil, fmt.Errorf("database error: %w", err)
	}

	slog.Info("BadgerOutput opened",
		slog.String("path", path),
		slog.Int("batchSize", batchSize))

	return &BadgerOutput{
		DB:        db,
		BatchSize: batchSize,
		Buffer:    make([]*Mt.CellSnapshot, 0, batchSize),
	}, nil
}

// WriteCell queues up a batch of snapshots,
// when batchsize is reached, it calls Flush()
// which calls WriteBatch() with the new batch
func (bo *BadgerOutput) WriteCell(snap *Mt.CellSnapshot) error {
	bo.MU.Lock()
	defer bo.MU.Unlock()

	bo.Buffer = append(bo.Buffer, snap)
	if len(bo.Buffer) >= bo.BatchSize {
		return bo.flushLocked() // private Flush that does not lock
	}
	return nil
}

// WriteBatch performs the key/value creation to be stored
// and actually calls BadgerDB to write the data
func (bo *BadgerOutput) WriteBatch(snaps []*Mt.CellSnapshot) error {
	wb := bo.DB.NewWriteBatch()
	defer wb.Cancel()

	for _, s := range snaps {
		k := SnapKey(s)
		v := SnapEncode(s)
		if err := wb.Set(k, v); err != nil {
			slog.Error("BadgerOutput failed to set key in batch",
				slog.Any("error", err),
				slog.Time("date", s.Date),
				slog.String("label", s.Cell.Label))
			return fmt.Errorf("write batch error: %w", err)
		}
	}

	if err := wb.Flush(); err != nil {
		slog.Error("BadgerOutput failed to flush batch", slog.Any("error", err))
		return fmt.Errorf("batch flush error: %w", err)
	}

	return nil
}

// Flush is the public method that blocks,
// it sends data to WriteBatch and then clears the buffer
func (bo *BadgerOutput) Flush() error {
	bo.MU.Lock()
	defer bo.MU.Unlock()

	if len(bo.Buffer) == 0 {
		return nil
	}

	err := bo.WriteBatch(bo.Buffer) // Delegate to WriteBatch
	bo.Buffer = bo.Buffer[:0]       // Clear but keep capacity
	return err
}

// flushLocked mimics Flush without locking, called by WriteCell
func (bo *BadgerOutput) flushLocked() error {
	err := bo.WriteBatch(bo.Buffer)
	bo.Buffer = bo.Buffer[:0]
	return err
}

// Close returns a Flush error but still attempts to close
func (bo *BadgerOutput) Close() error {
	slog.Info("BadgerOutput closing, flushing buffer",
		slog.Int("bufferSize", len(bo.Buffer)))
	flushErr := bo.Flush()
	closeErr := bo.DB.Close()

	if flushErr != nil {
		slog.Error("BadgerOutput failed to flush on close", slog.Any("error", flushErr))
		return fmt.Errorf("flush failed, close may have failed: %v", flushErr)
	}

	if closeErr != nil {
		slog.Error("BadgerOutput failed to close database", slog.Any("error", closeErr))
		return fmt.Errorf("close failed: %v", closeErr)
	}

	slog.Info("BadgerOutput closed successfully")
	return nil
}

func (bo *BadgerOutput) Type() string { return "BadgerDB" }

// SnapKey creates a composite key: date + grid position.
// Using positive BigEndian integers to convert the timestamp
// so keys sort chronologically inside BadgerDB.
func SnapKey(snap *Mt.CellSnapshot) []byte {
	key := make([]byte, 8+1+1)

	binary.BigEndian.PutUint64(key[0:8], uint64(snap.Date.UnixNano()))
	key[8] = byte(snap.Cell.Row)
	key[9] = byte(snap.Cell.Col)

	return key
}

// SnapEncode serializes the snapshot struct for data storage
func SnapEncode(s *Mt.CellSnapshot) []byte {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	enc.Encode(s)
	return buf.Bytes()
}

// SnapDecode deserializes the snapshot data
func SnapDecode(data []byte) (*Mt.CellSnapshot, error) {
	var s Mt.CellSnapshot
	buf := bytes.NewBuffer(data)
	dec := gob.NewDecoder(buf)
	err := dec.Decode(&s)
	return &s, err
}

// QueryRange retrieves snapshots within a time range
func (bo *BadgerOutput) QueryRange(start, end time.Time) ([]*Mt.CellSnapshot, error) {
	var snaps []*Mt.CellSnapshot

	// db.View() callback
	// BadgerDB provides a transaction in which to get item.Value()
	err := bo.DB.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()

			// item.Value() callback
			// BadgerDB passes bytes to the anon func
			err := item.Value(func(val []byte) error {
				snap, err := SnapDecode(val)
				if err != nil {
					slog.Error("BadgerOutput failed to decode snapshot", slog.Any("error", err))
					return fmt.Errorf("snapshot decode error: %w", err)
				}

				// Filter by time range
				if snap.Date.After(start) && snap.Date.Before(end) {
					snaps = append(snaps, snap)
				}

				return nil
			})
			if err != nil {
				slog.Error("BadgerOutput callback failure", slog.Any("error", err))
				return fmt.Errorf("item data error: %w", err)
			}
		}
		return nil
	})

	slog.Info("BadgerOutput QueryRange successful", slog.Int("count", len(snaps)))

	return snaps, err
}
