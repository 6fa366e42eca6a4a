package storage

import "rental-radar/models"

// SnapshotWriter is the interface any snapshot backend must satisfy.
// Snapshots record what each collection's fetch returned, keyed by the
// collection identifier (e.g. "sf-portal").
type SnapshotWriter interface {
	WriteSnapshot(collectionID string, listings []*models.Listing) error
	Close() error
}

var (
	_ SnapshotWriter = (*CSVWriter)(nil)
	_ SnapshotWriter = (*PostgresWriter)(nil)
)
