package storage

import (
	"context"
	"time"

	v1 "github.com/earworm-lab/earworm/internal/api/v1"
)

// DatasetStore is the durable home of the single streaming-history dataset.
// The store holds at most one dataset version: Replace fully overwrites any
// prior upload, there is no merge and no history.
type DatasetStore interface {
	// Replace overwrites the stored dataset with events and records the
	// upload time. The delete, the inserts and the timestamp write commit
	// as one transaction or not at all.
	Replace(ctx context.Context, events []v1.PlayEvent) error

	// Events returns the stored dataset in insertion order, or (nil, nil)
	// when no dataset has ever been stored or the stored set is empty.
	// Absent data is not an error.
	Events(ctx context.Context) ([]v1.PlayEvent, error)

	// Count returns the number of stored events; zero means no dataset.
	Count(ctx context.Context) (int64, error)

	// Clear removes the dataset and its upload timestamp.
	Clear(ctx context.Context) error

	// UploadedAt returns when the dataset was last replaced, or nil when
	// nothing is stored. Informational only.
	UploadedAt(ctx context.Context) (*time.Time, error)
}
