// Package store persists computed layouts for the HTTP API.
//
// [MemoryStore] keeps records in process; [MongoStore] writes them to a
// MongoDB collection so they survive restarts and are shared between
// server replicas. Both assign random UUIDs as record ids.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/flowlayout/pkg/document"
)

// Record is a saved layout.
type Record struct {
	ID        string          `json:"id" bson:"_id"`
	Source    string          `json:"source,omitempty" bson:"source,omitempty"`
	Layout    document.Layout `json:"layout" bson:"layout"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
}

// Store saves and retrieves layouts.
type Store interface {
	// Save stores l and returns its new id.
	Save(ctx context.Context, source string, l document.Layout) (string, error)

	// Get returns the record for id. A missing record is a LAYOUT_NOT_FOUND error.
	Get(ctx context.Context, id string) (*Record, error)

	// Close releases the store's resources.
	Close(ctx context.Context) error
}

// newID returns a record id. Tests replace it for stable ids.
var newID = uuid.NewString

// now returns the record timestamp. Stored times are UTC with millisecond
// precision, which is what MongoDB keeps.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func newRecord(source string, l document.Layout) *Record {
	return &Record{
		ID:        newID(),
		Source:    source,
		Layout:    l,
		CreatedAt: now(),
	}
}
