package domain

import (
	"context"
	"errors"
	"time"
)

// ErrStorageUnavailable signals that the lead store could not be opened or written.
var ErrStorageUnavailable = errors.New("lead storage unavailable")

// Lead is a submitted intake form. Records are append-only: once created they are
// never updated or deleted.
type Lead struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Phone     string    `db:"phone"`
	Comment   string    `db:"comment"`
	CreatedAt time.Time `db:"created_at"`
}

// LeadRepository is the durable store for submitted leads.
type LeadRepository interface {
	// Insert appends a new record and returns its assigned id.
	Insert(ctx context.Context, lead Lead) (int64, error)
	// ListRecent returns up to limit records, newest first.
	// An empty store yields an empty slice, not an error.
	ListRecent(ctx context.Context, limit int) ([]Lead, error)
}
