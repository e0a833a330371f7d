package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStoreUnavailable covers connectivity failures and request timeouts.
	// Callers decide whether to retry; the store never retries on its own.
	ErrStoreUnavailable = errors.New("document store unavailable")
)

// PartialBulkWriteError reports a bulk upsert where some documents were
// written and others rejected. Successes are not rolled back.
type PartialBulkWriteError struct {
	Collection string
	Succeeded  int
	FailedIDs  []string
}

func (e *PartialBulkWriteError) Error() string {
	return fmt.Sprintf("partial bulk write to %s: %d succeeded, %d failed (%s)",
		e.Collection, e.Succeeded, len(e.FailedIDs), strings.Join(e.FailedIDs, ", "))
}

// Doc pairs a document with the identity it is upserted under.
type Doc struct {
	ID   string
	Body any
}

// Store is the persistence contract the rest of the service depends on. All
// writes are idempotent by identity; GetAll returns newest-first by
// created_at. Query is a best-effort text match over the named fields;
// ranking is up to the backing store.
type Store interface {
	EnsureCollections(ctx context.Context) error
	UpsertOne(ctx context.Context, collection, id string, doc any) error
	UpsertMany(ctx context.Context, collection string, docs []Doc) error
	DeleteAll(ctx context.Context, collection string) error
	Count(ctx context.Context, collection string) (int64, error)
	GetAll(ctx context.Context, collection string, limit int64, out any) error
	Query(ctx context.Context, collection, text string, fields []string, limit int64, out any) error
}
