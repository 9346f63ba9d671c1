package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// MutationResult is the outcome of a single-document atomic mutation.
type MutationResult int

const (
	// MutationAborted means the store rejected or lost the write.
	MutationAborted MutationResult = iota
	// MutationApplied means the write committed.
	MutationApplied
	// MutationNotFound means the target document does not exist (or a guard
	// filter excluded it); nothing was written.
	MutationNotFound
)

// Store is the document-store surface the services mutate shared state
// through. Every write is a single-document atomic operation: there is no
// read-in-application-code-then-write-separately path for any field that more
// than one client mutates concurrently.
//
// Errors: missing documents surface as models.ErrNotFound (reads) or
// MutationNotFound (writes), duplicate inserts as models.ErrAlreadyExists,
// and network/contention failures wrap models.ErrTransient so callers can
// retry with backoff.
type Store interface {
	// Get decodes the document with the given id into out.
	Get(ctx context.Context, collection, id string, out interface{}) error
	// Insert creates the document with the given id, failing with
	// models.ErrAlreadyExists if the id is taken.
	Insert(ctx context.Context, collection, id string, doc interface{}) error
	// Merge sets the given top-level fields, leaving the rest of the
	// document untouched.
	Merge(ctx context.Context, collection, id string, fields bson.M) (MutationResult, error)
	// AppendUnique appends value to an array field with set semantics: a
	// value already present leaves the document unchanged, and the result is
	// still MutationApplied.
	AppendUnique(ctx context.Context, collection, id, field string, value interface{}) (MutationResult, error)
	// Increment applies a delta to a numeric field.
	Increment(ctx context.Context, collection, id, field string, delta int) (MutationResult, error)
	// SetField sets a single (possibly dotted-path) field.
	SetField(ctx context.Context, collection, id, field string, value interface{}) (MutationResult, error)
	// Update applies an arbitrary update document ($set/$inc/$push/...)
	// to the document with the given id, atomically.
	Update(ctx context.Context, collection, id string, update bson.M) (MutationResult, error)
	// UpdateGuarded applies update to the single document matching filter.
	// A filter that matches nothing yields MutationNotFound, which callers
	// use as a compare-and-swap failure signal.
	UpdateGuarded(ctx context.Context, collection string, filter, update bson.M) (MutationResult, error)
	// Find decodes all documents matching filter into out, optionally
	// sorted and limited.
	Find(ctx context.Context, collection string, filter bson.M, sort bson.D, limit int64, out interface{}) error
	// Rekey moves a document to a new id in one transaction, failing with
	// models.ErrAlreadyExists if the target id is taken.
	Rekey(ctx context.Context, collection, oldID, newID string) error
}
