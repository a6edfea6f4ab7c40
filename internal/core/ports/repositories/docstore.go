package repositories

import (
	"context"
)

// Document is a raw record as stored in a collection: an id plus a JSON
// object body. Typed repositories marshal their models in and out of Body.
type Document struct {
	ID   string
	Body []byte
}

// Filter is a single equality/comparison predicate for Query.
type Filter struct {
	Field string // JSON field path within the document body
	Op    string // one of "=", ">", ">=", "<", "<="
	Value any
}

// Ordering names a field to sort a query's results by.
type Ordering struct {
	Field      string
	Descending bool
}

// DocumentStore is the generic document-store contract the ledger core
// consumes. Collection paths are slash-separated; nested subcollections are
// addressed as "parent/{id}/child" (see SubcollectionPath).
type DocumentStore interface {
	// List returns every document in a collection.
	List(ctx context.Context, collection string) ([]Document, error)

	// Get returns a single document, or apperrors.ErrNotFound if absent.
	Get(ctx context.Context, collection string, id string) (*Document, error)

	// Put writes a document under an explicit id, inserting or replacing.
	// Uniqueness constraints on the collection surface as apperrors.ErrDuplicate.
	Put(ctx context.Context, collection string, id string, body []byte) error

	// Add writes a document under a newly generated id and returns the id.
	Add(ctx context.Context, collection string, body []byte) (string, error)

	// Delete removes a document; deleting an absent id is not an error.
	Delete(ctx context.Context, collection string, id string) error

	// Query returns documents matching every filter, in the given ordering.
	Query(ctx context.Context, collection string, filters []Filter, ordering *Ordering) ([]Document, error)
}

// SubcollectionPath builds the path of a subcollection nested under a
// parent document, e.g. SubcollectionPath("courses", "c1", "enrollments").
func SubcollectionPath(parent string, parentID string, child string) string {
	return parent + "/" + parentID + "/" + child
}
