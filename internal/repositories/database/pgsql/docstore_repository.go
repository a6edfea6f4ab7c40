package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/instituteapps/coa_backend/internal/apperrors"
	portsrepo "github.com/instituteapps/coa_backend/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxDocumentStore implements the generic document-store contract over a
// single JSONB table. Collection paths (including subcollection paths like
// "terms/current/students") are plain text keys; the schema enforces the
// account-code uniqueness invariant with a partial unique index, which is
// what turns a concurrent allocation race into apperrors.ErrDuplicate.
type PgxDocumentStore struct {
	pool *pgxpool.Pool
}

// NewPgxDocumentStore creates a document store over the given pool.
func NewPgxDocumentStore(pool *pgxpool.Pool) *PgxDocumentStore {
	return &PgxDocumentStore{pool: pool}
}

var _ portsrepo.DocumentStore = (*PgxDocumentStore)(nil)

// mapPgError translates driver errors into the application error taxonomy.
func mapPgError(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" { // unique violation
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, pgErr.Detail)
		}
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %v", apperrors.ErrUnavailable, op, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// List returns every document in a collection.
func (s *PgxDocumentStore) List(ctx context.Context, collection string) ([]portsrepo.Document, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT doc_id, body FROM documents WHERE collection = $1 ORDER BY doc_id`, collection)
	if err != nil {
		return nil, mapPgError(err, "list collection "+collection)
	}
	defer rows.Close()
	return scanDocuments(rows, collection)
}

// Get returns a single document, or apperrors.ErrNotFound if absent.
func (s *PgxDocumentStore) Get(ctx context.Context, collection string, id string) (*portsrepo.Document, error) {
	var doc portsrepo.Document
	doc.ID = id
	err := s.pool.QueryRow(ctx,
		`SELECT body FROM documents WHERE collection = $1 AND doc_id = $2`, collection, id).
		Scan(&doc.Body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s/%s", apperrors.ErrNotFound, collection, id)
		}
		return nil, mapPgError(err, "get document "+collection+"/"+id)
	}
	return &doc, nil
}

// Put writes a document under an explicit id, inserting or replacing.
func (s *PgxDocumentStore) Put(ctx context.Context, collection string, id string, body []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO documents (collection, doc_id, body, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		ON CONFLICT (collection, doc_id)
		DO UPDATE SET body = EXCLUDED.body, updated_at = now()`,
		collection, id, body)
	if err != nil {
		return mapPgError(err, "put document "+collection+"/"+id)
	}
	return nil
}

// Add writes a document under a newly generated id and returns the id.
func (s *PgxDocumentStore) Add(ctx context.Context, collection string, body []byte) (string, error) {
	id := uuid.NewString()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO documents (collection, doc_id, body, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())`,
		collection, id, body)
	if err != nil {
		return "", mapPgError(err, "add document to "+collection)
	}
	return id, nil
}

// Delete removes a document; deleting an absent id is not an error.
func (s *PgxDocumentStore) Delete(ctx context.Context, collection string, id string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND doc_id = $2`, collection, id)
	if err != nil {
		return mapPgError(err, "delete document "+collection+"/"+id)
	}
	return nil
}

// allowedOps guards against filter operators reaching the SQL text unchecked.
var allowedOps = map[string]string{
	"=": "=", ">": ">", ">=": ">=", "<": "<", "<=": "<=",
}

// Query returns documents matching every filter. Filters compare the JSON
// text representation of the field, which is exact for the string keys the
// typed repositories filter on.
func (s *PgxDocumentStore) Query(ctx context.Context, collection string, filters []portsrepo.Filter, ordering *portsrepo.Ordering) ([]portsrepo.Document, error) {
	query := `SELECT doc_id, body FROM documents WHERE collection = $1`
	args := []any{collection}

	for _, f := range filters {
		op, ok := allowedOps[f.Op]
		if !ok {
			return nil, fmt.Errorf("%w: unsupported filter operator %q", apperrors.ErrValidation, f.Op)
		}
		args = append(args, f.Field, fmt.Sprintf("%v", f.Value))
		query += fmt.Sprintf(" AND body->>$%d %s $%d", len(args)-1, op, len(args))
	}

	if ordering != nil {
		args = append(args, ordering.Field)
		dir := "ASC"
		if ordering.Descending {
			dir = "DESC"
		}
		query += fmt.Sprintf(" ORDER BY body->>$%d %s", len(args), dir)
	} else {
		query += " ORDER BY doc_id"
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapPgError(err, "query collection "+collection)
	}
	defer rows.Close()
	return scanDocuments(rows, collection)
}

func scanDocuments(rows pgx.Rows, collection string) ([]portsrepo.Document, error) {
	var docs []portsrepo.Document
	for rows.Next() {
		var doc portsrepo.Document
		if err := rows.Scan(&doc.ID, &doc.Body); err != nil {
			return nil, fmt.Errorf("failed to scan document from %s: %w", collection, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "iterate collection "+collection)
	}
	return docs, nil
}
