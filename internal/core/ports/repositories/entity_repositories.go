package repositories

import (
	"context"

	"github.com/instituteapps/coa_backend/internal/core/domain"
)

// EntityReader defines read access to the dynamic entity collections owned by
// the other dashboard domains (students, instructors, expense payees). The
// records are opaque bags; only id and name are contractually required.
type EntityReader interface {
	// ListEntities returns the raw records of one dynamic source.
	ListEntities(ctx context.Context, kind domain.SourceKind) ([]domain.EntityRecord, error)
}
