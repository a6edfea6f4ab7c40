package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/instituteapps/coa_backend/internal/core/domain"
	portsrepo "github.com/instituteapps/coa_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// sourceCollections maps each dynamic source onto the collection path its
// owning dashboard domain writes to. Enrolled students live in a
// subcollection scoped under the active term document.
var sourceCollections = map[domain.SourceKind]string{
	domain.SourceStudents:    portsrepo.SubcollectionPath("terms", "current", "students"),
	domain.SourceInstructors: "instructors",
	domain.SourceExpenses:    "expense_payees",
}

// obligationFields lists, per source, the field names that may carry the
// entity's expected amount owed. First present wins.
var obligationFields = map[domain.SourceKind][]string{
	domain.SourceStudents:    {"courseFee", "fee", "openingBalance"},
	domain.SourceInstructors: {"contractAmount", "openingBalance"},
	domain.SourceExpenses:    {"openingBalance"},
}

// EntityRepository reads the dynamic entity collections owned by the other
// dashboard domains. The records are opaque bags: only id and name are
// contractually required, everything else is kept in the raw field map.
type EntityRepository struct {
	store portsrepo.DocumentStore
}

// NewEntityRepository creates a repository over the given document store.
func NewEntityRepository(store portsrepo.DocumentStore) *EntityRepository {
	return &EntityRepository{store: store}
}

var _ portsrepo.EntityReader = (*EntityRepository)(nil)

// ListEntities returns the raw records of one dynamic source.
func (r *EntityRepository) ListEntities(ctx context.Context, kind domain.SourceKind) ([]domain.EntityRecord, error) {
	collection, ok := sourceCollections[kind]
	if !ok {
		return nil, fmt.Errorf("unknown dynamic source %q", kind)
	}

	docs, err := r.store.List(ctx, collection)
	if err != nil {
		return nil, err
	}

	records := make([]domain.EntityRecord, 0, len(docs))
	for _, doc := range docs {
		var fields map[string]any
		if err := json.Unmarshal(doc.Body, &fields); err != nil {
			return nil, fmt.Errorf("failed to decode %s document %s: %w", kind, doc.ID, err)
		}
		rec := domain.EntityRecord{
			ID:         doc.ID,
			Fields:     fields,
			Obligation: extractObligation(kind, fields),
		}
		if name, ok := fields["name"].(string); ok {
			rec.Name = name
		}
		records = append(records, rec)
	}
	return records, nil
}

// extractObligation pulls the expected amount owed out of the raw fields,
// trying the source's known field names in order. Values arrive as JSON
// numbers or numeric strings depending on which dashboard screen wrote them.
func extractObligation(kind domain.SourceKind, fields map[string]any) decimal.Decimal {
	for _, key := range obligationFields[kind] {
		switch v := fields[key].(type) {
		case float64:
			return decimal.NewFromFloat(v)
		case string:
			if d, err := decimal.NewFromString(v); err == nil {
				return d
			}
		}
	}
	return decimal.Zero
}
