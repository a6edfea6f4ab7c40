package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/instituteapps/coa_backend/internal/core/domain"
	portsrepo "github.com/instituteapps/coa_backend/internal/core/ports/repositories"
	"github.com/instituteapps/coa_backend/internal/middleware"
	"github.com/instituteapps/coa_backend/internal/models"
	"github.com/instituteapps/coa_backend/internal/utils/accounting"
)

// vouchersCollection is the collection path of the voucher log.
const vouchersCollection = "vouchers"

// VoucherRepository reads the voucher log from the document store. Vouchers
// are written by the voucher-issuing workflows and immutable afterwards, so
// this repository is read-only.
type VoucherRepository struct {
	store portsrepo.DocumentStore
}

// NewVoucherRepository creates a repository over the given document store.
func NewVoucherRepository(store portsrepo.DocumentStore) *VoucherRepository {
	return &VoucherRepository{store: store}
}

var _ portsrepo.VoucherReader = (*VoucherRepository)(nil)

func toDomainVoucher(m models.Voucher) domain.Voucher {
	return domain.Voucher{
		VoucherID:   m.VoucherID,
		Date:        m.Date,
		Amount:      m.Amount,
		Direction:   domain.VoucherDirection(m.Direction),
		SubjectID:   m.SubjectID,
		SubjectName: m.SubjectName,
		Category:    m.Category,
		Notes:       m.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func decodeVouchers(docs []portsrepo.Document) ([]domain.Voucher, error) {
	vouchers := make([]domain.Voucher, 0, len(docs))
	for _, doc := range docs {
		var m models.Voucher
		if err := json.Unmarshal(doc.Body, &m); err != nil {
			return nil, fmt.Errorf("failed to decode voucher document %s: %w", doc.ID, err)
		}
		if m.VoucherID == "" {
			m.VoucherID = doc.ID
		}
		vouchers = append(vouchers, toDomainVoucher(m))
	}
	return vouchers, nil
}

// ListVouchers returns every voucher, newest first.
func (r *VoucherRepository) ListVouchers(ctx context.Context) ([]domain.Voucher, error) {
	docs, err := r.store.Query(ctx, vouchersCollection, nil, &portsrepo.Ordering{Field: "date", Descending: true})
	if err != nil {
		return nil, err
	}
	return decodeVouchers(docs)
}

// ListVouchersByCategory returns vouchers carrying the given category tag.
func (r *VoucherRepository) ListVouchersByCategory(ctx context.Context, category string) ([]domain.Voucher, error) {
	docs, err := r.store.Query(ctx, vouchersCollection, []portsrepo.Filter{
		{Field: "category", Op: "=", Value: category},
	}, &portsrepo.Ordering{Field: "date", Descending: true})
	if err != nil {
		return nil, err
	}
	return decodeVouchers(docs)
}

// ListVouchersBySubject returns the vouchers attributed to one subject.
// The store is queried by the stable subject id and, for legacy vouchers
// recorded without an id, by display name; the shared matching rules then
// decide which candidates count. A name-fallback match logs a warning, since
// name matching breaks under renames and duplicate names.
func (r *VoucherRepository) ListVouchersBySubject(ctx context.Context, subjectID string, subjectName string) ([]domain.Voucher, error) {
	var candidates []portsrepo.Document

	if subjectID != "" {
		docs, err := r.store.Query(ctx, vouchersCollection, []portsrepo.Filter{
			{Field: "subjectId", Op: "=", Value: subjectID},
		}, nil)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, docs...)
	}

	if subjectName != "" {
		docs, err := r.store.Query(ctx, vouchersCollection, []portsrepo.Filter{
			{Field: "subjectName", Op: "=", Value: subjectName},
		}, nil)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, docs...)
	}

	decoded, err := decodeVouchers(dedupeDocs(candidates))
	if err != nil {
		return nil, err
	}

	matched, nameFallback := accounting.MatchVouchers(decoded, subjectID, subjectName)
	if nameFallback {
		middleware.GetLoggerFromCtx(ctx).Warn("Vouchers matched by subject name fallback",
			slog.String("subject_id", subjectID),
			slog.String("subject_name", subjectName))
	}
	return matched, nil
}

func dedupeDocs(docs []portsrepo.Document) []portsrepo.Document {
	seen := make(map[string]bool, len(docs))
	out := docs[:0]
	for _, doc := range docs {
		if seen[doc.ID] {
			continue
		}
		seen[doc.ID] = true
		out = append(out, doc)
	}
	return out
}
