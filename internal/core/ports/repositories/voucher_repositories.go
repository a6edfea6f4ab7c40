package repositories

import (
	"context"

	"github.com/instituteapps/coa_backend/internal/core/domain"
)

// VoucherReader defines read access to the voucher log. The ledger core never
// writes vouchers: they are created by the voucher-issuing workflows and are
// immutable afterwards, so no writer interface exists.
type VoucherReader interface {
	// ListVouchers returns every voucher, newest first.
	ListVouchers(ctx context.Context) ([]domain.Voucher, error)

	// ListVouchersByCategory returns vouchers carrying the given category tag.
	ListVouchersByCategory(ctx context.Context, category string) ([]domain.Voucher, error)

	// ListVouchersBySubject returns the vouchers attributed to one subject,
	// matching by stable subject id first and by display name only as the
	// legacy fallback for vouchers recorded without an id.
	ListVouchersBySubject(ctx context.Context, subjectID string, subjectName string) ([]domain.Voucher, error)
}
