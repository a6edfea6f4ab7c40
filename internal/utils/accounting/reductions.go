package accounting

import (
	"github.com/instituteapps/coa_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MatchVouchers filters the voucher log down to those attributed to the given
// subject. Matching by the stable subject id is primary; matching by display
// name is a compatibility fallback for legacy vouchers written before ids were
// recorded, and the returned flag tells the caller the fallback fired so it
// can log the degraded match. Name matching is fragile under renames and
// duplicate names and should not gain new callers.
// This lives here so services and repositories apply identical matching rules.
func MatchVouchers(vouchers []domain.Voucher, subjectID string, subjectName string) (matched []domain.Voucher, nameFallback bool) {
	for _, v := range vouchers {
		switch {
		case subjectID != "" && v.SubjectID == subjectID:
			matched = append(matched, v)
		case v.SubjectID == "" && subjectName != "" && v.SubjectName == subjectName:
			matched = append(matched, v)
			nameFallback = true
		}
	}
	return matched, nameFallback
}

// VoucherTotals sums vouchers by direction.
func VoucherTotals(vouchers []domain.Voucher) (inflow decimal.Decimal, outflow decimal.Decimal) {
	inflow, outflow = decimal.Zero, decimal.Zero
	for _, v := range vouchers {
		if v.Amount.IsNegative() {
			// Invariant violation upstream; skip rather than corrupt the sum.
			continue
		}
		switch v.Direction {
		case domain.Receipt:
			inflow = inflow.Add(v.Amount)
		case domain.Payment:
			outflow = outflow.Add(v.Amount)
		}
	}
	return inflow, outflow
}

// ComputeBalance reduces a subject's vouchers against its obligation to a
// signed balance. The sign convention is keyed on the account kind, never a
// single global formula:
//
//   - Expense-kind subjects (payees): balance = totalOutflow - totalInflow,
//     positive meaning net amount disbursed.
//   - Every other kind (obligation-bearing subjects such as students owing
//     course fees): balance = totalInflow - obligation, negative meaning the
//     subject still owes, positive meaning overpaid.
func ComputeBalance(kind domain.AccountKind, obligation decimal.Decimal, vouchers []domain.Voucher) decimal.Decimal {
	inflow, outflow := VoucherTotals(vouchers)
	if kind == domain.Expense {
		return outflow.Sub(inflow)
	}
	return inflow.Sub(obligation)
}
