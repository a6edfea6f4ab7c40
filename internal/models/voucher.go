package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Voucher is the document shape of a stored payment/receipt voucher. The
// voucher-issuing workflows own writes; the ledger core only reads these.
type Voucher struct {
	VoucherID   string          `json:"voucherID"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Direction   string          `json:"direction"`
	SubjectID   string          `json:"subjectId,omitempty"`
	SubjectName string          `json:"subjectName,omitempty"`
	Category    string          `json:"category,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	AuditFields
}
