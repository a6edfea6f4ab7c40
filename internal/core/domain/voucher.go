package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherDirection indicates whether a voucher records money coming in or going out.
type VoucherDirection string

const (
	Receipt VoucherDirection = "RECEIPT" // Inflow
	Payment VoucherDirection = "PAYMENT" // Outflow
)

// Voucher is an immutable monetary event attributed to a single subject
// (a student, an instructor, an expense payee). Amounts are always
// non-negative; the direction carries the sign. Vouchers are never mutated
// after creation: corrections are modeled as new vouchers.
type Voucher struct {
	VoucherID   string           `json:"voucherID"` // Primary key (UUID)
	Date        time.Time        `json:"date"`
	Amount      decimal.Decimal  `json:"amount"` // Non-negative
	Direction   VoucherDirection `json:"direction"`
	SubjectID   string           `json:"subjectID"`   // Stable reference to the attributed entity
	SubjectName string           `json:"subjectName"` // Display name; legacy matching key
	Category    string           `json:"category"`    // Optional tag, e.g. "expense"
	Notes       string           `json:"notes"`
	AuditFields
}
