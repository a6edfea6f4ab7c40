package domain

import (
	"github.com/shopspring/decimal"
)

// AccountKind defines the fundamental accounting type of an account.
type AccountKind string

const (
	Asset     AccountKind = "ASSET"
	Liability AccountKind = "LIABILITY"
	Equity    AccountKind = "EQUITY"
	Revenue   AccountKind = "REVENUE"
	Expense   AccountKind = "EXPENSE"
)

// IsValid reports whether k is one of the five known account kinds.
func (k AccountKind) IsValid() bool {
	switch k {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// IsDebitNormal reports whether accounts of this kind carry a debit-normal
// balance. Debit-normal kinds compute balance = debitTotal - creditTotal;
// credit-normal kinds reverse the subtraction.
func (k AccountKind) IsDebitNormal() bool {
	return k == Asset || k == Expense
}

// Account represents a node in the chart of accounts.
// Codes encode the hierarchy by prefix: "1" -> "101" -> "1011". A child's code
// is always its parent's code followed by a positive integer suffix, and codes
// are globally unique across the chart.
type Account struct {
	AccountID       string          `json:"accountID"`       // Primary key (UUID)
	Code            string          `json:"code"`            // Globally unique hierarchical code
	Name            string          `json:"name"`            // Display label
	LocalName       string          `json:"localName"`       // Localized display label
	ParentAccountID string          `json:"parentAccountID"` // Empty for root accounts
	Kind            AccountKind     `json:"kind"`            // Fixed at creation; defaults to parent's
	IsLeaf          bool            `json:"isLeaf"`          // True if no children are expected
	IsVirtual       bool            `json:"isVirtual"`       // Synthesized from a dynamic source, never persisted
	Source          SourceKind      `json:"source"`          // Set only for virtual accounts
	DebitTotal      decimal.Decimal `json:"debitTotal"`
	CreditTotal     decimal.Decimal `json:"creditTotal"`
	Balance         decimal.Decimal `json:"balance"` // Derived; sign convention per Kind
	AuditFields
}

// IsRoot reports whether the account sits at the top of the chart.
func (a Account) IsRoot() bool {
	return a.ParentAccountID == ""
}

// DerivedBalance recomputes the balance from the cached debit/credit totals
// using the kind's normal-balance convention.
func (a Account) DerivedBalance() decimal.Decimal {
	if a.Kind.IsDebitNormal() {
		return a.DebitTotal.Sub(a.CreditTotal)
	}
	return a.CreditTotal.Sub(a.DebitTotal)
}
