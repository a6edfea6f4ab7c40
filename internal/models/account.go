package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields is the stored form of audit metadata.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// Account is the document shape of a persisted chart-of-accounts node.
// Virtual accounts are synthesized on read and never take this form.
type Account struct {
	AccountID       string          `json:"accountID"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	LocalName       string          `json:"localName,omitempty"`
	ParentAccountID string          `json:"parentAccountID,omitempty"`
	Kind            string          `json:"kind"`
	IsLeaf          bool            `json:"isLeaf"`
	DebitTotal      decimal.Decimal `json:"debitTotal"`
	CreditTotal     decimal.Decimal `json:"creditTotal"`
	Balance         decimal.Decimal `json:"balance"`
	AuditFields
}
