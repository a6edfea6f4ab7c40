package dto

import (
	"time"

	"github.com/instituteapps/coa_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// Code is never supplied by the caller; the allocator assigns it. Kind is
// optional for child accounts and defaults to the parent's kind.
type CreateAccountRequest struct {
	Name            string              `json:"name" binding:"required"`
	LocalName       string              `json:"localName"`
	Kind            *domain.AccountKind `json:"kind" binding:"omitempty,accountkind"`
	ParentAccountID *string             `json:"parentAccountID"` // Optional, use pointer for nullability
	IsLeaf          bool                `json:"isLeaf"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
// Code and kind are immutable after creation and deliberately absent here.
type UpdateAccountRequest struct {
	Name      *string `json:"name"`
	LocalName *string `json:"localName"`
	IsLeaf    *bool   `json:"isLeaf"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID       string             `json:"accountID"`
	Code            string             `json:"code"`
	Name            string             `json:"name"`
	LocalName       string             `json:"localName"`
	Kind            domain.AccountKind `json:"kind"`
	ParentAccountID string             `json:"parentAccountID"` // Empty string for roots
	IsLeaf          bool               `json:"isLeaf"`
	IsVirtual       bool               `json:"isVirtual"`
	Source          domain.SourceKind  `json:"source,omitempty"`
	DebitTotal      decimal.Decimal    `json:"debitTotal"`
	CreditTotal     decimal.Decimal    `json:"creditTotal"`
	Balance         decimal.Decimal    `json:"balance"`
	CreatedAt       time.Time          `json:"createdAt"`
	LastUpdatedAt   time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:       acc.AccountID,
		Code:            acc.Code,
		Name:            acc.Name,
		LocalName:       acc.LocalName,
		Kind:            acc.Kind,
		ParentAccountID: acc.ParentAccountID,
		IsLeaf:          acc.IsLeaf,
		IsVirtual:       acc.IsVirtual,
		Source:          acc.Source,
		DebitTotal:      acc.DebitTotal,
		CreditTotal:     acc.CreditTotal,
		Balance:         acc.Balance,
		CreatedAt:       acc.CreatedAt,
		LastUpdatedAt:   acc.LastUpdatedAt,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, ToAccountResponse(&accounts[i]))
	}
	return out
}
