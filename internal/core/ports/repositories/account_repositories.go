package repositories

import (
	"context"

	"github.com/instituteapps/coa_backend/internal/core/domain"
)

// AccountReader defines read operations for persisted chart-of-accounts data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its hierarchical code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// ListAccounts retrieves every persisted account. The chart is small by
	// construction; allocation and tree building both need the full set.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// ListChildAccounts retrieves the direct children of a parent account.
	ListChildAccounts(ctx context.Context, parentAccountID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for persisted chart-of-accounts data.
// Write failures always propagate; the uniqueness invariant on codes must not
// be silently dropped.
type AccountWriter interface {
	// SaveAccount persists a new account. A code uniqueness violation returns
	// apperrors.ErrDuplicate so the caller can re-allocate and retry.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount replaces an existing account's stored record.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account node.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountRepository combines read and write access to persisted accounts.
type AccountRepository interface {
	AccountReader
	AccountWriter
}
