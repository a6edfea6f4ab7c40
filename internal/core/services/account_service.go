package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/instituteapps/coa_backend/internal/apperrors"
	"github.com/instituteapps/coa_backend/internal/core/domain"
	portsrepo "github.com/instituteapps/coa_backend/internal/core/ports/repositories"
	"github.com/instituteapps/coa_backend/internal/dto"
	"github.com/instituteapps/coa_backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxAllocationRetries bounds the conflict-retry loop on account creation.
// Two concurrent allocations under the same parent can compute the same code;
// the store's uniqueness constraint rejects the loser, which re-fetches and
// re-allocates.
const maxAllocationRetries = 3

// AccountService orchestrates chart-of-accounts CRUD: code allocation,
// placement validation and persistence.
type AccountService struct {
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new AccountService.
func NewAccountService(repo portsrepo.AccountRepository) *AccountService {
	return &AccountService{accountRepo: repo}
}

// CreateAccount allocates the next code under the requested parent and
// persists the new account. A code uniqueness conflict on commit triggers
// re-fetch and re-allocation; any other write failure propagates unchanged,
// since silently dropping a money-relevant write is unacceptable.
func (s *AccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var parent *domain.Account
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		var err error
		parent, err = s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s", apperrors.ErrNotFound, *req.ParentAccountID)
			}
			logger.Error("Failed to find parent account", slog.String("error", err.Error()), slog.String("parent_id", *req.ParentAccountID))
			return nil, err
		}
		if parent.IsVirtual {
			return nil, fmt.Errorf("%w: virtual accounts cannot have sub-accounts", apperrors.ErrValidation)
		}
	}

	kind, err := resolveKind(req.Kind, parent)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		Name:        req.Name,
		LocalName:   req.LocalName,
		Kind:        kind,
		IsLeaf:      req.IsLeaf,
		DebitTotal:  decimal.Zero,
		CreditTotal: decimal.Zero,
		Balance:     decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if parent != nil {
		account.ParentAccountID = parent.AccountID
	}

	for attempt := 1; ; attempt++ {
		accounts, err := s.accountRepo.ListAccounts(ctx)
		if err != nil {
			logger.Error("Failed to list accounts for code allocation", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to list accounts: %w", err)
		}

		account.Code, err = NextAccountCode(accounts, parent)
		if err != nil {
			return nil, err
		}

		err = s.accountRepo.SaveAccount(ctx, account)
		if err == nil {
			break
		}
		if errors.Is(err, apperrors.ErrDuplicate) && attempt < maxAllocationRetries {
			logger.Warn("Account code conflict on commit, re-allocating",
				slog.String("code", account.Code),
				slog.Int("attempt", attempt))
			continue
		}
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("code", account.Code))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// resolveKind applies the kind default: explicit kind wins, otherwise the
// parent's kind; a root account must state its kind.
func resolveKind(requested *domain.AccountKind, parent *domain.Account) (domain.AccountKind, error) {
	if requested != nil {
		if !requested.IsValid() {
			return "", fmt.Errorf("%w: unknown account kind %q", apperrors.ErrValidation, *requested)
		}
		return *requested, nil
	}
	if parent != nil {
		return parent.Kind, nil
	}
	return "", fmt.Errorf("%w: a root account must specify its kind", apperrors.ErrValidation)
}

// GetAccountByID retrieves a single persisted account.
func (s *AccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts retrieves every persisted account.
func (s *AccountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// GetAccountPath returns the ancestor code chain of an account, root first.
func (s *AccountService) GetAccountPath(ctx context.Context, accountID string) ([]string, error) {
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return FindPath(accounts, accountID)
}

// UpdateAccount applies field patches to an account. Code and kind are fixed
// at creation and cannot be patched.
func (s *AccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.LocalName != nil {
		account.LocalName = *req.LocalName
	}
	if req.IsLeaf != nil {
		account.IsLeaf = *req.IsLeaf
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount removes an account node. Deletion is blocked while the account
// still has children: it neither cascades nor re-parents, the caller must
// empty the subtree first. Virtual accounts are never persisted, so deleting
// one reports not found.
func (s *AccountService) DeleteAccount(ctx context.Context, accountID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return err
	}

	children, err := s.accountRepo.ListChildAccounts(ctx, accountID)
	if err != nil {
		logger.Error("Failed to check for child accounts", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to check for child accounts: %w", err)
	}
	if len(children) > 0 {
		return fmt.Errorf("%w: account %s has %d child accounts", apperrors.ErrValidation, accountID, len(children))
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		logger.Error("Failed to delete account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return err
	}

	logger.Info("Account deleted", slog.String("account_id", accountID))
	return nil
}
