package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/instituteapps/coa_backend/internal/apperrors"
	"github.com/instituteapps/coa_backend/internal/core/domain"
	portsrepo "github.com/instituteapps/coa_backend/internal/core/ports/repositories"
	"github.com/instituteapps/coa_backend/internal/models"
)

// accountsCollection is the collection path of persisted chart accounts.
const accountsCollection = "accounts"

// AccountRepository persists chart-of-accounts nodes as documents in the
// generic document store.
type AccountRepository struct {
	store portsrepo.DocumentStore
}

// NewAccountRepository creates a repository over the given document store.
func NewAccountRepository(store portsrepo.DocumentStore) *AccountRepository {
	return &AccountRepository{store: store}
}

var _ portsrepo.AccountRepository = (*AccountRepository)(nil)

// Helper to convert domain.Account to its document model for storage.
func toModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		Code:            d.Code,
		Name:            d.Name,
		LocalName:       d.LocalName,
		ParentAccountID: d.ParentAccountID,
		Kind:            string(d.Kind),
		IsLeaf:          d.IsLeaf,
		DebitTotal:      d.DebitTotal,
		CreditTotal:     d.CreditTotal,
		Balance:         d.Balance,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// Helper to convert a stored document model back to domain.Account.
func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:       m.AccountID,
		Code:            m.Code,
		Name:            m.Name,
		LocalName:       m.LocalName,
		ParentAccountID: m.ParentAccountID,
		Kind:            domain.AccountKind(m.Kind),
		IsLeaf:          m.IsLeaf,
		DebitTotal:      m.DebitTotal,
		CreditTotal:     m.CreditTotal,
		Balance:         m.Balance,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func decodeAccount(doc portsrepo.Document) (domain.Account, error) {
	var m models.Account
	if err := json.Unmarshal(doc.Body, &m); err != nil {
		return domain.Account{}, fmt.Errorf("failed to decode account document %s: %w", doc.ID, err)
	}
	if m.AccountID == "" {
		m.AccountID = doc.ID
	}
	return toDomainAccount(m), nil
}

// SaveAccount persists a new account. The store's uniqueness constraint on
// codes surfaces as apperrors.ErrDuplicate for the caller's retry loop.
func (r *AccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	body, err := json.Marshal(toModelAccount(account))
	if err != nil {
		return fmt.Errorf("failed to encode account %s: %w", account.AccountID, err)
	}
	return r.store.Put(ctx, accountsCollection, account.AccountID, body)
}

// UpdateAccount replaces the stored record of an existing account.
func (r *AccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	// Same write path as SaveAccount: Put inserts or replaces.
	return r.SaveAccount(ctx, account)
}

// DeleteAccount removes an account document.
func (r *AccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	return r.store.Delete(ctx, accountsCollection, accountID)
}

// FindAccountByID retrieves an account by its ID.
func (r *AccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	doc, err := r.store.Get(ctx, accountsCollection, accountID)
	if err != nil {
		return nil, err
	}
	acc, err := decodeAccount(*doc)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// FindAccountByCode retrieves an account by its hierarchical code.
func (r *AccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	docs, err := r.store.Query(ctx, accountsCollection, []portsrepo.Filter{
		{Field: "code", Op: "=", Value: code},
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("account with code %s: %w", code, apperrors.ErrNotFound)
	}
	acc, err := decodeAccount(docs[0])
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// ListAccounts retrieves every persisted account.
func (r *AccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	docs, err := r.store.List(ctx, accountsCollection)
	if err != nil {
		return nil, err
	}
	return decodeAccounts(docs)
}

// ListChildAccounts retrieves the direct children of a parent account.
func (r *AccountRepository) ListChildAccounts(ctx context.Context, parentAccountID string) ([]domain.Account, error) {
	docs, err := r.store.Query(ctx, accountsCollection, []portsrepo.Filter{
		{Field: "parentAccountID", Op: "=", Value: parentAccountID},
	}, nil)
	if err != nil {
		return nil, err
	}
	return decodeAccounts(docs)
}

func decodeAccounts(docs []portsrepo.Document) ([]domain.Account, error) {
	accounts := make([]domain.Account, 0, len(docs))
	for _, doc := range docs {
		acc, err := decodeAccount(doc)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}
