package docstore

import (
	portsrepo "github.com/instituteapps/coa_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every typed repository over one document store.
func NewRepositoryProvider(store portsrepo.DocumentStore) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo: NewAccountRepository(store),
		VoucherRepo: NewVoucherRepository(store),
		EntityRepo:  NewEntityRepository(store),
	}
}
