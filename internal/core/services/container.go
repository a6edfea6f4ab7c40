package services

import (
	"time"

	portsrepo "github.com/instituteapps/coa_backend/internal/core/ports/repositories"
)

// Container holds all the services and manages their dependencies.
type Container struct {
	Account *AccountService
	Ledger  *LedgerService
}

// NewContainer creates a new service container with properly initialized dependencies.
func NewContainer(repos *portsrepo.RepositoryProvider, sources []DynamicSource, queryTimeout time.Duration, balanceWorkers int) *Container {
	return &Container{
		Account: NewAccountService(repos.AccountRepo),
		Ledger: NewLedgerService(
			repos.AccountRepo,
			repos.VoucherRepo,
			repos.EntityRepo,
			sources,
			queryTimeout,
			balanceWorkers,
		),
	}
}
