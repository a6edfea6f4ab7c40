package repositories

// RepositoryProvider bundles the typed repositories handed to the service layer.
type RepositoryProvider struct {
	AccountRepo AccountRepository
	VoucherRepo VoucherReader
	EntityRepo  EntityReader
}
