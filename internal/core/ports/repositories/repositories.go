package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// Writers are only reachable through Scope so every mutation happens inside a unit of work.
type RepositoryProvider struct {
	Scope           TransactionScope
	ItemRepo        ItemReader
	CustomerRepo    CustomerReader
	InvoiceRepo     InvoiceReader
	ReturnRepo      ReturnReader
	TransactionRepo TransactionReader
}
