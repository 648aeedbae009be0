package repositories

import (
	"context"
)

// TxRepositories are repositories bound to a single unit of work.
// Everything written through them commits or rolls back together.
type TxRepositories struct {
	Items        ItemRepositoryFacade
	Customers    CustomerRepositoryFacade
	Invoices     InvoiceRepositoryFacade
	Returns      ReturnRepositoryFacade
	Transactions TransactionRepositoryFacade
	Sequences    SequenceAllocator
}

// TransactionScope runs a function as one atomic unit of work.
// If fn returns an error, none of its writes are visible afterwards.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TxRepositories) error) error
}
