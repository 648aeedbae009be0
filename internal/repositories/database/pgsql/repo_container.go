package pgsql

import (
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the postgres repositories. Readers use the pool directly;
// writers are only handed out by the transaction scope.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	base := BaseRepository{db: dbPool}
	return portsrepo.RepositoryProvider{
		Scope:           &TxScope{Pool: dbPool},
		ItemRepo:        &itemRepository{base},
		CustomerRepo:    &customerRepository{base},
		InvoiceRepo:     &invoiceRepository{base},
		ReturnRepo:      &returnRepository{base},
		TransactionRepo: &transactionRepository{base},
	}
}
