package repositories

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
)

// TransactionReader defines read operations for the transaction log
type TransactionReader interface {
	// ListTransactionsByCustomer retrieves a page of a customer's log entries, newest first.
	ListTransactionsByCustomer(ctx context.Context, ownerID, customerID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// FindTransactionsByInvoiceID retrieves every log entry tied to an invoice, oldest first.
	FindTransactionsByInvoiceID(ctx context.Context, ownerID, invoiceID string) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for the transaction log.
// Entries are never updated; they are only removed together with the document they belong to.
type TransactionWriter interface {
	// AppendTransactions adds entries to the log.
	AppendTransactions(ctx context.Context, txns ...domain.Transaction) error

	// DeleteTransactionsByReturnID removes every entry tied to a return.
	DeleteTransactionsByReturnID(ctx context.Context, ownerID, returnID string) (int64, error)

	// DeleteTransactionsByInvoiceID removes every entry tied to an invoice.
	DeleteTransactionsByInvoiceID(ctx context.Context, ownerID, invoiceID string) (int64, error)
}

// TransactionRepositoryFacade combines all transaction log repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
