package memory

import (
	"context"
	"time"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
)

type transactionRepo struct {
	st func() *state
}

func transactionKey(t domain.Transaction) (time.Time, string) { return t.CreatedAt, t.TransactionID }

func (r *transactionRepo) ListTransactionsByCustomer(_ context.Context, ownerID, customerID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	var rows []domain.Transaction
	for _, t := range r.st().transactions {
		if t.OwnerID == ownerID && t.CustomerID != nil && *t.CustomerID == customerID {
			rows = append(rows, t)
		}
	}
	sortNewestFirst(rows, transactionKey)
	return page(rows, limit, nextToken, transactionKey)
}

func (r *transactionRepo) FindTransactionsByInvoiceID(_ context.Context, ownerID, invoiceID string) ([]domain.Transaction, error) {
	var rows []domain.Transaction
	for _, t := range r.st().transactions {
		if t.OwnerID == ownerID && t.InvoiceID != nil && *t.InvoiceID == invoiceID {
			rows = append(rows, t)
		}
	}
	return rows, nil
}

func (r *transactionRepo) AppendTransactions(_ context.Context, txns ...domain.Transaction) error {
	st := r.st()
	st.transactions = append(st.transactions, txns...)
	return nil
}

func (r *transactionRepo) DeleteTransactionsByReturnID(_ context.Context, ownerID, returnID string) (int64, error) {
	return r.deleteWhere(func(t domain.Transaction) bool {
		return t.OwnerID == ownerID && t.ReturnID != nil && *t.ReturnID == returnID
	}), nil
}

func (r *transactionRepo) DeleteTransactionsByInvoiceID(_ context.Context, ownerID, invoiceID string) (int64, error) {
	return r.deleteWhere(func(t domain.Transaction) bool {
		return t.OwnerID == ownerID && t.InvoiceID != nil && *t.InvoiceID == invoiceID
	}), nil
}

func (r *transactionRepo) deleteWhere(match func(domain.Transaction) bool) int64 {
	st := r.st()
	kept := st.transactions[:0:0]
	var removed int64
	for _, t := range st.transactions {
		if match(t) {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	st.transactions = kept
	return removed
}

var _ repositories.TransactionRepositoryFacade = (*transactionRepo)(nil)
