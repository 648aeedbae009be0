package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/pos_ledger/internal/models"
	"github.com/SscSPs/pos_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type transactionRepository struct {
	BaseRepository
}

// Ensure transactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*transactionRepository)(nil)

const transactionColumns = `transaction_id, owner_id, type, customer_id, invoice_id, return_id, item_id, amount,
	payment_method, description, created_at, created_by`

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.OwnerID,
		&m.Type,
		&m.CustomerID,
		&m.InvoiceID,
		&m.ReturnID,
		&m.ItemID,
		&m.Amount,
		&m.PaymentMethod,
		&m.Description,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	return m, err
}

func (r *transactionRepository) collect(rows pgx.Rows, capacity int) ([]models.Transaction, error) {
	defer rows.Close()
	txns := make([]models.Transaction, 0, capacity)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, persistenceError("failed to scan transaction row", err)
		}
		txns = append(txns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("error iterating transaction rows", err)
	}
	return txns, nil
}

// AppendTransactions inserts log entries in one batch. entry_no keeps their insertion order.
func (r *transactionRepository) AppendTransactions(ctx context.Context, txns ...domain.Transaction) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, txn := range txns {
		m := mapping.ToModelTransaction(txn)
		batch.Queue(query,
			m.TransactionID,
			m.OwnerID,
			m.Type,
			m.CustomerID,
			m.InvoiceID,
			m.ReturnID,
			m.ItemID,
			m.Amount,
			m.PaymentMethod,
			m.Description,
			m.CreatedAt,
			m.CreatedBy,
		)
	}
	if err := r.sendBatch(ctx, batch); err != nil {
		return persistenceError("failed to append transactions", err)
	}
	return nil
}

// ListTransactionsByCustomer retrieves a page of a customer's statement, newest first.
func (r *transactionRepository) ListTransactionsByCustomer(ctx context.Context, ownerID, customerID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	query, args, limit, err := pageQuery(`SELECT `+transactionColumns+` FROM transactions WHERE owner_id = $1 AND customer_id = $2`,
		[]any{ownerID, customerID}, nextToken, "created_at", "transaction_id", limit)
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, persistenceError("failed to list transactions of customer "+customerID, err)
	}
	txns, err := r.collect(rows, limit+1)
	if err != nil {
		return nil, nil, err
	}

	page, next := trimPage(txns, limit, func(m models.Transaction) (time.Time, string) { return m.CreatedAt, m.TransactionID })
	return mapping.ToDomainTransactionSlice(page), next, nil
}

// FindTransactionsByInvoiceID retrieves an invoice's log entries in the order they were written.
func (r *transactionRepository) FindTransactionsByInvoiceID(ctx context.Context, ownerID, invoiceID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE owner_id = $1 AND invoice_id = $2 ORDER BY entry_no;`
	rows, err := r.db.Query(ctx, query, ownerID, invoiceID)
	if err != nil {
		return nil, persistenceError("failed to find transactions of invoice "+invoiceID, err)
	}
	txns, err := r.collect(rows, 4)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainTransactionSlice(txns), nil
}

// DeleteTransactionsByReturnID removes the entries written by a return.
func (r *transactionRepository) DeleteTransactionsByReturnID(ctx context.Context, ownerID, returnID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE owner_id = $1 AND return_id = $2;`, ownerID, returnID)
	if err != nil {
		return 0, persistenceError("failed to delete transactions of return "+returnID, err)
	}
	return tag.RowsAffected(), nil
}

// DeleteTransactionsByInvoiceID removes every entry tied to an invoice, return entries included.
func (r *transactionRepository) DeleteTransactionsByInvoiceID(ctx context.Context, ownerID, invoiceID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE owner_id = $1 AND invoice_id = $2;`, ownerID, invoiceID)
	if err != nil {
		return 0, persistenceError("failed to delete transactions of invoice "+invoiceID, err)
	}
	return tag.RowsAffected(), nil
}
