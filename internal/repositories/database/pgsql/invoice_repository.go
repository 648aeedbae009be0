package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/pos_ledger/internal/models"
	"github.com/SscSPs/pos_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type invoiceRepository struct {
	BaseRepository
}

// Ensure invoiceRepository implements portsrepo.InvoiceRepositoryFacade
var _ portsrepo.InvoiceRepositoryFacade = (*invoiceRepository)(nil)

const invoiceColumns = `invoice_id, owner_id, invoice_no, customer_id, subtotal, discount, total_amount, paid_amount,
	payment_status, payment_method, change_returned, credit_amount, returned_amount, has_returns, notes,
	created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row rowScanner) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.OwnerID,
		&m.InvoiceNo,
		&m.CustomerID,
		&m.Subtotal,
		&m.Discount,
		&m.TotalAmount,
		&m.PaidAmount,
		&m.PaymentStatus,
		&m.PaymentMethod,
		&m.ChangeReturned,
		&m.CreditAmount,
		&m.ReturnedAmount,
		&m.HasReturns,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveInvoice inserts the invoice header and queues its lines in one batch.
func (r *invoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.db.Exec(ctx, query,
		m.InvoiceID,
		m.OwnerID,
		m.InvoiceNo,
		m.CustomerID,
		m.Subtotal,
		m.Discount,
		m.TotalAmount,
		m.PaidAmount,
		m.PaymentStatus,
		m.PaymentMethod,
		m.ChangeReturned,
		m.CreditAmount,
		m.ReturnedAmount,
		m.HasReturns,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return saveError("invoice", m.InvoiceNo, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO invoice_lines (invoice_id, line_no, item_id, item_name, quantity, price, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, l := range m.Lines {
		batch.Queue(lineQuery, l.InvoiceID, l.LineNo, l.ItemID, l.ItemName, l.Quantity, l.Price, l.LineTotal)
	}
	if err := r.sendBatch(ctx, batch); err != nil {
		return persistenceError("failed to save lines of invoice "+m.InvoiceNo, err)
	}
	return nil
}

func (r *invoiceRepository) findInvoice(ctx context.Context, ownerID, invoiceID string, forUpdate bool) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_id = $1 AND owner_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	m, err := scanInvoice(r.db.QueryRow(ctx, query, invoiceID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("invoice", invoiceID)
		}
		return nil, persistenceError("failed to find invoice "+invoiceID, err)
	}

	lines, err := r.findLines(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	m.Lines = lines

	invoice := mapping.ToDomainInvoice(m)
	return &invoice, nil
}

func (r *invoiceRepository) findLines(ctx context.Context, invoiceID string) ([]models.InvoiceLine, error) {
	query := `
		SELECT invoice_id, line_no, item_id, item_name, quantity, price, line_total
		FROM invoice_lines
		WHERE invoice_id = $1
		ORDER BY line_no;
	`
	rows, err := r.db.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, persistenceError("failed to query lines of invoice "+invoiceID, err)
	}
	defer rows.Close()

	var lines []models.InvoiceLine
	for rows.Next() {
		var l models.InvoiceLine
		if err := rows.Scan(&l.InvoiceID, &l.LineNo, &l.ItemID, &l.ItemName, &l.Quantity, &l.Price, &l.LineTotal); err != nil {
			return nil, persistenceError("failed to scan line of invoice "+invoiceID, err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("error iterating lines of invoice "+invoiceID, err)
	}
	return lines, nil
}

// FindInvoiceByID retrieves an invoice with its lines.
func (r *invoiceRepository) FindInvoiceByID(ctx context.Context, ownerID, invoiceID string) (*domain.Invoice, error) {
	return r.findInvoice(ctx, ownerID, invoiceID, false)
}

// FindInvoiceByIDForUpdate retrieves an invoice and holds a row lock on it until the transaction ends.
func (r *invoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, ownerID, invoiceID string) (*domain.Invoice, error) {
	return r.findInvoice(ctx, ownerID, invoiceID, true)
}

// ListInvoices retrieves a page of invoice headers, newest first.
func (r *invoiceRepository) ListInvoices(ctx context.Context, ownerID string, customerID *string, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	base := `SELECT ` + invoiceColumns + ` FROM invoices WHERE owner_id = $1`
	args := []any{ownerID}
	if customerID != nil {
		args = append(args, *customerID)
		base += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	query, args, limit, err := pageQuery(base, args, nextToken, "created_at", "invoice_id", limit)
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, persistenceError("failed to list invoices", err)
	}
	defer rows.Close()

	invoices := make([]models.Invoice, 0, limit+1)
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return nil, nil, persistenceError("failed to scan invoice row", err)
		}
		invoices = append(invoices, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, persistenceError("error iterating invoice rows", err)
	}

	page, next := trimPage(invoices, limit, func(m models.Invoice) (time.Time, string) { return m.CreatedAt, m.InvoiceID })
	return mapping.ToDomainInvoiceSlice(page), next, nil
}

// UpdateInvoice writes the mutable header fields. Number, customer and lines never change.
func (r *invoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		UPDATE invoices
		SET discount = $1, total_amount = $2, paid_amount = $3, payment_status = $4,
		    returned_amount = $5, has_returns = $6, notes = $7,
		    last_updated_at = $8, last_updated_by = $9
		WHERE invoice_id = $10 AND owner_id = $11;
	`
	tag, err := r.db.Exec(ctx, query,
		m.Discount,
		m.TotalAmount,
		m.PaidAmount,
		m.PaymentStatus,
		m.ReturnedAmount,
		m.HasReturns,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.InvoiceID,
		m.OwnerID,
	)
	if err != nil {
		return persistenceError("failed to update invoice "+m.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice", m.InvoiceID)
	}
	return nil
}

// DeleteInvoice removes an invoice; its lines go with it.
func (r *invoiceRepository) DeleteInvoice(ctx context.Context, ownerID, invoiceID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1 AND owner_id = $2;`, invoiceID, ownerID)
	if err != nil {
		return persistenceError("failed to delete invoice "+invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("invoice", invoiceID)
	}
	return nil
}
