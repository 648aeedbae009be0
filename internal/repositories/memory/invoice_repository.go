package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
)

type invoiceRepo struct {
	st func() *state
}

func invoiceKey(i domain.Invoice) (time.Time, string) { return i.CreatedAt, i.InvoiceID }

func (r *invoiceRepo) FindInvoiceByID(_ context.Context, ownerID, invoiceID string) (*domain.Invoice, error) {
	inv, ok := r.st().invoices[invoiceID]
	if !ok || inv.OwnerID != ownerID {
		return nil, apperrors.NewNotFoundError("invoice", invoiceID)
	}
	inv = cloneInvoice(inv)
	return &inv, nil
}

// FindInvoiceByIDForUpdate needs no extra locking; the store already serializes units of work.
func (r *invoiceRepo) FindInvoiceByIDForUpdate(ctx context.Context, ownerID, invoiceID string) (*domain.Invoice, error) {
	return r.FindInvoiceByID(ctx, ownerID, invoiceID)
}

func (r *invoiceRepo) ListInvoices(_ context.Context, ownerID string, customerID *string, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	var rows []domain.Invoice
	for _, inv := range r.st().invoices {
		if inv.OwnerID != ownerID {
			continue
		}
		if customerID != nil && (inv.CustomerID == nil || *inv.CustomerID != *customerID) {
			continue
		}
		inv.Lines = nil
		rows = append(rows, inv)
	}
	sortNewestFirst(rows, invoiceKey)
	return page(rows, limit, nextToken, invoiceKey)
}

func (r *invoiceRepo) SaveInvoice(_ context.Context, invoice domain.Invoice) error {
	st := r.st()
	if _, exists := st.invoices[invoice.InvoiceID]; exists {
		return fmt.Errorf("%w: invoice %s", apperrors.ErrDuplicate, invoice.InvoiceID)
	}
	for _, existing := range st.invoices {
		if existing.OwnerID == invoice.OwnerID && existing.InvoiceNo == invoice.InvoiceNo {
			return fmt.Errorf("%w: invoice number %s", apperrors.ErrDuplicate, invoice.InvoiceNo)
		}
	}
	st.invoices[invoice.InvoiceID] = cloneInvoice(invoice)
	return nil
}

func (r *invoiceRepo) UpdateInvoice(_ context.Context, invoice domain.Invoice) error {
	st := r.st()
	existing, ok := st.invoices[invoice.InvoiceID]
	if !ok || existing.OwnerID != invoice.OwnerID {
		return apperrors.NewNotFoundError("invoice", invoice.InvoiceID)
	}
	// Lines, number and customer are fixed once an invoice exists.
	invoice.Lines = existing.Lines
	invoice.InvoiceNo = existing.InvoiceNo
	invoice.CustomerID = existing.CustomerID
	invoice.AuditFields.CreatedAt = existing.CreatedAt
	invoice.AuditFields.CreatedBy = existing.CreatedBy
	st.invoices[invoice.InvoiceID] = invoice
	return nil
}

func (r *invoiceRepo) DeleteInvoice(_ context.Context, ownerID, invoiceID string) error {
	st := r.st()
	inv, ok := st.invoices[invoiceID]
	if !ok || inv.OwnerID != ownerID {
		return apperrors.NewNotFoundError("invoice", invoiceID)
	}
	delete(st.invoices, invoiceID)
	return nil
}

var _ repositories.InvoiceRepositoryFacade = (*invoiceRepo)(nil)
