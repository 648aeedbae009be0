package repositories

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice with its lines.
	FindInvoiceByID(ctx context.Context, ownerID, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a page of invoices without lines, newest first.
	// A non-nil customerID restricts the page to that customer.
	ListInvoices(ctx context.Context, ownerID string, customerID *string, limit int, nextToken *string) ([]domain.Invoice, *string, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoice persists a new invoice together with its lines.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// FindInvoiceByIDForUpdate retrieves an invoice and locks it until the unit of work ends.
	FindInvoiceByIDForUpdate(ctx context.Context, ownerID, invoiceID string) (*domain.Invoice, error)

	// UpdateInvoice stores the mutable header fields of an invoice.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error

	// DeleteInvoice removes an invoice and its lines.
	DeleteInvoice(ctx context.Context, ownerID, invoiceID string) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
