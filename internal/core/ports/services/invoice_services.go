package services

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves an invoice with its lines.
	GetInvoiceByID(ctx context.Context, ownerID string, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a page of invoices, newest first.
	ListInvoices(ctx context.Context, ownerID string, params dto.ListInvoicesParams) ([]domain.Invoice, *string, error)
}

// InvoiceWriterSvc defines write operations for invoice data.
// Every method runs as a single atomic unit of work.
type InvoiceWriterSvc interface {
	// CreateInvoice records a sale: reserves stock, numbers the invoice, books dues and credit.
	CreateInvoice(ctx context.Context, ownerID string, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error)

	// UpdateInvoice changes discount and notes, recomputing totals and dues.
	UpdateInvoice(ctx context.Context, ownerID string, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error)

	// RecordPayment settles part or all of the outstanding amount.
	RecordPayment(ctx context.Context, ownerID string, invoiceID string, req dto.RecordPaymentRequest, userID string) (*domain.Invoice, error)

	// DeleteInvoice reverses every effect of an invoice that has no returns.
	DeleteInvoice(ctx context.Context, ownerID string, invoiceID string, userID string) error
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
