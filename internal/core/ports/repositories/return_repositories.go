package repositories

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
)

// ReturnReader defines read operations for sales returns
type ReturnReader interface {
	// FindReturnByID retrieves a return with its lines.
	FindReturnByID(ctx context.Context, ownerID, returnID string) (*domain.SalesReturn, error)

	// ListReturnsByInvoice retrieves every return recorded against an invoice, oldest first, with lines.
	ListReturnsByInvoice(ctx context.Context, ownerID, invoiceID string) ([]domain.SalesReturn, error)

	// ListReturns retrieves a page of returns without lines, newest first.
	ListReturns(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.SalesReturn, *string, error)

	// CountReturnsByInvoice counts returns recorded against an invoice.
	CountReturnsByInvoice(ctx context.Context, ownerID, invoiceID string) (int, error)
}

// ReturnWriter defines write operations for sales returns
type ReturnWriter interface {
	// SaveReturn persists a new return together with its lines.
	SaveReturn(ctx context.Context, ret domain.SalesReturn) error

	// MarkLineInventoryAdjusted records that a return line restocked its item.
	MarkLineInventoryAdjusted(ctx context.Context, returnID string, lineNo int) error

	// DeleteReturn removes a return and its lines.
	DeleteReturn(ctx context.Context, ownerID, returnID string) error
}

// ReturnRepositoryFacade combines all return-related repository interfaces
type ReturnRepositoryFacade interface {
	ReturnReader
	ReturnWriter
}
