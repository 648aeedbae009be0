package services

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/dto"
)

// ReturnReaderSvc defines read operations for sales return data
type ReturnReaderSvc interface {
	// GetReturnByID retrieves a return with its lines.
	GetReturnByID(ctx context.Context, ownerID string, returnID string) (*domain.SalesReturn, error)

	// ListReturns retrieves a page of returns, or every return of one invoice when params.InvoiceID is set.
	ListReturns(ctx context.Context, ownerID string, params dto.ListReturnsParams) ([]domain.SalesReturn, *string, error)
}

// ReturnWriterSvc defines write operations for sales return data.
// Every method runs as a single atomic unit of work.
type ReturnWriterSvc interface {
	// CreateReturn validates quantities against the invoice, restocks undamaged goods and credits the customer.
	CreateReturn(ctx context.Context, ownerID string, req dto.CreateReturnRequest, userID string) (*domain.SalesReturn, error)

	// DeleteReturn undoes exactly the effects CreateReturn applied.
	DeleteReturn(ctx context.Context, ownerID string, returnID string, userID string) error
}

// ReturnSvcFacade combines all return-related service interfaces
type ReturnSvcFacade interface {
	ReturnReaderSvc
	ReturnWriterSvc
}
