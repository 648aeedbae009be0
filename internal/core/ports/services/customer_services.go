package services

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/dto"
)

// CustomerReaderSvc defines read operations for customer data
type CustomerReaderSvc interface {
	// GetCustomerByID retrieves a customer owned by ownerID, including the current dues.
	GetCustomerByID(ctx context.Context, ownerID string, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves a page of customers, newest first.
	ListCustomers(ctx context.Context, ownerID string, params dto.ListCustomersParams) ([]domain.Customer, *string, error)

	// ListCustomerTransactions returns the customer's ledger statement, newest first.
	ListCustomerTransactions(ctx context.Context, ownerID string, customerID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error)
}

// CustomerWriterSvc defines write operations for customer data
type CustomerWriterSvc interface {
	// CreateCustomer persists a new customer with zero dues.
	CreateCustomer(ctx context.Context, ownerID string, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error)
}

// CustomerSvcFacade combines all customer-related service interfaces
type CustomerSvcFacade interface {
	CustomerReaderSvc
	CustomerWriterSvc
}
