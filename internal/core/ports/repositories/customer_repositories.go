package repositories

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CustomerReader defines read operations for customer data
type CustomerReader interface {
	// FindCustomerByID retrieves a customer owned by ownerID.
	FindCustomerByID(ctx context.Context, ownerID, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves a page of customers, newest first.
	ListCustomers(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.Customer, *string, error)
}

// CustomerWriter defines write operations for customer data
type CustomerWriter interface {
	// SaveCustomer persists a new customer with zero dues.
	SaveCustomer(ctx context.Context, customer domain.Customer) error

	// AdjustDues adds delta to the customer's dues and returns the new balance.
	AdjustDues(ctx context.Context, ownerID, customerID string, delta decimal.Decimal, userID string) (decimal.Decimal, error)
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
