package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type customerService struct {
	BaseService
	scope        portsrepo.TransactionScope
	customerRepo portsrepo.CustomerReader
	txnRepo      portsrepo.TransactionReader
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.CustomerSvcFacade {
	opts := collectOptions(options)
	return &customerService{
		BaseService:  BaseService{clock: opts.clock},
		scope:        repos.Scope,
		customerRepo: repos.CustomerRepo,
		txnRepo:      repos.TransactionRepo,
	}
}

// Ensure customerService implements the portssvc.CustomerSvcFacade interface
var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// CreateCustomer creates a new customer with no dues.
// Implements portssvc.CustomerSvcFacade
func (s *customerService) CreateCustomer(ctx context.Context, ownerID string, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("customer name is required")
	}

	now := s.Now()
	customer := domain.Customer{
		CustomerID:  uuid.NewString(),
		OwnerID:     ownerID,
		Name:        name,
		Phone:       strings.TrimSpace(req.Phone),
		Email:       strings.TrimSpace(req.Email),
		Address:     req.Address,
		Dues:        decimal.Zero,
		AuditFields: domain.NewAuditFields(userID, now),
	}

	err := s.scope.Execute(ctx, func(tx portsrepo.TxRepositories) error {
		return tx.Customers.SaveCustomer(ctx, customer)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create customer", slog.String("owner_id", ownerID), slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Customer created",
		slog.String("customer_id", customer.CustomerID),
		slog.String("owner_id", ownerID),
		slog.String("user_id", userID))
	return &customer, nil
}

// GetCustomerByID retrieves a customer.
// Implements portssvc.CustomerSvcFacade
func (s *customerService) GetCustomerByID(ctx context.Context, ownerID string, customerID string) (*domain.Customer, error) {
	if err := validateReference("customer", customerID); err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.FindCustomerByID(ctx, ownerID, customerID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to get customer", slog.String("customer_id", customerID), slog.String("owner_id", ownerID))
		return nil, err
	}
	return customer, nil
}

// ListCustomers retrieves a page of customers.
// Implements portssvc.CustomerSvcFacade
func (s *customerService) ListCustomers(ctx context.Context, ownerID string, params dto.ListCustomersParams) ([]domain.Customer, *string, error) {
	customers, next, err := s.customerRepo.ListCustomers(ctx, ownerID, params.EffectiveLimit(), params.NextToken)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to list customers", slog.String("owner_id", ownerID))
		return nil, nil, err
	}
	return customers, next, nil
}

// ListCustomerTransactions returns the customer's statement.
// The customer is looked up first so another owner's customer reads as not found rather than an empty page.
// Implements portssvc.CustomerSvcFacade
func (s *customerService) ListCustomerTransactions(ctx context.Context, ownerID string, customerID string, params dto.ListTransactionsParams) ([]domain.Transaction, *string, error) {
	if _, err := s.GetCustomerByID(ctx, ownerID, customerID); err != nil {
		return nil, nil, err
	}
	txns, next, err := s.txnRepo.ListTransactionsByCustomer(ctx, ownerID, customerID, params.EffectiveLimit(), params.NextToken)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to list customer transactions", slog.String("customer_id", customerID), slog.String("owner_id", ownerID))
		return nil, nil, err
	}
	return txns, next, nil
}
