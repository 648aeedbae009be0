package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/core/services"
	"github.com/SscSPs/pos_ledger/internal/dto"
	"github.com/SscSPs/pos_ledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testOwnerID = "owner-1"
	otherOwner  = "owner-2"
	testUserID  = "cashier-1"
)

// stepClock advances one second per reading so every record gets a distinct timestamp.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// --- Mocks for the document collaborators ---

type MockDocumentRenderer struct {
	mock.Mock
}

func (m *MockDocumentRenderer) RenderInvoice(ctx context.Context, doc portssvc.InvoiceDocument) (*portssvc.Artifact, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.Artifact), args.Error(1)
}

type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) Put(ctx context.Context, key string, artifact *portssvc.Artifact) (string, error) {
	args := m.Called(ctx, key, artifact)
	return args.String(0), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyInvoice(ctx context.Context, doc portssvc.InvoiceDocument, artifact *portssvc.Artifact, location string) error {
	args := m.Called(ctx, doc, artifact, location)
	return args.Error(0)
}

// ledgerSuite wires every service to one in-memory store.
type ledgerSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.Store
	repos portsrepo.RepositoryProvider
	svc   *portssvc.ServiceContainer
	clock *stepClock
}

func (s *ledgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.repos = s.store.Provider()
	s.clock = &stepClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	s.svc = services.NewServiceContainer(s.repos, services.WithClock(s.clock.Now))
}

func (s *ledgerSuite) assertAmount(expected string, actual decimal.Decimal, msgAndArgs ...any) {
	s.T().Helper()
	s.Truef(actual.Equal(decimal.RequireFromString(expected)), "expected %s, got %s %v", expected, actual.String(), msgAndArgs)
}

func (s *ledgerSuite) newItem(ownerID string, price int64, stock int) *domain.Item {
	s.T().Helper()
	item, err := s.svc.Item.CreateItem(s.ctx, ownerID, dto.CreateItemRequest{
		Name:     "Widget",
		SKU:      "W-1",
		Price:    dec(price),
		StockQty: stock,
	}, testUserID)
	s.Require().NoError(err)
	return item
}

func (s *ledgerSuite) newCustomer(ownerID string) *domain.Customer {
	s.T().Helper()
	customer, err := s.svc.Customer.CreateCustomer(s.ctx, ownerID, dto.CreateCustomerRequest{
		Name:  "Asha",
		Email: "asha@example.com",
	}, testUserID)
	s.Require().NoError(err)
	return customer
}

func (s *ledgerSuite) sell(customerID *string, itemID string, qty int, paid int64) *domain.Invoice {
	s.T().Helper()
	inv, err := s.svc.Invoice.CreateInvoice(s.ctx, testOwnerID, dto.CreateInvoiceRequest{
		CustomerID: customerID,
		Lines:      []dto.CreateInvoiceLineRequest{{ItemID: itemID, Quantity: qty}},
		PaidAmount: dec(paid),
	}, testUserID)
	s.Require().NoError(err)
	return inv
}

func (s *ledgerSuite) stockOf(itemID string) int {
	s.T().Helper()
	item, err := s.repos.ItemRepo.FindItemByID(s.ctx, testOwnerID, itemID)
	s.Require().NoError(err)
	return item.StockQty
}

func (s *ledgerSuite) duesOf(customerID string) decimal.Decimal {
	s.T().Helper()
	c, err := s.repos.CustomerRepo.FindCustomerByID(s.ctx, testOwnerID, customerID)
	s.Require().NoError(err)
	return c.Dues
}

func (s *ledgerSuite) statementOf(customerID string) []domain.Transaction {
	s.T().Helper()
	txns, _, err := s.repos.TransactionRepo.ListTransactionsByCustomer(s.ctx, testOwnerID, customerID, 0, nil)
	s.Require().NoError(err)
	return txns
}

func (s *ledgerSuite) invoiceTransactions(invoiceID string) []domain.Transaction {
	s.T().Helper()
	txns, err := s.repos.TransactionRepo.FindTransactionsByInvoiceID(s.ctx, testOwnerID, invoiceID)
	s.Require().NoError(err)
	return txns
}
