package services_test

import (
	"testing"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type CatalogServiceTestSuite struct {
	ledgerSuite
}

func TestCatalogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}

func (s *CatalogServiceTestSuite) TestCreateItem() {
	item, err := s.svc.Item.CreateItem(s.ctx, testOwnerID, dto.CreateItemRequest{Name: "  Tea  ", Price: dec(12), StockQty: 4}, testUserID)
	s.Require().NoError(err)
	s.Equal("Tea", item.Name)
	s.Equal(testUserID, item.CreatedBy)
	_, err = uuid.Parse(item.ItemID)
	s.NoError(err)

	_, err = s.svc.Item.CreateItem(s.ctx, testOwnerID, dto.CreateItemRequest{Name: " "}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Item.CreateItem(s.ctx, testOwnerID, dto.CreateItemRequest{Name: "Tea", Price: dec(-1)}, testUserID)
	s.ErrorIs(err, domain.ErrNegativeAmount)
}

func (s *CatalogServiceTestSuite) TestRestockItem() {
	item := s.newItem(testOwnerID, 10, 1)

	restocked, err := s.svc.Item.RestockItem(s.ctx, testOwnerID, item.ItemID, dto.RestockItemRequest{Quantity: 5, UnitCost: decPtr(6), Note: "supplier delivery"}, testUserID)
	s.Require().NoError(err)
	s.Equal(6, restocked.StockQty)
	s.Equal(6, s.stockOf(item.ItemID))

	_, err = s.svc.Item.RestockItem(s.ctx, otherOwner, item.ItemID, dto.RestockItemRequest{Quantity: 5}, testUserID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.svc.Item.RestockItem(s.ctx, testOwnerID, item.ItemID, dto.RestockItemRequest{Quantity: 0}, testUserID)
	s.ErrorIs(err, domain.ErrInvalidQuantity)

	_, err = s.svc.Item.RestockItem(s.ctx, testOwnerID, "sku-1", dto.RestockItemRequest{Quantity: 1}, testUserID)
	s.ErrorIs(err, apperrors.ErrMalformedReference)
	s.Equal(6, s.stockOf(item.ItemID))
}

func (s *CatalogServiceTestSuite) TestGetAndListItems() {
	first := s.newItem(testOwnerID, 10, 1)
	second := s.newItem(testOwnerID, 20, 1)
	s.newItem(otherOwner, 30, 1)

	got, err := s.svc.Item.GetItemByID(s.ctx, testOwnerID, first.ItemID)
	s.Require().NoError(err)
	s.assertAmount("10", got.Price)

	_, err = s.svc.Item.GetItemByID(s.ctx, otherOwner, first.ItemID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	items, next, err := s.svc.Item.ListItems(s.ctx, testOwnerID, dto.ListItemsParams{PageParams: dto.PageParams{Limit: 1}})
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal(second.ItemID, items[0].ItemID)
	s.Require().NotNil(next)

	items, next, err = s.svc.Item.ListItems(s.ctx, testOwnerID, dto.ListItemsParams{PageParams: dto.PageParams{Limit: 1, NextToken: next}})
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal(first.ItemID, items[0].ItemID)
	s.Nil(next)

	bad := "not-a-token"
	_, _, err = s.svc.Item.ListItems(s.ctx, testOwnerID, dto.ListItemsParams{PageParams: dto.PageParams{NextToken: &bad}})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *CatalogServiceTestSuite) TestCreateAndGetCustomer() {
	customer := s.newCustomer(testOwnerID)
	s.assertAmount("0", customer.Dues)

	got, err := s.svc.Customer.GetCustomerByID(s.ctx, testOwnerID, customer.CustomerID)
	s.Require().NoError(err)
	s.Equal("asha@example.com", got.Email)

	_, err = s.svc.Customer.GetCustomerByID(s.ctx, otherOwner, customer.CustomerID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.svc.Customer.CreateCustomer(s.ctx, testOwnerID, dto.CreateCustomerRequest{}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)

	list, _, err := s.svc.Customer.ListCustomers(s.ctx, testOwnerID, dto.ListCustomersParams{})
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *CatalogServiceTestSuite) TestListCustomerTransactions() {
	item := s.newItem(testOwnerID, 100, 10)
	customer := s.newCustomer(testOwnerID)
	inv := s.sell(&customer.CustomerID, item.ItemID, 1, 40)
	_, err := s.svc.Invoice.RecordPayment(s.ctx, testOwnerID, inv.InvoiceID, dto.RecordPaymentRequest{Amount: dec(60)}, testUserID)
	s.Require().NoError(err)

	txns, next, err := s.svc.Customer.ListCustomerTransactions(s.ctx, testOwnerID, customer.CustomerID, dto.ListTransactionsParams{})
	s.Require().NoError(err)
	s.Nil(next)
	s.Require().Len(txns, 3)
	s.Equal(domain.TransactionPayment, txns[0].Type, "newest entry first")
	s.assertAmount("60", txns[0].Amount)

	s.assertAmount("0", s.duesOf(customer.CustomerID))

	_, _, err = s.svc.Customer.ListCustomerTransactions(s.ctx, otherOwner, customer.CustomerID, dto.ListTransactionsParams{})
	s.ErrorIs(err, apperrors.ErrNotFound)
}
