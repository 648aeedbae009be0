package services_test

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/core/services"
	"github.com/SscSPs/pos_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceTestSuite struct {
	ledgerSuite
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}

func (s *InvoiceServiceTestSuite) TestCreateInvoice_WalkInPaidInFull() {
	item := s.newItem(testOwnerID, 100, 10)

	inv, err := s.svc.Invoice.CreateInvoice(s.ctx, testOwnerID, dto.CreateInvoiceRequest{
		Lines:         []dto.CreateInvoiceLineRequest{{ItemID: item.ItemID, Quantity: 2}},
		PaidAmount:    dec(200),
		PaymentMethod: "cash",
	}, testUserID)

	s.Require().NoError(err)
	s.Equal("INV-00001", inv.InvoiceNo)
	s.assertAmount("200", inv.Subtotal)
	s.assertAmount("200", inv.TotalAmount)
	s.assertAmount("200", inv.PaidAmount)
	s.Equal(domain.PaymentStatusPaid, inv.PaymentStatus)
	s.Require().Len(inv.Lines, 1)
	s.Equal("Widget", inv.Lines[0].ItemName)
	s.assertAmount("100", inv.Lines[0].Price)
	s.Equal(8, s.stockOf(item.ItemID))

	txns := s.invoiceTransactions(inv.InvoiceID)
	s.Require().Len(txns, 1)
	s.Equal(domain.TransactionPayment, txns[0].Type)
	s.assertAmount("200", txns[0].Amount)
	s.Require().NotNil(txns[0].PaymentMethod)
	s.Equal("cash", *txns[0].PaymentMethod)
	s.Nil(txns[0].CustomerID)
}

func (s *InvoiceServiceTestSuite) TestCreateInvoice_PriceOverrideAndDiscount() {
	item := s.newItem(testOwnerID, 100, 10)

	inv, err := s.svc.Invoice.CreateInvoice(s.ctx, testOwnerID, dto.CreateInvoiceRequest{
		Lines: []dto.CreateInvoiceLineRequest{
			{ItemID: item.ItemID, Quantity: 1},
			{ItemID: item.ItemID, Quantity: 2, Price: decPtr(90)},
		},
		Discount:   dec(30),
		PaidAmount: dec(250),
	}, testUserID)

	s.Require().NoError(err)
	s.assertAmount("280", inv.Subtotal)
	s.assertAmount("250", inv.TotalAmount)
	s.assertAmount("180", inv.Lines[1].LineTotal)
	s.Equal(2, inv.Lines[1].LineNo)
	s.Equal(7, s.stockOf(item.ItemID))
}

func (s *InvoiceServiceTestSuite) TestCreateInvoice_WalkInMustPayFull() {
	item := s.newItem(testOwnerID, 100, 10)

	_, err := s.svc.Invoice.CreateInvoice(s.ctx, testOwnerID, dto.CreateInvoiceRequest{
		Lines:      []dto.CreateInvoiceLineRequest{{ItemID: item.ItemID, Quantity: 2}},
		PaidAmount: dec(150),
	}, testUserID)

	s.ErrorIs(err, domain.ErrWalkInMustPayFull)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Equal(10, s.stockOf(item.ItemID), "rejected sale must not touch stock")

	inv := s.sell(nil, item.ItemID, 1, 100)
	s.Equal("INV-00001", inv.InvoiceNo, "rejected sale must not consume an invoice number")
}

func (s *InvoiceServiceTestSuite) TestCreateInvoice_PartialPaymentAddsDues() {
	item := s.newItem(testOwnerID, 100, 10)
	customer := s.newCustomer(testOwnerID)

	inv := s.sell(&customer.CustomerID, item.ItemID, 2, 50)

	s.Equal(domain.PaymentStatusPartial, inv.PaymentStatus)
	s.assertAmount("50", inv.PaidAmount)
	s.assertAmount("150", s.duesOf(customer.CustomerID))

	byType := map[domain.TransactionType]string{}
	for _, t := range s.invoiceTransactions(inv.InvoiceID) {
		byType[t.Type] = t.Amount.String()
		s.Require().NotNil(t.CustomerID)
		s.Equal(customer.CustomerID, *t.CustomerID)
	}
	s.Equal(map[domain.TransactionType]string{
		domain.TransactionDue:     "150",
		domain.TransactionPayment: "50",
	}, byType)
}

func (s *InvoiceServiceTestSuite) TestCreateInvoice_UnpaidCustomerSale() {
	item := s.newItem(testOwnerID, 100, 10)
	customer := s.newCustomer(testOwnerID)

	inv := s.sell(&customer.CustomerID, item.ItemID, 1, 0)

	s.Equal(domain.PaymentStatusUnpaid, inv.PaymentStatus)
	s.assertAmount("100", s.duesOf(customer.CustomerID))
	txns := s.invoiceTransactions(inv.InvoiceID)
	s.Require().Len(txns, 1)
	s.Equal(domain.TransactionDue, txns[0].Type)
}

func (s *InvoiceServiceTestSuite) TestCreateInvoice_OverpaymentKeptAsCredit() {
	item := s.newItem(testOwnerID, 100, 10)
	customer := s.newCustomer(testOwnerID)

	inv := s.sell(&customer.CustomerID, item.ItemID, 2, 250)

	s.assertAmount("200", inv.PaidAmount)
	s.assertAmount("50", inv.CreditAmount)
	s.Equal(domain.PaymentStatusPaid, inv.PaymentStatus)
	s.assertAmount("-50", s.duesOf(customer.CustomerID))
}

func (s *InvoiceServiceTestSuite) TestCreateInvoice_ChangeReturnedReducesCredit() {
	item := s.newItem(testOwnerID, 100, 10)
	customer := s.newCustomer(testOwnerID)

	inv, err := s.svc.Invoice.CreateInvoice(s.ctx, testOwnerID, dto.CreateInvoiceRequest{
		CustomerID:     &customer.CustomerID,
		Lines:          []dto.CreateInvoiceLineRequest{{ItemID: item.ItemID, Quantity: 2}},
		PaidAmount:     dec(250),
		ChangeReturned: dec(30),
	}, testUserID)

	s.Require().NoError(err)
	s.assertAmount("20", inv.CreditAmount)
	s.assertAmount("-20", s.duesOf(customer.CustomerID))
}

func (s *InvoiceServiceTestSuite) TestCreateInvoice_ChangeBeyondOverpaymentClampsToZero() {
	item := s.newItem(testOwnerID, 100, 10)
	customer := s.newCustomer(testOwnerID)

	walkIn, err := s.svc.Invoice.CreateInvoice(s.ctx, testOwnerID, dto.CreateInvoiceRequest{
		Lines:          []dto.CreateInvoiceLineRequest{{ItemID: item.ItemID, Quantity: 1}},
		PaidAmount:     dec(120),
		ChangeReturned: dec(25),
	}, testUserID)

	s.Require().NoError(err)
	s.assertAmount("100", walkIn.PaidAmount)
	s.assertAmount("0", walkIn.CreditAmount)
	s.Equal(domain.PaymentStatusPaid, walkIn.PaymentStatus)
	s.Equal(9, s.stockOf(item.ItemID))

	// Same tender for a customer: nothing is booked as credit.
	credited, err := s.svc.Invoice.CreateInvoice(s.ctx, testOwnerID, dto.CreateInvoiceRequest{
		CustomerID:     &customer.CustomerID,
		Lines:          []dto.CreateInvoiceLineRequest{{ItemID: item.ItemID, Quantity: 1}},
		PaidAmount:     dec(120),
		ChangeReturned: dec(25),
	}, testUserID)

	s.Require().NoError(err)
	s.assertAmount("100", credited.PaidAmount)
	s.assertAmount("0", credited.CreditAmount)
	s.assertAmount("0", s.duesOf(customer.CustomerID))
	s.Equal(8, s.stockOf(item.ItemID))
}

func (s *InvoiceServiceTestSuite) TestCreateInvoice_InsufficientStockAcrossLines() {
	item := s.newItem(testOwnerID, 100, 3)

	_, err := s.svc.Invoice.CreateInvoice(s.ctx, testOwnerID, dto.CreateInvoiceRequest{
		Lines: []dto.CreateInvoiceLineRequest{
			{ItemID: item.ItemID, Quantity: 2},
			{ItemID: item.ItemID, Quantity: 2},
		},
		PaidAmount: dec(400),
	}, testUserID)

	var stockErr *domain.InsufficientStockError
	s.Require().ErrorAs(err, &stockErr)
	s.Equal(3, stockErr.Available)
	s.Equal(4, stockErr.Requested)
	s.Equal("Widget", stockErr.ItemName)
	s.Equal(3, s.stockOf(item.ItemID))
}

func (s *InvoiceServiceTestSuite) TestCreateInvoice_RejectsBadReferences() {
	item := s.newItem(testOwnerID, 100, 10)
	foreign := s.newItem(otherOwner, 100, 10)
	missing := uuid.NewString()

	testCases := []struct {
		name   string
		req    dto.CreateInvoiceRequest
		target error
	}{
		{
			name:   "malformed item id",
			req:    dto.CreateInvoiceRequest{Lines: []dto.CreateInvoiceLineRequest{{ItemID: "item-1", Quantity: 1}}, PaidAmount: dec(100)},
			target: apperrors.ErrMalformedReference,
		},
		{
			name:   "malformed customer id",
			req:    dto.CreateInvoiceRequest{CustomerID: &[]string{"bob"}[0], Lines: []dto.CreateInvoiceLineRequest{{ItemID: item.ItemID, Quantity: 1}}},
			target: apperrors.ErrMalformedReference,
		},
		{
			name:   "unknown customer",
			req:    dto.CreateInvoiceRequest{CustomerID: &missing, Lines: []dto.CreateInvoiceLineRequest{{ItemID: item.ItemID, Quantity: 1}}},
			target: apperrors.ErrNotFound,
		},
		{
			name:   "item owned by another account",
			req:    dto.CreateInvoiceRequest{Lines: []dto.CreateInvoiceLineRequest{{ItemID: foreign.ItemID, Quantity: 1}}, PaidAmount: dec(100)},
			target: apperrors.ErrNotFound,
		},
		{
			name:   "no lines",
			req:    dto.CreateInvoiceRequest{PaidAmount: dec(100)},
			target: domain.ErrEmptyInvoice,
		},
		{
			name:   "zero quantity",
			req:    dto.CreateInvoiceRequest{Lines: []dto.CreateInvoiceLineRequest{{ItemID: item.ItemID, Quantity: 0}}},
			target: domain.ErrInvalidQuantity,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.svc.Invoice.CreateInvoice(s.ctx, testOwnerID, tc.req, testUserID)
			s.ErrorIs(err, tc.target)
		})
	}
	s.Equal(10, s.stockOf(item.ItemID))
}

func (s *InvoiceServiceTestSuite) TestCreateInvoice_ConcurrentNumbersAreGapFree() {
	const n = 25
	item := s.newItem(testOwnerID, 10, n)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers []string
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inv, err := s.svc.Invoice.CreateInvoice(s.ctx, testOwnerID, dto.CreateInvoiceRequest{
				Lines:      []dto.CreateInvoiceLineRequest{{ItemID: item.ItemID, Quantity: 1}},
				PaidAmount: dec(10),
			}, testUserID)
			if err != nil {
				s.T().Errorf("create invoice: %v", err)
				return
			}
			mu.Lock()
			numbers = append(numbers, inv.InvoiceNo)
			mu.Unlock()
		}()
	}
	wg.Wait()

	expected := make([]string, n)
	for i := range expected {
		expected[i] = fmt.Sprintf("INV-%05d", i+1)
	}
	sort.Strings(numbers)
	s.Equal(expected, numbers)
	s.Equal(0, s.stockOf(item.ItemID))
}

func (s *InvoiceServiceTestSuite) TestCreateInvoice_ConcurrentSalesNeverOversell() {
	item := s.newItem(testOwnerID, 10, 5)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		rejected int
	)
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.svc.Invoice.CreateInvoice(s.ctx, testOwnerID, dto.CreateInvoiceRequest{
				Lines:      []dto.CreateInvoiceLineRequest{{ItemID: item.ItemID, Quantity: 1}},
				PaidAmount: dec(10),
			}, testUserID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				rejected++
			default:
				s.T().Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	s.Equal(5, ok)
	s.Equal(7, rejected)
	s.Equal(0, s.stockOf(item.ItemID))
}

func (s *InvoiceServiceTestSuite) TestGetAndListInvoices() {
	item := s.newItem(testOwnerID, 10, 50)
	customer := s.newCustomer(testOwnerID)
	first := s.sell(nil, item.ItemID, 1, 10)
	second := s.sell(&customer.CustomerID, item.ItemID, 1, 10)
	third := s.sell(nil, item.ItemID, 1, 10)

	got, err := s.svc.Invoice.GetInvoiceByID(s.ctx, testOwnerID, second.InvoiceID)
	s.Require().NoError(err)
	s.Equal("INV-00002", got.InvoiceNo)
	s.Len(got.Lines, 1)

	_, err = s.svc.Invoice.GetInvoiceByID(s.ctx, otherOwner, second.InvoiceID)
	s.ErrorIs(err, apperrors.ErrNotFound)

	_, err = s.svc.Invoice.GetInvoiceByID(s.ctx, testOwnerID, "INV-00002")
	s.ErrorIs(err, apperrors.ErrMalformedReference)

	page, next, err := s.svc.Invoice.ListInvoices(s.ctx, testOwnerID, dto.ListInvoicesParams{PageParams: dto.PageParams{Limit: 2}})
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal(third.InvoiceID, page[0].InvoiceID)
	s.Equal(second.InvoiceID, page[1].InvoiceID)
	s.Require().NotNil(next)

	page, next, err = s.svc.Invoice.ListInvoices(s.ctx, testOwnerID, dto.ListInvoicesParams{PageParams: dto.PageParams{Limit: 2, NextToken: next}})
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal(first.InvoiceID, page[0].InvoiceID)
	s.Nil(next)

	page, _, err = s.svc.Invoice.ListInvoices(s.ctx, testOwnerID, dto.ListInvoicesParams{CustomerID: &customer.CustomerID})
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal(second.InvoiceID, page[0].InvoiceID)
}

func (s *InvoiceServiceTestSuite) TestRecordPayment() {
	item := s.newItem(testOwnerID, 100, 10)
	customer := s.newCustomer(testOwnerID)
	inv := s.sell(&customer.CustomerID, item.ItemID, 2, 50)

	updated, err := s.svc.Invoice.RecordPayment(s.ctx, testOwnerID, inv.InvoiceID, dto.RecordPaymentRequest{Amount: dec(100), PaymentMethod: "card"}, testUserID)
	s.Require().NoError(err)
	s.assertAmount("150", updated.PaidAmount)
	s.Equal(domain.PaymentStatusPartial, updated.PaymentStatus)
	s.assertAmount("50", s.duesOf(customer.CustomerID))

	updated, err = s.svc.Invoice.RecordPayment(s.ctx, testOwnerID, inv.InvoiceID, dto.RecordPaymentRequest{Amount: dec(80)}, testUserID)
	s.Require().NoError(err)
	s.assertAmount("200", updated.PaidAmount, "payment is capped at the outstanding amount")
	s.Equal(domain.PaymentStatusPaid, updated.PaymentStatus)
	s.assertAmount("0", s.duesOf(customer.CustomerID))

	_, err = s.svc.Invoice.RecordPayment(s.ctx, testOwnerID, inv.InvoiceID, dto.RecordPaymentRequest{Amount: dec(10)}, testUserID)
	s.ErrorIs(err, domain.ErrInvoiceAlreadyPaid)

	var payments []string
	for _, t := range s.invoiceTransactions(inv.InvoiceID) {
		if t.Type == domain.TransactionPayment {
			payments = append(payments, t.Amount.String())
		}
	}
	s.Equal([]string{"50", "100", "50"}, payments)
}

func (s *InvoiceServiceTestSuite) TestRecordPayment_RejectsNonPositiveAmount() {
	item := s.newItem(testOwnerID, 100, 10)
	customer := s.newCustomer(testOwnerID)
	inv := s.sell(&customer.CustomerID, item.ItemID, 1, 0)

	_, err := s.svc.Invoice.RecordPayment(s.ctx, testOwnerID, inv.InvoiceID, dto.RecordPaymentRequest{Amount: dec(0)}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.assertAmount("100", s.duesOf(customer.CustomerID))
}

func (s *InvoiceServiceTestSuite) TestUpdateInvoice_DiscountAdjustsDues() {
	item := s.newItem(testOwnerID, 100, 10)
	customer := s.newCustomer(testOwnerID)
	inv := s.sell(&customer.CustomerID, item.ItemID, 2, 50)

	notes := "loyalty discount"
	updated, err := s.svc.Invoice.UpdateInvoice(s.ctx, testOwnerID, inv.InvoiceID, dto.UpdateInvoiceRequest{Discount: decPtr(20), Notes: &notes}, testUserID)

	s.Require().NoError(err)
	s.assertAmount("180", updated.TotalAmount)
	s.assertAmount("20", updated.Discount)
	s.Equal(domain.PaymentStatusPartial, updated.PaymentStatus)
	s.Equal(notes, updated.Notes)
	s.Len(updated.Lines, 1)
	s.assertAmount("130", s.duesOf(customer.CustomerID))

	stored, err := s.svc.Invoice.GetInvoiceByID(s.ctx, testOwnerID, inv.InvoiceID)
	s.Require().NoError(err)
	s.assertAmount("180", stored.TotalAmount)
	s.Equal(inv.InvoiceNo, stored.InvoiceNo)
}

func (s *InvoiceServiceTestSuite) TestUpdateInvoice_Rejections() {
	item := s.newItem(testOwnerID, 100, 10)
	walkIn := s.sell(nil, item.ItemID, 2, 200)

	_, err := s.svc.Invoice.UpdateInvoice(s.ctx, testOwnerID, walkIn.InvoiceID, dto.UpdateInvoiceRequest{Discount: decPtr(20)}, testUserID)
	s.ErrorIs(err, domain.ErrTotalBelowPaid)

	_, err = s.svc.Invoice.UpdateInvoice(s.ctx, testOwnerID, walkIn.InvoiceID, dto.UpdateInvoiceRequest{Discount: decPtr(500)}, testUserID)
	s.ErrorIs(err, domain.ErrDiscountExceedsSubtotal)

	_, err = s.svc.Invoice.UpdateInvoice(s.ctx, testOwnerID, walkIn.InvoiceID, dto.UpdateInvoiceRequest{}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)

	notes := "gift wrap"
	updated, err := s.svc.Invoice.UpdateInvoice(s.ctx, testOwnerID, walkIn.InvoiceID, dto.UpdateInvoiceRequest{Notes: &notes}, testUserID)
	s.Require().NoError(err)
	s.Equal(notes, updated.Notes)
	s.assertAmount("200", updated.TotalAmount)
}

func (s *InvoiceServiceTestSuite) TestUpdateInvoice_DiscountLockedOnceReturned() {
	item := s.newItem(testOwnerID, 100, 10)
	customer := s.newCustomer(testOwnerID)
	inv := s.sell(&customer.CustomerID, item.ItemID, 2, 0)

	_, err := s.svc.Return.CreateReturn(s.ctx, testOwnerID, dto.CreateReturnRequest{
		InvoiceID: inv.InvoiceID,
		Lines:     []dto.CreateReturnLineRequest{{ItemID: item.ItemID, ReturnedQty: 1, Condition: domain.ConditionNotDamaged, Reason: "wrong size"}},
	}, testUserID)
	s.Require().NoError(err)

	_, err = s.svc.Invoice.UpdateInvoice(s.ctx, testOwnerID, inv.InvoiceID, dto.UpdateInvoiceRequest{Discount: decPtr(10)}, testUserID)
	s.ErrorIs(err, domain.ErrInvoiceHasReturns)
}

func (s *InvoiceServiceTestSuite) TestDeleteInvoice_ReversesEverything() {
	item := s.newItem(testOwnerID, 100, 10)
	customer := s.newCustomer(testOwnerID)

	partial := s.sell(&customer.CustomerID, item.ItemID, 2, 50)
	credit := s.sell(&customer.CustomerID, item.ItemID, 1, 130)
	_, err := s.svc.Invoice.RecordPayment(s.ctx, testOwnerID, partial.InvoiceID, dto.RecordPaymentRequest{Amount: dec(25)}, testUserID)
	s.Require().NoError(err)
	s.assertAmount("95", s.duesOf(customer.CustomerID))
	s.Equal(7, s.stockOf(item.ItemID))

	s.Require().NoError(s.svc.Invoice.DeleteInvoice(s.ctx, testOwnerID, partial.InvoiceID, testUserID))
	s.assertAmount("-30", s.duesOf(customer.CustomerID))
	s.Equal(9, s.stockOf(item.ItemID))
	s.Empty(s.invoiceTransactions(partial.InvoiceID))

	s.Require().NoError(s.svc.Invoice.DeleteInvoice(s.ctx, testOwnerID, credit.InvoiceID, testUserID))
	s.assertAmount("0", s.duesOf(customer.CustomerID))
	s.Equal(10, s.stockOf(item.ItemID))
	s.Empty(s.statementOf(customer.CustomerID))

	_, err = s.svc.Invoice.GetInvoiceByID(s.ctx, testOwnerID, partial.InvoiceID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *InvoiceServiceTestSuite) TestDeleteInvoice_RejectedWhileReturnsExist() {
	item := s.newItem(testOwnerID, 100, 10)
	inv := s.sell(nil, item.ItemID, 2, 200)
	_, err := s.svc.Return.CreateReturn(s.ctx, testOwnerID, dto.CreateReturnRequest{
		InvoiceID: inv.InvoiceID,
		Lines:     []dto.CreateReturnLineRequest{{ItemID: item.ItemID, ReturnedQty: 1, Condition: domain.ConditionNotDamaged, Reason: "changed mind"}},
	}, testUserID)
	s.Require().NoError(err)

	err = s.svc.Invoice.DeleteInvoice(s.ctx, testOwnerID, inv.InvoiceID, testUserID)
	s.ErrorIs(err, domain.ErrInvoiceHasReturns)
	s.Equal(9, s.stockOf(item.ItemID))

	err = s.svc.Invoice.DeleteInvoice(s.ctx, otherOwner, inv.InvoiceID, testUserID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *InvoiceServiceTestSuite) TestCreateInvoice_PublishesReceipt() {
	renderer := new(MockDocumentRenderer)
	artifacts := new(MockArtifactStore)
	notifier := new(MockNotifier)
	invoices := services.NewInvoiceService(s.repos,
		services.WithClock(s.clock.Now),
		services.WithDocumentRenderer(renderer),
		services.WithArtifactStore(artifacts),
		services.WithNotifier(notifier),
	)
	item := s.newItem(testOwnerID, 100, 10)
	customer := s.newCustomer(testOwnerID)

	artifact := &portssvc.Artifact{Name: "INV-00001.html", ContentType: "text/html", Body: []byte("<html></html>")}
	renderer.On("RenderInvoice", mock.Anything, mock.MatchedBy(func(doc portssvc.InvoiceDocument) bool {
		return doc.Invoice.InvoiceNo == "INV-00001" && doc.Customer != nil && doc.Customer.Dues.Equal(dec(150))
	})).Return(artifact, nil).Once()
	artifacts.On("Put", mock.Anything, testOwnerID+"/receipts/INV-00001.html", artifact).Return("https://files.example.com/INV-00001.html", nil).Once()
	notifier.On("NotifyInvoice", mock.Anything, mock.Anything, artifact, "https://files.example.com/INV-00001.html").Return(nil).Once()

	_, err := invoices.CreateInvoice(s.ctx, testOwnerID, dto.CreateInvoiceRequest{
		CustomerID: &customer.CustomerID,
		Lines:      []dto.CreateInvoiceLineRequest{{ItemID: item.ItemID, Quantity: 2}},
		PaidAmount: dec(50),
	}, testUserID)

	s.Require().NoError(err)
	renderer.AssertExpectations(s.T())
	artifacts.AssertExpectations(s.T())
	notifier.AssertExpectations(s.T())
}

func (s *InvoiceServiceTestSuite) TestCreateInvoice_ReceiptFailuresDoNotFailTheSale() {
	renderer := new(MockDocumentRenderer)
	artifacts := new(MockArtifactStore)
	notifier := new(MockNotifier)
	invoices := services.NewInvoiceService(s.repos,
		services.WithDocumentRenderer(renderer),
		services.WithArtifactStore(artifacts),
		services.WithNotifier(notifier),
	)
	item := s.newItem(testOwnerID, 100, 10)

	renderer.On("RenderInvoice", mock.Anything, mock.Anything).Return(nil, errors.New("template exploded")).Once()
	notifier.On("NotifyInvoice", mock.Anything, mock.Anything, (*portssvc.Artifact)(nil), "").Return(errors.New("smtp down")).Once()

	inv, err := invoices.CreateInvoice(s.ctx, testOwnerID, dto.CreateInvoiceRequest{
		Lines:      []dto.CreateInvoiceLineRequest{{ItemID: item.ItemID, Quantity: 1}},
		PaidAmount: dec(100),
	}, testUserID)

	s.Require().NoError(err)
	s.Equal("INV-00001", inv.InvoiceNo)
	s.Equal(9, s.stockOf(item.ItemID))
	artifacts.AssertNotCalled(s.T(), "Put", mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertExpectations(s.T())
}
