package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// invoiceService runs the sale workflows. Every write happens inside one TransactionScope call.
type invoiceService struct {
	BaseService
	scope       portsrepo.TransactionScope
	invoiceRepo portsrepo.InvoiceReader
	receipts    *receiptPublisher
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.InvoiceSvcFacade {
	opts := collectOptions(options)
	return &invoiceService{
		BaseService: BaseService{clock: opts.clock},
		scope:       repos.Scope,
		invoiceRepo: repos.InvoiceRepo,
		receipts:    newReceiptPublisher(opts),
	}
}

// Ensure invoiceService implements the portssvc.InvoiceSvcFacade interface
var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func validateCreateInvoice(req dto.CreateInvoiceRequest) error {
	if len(req.Lines) == 0 {
		return domain.ErrEmptyInvoice
	}
	if req.CustomerID != nil {
		if err := validateReference("customer", *req.CustomerID); err != nil {
			return err
		}
	}
	for _, l := range req.Lines {
		if err := validateReference("item", l.ItemID); err != nil {
			return err
		}
		if l.Quantity <= 0 {
			return fmt.Errorf("%w: item %s", domain.ErrInvalidQuantity, l.ItemID)
		}
		if l.Price != nil && l.Price.IsNegative() {
			return fmt.Errorf("%w: price of item %s", domain.ErrNegativeAmount, l.ItemID)
		}
	}
	return nil
}

// CreateInvoice records a sale.
// Implements portssvc.InvoiceSvcFacade
func (s *invoiceService) CreateInvoice(ctx context.Context, ownerID string, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	if req.CustomerID != nil && *req.CustomerID == "" {
		req.CustomerID = nil
	}
	if err := validateCreateInvoice(req); err != nil {
		s.LogFailure(ctx, err, "Invoice rejected", slog.String("owner_id", ownerID))
		return nil, err
	}

	now := s.Now()
	entry := ledgerEntry{ownerID: ownerID, userID: userID, now: now}
	invoice := domain.Invoice{
		InvoiceID:      uuid.NewString(),
		OwnerID:        ownerID,
		CustomerID:     req.CustomerID,
		PaymentMethod:  req.PaymentMethod,
		ChangeReturned: req.ChangeReturned,
		ReturnedAmount: decimal.Zero,
		CreditAmount:   decimal.Zero,
		Notes:          req.Notes,
		AuditFields:    domain.NewAuditFields(userID, now),
	}
	var customer *domain.Customer

	err := s.scope.Execute(ctx, func(tx portsrepo.TxRepositories) error {
		// Walk-in sales carry no customer
		if invoice.CustomerID != nil {
			c, err := tx.Customers.FindCustomerByID(ctx, ownerID, *invoice.CustomerID)
			if err != nil {
				return err
			}
			customer = c
		}

		// --- Pricing and Totals ---
		lines, err := s.priceLines(ctx, tx, ownerID, req.Lines)
		if err != nil {
			return err
		}

		totals, err := domain.ComputeInvoiceTotals(lines, req.Discount, req.PaidAmount, req.ChangeReturned)
		if err != nil {
			return err
		}
		if invoice.IsWalkIn() && totals.ActualPaid.LessThan(totals.TotalAmount) {
			return domain.ErrWalkInMustPayFull
		}

		// --- Persistence ---
		n, err := tx.Sequences.NextValue(ctx, ownerID, domain.SequenceInvoice)
		if err != nil {
			return err
		}
		invoice.InvoiceNo = domain.SequenceInvoice.Format(n)
		invoice.Lines = lines
		invoice.Subtotal = totals.Subtotal
		invoice.Discount = totals.Discount
		invoice.TotalAmount = totals.TotalAmount
		invoice.PaidAmount = totals.ActualPaid
		invoice.PaymentStatus = totals.PaymentStatus
		// Only a known customer can keep change as credit
		if customer != nil {
			invoice.CreditAmount = totals.ChangeNotReturned
		}

		if err := tx.Invoices.SaveInvoice(ctx, invoice); err != nil {
			return err
		}

		// Take the sold units out of stock
		for _, l := range lines {
			if _, err := tx.Items.DecrementStock(ctx, ownerID, l.ItemID, l.Quantity); err != nil {
				return err
			}
		}

		// --- Dues and Ledger ---
		var txns []domain.Transaction
		if customer != nil {
			if shortfall := totals.Shortfall(); shortfall.IsPositive() {
				dues, err := tx.Customers.AdjustDues(ctx, ownerID, customer.CustomerID, shortfall, userID)
				if err != nil {
					return err
				}
				customer.Dues = dues
				txns = append(txns, entry.forInvoice(&invoice, domain.TransactionDue, shortfall, "",
					fmt.Sprintf("Amount due on %s", invoice.InvoiceNo)))
			}
			// Kept change lowers the customer's dues
			if credit := totals.ChangeNotReturned; credit.IsPositive() {
				dues, err := tx.Customers.AdjustDues(ctx, ownerID, customer.CustomerID, credit.Neg(), userID)
				if err != nil {
					return err
				}
				customer.Dues = dues
				txns = append(txns, entry.forInvoice(&invoice, domain.TransactionDue, credit.Neg(), "",
					fmt.Sprintf("Change kept as credit on %s", invoice.InvoiceNo)))
			}
		}
		if totals.ActualPaid.IsPositive() {
			txns = append(txns, entry.forInvoice(&invoice, domain.TransactionPayment, totals.ActualPaid, invoice.PaymentMethod,
				fmt.Sprintf("Payment for %s", invoice.InvoiceNo)))
		}
		if len(txns) == 0 {
			return nil
		}
		return tx.Transactions.AppendTransactions(ctx, txns...)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create invoice", slog.String("owner_id", ownerID), slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Invoice created",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("invoice_no", invoice.InvoiceNo),
		slog.String("owner_id", ownerID),
		slog.String("user_id", userID),
		slog.String("total", invoice.TotalAmount.String()),
		slog.String("payment_status", string(invoice.PaymentStatus)))

	s.receipts.publish(ctx, portssvc.InvoiceDocument{Invoice: invoice, Customer: customer})
	return &invoice, nil
}

// priceLines snapshots item names and prices and checks the requested quantities against stock.
// The check gives a precise error up front; DecrementStock enforces the limit atomically.
func (s *invoiceService) priceLines(ctx context.Context, tx portsrepo.TxRepositories, ownerID string, reqLines []dto.CreateInvoiceLineRequest) ([]domain.InvoiceLine, error) {
	items := make(map[string]*domain.Item, len(reqLines))
	requested := make(map[string]int, len(reqLines))
	lines := make([]domain.InvoiceLine, len(reqLines))

	for i, l := range reqLines {
		item, ok := items[l.ItemID]
		if !ok {
			found, err := tx.Items.FindItemByID(ctx, ownerID, l.ItemID)
			if err != nil {
				return nil, err
			}
			item = found
			items[l.ItemID] = item
		}

		price := item.Price
		if l.Price != nil {
			price = *l.Price
		}
		lines[i] = domain.InvoiceLine{
			LineNo:    i + 1,
			ItemID:    item.ItemID,
			ItemName:  item.Name,
			Quantity:  l.Quantity,
			Price:     price,
			LineTotal: domain.LineTotal(l.Quantity, price),
		}

		requested[l.ItemID] += l.Quantity
		if requested[l.ItemID] > item.StockQty {
			return nil, &domain.InsufficientStockError{
				ItemID:    item.ItemID,
				ItemName:  item.Name,
				Available: item.StockQty,
				Requested: requested[l.ItemID],
			}
		}
	}
	return lines, nil
}

// GetInvoiceByID retrieves an invoice with its lines.
// Implements portssvc.InvoiceSvcFacade
func (s *invoiceService) GetInvoiceByID(ctx context.Context, ownerID string, invoiceID string) (*domain.Invoice, error) {
	if err := validateReference("invoice", invoiceID); err != nil {
		return nil, err
	}
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, ownerID, invoiceID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to get invoice", slog.String("invoice_id", invoiceID), slog.String("owner_id", ownerID))
		return nil, err
	}
	return invoice, nil
}

// ListInvoices retrieves a page of invoices, newest first.
// Implements portssvc.InvoiceSvcFacade
func (s *invoiceService) ListInvoices(ctx context.Context, ownerID string, params dto.ListInvoicesParams) ([]domain.Invoice, *string, error) {
	if params.CustomerID != nil {
		if err := validateReference("customer", *params.CustomerID); err != nil {
			return nil, nil, err
		}
	}
	invoices, next, err := s.invoiceRepo.ListInvoices(ctx, ownerID, params.CustomerID, params.EffectiveLimit(), params.NextToken)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to list invoices", slog.String("owner_id", ownerID))
		return nil, nil, err
	}
	return invoices, next, nil
}

// UpdateInvoice changes the discount and notes of an invoice.
// A discount change moves the total, so status and the customer's dues follow it.
// Implements portssvc.InvoiceSvcFacade
func (s *invoiceService) UpdateInvoice(ctx context.Context, ownerID string, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error) {
	if err := validateReference("invoice", invoiceID); err != nil {
		return nil, err
	}
	if req.Discount == nil && req.Notes == nil {
		return nil, apperrors.NewValidationError("no updatable fields supplied")
	}
	if req.Discount != nil && req.Discount.IsNegative() {
		return nil, domain.ErrNegativeAmount
	}

	now := s.Now()
	entry := ledgerEntry{ownerID: ownerID, userID: userID, now: now}
	var updated *domain.Invoice

	err := s.scope.Execute(ctx, func(tx portsrepo.TxRepositories) error {
		// Lock the invoice
		inv, err := tx.Invoices.FindInvoiceByIDForUpdate(ctx, ownerID, invoiceID)
		if err != nil {
			return err
		}

		if req.Discount != nil && !req.Discount.Equal(inv.Discount) {
			if inv.HasReturns {
				return domain.ErrInvoiceHasReturns
			}
			if req.Discount.GreaterThan(inv.Subtotal) {
				return domain.ErrDiscountExceedsSubtotal
			}
			newTotal := inv.Subtotal.Sub(*req.Discount)
			if newTotal.LessThan(inv.PaidAmount) {
				return domain.ErrTotalBelowPaid
			}
			if inv.IsWalkIn() && newTotal.GreaterThan(inv.PaidAmount) {
				return domain.ErrWalkInMustPayFull
			}

			// Shift the customer's dues by the change in total
			delta := newTotal.Sub(inv.TotalAmount)
			inv.Discount = *req.Discount
			inv.TotalAmount = newTotal
			inv.PaymentStatus = domain.DerivePaymentStatus(inv.PaidAmount, newTotal)

			if inv.CustomerID != nil && !delta.IsZero() {
				if _, err := tx.Customers.AdjustDues(ctx, ownerID, *inv.CustomerID, delta, userID); err != nil {
					return err
				}
				if err := tx.Transactions.AppendTransactions(ctx, entry.forInvoice(inv, domain.TransactionDue, delta, "",
					fmt.Sprintf("Discount changed on %s", inv.InvoiceNo))); err != nil {
					return err
				}
			}
		}
		if req.Notes != nil {
			inv.Notes = *req.Notes
		}
		inv.Touch(userID, now)

		if err := tx.Invoices.UpdateInvoice(ctx, *inv); err != nil {
			return err
		}
		updated = inv
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to update invoice", slog.String("invoice_id", invoiceID), slog.String("owner_id", ownerID), slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Invoice updated",
		slog.String("invoice_id", updated.InvoiceID),
		slog.String("invoice_no", updated.InvoiceNo),
		slog.String("owner_id", ownerID),
		slog.String("user_id", userID))
	return updated, nil
}

// RecordPayment applies a later payment to an invoice. Anything above the outstanding amount is not recorded.
// Implements portssvc.InvoiceSvcFacade
func (s *invoiceService) RecordPayment(ctx context.Context, ownerID string, invoiceID string, req dto.RecordPaymentRequest, userID string) (*domain.Invoice, error) {
	if err := validateReference("invoice", invoiceID); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("payment amount must be greater than zero")
	}

	now := s.Now()
	entry := ledgerEntry{ownerID: ownerID, userID: userID, now: now}
	var updated *domain.Invoice

	err := s.scope.Execute(ctx, func(tx portsrepo.TxRepositories) error {
		// Lock the invoice
		inv, err := tx.Invoices.FindInvoiceByIDForUpdate(ctx, ownerID, invoiceID)
		if err != nil {
			return err
		}
		// Nothing left to collect
		outstanding := inv.Outstanding()
		if !outstanding.IsPositive() {
			return domain.ErrInvoiceAlreadyPaid
		}

		// Overpayment is capped at what is still owed
		applied := decimal.Min(req.Amount, outstanding)
		inv.PaidAmount = inv.PaidAmount.Add(applied)
		inv.PaymentStatus = domain.DerivePaymentStatus(inv.PaidAmount, inv.TotalAmount)
		inv.Touch(userID, now)
		if err := tx.Invoices.UpdateInvoice(ctx, *inv); err != nil {
			return err
		}

		if inv.CustomerID != nil {
			if _, err := tx.Customers.AdjustDues(ctx, ownerID, *inv.CustomerID, applied.Neg(), userID); err != nil {
				return err
			}
		}
		if err := tx.Transactions.AppendTransactions(ctx, entry.forInvoice(inv, domain.TransactionPayment, applied, req.PaymentMethod,
			fmt.Sprintf("Payment for %s", inv.InvoiceNo))); err != nil {
			return err
		}
		updated = inv
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to record payment", slog.String("invoice_id", invoiceID), slog.String("owner_id", ownerID), slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Payment recorded",
		slog.String("invoice_id", updated.InvoiceID),
		slog.String("invoice_no", updated.InvoiceNo),
		slog.String("owner_id", ownerID),
		slog.String("user_id", userID),
		slog.String("paid_amount", updated.PaidAmount.String()),
		slog.String("payment_status", string(updated.PaymentStatus)))
	return updated, nil
}

// DeleteInvoice restocks every line, reverses the invoice's effect on the customer's dues and
// removes its log entries. Invoices with returns must have their returns deleted first.
// Implements portssvc.InvoiceSvcFacade
func (s *invoiceService) DeleteInvoice(ctx context.Context, ownerID string, invoiceID string, userID string) error {
	if err := validateReference("invoice", invoiceID); err != nil {
		return err
	}

	var deleted *domain.Invoice
	err := s.scope.Execute(ctx, func(tx portsrepo.TxRepositories) error {
		// Lock the invoice
		inv, err := tx.Invoices.FindInvoiceByIDForUpdate(ctx, ownerID, invoiceID)
		if err != nil {
			return err
		}
		// Returns must be deleted first
		if inv.HasReturns {
			return domain.ErrInvoiceHasReturns
		}
		count, err := tx.Returns.CountReturnsByInvoice(ctx, ownerID, invoiceID)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrInvoiceHasReturns
		}

		// Put every sold unit back on the shelf
		for _, l := range inv.Lines {
			if _, err := tx.Items.IncrementStock(ctx, ownerID, l.ItemID, l.Quantity); err != nil {
				return err
			}
		}
		if inv.CustomerID != nil {
			// Undo whatever the invoice did to the customer's dues
			if net := inv.NetDuesEffect(); !net.IsZero() {
				if _, err := tx.Customers.AdjustDues(ctx, ownerID, *inv.CustomerID, net.Neg(), userID); err != nil {
					return err
				}
			}
		}
		// Drop the ledger rows, then the invoice itself
		if _, err := tx.Transactions.DeleteTransactionsByInvoiceID(ctx, ownerID, invoiceID); err != nil {
			return err
		}
		if err := tx.Invoices.DeleteInvoice(ctx, ownerID, invoiceID); err != nil {
			return err
		}
		deleted = inv
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to delete invoice", slog.String("invoice_id", invoiceID), slog.String("owner_id", ownerID), slog.String("user_id", userID))
		return err
	}

	s.LogInfo(ctx, "Invoice deleted",
		slog.String("invoice_id", deleted.InvoiceID),
		slog.String("invoice_no", deleted.InvoiceNo),
		slog.String("owner_id", ownerID),
		slog.String("user_id", userID))
	return nil
}
