package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/dto"
	"github.com/google/uuid"
)

type returnService struct {
	BaseService
	scope      portsrepo.TransactionScope
	returnRepo portsrepo.ReturnReader
}

// NewReturnService creates a new ReturnService.
func NewReturnService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.ReturnSvcFacade {
	opts := collectOptions(options)
	return &returnService{
		BaseService: BaseService{clock: opts.clock},
		scope:       repos.Scope,
		returnRepo:  repos.ReturnRepo,
	}
}

// Ensure returnService implements the portssvc.ReturnSvcFacade interface
var _ portssvc.ReturnSvcFacade = (*returnService)(nil)

func validateCreateReturn(req dto.CreateReturnRequest) error {
	if err := validateReference("invoice", req.InvoiceID); err != nil {
		return err
	}
	if len(req.Lines) == 0 {
		return domain.ErrEmptyReturn
	}
	if req.DiscountAmount.IsNegative() {
		return domain.ErrNegativeAmount
	}
	for _, l := range req.Lines {
		if err := validateReference("item", l.ItemID); err != nil {
			return err
		}
		if l.ReturnedQty <= 0 {
			return fmt.Errorf("%w: item %s", domain.ErrInvalidQuantity, l.ItemID)
		}
		if !l.Condition.Valid() {
			return fmt.Errorf("%w: item %s", domain.ErrInvalidCondition, l.ItemID)
		}
		if strings.TrimSpace(l.Reason) == "" {
			return fmt.Errorf("%w: item %s", domain.ErrReasonRequired, l.ItemID)
		}
		if (l.Rate != nil && l.Rate.IsNegative()) || l.TaxPercent.IsNegative() {
			return fmt.Errorf("%w: item %s", domain.ErrNegativeAmount, l.ItemID)
		}
	}
	return nil
}

// buildReturnLines checks each requested quantity against what is still returnable and prices the lines.
func buildReturnLines(inv *domain.Invoice, alreadyReturned map[string]int, reqLines []dto.CreateReturnLineRequest) ([]domain.ReturnLine, error) {
	original := inv.OriginalQuantities()
	requested := make(map[string]int, len(reqLines))
	lines := make([]domain.ReturnLine, len(reqLines))

	for i, l := range reqLines {
		invLine, ok := inv.LineForItem(l.ItemID)
		if !ok {
			return nil, fmt.Errorf("%w: item %s on %s", domain.ErrItemNotOnInvoice, l.ItemID, inv.InvoiceNo)
		}

		requested[l.ItemID] += l.ReturnedQty
		if alreadyReturned[l.ItemID]+requested[l.ItemID] > original[l.ItemID] {
			return nil, &domain.ReturnQuantityExceededError{
				ItemID:          l.ItemID,
				ProductName:     invLine.ItemName,
				Original:        original[l.ItemID],
				AlreadyReturned: alreadyReturned[l.ItemID],
				Requested:       requested[l.ItemID],
			}
		}

		rate := invLine.Price
		if l.Rate != nil {
			rate = *l.Rate
		}
		lines[i] = domain.ReturnLine{
			LineNo:      i + 1,
			ItemID:      l.ItemID,
			ProductName: invLine.ItemName,
			OriginalQty: original[l.ItemID],
			ReturnedQty: l.ReturnedQty,
			Rate:        rate,
			TaxPercent:  l.TaxPercent,
			Condition:   l.Condition,
			Reason:      strings.TrimSpace(l.Reason),
		}
		lines[i].Price()
	}
	return lines, nil
}

// CreateReturn records goods handed back against an invoice.
// Implements portssvc.ReturnSvcFacade
func (s *returnService) CreateReturn(ctx context.Context, ownerID string, req dto.CreateReturnRequest, userID string) (*domain.SalesReturn, error) {
	if err := validateCreateReturn(req); err != nil {
		s.LogFailure(ctx, err, "Return rejected", slog.String("owner_id", ownerID), slog.String("invoice_id", req.InvoiceID))
		return nil, err
	}

	now := s.Now()
	entry := ledgerEntry{ownerID: ownerID, userID: userID, now: now}
	ret := domain.SalesReturn{
		ReturnID:       uuid.NewString(),
		OwnerID:        ownerID,
		InvoiceID:      req.InvoiceID,
		DiscountAmount: req.DiscountAmount,
		RefundMethod:   req.RefundMethod,
		Notes:          req.Notes,
		AuditFields:    domain.NewAuditFields(userID, now),
	}
	var invoiceNo string

	err := s.scope.Execute(ctx, func(tx portsrepo.TxRepositories) error {
		// Lock the invoice so concurrent returns see each other's quantities
		inv, err := tx.Invoices.FindInvoiceByIDForUpdate(ctx, ownerID, req.InvoiceID)
		if err != nil {
			return err
		}
		invoiceNo = inv.InvoiceNo

		// --- Returnable Quantity Check ---
		prior, err := tx.Returns.ListReturnsByInvoice(ctx, ownerID, inv.InvoiceID)
		if err != nil {
			return err
		}
		already := domain.ReturnedQuantities(prior)

		lines, err := buildReturnLines(inv, already, req.Lines)
		if err != nil {
			return err
		}
		ret.Lines = lines
		ret.CustomerID = inv.CustomerID
		if err := ret.ApplyTotals(); err != nil {
			return err
		}
		// Full only once every original unit has come back across all returns
		ret.ReturnType = domain.ClassifyReturn(inv.OriginalQuantities(), already, lines)

		// --- Persistence ---
		n, err := tx.Sequences.NextValue(ctx, ownerID, domain.SequenceReturn)
		if err != nil {
			return err
		}
		ret.ReturnNo = domain.SequenceReturn.Format(n)

		if err := tx.Returns.SaveReturn(ctx, ret); err != nil {
			return err
		}

		// Restock undamaged goods
		for i, l := range ret.Lines {
			if !l.Condition.Restockable() {
				continue
			}
			if _, err := tx.Items.IncrementStock(ctx, ownerID, l.ItemID, l.ReturnedQty); err != nil {
				return err
			}
			if err := tx.Returns.MarkLineInventoryAdjusted(ctx, ret.ReturnID, l.LineNo); err != nil {
				return err
			}
			ret.Lines[i].InventoryAdjusted = true
		}

		// Roll the refund into the invoice
		inv.ReturnedAmount = inv.ReturnedAmount.Add(ret.TotalReturnAmount)
		inv.HasReturns = true
		inv.Touch(userID, now)
		if err := tx.Invoices.UpdateInvoice(ctx, *inv); err != nil {
			return err
		}

		// Walk-in sales have no dues or ledger to adjust
		if inv.CustomerID == nil {
			return nil
		}
		if _, err := tx.Customers.AdjustDues(ctx, ownerID, *inv.CustomerID, ret.TotalReturnAmount.Neg(), userID); err != nil {
			return err
		}
		t := entry.forInvoice(inv, domain.TransactionReturn, ret.TotalReturnAmount, ret.RefundMethod,
			fmt.Sprintf("Return %s against %s", ret.ReturnNo, inv.InvoiceNo))
		t.ReturnID = strPtr(ret.ReturnID)
		return tx.Transactions.AppendTransactions(ctx, t)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create return", slog.String("invoice_id", req.InvoiceID), slog.String("owner_id", ownerID), slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Return created",
		slog.String("return_id", ret.ReturnID),
		slog.String("return_no", ret.ReturnNo),
		slog.String("invoice_no", invoiceNo),
		slog.String("owner_id", ownerID),
		slog.String("user_id", userID),
		slog.String("total", ret.TotalReturnAmount.String()),
		slog.String("return_type", string(ret.ReturnType)))
	return &ret, nil
}

// DeleteReturn reverses every effect CreateReturn applied.
// Implements portssvc.ReturnSvcFacade
func (s *returnService) DeleteReturn(ctx context.Context, ownerID string, returnID string, userID string) error {
	if err := validateReference("return", returnID); err != nil {
		return err
	}

	now := s.Now()
	var deleted *domain.SalesReturn

	err := s.scope.Execute(ctx, func(tx portsrepo.TxRepositories) error {
		ret, err := tx.Returns.FindReturnByID(ctx, ownerID, returnID)
		if err != nil {
			return err
		}
		inv, err := tx.Invoices.FindInvoiceByIDForUpdate(ctx, ownerID, ret.InvoiceID)
		if err != nil {
			return err
		}

		// Take back only the stock this return actually added
		for _, l := range ret.Lines {
			if !l.InventoryAdjusted {
				continue
			}
			if _, err := tx.Items.DecrementStock(ctx, ownerID, l.ItemID, l.ReturnedQty); err != nil {
				return err
			}
		}

		// Drop the ledger rows, then the return itself
		if _, err := tx.Transactions.DeleteTransactionsByReturnID(ctx, ownerID, returnID); err != nil {
			return err
		}
		if err := tx.Returns.DeleteReturn(ctx, ownerID, returnID); err != nil {
			return err
		}
		remaining, err := tx.Returns.CountReturnsByInvoice(ctx, ownerID, inv.InvoiceID)
		if err != nil {
			return err
		}

		// Restore the invoice's returned total
		inv.ReturnedAmount = inv.ReturnedAmount.Sub(ret.TotalReturnAmount)
		inv.HasReturns = remaining > 0
		inv.Touch(userID, now)
		if err := tx.Invoices.UpdateInvoice(ctx, *inv); err != nil {
			return err
		}

		// Put the refunded amount back on the customer's dues
		if ret.CustomerID != nil {
			if _, err := tx.Customers.AdjustDues(ctx, ownerID, *ret.CustomerID, ret.TotalReturnAmount, userID); err != nil {
				return err
			}
		}
		deleted = ret
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to delete return", slog.String("return_id", returnID), slog.String("owner_id", ownerID), slog.String("user_id", userID))
		return err
	}

	s.LogInfo(ctx, "Return deleted",
		slog.String("return_id", deleted.ReturnID),
		slog.String("return_no", deleted.ReturnNo),
		slog.String("invoice_id", deleted.InvoiceID),
		slog.String("owner_id", ownerID),
		slog.String("user_id", userID))
	return nil
}

// GetReturnByID retrieves a return with its lines.
// Implements portssvc.ReturnSvcFacade
func (s *returnService) GetReturnByID(ctx context.Context, ownerID string, returnID string) (*domain.SalesReturn, error) {
	if err := validateReference("return", returnID); err != nil {
		return nil, err
	}
	ret, err := s.returnRepo.FindReturnByID(ctx, ownerID, returnID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to get return", slog.String("return_id", returnID), slog.String("owner_id", ownerID))
		return nil, err
	}
	return ret, nil
}

// ListReturns retrieves a page of returns, or every return of one invoice.
// Implements portssvc.ReturnSvcFacade
func (s *returnService) ListReturns(ctx context.Context, ownerID string, params dto.ListReturnsParams) ([]domain.SalesReturn, *string, error) {
	if params.InvoiceID != nil {
		if err := validateReference("invoice", *params.InvoiceID); err != nil {
			return nil, nil, err
		}
		returns, err := s.returnRepo.ListReturnsByInvoice(ctx, ownerID, *params.InvoiceID)
		if err != nil {
			s.LogFailure(ctx, err, "Failed to list returns for invoice", slog.String("invoice_id", *params.InvoiceID), slog.String("owner_id", ownerID))
			return nil, nil, err
		}
		return returns, nil, nil
	}

	returns, next, err := s.returnRepo.ListReturns(ctx, ownerID, params.EffectiveLimit(), params.NextToken)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to list returns", slog.String("owner_id", ownerID))
		return nil, nil, err
	}
	return returns, next, nil
}
