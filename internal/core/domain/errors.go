package domain

import (
	"fmt"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
)

var (
	ErrEmptyInvoice            = fmt.Errorf("%w: invoice must contain at least one line", apperrors.ErrValidation)
	ErrInvalidQuantity         = fmt.Errorf("%w: quantity must be greater than zero", apperrors.ErrValidation)
	ErrNegativeAmount          = fmt.Errorf("%w: amounts must not be negative", apperrors.ErrValidation)
	ErrDiscountExceedsSubtotal = fmt.Errorf("%w: discount exceeds subtotal", apperrors.ErrValidation)
	ErrWalkInMustPayFull       = fmt.Errorf("%w: walk-in sales must be paid in full", apperrors.ErrValidation)
	ErrInsufficientStock       = fmt.Errorf("%w: insufficient stock", apperrors.ErrValidation)
	ErrInvoiceHasReturns       = fmt.Errorf("%w: invoice has returns", apperrors.ErrValidation)
	ErrInvoiceAlreadyPaid      = fmt.Errorf("%w: invoice is already paid in full", apperrors.ErrValidation)
	ErrTotalBelowPaid          = fmt.Errorf("%w: total would fall below the amount already paid", apperrors.ErrValidation)
	ErrEmptyReturn             = fmt.Errorf("%w: return must contain at least one line", apperrors.ErrValidation)
	ErrItemNotOnInvoice        = fmt.Errorf("%w: item is not part of the invoice", apperrors.ErrValidation)
	ErrReturnQuantityExceeded  = fmt.Errorf("%w: return quantity exceeds remaining quantity", apperrors.ErrValidation)
	ErrInvalidCondition        = fmt.Errorf("%w: condition must be damaged or not_damaged", apperrors.ErrValidation)
	ErrReasonRequired          = fmt.Errorf("%w: return reason is required", apperrors.ErrValidation)
	ErrNegativeReturnTotal     = fmt.Errorf("%w: return discount exceeds return value", apperrors.ErrValidation)
)

// InsufficientStockError reports how much of an item could not be reserved.
type InsufficientStockError struct {
	ItemID    string
	ItemName  string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	name := e.ItemID
	if e.ItemName != "" {
		name = e.ItemName
	}
	return fmt.Sprintf("insufficient stock for %s: available %d, requested %d", name, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// ReturnQuantityExceededError carries the figures a caller needs to correct a return line.
type ReturnQuantityExceededError struct {
	ItemID          string
	ProductName     string
	Original        int
	AlreadyReturned int
	Requested       int
}

// Remaining is the quantity that may still be returned.
func (e *ReturnQuantityExceededError) Remaining() int {
	return e.Original - e.AlreadyReturned
}

func (e *ReturnQuantityExceededError) Error() string {
	name := e.ItemID
	if e.ProductName != "" {
		name = e.ProductName
	}
	return fmt.Sprintf("cannot return %d of %s: original quantity %d, already returned %d, remaining %d",
		e.Requested, name, e.Original, e.AlreadyReturned, e.Remaining())
}

func (e *ReturnQuantityExceededError) Unwrap() error { return ErrReturnQuantityExceeded }
