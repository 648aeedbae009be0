package domain

import (
	"github.com/shopspring/decimal"
)

// PaymentStatus is derived from the recorded payment against the invoice total.
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
)

// InvoiceLine is one sold item. ItemName is a snapshot taken at sale time.
type InvoiceLine struct {
	LineNo    int             `json:"lineNo"`
	ItemID    string          `json:"itemID"`
	ItemName  string          `json:"itemName"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Invoice is a sale. TotalAmount is always Subtotal minus Discount and PaidAmount never exceeds it.
type Invoice struct {
	InvoiceID      string          `json:"invoiceID"`
	OwnerID        string          `json:"ownerID"`
	InvoiceNo      string          `json:"invoiceNo"`
	CustomerID     *string         `json:"customerID,omitempty"` // nil for walk-in sales
	Lines          []InvoiceLine   `json:"lines"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Discount       decimal.Decimal `json:"discount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	PaidAmount     decimal.Decimal `json:"paidAmount"`
	PaymentStatus  PaymentStatus   `json:"paymentStatus"`
	PaymentMethod  string          `json:"paymentMethod"`
	ChangeReturned decimal.Decimal `json:"changeReturned"`
	CreditAmount   decimal.Decimal `json:"creditAmount"` // change kept as customer credit
	ReturnedAmount decimal.Decimal `json:"returnedAmount"`
	HasReturns     bool            `json:"hasReturns"`
	Notes          string          `json:"notes"`
	AuditFields
}

// IsWalkIn reports whether the sale has no customer attached.
func (i Invoice) IsWalkIn() bool {
	return i.CustomerID == nil
}

// Outstanding is the part of the total not yet paid.
func (i Invoice) Outstanding() decimal.Decimal {
	return i.TotalAmount.Sub(i.PaidAmount)
}

// NetDuesEffect is what this invoice has added to the customer's dues so far.
func (i Invoice) NetDuesEffect() decimal.Decimal {
	return i.Outstanding().Sub(i.CreditAmount)
}

// OriginalQuantities sums sold quantity per item.
func (i Invoice) OriginalQuantities() map[string]int {
	qty := make(map[string]int, len(i.Lines))
	for _, l := range i.Lines {
		qty[l.ItemID] += l.Quantity
	}
	return qty
}

// LineForItem returns the first line selling itemID.
func (i Invoice) LineForItem(itemID string) (InvoiceLine, bool) {
	for _, l := range i.Lines {
		if l.ItemID == itemID {
			return l, true
		}
	}
	return InvoiceLine{}, false
}

// InvoiceTotals is the outcome of pricing a sale.
type InvoiceTotals struct {
	Subtotal          decimal.Decimal
	Discount          decimal.Decimal
	TotalAmount       decimal.Decimal
	ChangeOwed        decimal.Decimal
	ChangeNotReturned decimal.Decimal
	ActualPaid        decimal.Decimal
	PaymentStatus     PaymentStatus
}

// Shortfall is the unpaid remainder of the total.
func (t InvoiceTotals) Shortfall() decimal.Decimal {
	return t.TotalAmount.Sub(t.ActualPaid)
}

// LineTotal prices a single invoice line.
func LineTotal(quantity int, price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// ComputeInvoiceTotals prices lines and settles the tendered amount against the total.
// Lines must already carry their LineTotal.
func ComputeInvoiceTotals(lines []InvoiceLine, discount, paid, changeReturned decimal.Decimal) (InvoiceTotals, error) {
	if discount.IsNegative() || paid.IsNegative() || changeReturned.IsNegative() {
		return InvoiceTotals{}, ErrNegativeAmount
	}

	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.LineTotal)
	}
	if discount.GreaterThan(subtotal) {
		return InvoiceTotals{}, ErrDiscountExceedsSubtotal
	}
	total := subtotal.Sub(discount)

	// Handing back more change than was owed leaves no credit.
	changeOwed := decimal.Max(decimal.Zero, paid.Sub(total))
	changeNotReturned := decimal.Max(decimal.Zero, changeOwed.Sub(changeReturned))
	actualPaid := decimal.Min(paid, total)

	return InvoiceTotals{
		Subtotal:          subtotal,
		Discount:          discount,
		TotalAmount:       total,
		ChangeOwed:        changeOwed,
		ChangeNotReturned: changeNotReturned,
		ActualPaid:        actualPaid,
		PaymentStatus:     DerivePaymentStatus(actualPaid, total),
	}, nil
}

// DerivePaymentStatus classifies a payment against a total.
func DerivePaymentStatus(actualPaid, total decimal.Decimal) PaymentStatus {
	switch {
	case actualPaid.GreaterThanOrEqual(total):
		return PaymentStatusPaid
	case actualPaid.IsPositive():
		return PaymentStatusPartial
	default:
		return PaymentStatusUnpaid
	}
}
