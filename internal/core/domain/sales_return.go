package domain

import (
	"github.com/shopspring/decimal"
)

// ReturnCondition describes the state of goods handed back.
type ReturnCondition string

const (
	ConditionDamaged    ReturnCondition = "damaged"
	ConditionNotDamaged ReturnCondition = "not_damaged"
)

// Valid reports whether c is a known condition.
func (c ReturnCondition) Valid() bool {
	return c == ConditionDamaged || c == ConditionNotDamaged
}

// Restockable reports whether goods in this condition go back on the shelf.
func (c ReturnCondition) Restockable() bool {
	return c == ConditionNotDamaged
}

// ReturnType classifies a return against the invoice it reverses.
type ReturnType string

const (
	ReturnTypePartial ReturnType = "partial"
	ReturnTypeFull    ReturnType = "full"
)

var hundred = decimal.NewFromInt(100)

// ReturnLine is one returned product. InventoryAdjusted records whether the line restocked the item,
// so deleting the return undoes exactly what was applied.
type ReturnLine struct {
	LineNo            int             `json:"lineNo"`
	ItemID            string          `json:"itemID"`
	ProductName       string          `json:"productName"`
	OriginalQty       int             `json:"originalQty"`
	ReturnedQty       int             `json:"returnedQty"`
	Rate              decimal.Decimal `json:"rate"`
	TaxPercent        decimal.Decimal `json:"taxPercent"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	TaxAmount         decimal.Decimal `json:"taxAmount"`
	LineTotal         decimal.Decimal `json:"lineTotal"`
	Condition         ReturnCondition `json:"condition"`
	Reason            string          `json:"reason"`
	InventoryAdjusted bool            `json:"inventoryAdjusted"`
}

// Price fills in Subtotal, TaxAmount and LineTotal from quantity, rate and tax percent.
// Tax is rounded to cents.
func (l *ReturnLine) Price() {
	l.Subtotal = l.Rate.Mul(decimal.NewFromInt(int64(l.ReturnedQty)))
	l.TaxAmount = l.Subtotal.Mul(l.TaxPercent).Div(hundred).Round(2)
	l.LineTotal = l.Subtotal.Add(l.TaxAmount)
}

// SalesReturn reverses part or all of an invoice.
type SalesReturn struct {
	ReturnID          string          `json:"returnID"`
	OwnerID           string          `json:"ownerID"`
	ReturnNo          string          `json:"returnNo"`
	InvoiceID         string          `json:"invoiceID"`
	CustomerID        *string         `json:"customerID,omitempty"`
	Lines             []ReturnLine    `json:"lines"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	TaxAmount         decimal.Decimal `json:"taxAmount"`
	DiscountAmount    decimal.Decimal `json:"discountAmount"`
	TotalReturnAmount decimal.Decimal `json:"totalReturnAmount"`
	ReturnType        ReturnType      `json:"returnType"`
	RefundMethod      string          `json:"refundMethod"`
	Notes             string          `json:"notes"`
	AuditFields
}

// ApplyTotals aggregates priced lines into the return header.
func (r *SalesReturn) ApplyTotals() error {
	if r.DiscountAmount.IsNegative() {
		return ErrNegativeAmount
	}
	subtotal, tax := decimal.Zero, decimal.Zero
	for _, l := range r.Lines {
		subtotal = subtotal.Add(l.Subtotal)
		tax = tax.Add(l.TaxAmount)
	}
	total := subtotal.Add(tax).Sub(r.DiscountAmount)
	if total.IsNegative() {
		return ErrNegativeReturnTotal
	}
	r.Subtotal = subtotal
	r.TaxAmount = tax
	r.TotalReturnAmount = total
	return nil
}

// ReturnedQuantities sums returned quantity per item across returns.
func ReturnedQuantities(returns []SalesReturn) map[string]int {
	qty := make(map[string]int)
	for _, r := range returns {
		for _, l := range r.Lines {
			qty[l.ItemID] += l.ReturnedQty
		}
	}
	return qty
}

// ClassifyReturn decides whether the invoice is fully returned once current is applied on top of
// previously returned quantities.
func ClassifyReturn(original, previously map[string]int, current []ReturnLine) ReturnType {
	returned := make(map[string]int, len(previously))
	for itemID, q := range previously {
		returned[itemID] = q
	}
	for _, l := range current {
		returned[l.ItemID] += l.ReturnedQty
	}
	for itemID, q := range original {
		if returned[itemID] < q {
			return ReturnTypePartial
		}
	}
	return ReturnTypeFull
}
