package models

import "github.com/shopspring/decimal"

// SalesReturn is the row stored in the sales_returns table.
type SalesReturn struct {
	ReturnID          string          `db:"return_id"`
	OwnerID           string          `db:"owner_id"`
	ReturnNo          string          `db:"return_no"`
	InvoiceID         string          `db:"invoice_id"`
	CustomerID        *string         `db:"customer_id"` // Nullable
	Subtotal          decimal.Decimal `db:"subtotal"`
	TaxAmount         decimal.Decimal `db:"tax_amount"`
	DiscountAmount    decimal.Decimal `db:"discount_amount"`
	TotalReturnAmount decimal.Decimal `db:"total_return_amount"`
	ReturnType        string          `db:"return_type"`
	RefundMethod      string          `db:"refund_method"`
	Notes             string          `db:"notes"`
	AuditFields
	Lines []ReturnLine `db:"-"`
}

// ReturnLine is the row stored in the sales_return_lines table.
type ReturnLine struct {
	ReturnID          string          `db:"return_id"`
	LineNo            int             `db:"line_no"`
	ItemID            string          `db:"item_id"`
	ProductName       string          `db:"product_name"`
	OriginalQty       int             `db:"original_qty"`
	ReturnedQty       int             `db:"returned_qty"`
	Rate              decimal.Decimal `db:"rate"`
	TaxPercent        decimal.Decimal `db:"tax_percent"`
	Subtotal          decimal.Decimal `db:"subtotal"`
	TaxAmount         decimal.Decimal `db:"tax_amount"`
	LineTotal         decimal.Decimal `db:"line_total"`
	Condition         string          `db:"condition"`
	Reason            string          `db:"reason"`
	InventoryAdjusted bool            `db:"inventory_adjusted"`
}
