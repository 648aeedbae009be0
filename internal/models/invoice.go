package models

import "github.com/shopspring/decimal"

// Invoice is the row stored in the invoices table. Lines live in invoice_lines.
type Invoice struct {
	InvoiceID      string          `db:"invoice_id"`
	OwnerID        string          `db:"owner_id"`
	InvoiceNo      string          `db:"invoice_no"`
	CustomerID     *string         `db:"customer_id"` // Nullable
	Subtotal       decimal.Decimal `db:"subtotal"`
	Discount       decimal.Decimal `db:"discount"`
	TotalAmount    decimal.Decimal `db:"total_amount"`
	PaidAmount     decimal.Decimal `db:"paid_amount"`
	PaymentStatus  string          `db:"payment_status"`
	PaymentMethod  string          `db:"payment_method"`
	ChangeReturned decimal.Decimal `db:"change_returned"`
	CreditAmount   decimal.Decimal `db:"credit_amount"`
	ReturnedAmount decimal.Decimal `db:"returned_amount"`
	HasReturns     bool            `db:"has_returns"`
	Notes          string          `db:"notes"`
	AuditFields
	Lines []InvoiceLine `db:"-"`
}

// InvoiceLine is the row stored in the invoice_lines table.
type InvoiceLine struct {
	InvoiceID string          `db:"invoice_id"`
	LineNo    int             `db:"line_no"`
	ItemID    string          `db:"item_id"`
	ItemName  string          `db:"item_name"`
	Quantity  int             `db:"quantity"`
	Price     decimal.Decimal `db:"price"`
	LineTotal decimal.Decimal `db:"line_total"`
}
