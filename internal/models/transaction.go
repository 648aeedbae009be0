package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the row stored in the transactions table. Rows are never updated.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	OwnerID       string          `db:"owner_id"`
	Type          string          `db:"type"`
	CustomerID    *string         `db:"customer_id"`
	InvoiceID     *string         `db:"invoice_id"`
	ReturnID      *string         `db:"return_id"`
	ItemID        *string         `db:"item_id"`
	Amount        decimal.Decimal `db:"amount"` // Signed
	PaymentMethod *string         `db:"payment_method"`
	Description   string          `db:"description"`
	CreatedAt     time.Time       `db:"created_at"`
	CreatedBy     string          `db:"created_by"`
}
