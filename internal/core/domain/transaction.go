package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies an entry in the transaction log.
type TransactionType string

const (
	TransactionSale     TransactionType = "sale"
	TransactionDue      TransactionType = "due"
	TransactionPayment  TransactionType = "payment"
	TransactionPurchase TransactionType = "purchase"
	TransactionRefund   TransactionType = "refund"
	TransactionReturn   TransactionType = "return"
)

// Transaction is an append-only record of a balance-affecting event.
// Entries are only removed when the return or invoice they belong to is reversed.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	OwnerID       string          `json:"ownerID"`
	Type          TransactionType `json:"type"`
	CustomerID    *string         `json:"customerID,omitempty"`
	InvoiceID     *string         `json:"invoiceID,omitempty"`
	ReturnID      *string         `json:"returnID,omitempty"`
	ItemID        *string         `json:"itemID,omitempty"`
	Amount        decimal.Decimal `json:"amount"` // Signed
	PaymentMethod *string         `json:"paymentMethod,omitempty"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}
