package services

import (
	"time"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ledgerEntry builds transaction log entries that share owner, actor and time.
type ledgerEntry struct {
	ownerID string
	userID  string
	now     time.Time
}

func (e ledgerEntry) new(typ domain.TransactionType, amount decimal.Decimal, description string) domain.Transaction {
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		OwnerID:       e.ownerID,
		Type:          typ,
		Amount:        amount,
		Description:   description,
		CreatedAt:     e.now,
		CreatedBy:     e.userID,
	}
}

// forInvoice ties an entry to an invoice and its customer.
func (e ledgerEntry) forInvoice(inv *domain.Invoice, typ domain.TransactionType, amount decimal.Decimal, method, description string) domain.Transaction {
	t := e.new(typ, amount, description)
	t.InvoiceID = strPtr(inv.InvoiceID)
	t.CustomerID = inv.CustomerID
	t.PaymentMethod = optionalString(method)
	return t
}
