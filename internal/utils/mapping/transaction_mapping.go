package mapping

import (
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		OwnerID:       d.OwnerID,
		Type:          string(d.Type),
		CustomerID:    d.CustomerID,
		InvoiceID:     d.InvoiceID,
		ReturnID:      d.ReturnID,
		ItemID:        d.ItemID,
		Amount:        d.Amount,
		PaymentMethod: d.PaymentMethod,
		Description:   d.Description,
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		OwnerID:       m.OwnerID,
		Type:          domain.TransactionType(m.Type),
		CustomerID:    m.CustomerID,
		InvoiceID:     m.InvoiceID,
		ReturnID:      m.ReturnID,
		ItemID:        m.ItemID,
		Amount:        m.Amount,
		PaymentMethod: m.PaymentMethod,
		Description:   m.Description,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	return mapSlice(ms, ToDomainTransaction)
}
