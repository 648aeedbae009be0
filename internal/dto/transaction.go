package dto

import (
	"time"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionResponse defines the data returned for a transaction log entry.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	Type          domain.TransactionType `json:"type"`
	CustomerID    *string                `json:"customerID,omitempty"`
	InvoiceID     *string                `json:"invoiceID,omitempty"`
	ReturnID      *string                `json:"returnID,omitempty"`
	ItemID        *string                `json:"itemID,omitempty"`
	Amount        decimal.Decimal        `json:"amount"`
	PaymentMethod *string                `json:"paymentMethod,omitempty"`
	Description   string                 `json:"description"`
	CreatedAt     time.Time              `json:"createdAt"`
	CreatedBy     string                 `json:"createdBy"`
}

// ListTransactionsParams defines the query parameters for a customer statement.
type ListTransactionsParams struct {
	PageParams
}

// ListTransactionsResponse wraps a page of transaction log entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Type:          txn.Type,
		CustomerID:    txn.CustomerID,
		InvoiceID:     txn.InvoiceID,
		ReturnID:      txn.ReturnID,
		ItemID:        txn.ItemID,
		Amount:        txn.Amount,
		PaymentMethod: txn.PaymentMethod,
		Description:   txn.Description,
		CreatedAt:     txn.CreatedAt,
		CreatedBy:     txn.CreatedBy,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
