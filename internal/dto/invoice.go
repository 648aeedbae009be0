package dto

import (
	"time"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceLineRequest is one line of a sale. Price defaults to the item's list price.
type CreateInvoiceLineRequest struct {
	ItemID   string           `json:"itemID" binding:"required"`
	Quantity int              `json:"quantity" binding:"required,gt=0"`
	Price    *decimal.Decimal `json:"price" binding:"omitempty,gte=0"`
}

// CreateInvoiceRequest defines the data needed to record a sale.
// Omitting CustomerID makes it a walk-in sale, which must be paid in full.
type CreateInvoiceRequest struct {
	CustomerID     *string                    `json:"customerID"`
	Lines          []CreateInvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
	Discount       decimal.Decimal            `json:"discount" binding:"gte=0"`
	PaidAmount     decimal.Decimal            `json:"paidAmount" binding:"gte=0"`
	PaymentMethod  string                     `json:"paymentMethod"`
	ChangeReturned decimal.Decimal            `json:"changeReturned" binding:"gte=0"`
	Notes          string                     `json:"notes"`
}

// UpdateInvoiceRequest lists the invoice fields a client may change.
// Totals and payment status are always recomputed by the server.
type UpdateInvoiceRequest struct {
	Discount *decimal.Decimal `json:"discount" binding:"omitempty,gte=0"`
	Notes    *string          `json:"notes"`
}

// RecordPaymentRequest settles part or all of an outstanding invoice.
type RecordPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"gt=0"`
	PaymentMethod string          `json:"paymentMethod"`
}

// InvoiceLineResponse defines the data returned for an invoice line.
type InvoiceLineResponse struct {
	LineNo    int             `json:"lineNo"`
	ItemID    string          `json:"itemID"`
	ItemName  string          `json:"itemName"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID      string                `json:"invoiceID"`
	InvoiceNo      string                `json:"invoiceNo"`
	CustomerID     *string               `json:"customerID,omitempty"`
	Lines          []InvoiceLineResponse `json:"lines,omitempty"`
	Subtotal       decimal.Decimal       `json:"subtotal"`
	Discount       decimal.Decimal       `json:"discount"`
	TotalAmount    decimal.Decimal       `json:"totalAmount"`
	PaidAmount     decimal.Decimal       `json:"paidAmount"`
	PaymentStatus  domain.PaymentStatus  `json:"paymentStatus"`
	PaymentMethod  string                `json:"paymentMethod"`
	ChangeReturned decimal.Decimal       `json:"changeReturned"`
	CreditAmount   decimal.Decimal       `json:"creditAmount"`
	ReturnedAmount decimal.Decimal       `json:"returnedAmount"`
	HasReturns     bool                  `json:"hasReturns"`
	Notes          string                `json:"notes"`
	CreatedAt      time.Time             `json:"createdAt"`
	CreatedBy      string                `json:"createdBy"`
	LastUpdatedAt  time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy  string                `json:"lastUpdatedBy"`
}

// ListInvoicesParams defines the query parameters for listing invoices.
type ListInvoicesParams struct {
	PageParams
	CustomerID *string `form:"customerID"`
}

// ListInvoicesResponse wraps a page of invoices.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	var lines []InvoiceLineResponse
	if len(inv.Lines) > 0 {
		lines = make([]InvoiceLineResponse, len(inv.Lines))
		for i, l := range inv.Lines {
			lines[i] = InvoiceLineResponse{
				LineNo:    l.LineNo,
				ItemID:    l.ItemID,
				ItemName:  l.ItemName,
				Quantity:  l.Quantity,
				Price:     l.Price,
				LineTotal: l.LineTotal,
			}
		}
	}
	return InvoiceResponse{
		InvoiceID:      inv.InvoiceID,
		InvoiceNo:      inv.InvoiceNo,
		CustomerID:     inv.CustomerID,
		Lines:          lines,
		Subtotal:       inv.Subtotal,
		Discount:       inv.Discount,
		TotalAmount:    inv.TotalAmount,
		PaidAmount:     inv.PaidAmount,
		PaymentStatus:  inv.PaymentStatus,
		PaymentMethod:  inv.PaymentMethod,
		ChangeReturned: inv.ChangeReturned,
		CreditAmount:   inv.CreditAmount,
		ReturnedAmount: inv.ReturnedAmount,
		HasReturns:     inv.HasReturns,
		Notes:          inv.Notes,
		CreatedAt:      inv.CreatedAt,
		CreatedBy:      inv.CreatedBy,
		LastUpdatedAt:  inv.LastUpdatedAt,
		LastUpdatedBy:  inv.LastUpdatedBy,
	}
}

// ToInvoiceResponses converts a slice of domain.Invoice.
func ToInvoiceResponses(invoices []domain.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses
}
