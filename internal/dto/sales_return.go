package dto

import (
	"time"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateReturnLineRequest is one returned product. Rate defaults to the invoiced unit price.
type CreateReturnLineRequest struct {
	ItemID      string                 `json:"itemID" binding:"required"`
	ReturnedQty int                    `json:"returnedQty" binding:"required,gt=0"`
	Rate        *decimal.Decimal       `json:"rate" binding:"omitempty,gte=0"`
	TaxPercent  decimal.Decimal        `json:"taxPercent" binding:"gte=0"`
	Condition   domain.ReturnCondition `json:"condition" binding:"required,oneof=damaged not_damaged"`
	Reason      string                 `json:"reason" binding:"required"`
}

// CreateReturnRequest defines the data needed to record a return against an invoice.
type CreateReturnRequest struct {
	InvoiceID      string                    `json:"invoiceID" binding:"required"`
	Lines          []CreateReturnLineRequest `json:"lines" binding:"required,min=1,dive"`
	RefundMethod   string                    `json:"refundMethod"`
	DiscountAmount decimal.Decimal           `json:"discountAmount" binding:"gte=0"`
	Notes          string                    `json:"notes"`
}

// ReturnLineResponse defines the data returned for a return line.
type ReturnLineResponse struct {
	LineNo            int                    `json:"lineNo"`
	ItemID            string                 `json:"itemID"`
	ProductName       string                 `json:"productName"`
	OriginalQty       int                    `json:"originalQty"`
	ReturnedQty       int                    `json:"returnedQty"`
	Rate              decimal.Decimal        `json:"rate"`
	TaxPercent        decimal.Decimal        `json:"taxPercent"`
	TaxAmount         decimal.Decimal        `json:"taxAmount"`
	LineTotal         decimal.Decimal        `json:"lineTotal"`
	Condition         domain.ReturnCondition `json:"condition"`
	Reason            string                 `json:"reason"`
	InventoryAdjusted bool                   `json:"inventoryAdjusted"`
}

// ReturnResponse defines the data returned for a sales return.
type ReturnResponse struct {
	ReturnID          string               `json:"returnID"`
	ReturnNo          string               `json:"returnNo"`
	InvoiceID         string               `json:"invoiceID"`
	CustomerID        *string              `json:"customerID,omitempty"`
	Lines             []ReturnLineResponse `json:"lines,omitempty"`
	Subtotal          decimal.Decimal      `json:"subtotal"`
	TaxAmount         decimal.Decimal      `json:"taxAmount"`
	DiscountAmount    decimal.Decimal      `json:"discountAmount"`
	TotalReturnAmount decimal.Decimal      `json:"totalReturnAmount"`
	ReturnType        domain.ReturnType    `json:"returnType"`
	RefundMethod      string               `json:"refundMethod"`
	Notes             string               `json:"notes"`
	CreatedAt         time.Time            `json:"createdAt"`
	CreatedBy         string               `json:"createdBy"`
}

// ListReturnsParams defines the query parameters for listing returns.
// When InvoiceID is set every return of that invoice is returned in one page.
type ListReturnsParams struct {
	PageParams
	InvoiceID *string `form:"invoiceID"`
}

// ListReturnsResponse wraps a page of returns.
type ListReturnsResponse struct {
	Returns   []ReturnResponse `json:"returns"`
	NextToken *string          `json:"nextToken,omitempty"`
}

// ToReturnResponse converts a domain.SalesReturn to ReturnResponse DTO
func ToReturnResponse(r *domain.SalesReturn) ReturnResponse {
	var lines []ReturnLineResponse
	if len(r.Lines) > 0 {
		lines = make([]ReturnLineResponse, len(r.Lines))
		for i, l := range r.Lines {
			lines[i] = ReturnLineResponse{
				LineNo:            l.LineNo,
				ItemID:            l.ItemID,
				ProductName:       l.ProductName,
				OriginalQty:       l.OriginalQty,
				ReturnedQty:       l.ReturnedQty,
				Rate:              l.Rate,
				TaxPercent:        l.TaxPercent,
				TaxAmount:         l.TaxAmount,
				LineTotal:         l.LineTotal,
				Condition:         l.Condition,
				Reason:            l.Reason,
				InventoryAdjusted: l.InventoryAdjusted,
			}
		}
	}
	return ReturnResponse{
		ReturnID:          r.ReturnID,
		ReturnNo:          r.ReturnNo,
		InvoiceID:         r.InvoiceID,
		CustomerID:        r.CustomerID,
		Lines:             lines,
		Subtotal:          r.Subtotal,
		TaxAmount:         r.TaxAmount,
		DiscountAmount:    r.DiscountAmount,
		TotalReturnAmount: r.TotalReturnAmount,
		ReturnType:        r.ReturnType,
		RefundMethod:      r.RefundMethod,
		Notes:             r.Notes,
		CreatedAt:         r.CreatedAt,
		CreatedBy:         r.CreatedBy,
	}
}

// ToReturnResponses converts a slice of domain.SalesReturn.
func ToReturnResponses(returns []domain.SalesReturn) []ReturnResponse {
	responses := make([]ReturnResponse, len(returns))
	for i := range returns {
		responses[i] = ToReturnResponse(&returns[i])
	}
	return responses
}
