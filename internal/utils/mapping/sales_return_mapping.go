package mapping

import (
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/models"
)

// ToModelSalesReturn converts a domain SalesReturn (with lines) to a model SalesReturn
func ToModelSalesReturn(d domain.SalesReturn) models.SalesReturn {
	lines := make([]models.ReturnLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = models.ReturnLine{
			ReturnID:          d.ReturnID,
			LineNo:            l.LineNo,
			ItemID:            l.ItemID,
			ProductName:       l.ProductName,
			OriginalQty:       l.OriginalQty,
			ReturnedQty:       l.ReturnedQty,
			Rate:              l.Rate,
			TaxPercent:        l.TaxPercent,
			Subtotal:          l.Subtotal,
			TaxAmount:         l.TaxAmount,
			LineTotal:         l.LineTotal,
			Condition:         string(l.Condition),
			Reason:            l.Reason,
			InventoryAdjusted: l.InventoryAdjusted,
		}
	}
	return models.SalesReturn{
		ReturnID:          d.ReturnID,
		OwnerID:           d.OwnerID,
		ReturnNo:          d.ReturnNo,
		InvoiceID:         d.InvoiceID,
		CustomerID:        d.CustomerID,
		Subtotal:          d.Subtotal,
		TaxAmount:         d.TaxAmount,
		DiscountAmount:    d.DiscountAmount,
		TotalReturnAmount: d.TotalReturnAmount,
		ReturnType:        string(d.ReturnType),
		RefundMethod:      d.RefundMethod,
		Notes:             d.Notes,
		AuditFields:       ToModelAuditFields(d.AuditFields),
		Lines:             lines,
	}
}

// ToDomainSalesReturn converts a model SalesReturn to a domain SalesReturn
func ToDomainSalesReturn(m models.SalesReturn) domain.SalesReturn {
	var lines []domain.ReturnLine
	if len(m.Lines) > 0 {
		lines = make([]domain.ReturnLine, len(m.Lines))
		for i, l := range m.Lines {
			lines[i] = domain.ReturnLine{
				LineNo:            l.LineNo,
				ItemID:            l.ItemID,
				ProductName:       l.ProductName,
				OriginalQty:       l.OriginalQty,
				ReturnedQty:       l.ReturnedQty,
				Rate:              l.Rate,
				TaxPercent:        l.TaxPercent,
				Subtotal:          l.Subtotal,
				TaxAmount:         l.TaxAmount,
				LineTotal:         l.LineTotal,
				Condition:         domain.ReturnCondition(l.Condition),
				Reason:            l.Reason,
				InventoryAdjusted: l.InventoryAdjusted,
			}
		}
	}
	return domain.SalesReturn{
		ReturnID:          m.ReturnID,
		OwnerID:           m.OwnerID,
		ReturnNo:          m.ReturnNo,
		InvoiceID:         m.InvoiceID,
		CustomerID:        m.CustomerID,
		Lines:             lines,
		Subtotal:          m.Subtotal,
		TaxAmount:         m.TaxAmount,
		DiscountAmount:    m.DiscountAmount,
		TotalReturnAmount: m.TotalReturnAmount,
		ReturnType:        domain.ReturnType(m.ReturnType),
		RefundMethod:      m.RefundMethod,
		Notes:             m.Notes,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainSalesReturnSlice converts a slice of model SalesReturns to a slice of domain SalesReturns
func ToDomainSalesReturnSlice(ms []models.SalesReturn) []domain.SalesReturn {
	return mapSlice(ms, ToDomainSalesReturn)
}
