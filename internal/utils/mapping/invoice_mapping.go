package mapping

import (
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/models"
)

// ToModelInvoice converts a domain Invoice (with lines) to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	lines := make([]models.InvoiceLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = models.InvoiceLine{
			InvoiceID: d.InvoiceID,
			LineNo:    l.LineNo,
			ItemID:    l.ItemID,
			ItemName:  l.ItemName,
			Quantity:  l.Quantity,
			Price:     l.Price,
			LineTotal: l.LineTotal,
		}
	}
	return models.Invoice{
		InvoiceID:      d.InvoiceID,
		OwnerID:        d.OwnerID,
		InvoiceNo:      d.InvoiceNo,
		CustomerID:     d.CustomerID,
		Subtotal:       d.Subtotal,
		Discount:       d.Discount,
		TotalAmount:    d.TotalAmount,
		PaidAmount:     d.PaidAmount,
		PaymentStatus:  string(d.PaymentStatus),
		PaymentMethod:  d.PaymentMethod,
		ChangeReturned: d.ChangeReturned,
		CreditAmount:   d.CreditAmount,
		ReturnedAmount: d.ReturnedAmount,
		HasReturns:     d.HasReturns,
		Notes:          d.Notes,
		AuditFields:    ToModelAuditFields(d.AuditFields),
		Lines:          lines,
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	var lines []domain.InvoiceLine
	if len(m.Lines) > 0 {
		lines = make([]domain.InvoiceLine, len(m.Lines))
		for i, l := range m.Lines {
			lines[i] = domain.InvoiceLine{
				LineNo:    l.LineNo,
				ItemID:    l.ItemID,
				ItemName:  l.ItemName,
				Quantity:  l.Quantity,
				Price:     l.Price,
				LineTotal: l.LineTotal,
			}
		}
	}
	return domain.Invoice{
		InvoiceID:      m.InvoiceID,
		OwnerID:        m.OwnerID,
		InvoiceNo:      m.InvoiceNo,
		CustomerID:     m.CustomerID,
		Lines:          lines,
		Subtotal:       m.Subtotal,
		Discount:       m.Discount,
		TotalAmount:    m.TotalAmount,
		PaidAmount:     m.PaidAmount,
		PaymentStatus:  domain.PaymentStatus(m.PaymentStatus),
		PaymentMethod:  m.PaymentMethod,
		ChangeReturned: m.ChangeReturned,
		CreditAmount:   m.CreditAmount,
		ReturnedAmount: m.ReturnedAmount,
		HasReturns:     m.HasReturns,
		Notes:          m.Notes,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceSlice converts a slice of model Invoices to a slice of domain Invoices
func ToDomainInvoiceSlice(ms []models.Invoice) []domain.Invoice {
	return mapSlice(ms, ToDomainInvoice)
}
