package mapping

import (
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/models"
)

// ToModelItem converts a domain Item to a model Item
func ToModelItem(d domain.Item) models.Item {
	return models.Item{
		ItemID:      d.ItemID,
		OwnerID:     d.OwnerID,
		Name:        d.Name,
		SKU:         d.SKU,
		Price:       d.Price,
		StockQty:    d.StockQty,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainItem converts a model Item to a domain Item
func ToDomainItem(m models.Item) domain.Item {
	return domain.Item{
		ItemID:      m.ItemID,
		OwnerID:     m.OwnerID,
		Name:        m.Name,
		SKU:         m.SKU,
		Price:       m.Price,
		StockQty:    m.StockQty,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainItemSlice converts a slice of model Items to a slice of domain Items
func ToDomainItemSlice(ms []models.Item) []domain.Item {
	return mapSlice(ms, ToDomainItem)
}
