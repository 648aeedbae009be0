package domain

import "github.com/shopspring/decimal"

// Item is a sellable product with its available quantity.
// StockQty never drops below zero; only the inventory ledger operations change it.
type Item struct {
	ItemID   string          `json:"itemID"`
	OwnerID  string          `json:"ownerID"`
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Price    decimal.Decimal `json:"price"`
	StockQty int             `json:"stockQty"`
	AuditFields
}
