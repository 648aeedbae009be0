package models

import "github.com/shopspring/decimal"

// Item is the row stored in the items table.
type Item struct {
	ItemID   string          `db:"item_id"`
	OwnerID  string          `db:"owner_id"`
	Name     string          `db:"name"`
	SKU      string          `db:"sku"`
	Price    decimal.Decimal `db:"price"`
	StockQty int             `db:"stock_qty"` // CHECK (stock_qty >= 0)
	AuditFields
}
