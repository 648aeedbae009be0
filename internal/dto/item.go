package dto

import (
	"time"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateItemRequest defines the data needed to create a new item.
type CreateItemRequest struct {
	Name     string          `json:"name" binding:"required"`
	SKU      string          `json:"sku"`
	Price    decimal.Decimal `json:"price" binding:"gte=0"`
	StockQty int             `json:"stockQty" binding:"gte=0"`
}

// RestockItemRequest adds received goods to an item's stock.
type RestockItemRequest struct {
	Quantity int              `json:"quantity" binding:"required,gt=0"`
	UnitCost *decimal.Decimal `json:"unitCost" binding:"omitempty,gte=0"`
	Note     string           `json:"note"`
}

// ItemResponse defines the data returned for an item.
type ItemResponse struct {
	ItemID        string          `json:"itemID"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Price         decimal.Decimal `json:"price"`
	StockQty      int             `json:"stockQty"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy string          `json:"lastUpdatedBy"`
}

// ListItemsParams defines the query parameters for listing items.
type ListItemsParams struct {
	PageParams
}

// ListItemsResponse wraps a page of items.
type ListItemsResponse struct {
	Items     []ItemResponse `json:"items"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToItemResponse converts a domain.Item to ItemResponse DTO
func ToItemResponse(item *domain.Item) ItemResponse {
	return ItemResponse{
		ItemID:        item.ItemID,
		Name:          item.Name,
		SKU:           item.SKU,
		Price:         item.Price,
		StockQty:      item.StockQty,
		CreatedAt:     item.CreatedAt,
		CreatedBy:     item.CreatedBy,
		LastUpdatedAt: item.LastUpdatedAt,
		LastUpdatedBy: item.LastUpdatedBy,
	}
}

// ToItemResponses converts a slice of domain.Item.
func ToItemResponses(items []domain.Item) []ItemResponse {
	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = ToItemResponse(&items[i])
	}
	return responses
}
