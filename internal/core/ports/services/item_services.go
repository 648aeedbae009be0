package services

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/dto"
)

// ItemReaderSvc defines read operations for item data
type ItemReaderSvc interface {
	// GetItemByID retrieves an item owned by ownerID.
	GetItemByID(ctx context.Context, ownerID string, itemID string) (*domain.Item, error)

	// ListItems retrieves a page of items, newest first.
	ListItems(ctx context.Context, ownerID string, params dto.ListItemsParams) ([]domain.Item, *string, error)
}

// ItemWriterSvc defines write operations for item data
type ItemWriterSvc interface {
	// CreateItem persists a new item with its opening stock.
	CreateItem(ctx context.Context, ownerID string, req dto.CreateItemRequest, userID string) (*domain.Item, error)

	// RestockItem adds received goods to stock and records a purchase transaction.
	RestockItem(ctx context.Context, ownerID string, itemID string, req dto.RestockItemRequest, userID string) (*domain.Item, error)
}

// ItemSvcFacade combines all item-related service interfaces
type ItemSvcFacade interface {
	ItemReaderSvc
	ItemWriterSvc
}
