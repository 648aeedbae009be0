package repositories

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
)

// ItemReader defines read operations for item data
type ItemReader interface {
	// FindItemByID retrieves an item owned by ownerID.
	FindItemByID(ctx context.Context, ownerID, itemID string) (*domain.Item, error)

	// ListItems retrieves a page of items, newest first.
	ListItems(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.Item, *string, error)
}

// ItemWriter defines write operations for item data
type ItemWriter interface {
	// SaveItem persists a new item.
	SaveItem(ctx context.Context, item domain.Item) error

	// DecrementStock atomically removes qty from stock if at least qty is available.
	// It returns the new stock level, or an *domain.InsufficientStockError without writing.
	DecrementStock(ctx context.Context, ownerID, itemID string, qty int) (int, error)

	// IncrementStock adds qty to stock and returns the new stock level.
	IncrementStock(ctx context.Context, ownerID, itemID string, qty int) (int, error)
}

// ItemRepositoryFacade combines all item-related repository interfaces
type ItemRepositoryFacade interface {
	ItemReader
	ItemWriter
}
