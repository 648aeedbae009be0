package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
)

type itemRepo struct {
	st func() *state
}

func itemKey(i domain.Item) (time.Time, string) { return i.CreatedAt, i.ItemID }

func (r *itemRepo) find(ownerID, itemID string) (domain.Item, bool) {
	item, ok := r.st().items[itemID]
	if !ok || item.OwnerID != ownerID {
		return domain.Item{}, false
	}
	return item, true
}

func (r *itemRepo) FindItemByID(_ context.Context, ownerID, itemID string) (*domain.Item, error) {
	item, ok := r.find(ownerID, itemID)
	if !ok {
		return nil, apperrors.NewNotFoundError("item", itemID)
	}
	return &item, nil
}

func (r *itemRepo) ListItems(_ context.Context, ownerID string, limit int, nextToken *string) ([]domain.Item, *string, error) {
	var rows []domain.Item
	for _, item := range r.st().items {
		if item.OwnerID == ownerID {
			rows = append(rows, item)
		}
	}
	sortNewestFirst(rows, itemKey)
	return page(rows, limit, nextToken, itemKey)
}

func (r *itemRepo) SaveItem(_ context.Context, item domain.Item) error {
	st := r.st()
	if _, exists := st.items[item.ItemID]; exists {
		return fmt.Errorf("%w: item %s", apperrors.ErrDuplicate, item.ItemID)
	}
	if item.StockQty < 0 {
		return domain.ErrInvalidQuantity
	}
	st.items[item.ItemID] = item
	return nil
}

func (r *itemRepo) DecrementStock(_ context.Context, ownerID, itemID string, qty int) (int, error) {
	item, ok := r.find(ownerID, itemID)
	if !ok {
		return 0, apperrors.NewNotFoundError("item", itemID)
	}
	if item.StockQty < qty {
		return item.StockQty, &domain.InsufficientStockError{
			ItemID:    itemID,
			ItemName:  item.Name,
			Available: item.StockQty,
			Requested: qty,
		}
	}
	item.StockQty -= qty
	r.st().items[itemID] = item
	return item.StockQty, nil
}

func (r *itemRepo) IncrementStock(_ context.Context, ownerID, itemID string, qty int) (int, error) {
	item, ok := r.find(ownerID, itemID)
	if !ok {
		return 0, apperrors.NewNotFoundError("item", itemID)
	}
	item.StockQty += qty
	r.st().items[itemID] = item
	return item.StockQty, nil
}

var _ repositories.ItemRepositoryFacade = (*itemRepo)(nil)
