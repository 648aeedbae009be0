package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type itemService struct {
	BaseService
	scope    portsrepo.TransactionScope
	itemRepo portsrepo.ItemReader
}

// NewItemService creates a new ItemService.
func NewItemService(repos portsrepo.RepositoryProvider, options ...ServiceOption) portssvc.ItemSvcFacade {
	opts := collectOptions(options)
	return &itemService{
		BaseService: BaseService{clock: opts.clock},
		scope:       repos.Scope,
		itemRepo:    repos.ItemRepo,
	}
}

// Ensure itemService implements the portssvc.ItemSvcFacade interface
var _ portssvc.ItemSvcFacade = (*itemService)(nil)

// CreateItem creates a new item.
// Implements portssvc.ItemSvcFacade
func (s *itemService) CreateItem(ctx context.Context, ownerID string, req dto.CreateItemRequest, userID string) (*domain.Item, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("item name is required")
	}
	if req.Price.IsNegative() {
		return nil, domain.ErrNegativeAmount
	}
	if req.StockQty < 0 {
		return nil, apperrors.NewValidationError("opening stock must not be negative")
	}

	now := s.Now()
	item := domain.Item{
		ItemID:      uuid.NewString(),
		OwnerID:     ownerID,
		Name:        name,
		SKU:         strings.TrimSpace(req.SKU),
		Price:       req.Price,
		StockQty:    req.StockQty,
		AuditFields: domain.NewAuditFields(userID, now),
	}

	err := s.scope.Execute(ctx, func(tx portsrepo.TxRepositories) error {
		return tx.Items.SaveItem(ctx, item)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to create item", slog.String("owner_id", ownerID), slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Item created",
		slog.String("item_id", item.ItemID),
		slog.String("owner_id", ownerID),
		slog.String("user_id", userID))
	return &item, nil
}

// RestockItem adds received goods to stock and records the purchase.
// Implements portssvc.ItemSvcFacade
func (s *itemService) RestockItem(ctx context.Context, ownerID string, itemID string, req dto.RestockItemRequest, userID string) (*domain.Item, error) {
	if err := validateReference("item", itemID); err != nil {
		return nil, err
	}
	if req.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if req.UnitCost != nil && req.UnitCost.IsNegative() {
		return nil, domain.ErrNegativeAmount
	}

	entry := ledgerEntry{ownerID: ownerID, userID: userID, now: s.Now()}
	var item *domain.Item

	err := s.scope.Execute(ctx, func(tx portsrepo.TxRepositories) error {
		found, err := tx.Items.FindItemByID(ctx, ownerID, itemID)
		if err != nil {
			return err
		}
		stock, err := tx.Items.IncrementStock(ctx, ownerID, itemID, req.Quantity)
		if err != nil {
			return err
		}
		found.StockQty = stock

		amount := decimal.Zero
		if req.UnitCost != nil {
			amount = req.UnitCost.Mul(decimal.NewFromInt(int64(req.Quantity)))
		}
		description := fmt.Sprintf("Restocked %d x %s", req.Quantity, found.Name)
		if note := strings.TrimSpace(req.Note); note != "" {
			description += ": " + note
		}
		t := entry.new(domain.TransactionPurchase, amount, description)
		t.ItemID = strPtr(itemID)
		if err := tx.Transactions.AppendTransactions(ctx, t); err != nil {
			return err
		}
		item = found
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to restock item", slog.String("item_id", itemID), slog.String("owner_id", ownerID), slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Item restocked",
		slog.String("item_id", itemID),
		slog.Int("quantity", req.Quantity),
		slog.Int("stock_qty", item.StockQty),
		slog.String("owner_id", ownerID),
		slog.String("user_id", userID))
	return item, nil
}

// GetItemByID retrieves an item.
// Implements portssvc.ItemSvcFacade
func (s *itemService) GetItemByID(ctx context.Context, ownerID string, itemID string) (*domain.Item, error) {
	if err := validateReference("item", itemID); err != nil {
		return nil, err
	}
	item, err := s.itemRepo.FindItemByID(ctx, ownerID, itemID)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to get item", slog.String("item_id", itemID), slog.String("owner_id", ownerID))
		return nil, err
	}
	return item, nil
}

// ListItems retrieves a page of items.
// Implements portssvc.ItemSvcFacade
func (s *itemService) ListItems(ctx context.Context, ownerID string, params dto.ListItemsParams) ([]domain.Item, *string, error) {
	items, next, err := s.itemRepo.ListItems(ctx, ownerID, params.EffectiveLimit(), params.NextToken)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to list items", slog.String("owner_id", ownerID))
		return nil, nil, err
	}
	return items, next, nil
}
