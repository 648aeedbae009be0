package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/pos_ledger/internal/models"
	"github.com/SscSPs/pos_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type itemRepository struct {
	BaseRepository
}

// Ensure itemRepository implements portsrepo.ItemRepositoryFacade
var _ portsrepo.ItemRepositoryFacade = (*itemRepository)(nil)

const itemColumns = `item_id, owner_id, name, sku, price, stock_qty, created_at, created_by, last_updated_at, last_updated_by`

func scanItem(row rowScanner) (models.Item, error) {
	var m models.Item
	err := row.Scan(
		&m.ItemID,
		&m.OwnerID,
		&m.Name,
		&m.SKU,
		&m.Price,
		&m.StockQty,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveItem inserts a new item.
func (r *itemRepository) SaveItem(ctx context.Context, item domain.Item) error {
	m := mapping.ToModelItem(item)
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db.Exec(ctx, query,
		m.ItemID,
		m.OwnerID,
		m.Name,
		m.SKU,
		m.Price,
		m.StockQty,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return saveError("item", m.ItemID, err)
	}
	return nil
}

// FindItemByID retrieves an item by its ID within the owner's scope.
func (r *itemRepository) FindItemByID(ctx context.Context, ownerID, itemID string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE item_id = $1 AND owner_id = $2;`
	m, err := scanItem(r.db.QueryRow(ctx, query, itemID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("item", itemID)
		}
		return nil, persistenceError("failed to find item "+itemID, err)
	}
	item := mapping.ToDomainItem(m)
	return &item, nil
}

// ListItems retrieves a page of the owner's items, newest first.
func (r *itemRepository) ListItems(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.Item, *string, error) {
	query, args, limit, err := pageQuery(`SELECT `+itemColumns+` FROM items WHERE owner_id = $1`,
		[]any{ownerID}, nextToken, "created_at", "item_id", limit)
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, persistenceError("failed to list items", err)
	}
	defer rows.Close()

	items := make([]models.Item, 0, limit+1)
	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			return nil, nil, persistenceError("failed to scan item row", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, persistenceError("error iterating item rows", err)
	}

	page, next := trimPage(items, limit, func(m models.Item) (time.Time, string) { return m.CreatedAt, m.ItemID })
	return mapping.ToDomainItemSlice(page), next, nil
}

// DecrementStock removes qty only if that much is on hand; the check and the write are one statement.
func (r *itemRepository) DecrementStock(ctx context.Context, ownerID, itemID string, qty int) (int, error) {
	query := `
		UPDATE items
		SET stock_qty = stock_qty - $1, last_updated_at = $4
		WHERE item_id = $2 AND owner_id = $3 AND stock_qty >= $1
		RETURNING stock_qty;
	`
	var stock int
	err := r.db.QueryRow(ctx, query, qty, itemID, ownerID, time.Now().UTC()).Scan(&stock)
	if err == nil {
		return stock, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, persistenceError("failed to decrement stock of item "+itemID, err)
	}

	// Nothing matched: either the item is not ours or there is not enough of it.
	var name string
	err = r.db.QueryRow(ctx, `SELECT name, stock_qty FROM items WHERE item_id = $1 AND owner_id = $2;`, itemID, ownerID).Scan(&name, &stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.NewNotFoundError("item", itemID)
		}
		return 0, persistenceError("failed to read stock of item "+itemID, err)
	}
	return 0, &domain.InsufficientStockError{ItemID: itemID, ItemName: name, Available: stock, Requested: qty}
}

// IncrementStock adds qty to the item's stock.
func (r *itemRepository) IncrementStock(ctx context.Context, ownerID, itemID string, qty int) (int, error) {
	query := `
		UPDATE items
		SET stock_qty = stock_qty + $1, last_updated_at = $4
		WHERE item_id = $2 AND owner_id = $3
		RETURNING stock_qty;
	`
	var stock int
	err := r.db.QueryRow(ctx, query, qty, itemID, ownerID, time.Now().UTC()).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.NewNotFoundError("item", itemID)
		}
		return 0, persistenceError("failed to increment stock of item "+itemID, err)
	}
	return stock, nil
}
