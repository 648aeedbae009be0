package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedItem(t *testing.T, store *Store, ownerID, itemID string, stock int) {
	t.Helper()
	err := store.Execute(context.Background(), func(repos repositories.TxRepositories) error {
		return repos.Items.SaveItem(context.Background(), domain.Item{
			ItemID:      itemID,
			OwnerID:     ownerID,
			Name:        "Item " + itemID,
			Price:       decimal.NewFromInt(10),
			StockQty:    stock,
			AuditFields: domain.NewAuditFields("u1", time.Now()),
		})
	})
	require.NoError(t, err)
}

func TestExecute_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	seedItem(t, store, "o1", "i1", 5)

	boom := errors.New("boom")
	err := store.Execute(ctx, func(repos repositories.TxRepositories) error {
		_, err := repos.Items.DecrementStock(ctx, "o1", "i1", 3)
		require.NoError(t, err)
		_, err = repos.Sequences.NextValue(ctx, "o1", domain.SequenceInvoice)
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	item, err := store.Provider().ItemRepo.FindItemByID(ctx, "o1", "i1")
	require.NoError(t, err)
	assert.Equal(t, 5, item.StockQty, "failed unit of work must leave stock untouched")

	var next int64
	require.NoError(t, store.Execute(ctx, func(repos repositories.TxRepositories) error {
		var err error
		next, err = repos.Sequences.NextValue(ctx, "o1", domain.SequenceInvoice)
		return err
	}))
	assert.Equal(t, int64(1), next, "rolled back sequence values are handed out again")
}

func TestDecrementStock_Insufficient(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	seedItem(t, store, "o1", "i1", 2)

	err := store.Execute(ctx, func(repos repositories.TxRepositories) error {
		_, err := repos.Items.DecrementStock(ctx, "o1", "i1", 3)
		return err
	})
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 3, stockErr.Requested)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestOwnershipIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	seedItem(t, store, "o1", "i1", 2)

	_, err := store.Provider().ItemRepo.FindItemByID(ctx, "o2", "i1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = store.Execute(ctx, func(repos repositories.TxRepositories) error {
		_, err := repos.Items.IncrementStock(ctx, "o2", "i1", 1)
		return err
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSequences_ConcurrentCallersGetDistinctNumbers(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	const callers = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	seen := make(map[int64]bool)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Execute(ctx, func(repos repositories.TxRepositories) error {
				n, err := repos.Sequences.NextValue(ctx, "o1", domain.SequenceReturn)
				if err != nil {
					return err
				}
				mu.Lock()
				seen[n] = true
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Len(t, seen, callers)
	for n := int64(1); n <= callers; n++ {
		assert.True(t, seen[n], "number %d missing", n)
	}
}

func TestListItems_Pagination(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Execute(ctx, func(repos repositories.TxRepositories) error {
		for i := 0; i < 5; i++ {
			if err := repos.Items.SaveItem(ctx, domain.Item{
				ItemID:      fmt.Sprintf("i%d", i),
				OwnerID:     "o1",
				AuditFields: domain.NewAuditFields("u1", base.Add(time.Duration(i)*time.Minute)),
			}); err != nil {
				return err
			}
		}
		return nil
	}))

	reader := store.Provider().ItemRepo
	first, token, err := reader.ListItems(ctx, "o1", 2, nil)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, []string{"i4", "i3"}, []string{first[0].ItemID, first[1].ItemID})

	second, token, err := reader.ListItems(ctx, "o1", 2, token)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, []string{"i2", "i1"}, []string{second[0].ItemID, second[1].ItemID})

	last, token, err := reader.ListItems(ctx, "o1", 2, token)
	require.NoError(t, err)
	assert.Nil(t, token)
	require.Len(t, last, 1)
	assert.Equal(t, "i0", last[0].ItemID)

	bad := "%%%"
	_, _, err = reader.ListItems(ctx, "o1", 2, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, store.Execute(ctx, func(repos repositories.TxRepositories) error {
		return repos.Invoices.SaveInvoice(ctx, domain.Invoice{
			InvoiceID: "inv1",
			OwnerID:   "o1",
			InvoiceNo: "INV-00001",
			Lines:     []domain.InvoiceLine{{LineNo: 1, ItemID: "i1", Quantity: 1}},
		})
	}))

	inv, err := store.Provider().InvoiceRepo.FindInvoiceByID(ctx, "o1", "inv1")
	require.NoError(t, err)
	inv.Lines[0].Quantity = 99

	again, err := store.Provider().InvoiceRepo.FindInvoiceByID(ctx, "o1", "inv1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Lines[0].Quantity)
}

func TestDeleteTransactionsByReturnID(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	ret1, ret2, cust := "r1", "r2", "c1"
	require.NoError(t, store.Execute(ctx, func(repos repositories.TxRepositories) error {
		return repos.Transactions.AppendTransactions(ctx,
			domain.Transaction{TransactionID: "t1", OwnerID: "o1", CustomerID: &cust, ReturnID: &ret1},
			domain.Transaction{TransactionID: "t2", OwnerID: "o1", CustomerID: &cust, ReturnID: &ret2},
		)
	}))

	var removed int64
	require.NoError(t, store.Execute(ctx, func(repos repositories.TxRepositories) error {
		var err error
		removed, err = repos.Transactions.DeleteTransactionsByReturnID(ctx, "o1", ret1)
		return err
	}))
	assert.Equal(t, int64(1), removed)

	rows, _, err := store.Provider().TransactionRepo.ListTransactionsByCustomer(ctx, "o1", cust, 10, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "t2", rows[0].TransactionID)
}
