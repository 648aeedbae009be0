package pgsql

import (
	"context"
	"errors"
	"log/slog"

	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/pos_ledger/internal/middleware"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxScope runs units of work inside a single database transaction.
type TxScope struct {
	Pool *pgxpool.Pool
}

var _ portsrepo.TransactionScope = (*TxScope)(nil)

// Begin starts a new database transaction
func (s *TxScope) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, persistenceError("failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (s *TxScope) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return persistenceError("failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (s *TxScope) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return persistenceError("failed to rollback transaction", err)
	}
	return nil
}

// Execute commits fn's writes if it returns nil and rolls all of them back otherwise.
func (s *TxScope) Execute(ctx context.Context, fn func(repos portsrepo.TxRepositories) error) error {
	tx, err := s.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := s.Rollback(context.WithoutCancel(ctx), tx); rbErr != nil {
			middleware.GetLoggerFromCtx(ctx).Error("Rollback failed", slog.String("error", rbErr.Error()))
		}
	}()

	if err := fn(newTxRepositories(tx)); err != nil {
		return err
	}
	return s.Commit(ctx, tx)
}

func newTxRepositories(db dbtx) portsrepo.TxRepositories {
	base := BaseRepository{db: db}
	return portsrepo.TxRepositories{
		Items:        &itemRepository{base},
		Customers:    &customerRepository{base},
		Invoices:     &invoiceRepository{base},
		Returns:      &returnRepository{base},
		Transactions: &transactionRepository{base},
		Sequences:    &sequenceRepository{base},
	}
}
