// Package memory is an in-process implementation of the repository ports.
// It backs the service tests and single-terminal demo installs (STORAGE_DRIVER=memory).
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/pos_ledger/internal/utils/pagination"
)

// state is one consistent version of every table. Committed states are never mutated;
// a unit of work edits a private clone and swaps it in on success.
type state struct {
	items        map[string]domain.Item
	customers    map[string]domain.Customer
	invoices     map[string]domain.Invoice
	returns      map[string]domain.SalesReturn
	transactions []domain.Transaction
	sequences    map[string]int64
}

func newState() *state {
	return &state{
		items:     make(map[string]domain.Item),
		customers: make(map[string]domain.Customer),
		invoices:  make(map[string]domain.Invoice),
		returns:   make(map[string]domain.SalesReturn),
		sequences: make(map[string]int64),
	}
}

func (s *state) clone() *state {
	c := &state{
		items:        make(map[string]domain.Item, len(s.items)),
		customers:    make(map[string]domain.Customer, len(s.customers)),
		invoices:     make(map[string]domain.Invoice, len(s.invoices)),
		returns:      make(map[string]domain.SalesReturn, len(s.returns)),
		transactions: make([]domain.Transaction, len(s.transactions)),
		sequences:    make(map[string]int64, len(s.sequences)),
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.invoices {
		c.invoices[k] = cloneInvoice(v)
	}
	for k, v := range s.returns {
		c.returns[k] = cloneReturn(v)
	}
	copy(c.transactions, s.transactions)
	for k, v := range s.sequences {
		c.sequences[k] = v
	}
	return c
}

func cloneInvoice(inv domain.Invoice) domain.Invoice {
	inv.Lines = append([]domain.InvoiceLine(nil), inv.Lines...)
	return inv
}

func cloneReturn(r domain.SalesReturn) domain.SalesReturn {
	r.Lines = append([]domain.ReturnLine(nil), r.Lines...)
	return r
}

// Store holds the committed state and serializes units of work.
type Store struct {
	txMu    sync.Mutex
	mu      sync.RWMutex
	current *state
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{current: newState()}
}

func (s *Store) committed() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Execute runs fn against a private copy of the data and publishes it only if fn succeeds.
func (s *Store) Execute(ctx context.Context, fn func(repos repositories.TxRepositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	working := s.committed().clone()
	get := func() *state { return working }
	if err := fn(newTxRepositories(get)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = working
	s.mu.Unlock()
	return nil
}

// Provider exposes the store through the repository ports.
func (s *Store) Provider() repositories.RepositoryProvider {
	return repositories.RepositoryProvider{
		Scope:           s,
		ItemRepo:        &itemRepo{st: s.committed},
		CustomerRepo:    &customerRepo{st: s.committed},
		InvoiceRepo:     &invoiceRepo{st: s.committed},
		ReturnRepo:      &returnRepo{st: s.committed},
		TransactionRepo: &transactionRepo{st: s.committed},
	}
}

func newTxRepositories(get func() *state) repositories.TxRepositories {
	return repositories.TxRepositories{
		Items:        &itemRepo{st: get},
		Customers:    &customerRepo{st: get},
		Invoices:     &invoiceRepo{st: get},
		Returns:      &returnRepo{st: get},
		Transactions: &transactionRepo{st: get},
		Sequences:    &sequenceRepo{st: get},
	}
}

type sequenceRepo struct {
	st func() *state
}

func (r *sequenceRepo) NextValue(_ context.Context, ownerID string, sequence domain.SequenceName) (int64, error) {
	key := ownerID + "|" + string(sequence)
	st := r.st()
	st.sequences[key]++
	return st.sequences[key], nil
}

// page applies newest-first cursor pagination to rows already sorted that way.
func page[T any](rows []T, limit int, nextToken *string, key func(T) (time.Time, string)) ([]T, *string, error) {
	if nextToken != nil && *nextToken != "" {
		cursorAt, cursorID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		start := len(rows)
		for i, row := range rows {
			at, id := key(row)
			if pagination.After(at, id, cursorAt, cursorID) {
				start = i
				break
			}
		}
		rows = rows[start:]
	}

	if limit <= 0 || len(rows) <= limit {
		return rows, nil, nil
	}
	at, id := key(rows[limit-1])
	return rows[:limit], pagination.NextToken(len(rows), limit, at, id), nil
}

func sortNewestFirst[T any](rows []T, key func(T) (time.Time, string)) {
	sort.Slice(rows, func(i, j int) bool {
		ai, ii := key(rows[i])
		aj, ij := key(rows[j])
		if ai.Equal(aj) {
			return ii > ij
		}
		return ai.After(aj)
	})
}
