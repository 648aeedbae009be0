package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type customerRepo struct {
	st func() *state
}

func customerKey(c domain.Customer) (time.Time, string) { return c.CreatedAt, c.CustomerID }

func (r *customerRepo) FindCustomerByID(_ context.Context, ownerID, customerID string) (*domain.Customer, error) {
	c, ok := r.st().customers[customerID]
	if !ok || c.OwnerID != ownerID {
		return nil, apperrors.NewNotFoundError("customer", customerID)
	}
	return &c, nil
}

func (r *customerRepo) ListCustomers(_ context.Context, ownerID string, limit int, nextToken *string) ([]domain.Customer, *string, error) {
	var rows []domain.Customer
	for _, c := range r.st().customers {
		if c.OwnerID == ownerID {
			rows = append(rows, c)
		}
	}
	sortNewestFirst(rows, customerKey)
	return page(rows, limit, nextToken, customerKey)
}

func (r *customerRepo) SaveCustomer(_ context.Context, customer domain.Customer) error {
	st := r.st()
	if _, exists := st.customers[customer.CustomerID]; exists {
		return fmt.Errorf("%w: customer %s", apperrors.ErrDuplicate, customer.CustomerID)
	}
	st.customers[customer.CustomerID] = customer
	return nil
}

func (r *customerRepo) AdjustDues(_ context.Context, ownerID, customerID string, delta decimal.Decimal, userID string) (decimal.Decimal, error) {
	st := r.st()
	c, ok := st.customers[customerID]
	if !ok || c.OwnerID != ownerID {
		return decimal.Zero, apperrors.NewNotFoundError("customer", customerID)
	}
	c.Dues = c.Dues.Add(delta)
	c.Touch(userID, time.Now().UTC())
	st.customers[customerID] = c
	return c.Dues, nil
}

var _ repositories.CustomerRepositoryFacade = (*customerRepo)(nil)
