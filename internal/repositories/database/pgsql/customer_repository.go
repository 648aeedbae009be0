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
	"github.com/shopspring/decimal"
)

type customerRepository struct {
	BaseRepository
}

// Ensure customerRepository implements portsrepo.CustomerRepositoryFacade
var _ portsrepo.CustomerRepositoryFacade = (*customerRepository)(nil)

const customerColumns = `customer_id, owner_id, name, phone, email, address, dues, created_at, created_by, last_updated_at, last_updated_by`

func scanCustomer(row rowScanner) (models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID,
		&m.OwnerID,
		&m.Name,
		&m.Phone,
		&m.Email,
		&m.Address,
		&m.Dues,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCustomer inserts a new customer.
func (r *customerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.db.Exec(ctx, query,
		m.CustomerID,
		m.OwnerID,
		m.Name,
		m.Phone,
		m.Email,
		m.Address,
		m.Dues,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return saveError("customer", m.CustomerID, err)
	}
	return nil
}

// FindCustomerByID retrieves a customer by its ID within the owner's scope.
func (r *customerRepository) FindCustomerByID(ctx context.Context, ownerID, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1 AND owner_id = $2;`
	m, err := scanCustomer(r.db.QueryRow(ctx, query, customerID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("customer", customerID)
		}
		return nil, persistenceError("failed to find customer "+customerID, err)
	}
	customer := mapping.ToDomainCustomer(m)
	return &customer, nil
}

// ListCustomers retrieves a page of the owner's customers, newest first.
func (r *customerRepository) ListCustomers(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.Customer, *string, error) {
	query, args, limit, err := pageQuery(`SELECT `+customerColumns+` FROM customers WHERE owner_id = $1`,
		[]any{ownerID}, nextToken, "created_at", "customer_id", limit)
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, persistenceError("failed to list customers", err)
	}
	defer rows.Close()

	customers := make([]models.Customer, 0, limit+1)
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, nil, persistenceError("failed to scan customer row", err)
		}
		customers = append(customers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, persistenceError("error iterating customer rows", err)
	}

	page, next := trimPage(customers, limit, func(m models.Customer) (time.Time, string) { return m.CreatedAt, m.CustomerID })
	return mapping.ToDomainCustomerSlice(page), next, nil
}

// AdjustDues adds delta to the stored balance in place, never overwriting it.
func (r *customerRepository) AdjustDues(ctx context.Context, ownerID, customerID string, delta decimal.Decimal, userID string) (decimal.Decimal, error) {
	query := `
		UPDATE customers
		SET dues = dues + $1, last_updated_at = $2, last_updated_by = $3
		WHERE customer_id = $4 AND owner_id = $5
		RETURNING dues;
	`
	var dues decimal.Decimal
	err := r.db.QueryRow(ctx, query, delta, time.Now().UTC(), userID, customerID, ownerID).Scan(&dues)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.NewNotFoundError("customer", customerID)
		}
		return decimal.Zero, persistenceError("failed to adjust dues of customer "+customerID, err)
	}
	return dues, nil
}
