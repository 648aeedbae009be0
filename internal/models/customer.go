package models

import "github.com/shopspring/decimal"

// Customer is the row stored in the customers table.
type Customer struct {
	CustomerID string          `db:"customer_id"`
	OwnerID    string          `db:"owner_id"`
	Name       string          `db:"name"`
	Phone      string          `db:"phone"`
	Email      string          `db:"email"`
	Address    string          `db:"address"`
	Dues       decimal.Decimal `db:"dues"`
	AuditFields
}
