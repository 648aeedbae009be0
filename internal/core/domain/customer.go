package domain

import "github.com/shopspring/decimal"

// Customer is a buyer with a running balance.
// Positive Dues means the customer owes the business, negative means the customer holds credit.
type Customer struct {
	CustomerID string          `json:"customerID"`
	OwnerID    string          `json:"ownerID"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	Email      string          `json:"email"`
	Address    string          `json:"address"`
	Dues       decimal.Decimal `json:"dues"`
	AuditFields
}

// HasCredit reports whether the customer holds credit with the business.
func (c Customer) HasCredit() bool {
	return c.Dues.IsNegative()
}
