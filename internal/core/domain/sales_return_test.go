package domain_test

import (
	"testing"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReturnLine_Price(t *testing.T) {
	l := domain.ReturnLine{ReturnedQty: 3, Rate: decimal.NewFromInt(40), TaxPercent: decimal.NewFromFloat(12.5)}
	l.Price()

	assert.True(t, decimal.NewFromInt(120).Equal(l.Subtotal))
	assert.True(t, decimal.NewFromInt(15).Equal(l.TaxAmount))
	assert.True(t, decimal.NewFromInt(135).Equal(l.LineTotal))
}

func TestSalesReturn_ApplyTotals(t *testing.T) {
	r := domain.SalesReturn{
		DiscountAmount: decimal.NewFromInt(10),
		Lines: []domain.ReturnLine{
			{ReturnedQty: 1, Rate: decimal.NewFromInt(100), TaxPercent: decimal.NewFromInt(10)},
			{ReturnedQty: 2, Rate: decimal.NewFromInt(25), TaxPercent: decimal.Zero},
		},
	}
	for i := range r.Lines {
		r.Lines[i].Price()
	}

	require.NoError(t, r.ApplyTotals())
	assert.True(t, decimal.NewFromInt(150).Equal(r.Subtotal))
	assert.True(t, decimal.NewFromInt(10).Equal(r.TaxAmount))
	assert.True(t, decimal.NewFromInt(150).Equal(r.TotalReturnAmount))
}

func TestSalesReturn_ApplyTotals_DiscountTooLarge(t *testing.T) {
	r := domain.SalesReturn{
		DiscountAmount: decimal.NewFromInt(500),
		Lines:          []domain.ReturnLine{{ReturnedQty: 1, Rate: decimal.NewFromInt(100)}},
	}
	r.Lines[0].Price()

	err := r.ApplyTotals()
	assert.ErrorIs(t, err, domain.ErrNegativeReturnTotal)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestClassifyReturn(t *testing.T) {
	original := map[string]int{"a": 2, "b": 1}

	tests := []struct {
		name       string
		previously map[string]int
		current    []domain.ReturnLine
		want       domain.ReturnType
	}{
		{
			name:    "one unit of a two unit line",
			current: []domain.ReturnLine{{ItemID: "a", ReturnedQty: 1}},
			want:    domain.ReturnTypePartial,
		},
		{
			name:    "every line in full",
			current: []domain.ReturnLine{{ItemID: "a", ReturnedQty: 2}, {ItemID: "b", ReturnedQty: 1}},
			want:    domain.ReturnTypeFull,
		},
		{
			name:    "one line in full but not the other",
			current: []domain.ReturnLine{{ItemID: "a", ReturnedQty: 2}},
			want:    domain.ReturnTypePartial,
		},
		{
			name:       "completes what earlier returns left",
			previously: map[string]int{"a": 1, "b": 1},
			current:    []domain.ReturnLine{{ItemID: "a", ReturnedQty: 1}},
			want:       domain.ReturnTypeFull,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ClassifyReturn(original, tt.previously, tt.current))
		})
	}
}

func TestReturnQuantityExceededError(t *testing.T) {
	err := &domain.ReturnQuantityExceededError{ItemID: "a", Original: 10, AlreadyReturned: 6, Requested: 5}

	assert.Equal(t, 4, err.Remaining())
	assert.Contains(t, err.Error(), "original quantity 10")
	assert.Contains(t, err.Error(), "already returned 6")
	assert.Contains(t, err.Error(), "remaining 4")
	assert.ErrorIs(t, err, domain.ErrReturnQuantityExceeded)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
