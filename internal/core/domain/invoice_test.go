package domain_test

import (
	"testing"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(itemID string, qty int, price int64) domain.InvoiceLine {
	p := decimal.NewFromInt(price)
	return domain.InvoiceLine{ItemID: itemID, Quantity: qty, Price: p, LineTotal: domain.LineTotal(qty, p)}
}

func TestComputeInvoiceTotals(t *testing.T) {
	d := decimal.NewFromInt

	tests := []struct {
		name              string
		lines             []domain.InvoiceLine
		discount          decimal.Decimal
		paid              decimal.Decimal
		changeReturned    decimal.Decimal
		wantSubtotal      decimal.Decimal
		wantTotal         decimal.Decimal
		wantActualPaid    decimal.Decimal
		wantChangeNotRet  decimal.Decimal
		wantPaymentStatus domain.PaymentStatus
	}{
		{
			name:              "exact payment",
			lines:             []domain.InvoiceLine{line("a", 2, 100)},
			discount:          d(0),
			paid:              d(200),
			changeReturned:    d(0),
			wantSubtotal:      d(200),
			wantTotal:         d(200),
			wantActualPaid:    d(200),
			wantChangeNotRet:  d(0),
			wantPaymentStatus: domain.PaymentStatusPaid,
		},
		{
			name:              "overpayment is capped and kept as credit",
			lines:             []domain.InvoiceLine{line("a", 2, 100)},
			discount:          d(0),
			paid:              d(250),
			changeReturned:    d(0),
			wantSubtotal:      d(200),
			wantTotal:         d(200),
			wantActualPaid:    d(200),
			wantChangeNotRet:  d(50),
			wantPaymentStatus: domain.PaymentStatusPaid,
		},
		{
			name:              "change partly handed back",
			lines:             []domain.InvoiceLine{line("a", 1, 80)},
			discount:          d(0),
			paid:              d(100),
			changeReturned:    d(15),
			wantSubtotal:      d(80),
			wantTotal:         d(80),
			wantActualPaid:    d(80),
			wantChangeNotRet:  d(5),
			wantPaymentStatus: domain.PaymentStatusPaid,
		},
		{
			name:              "change handed back beyond the overpayment leaves no credit",
			lines:             []domain.InvoiceLine{line("a", 1, 100)},
			discount:          d(0),
			paid:              d(120),
			changeReturned:    d(25),
			wantSubtotal:      d(100),
			wantTotal:         d(100),
			wantActualPaid:    d(100),
			wantChangeNotRet:  d(0),
			wantPaymentStatus: domain.PaymentStatusPaid,
		},
		{
			name:              "partial payment with discount",
			lines:             []domain.InvoiceLine{line("a", 1, 100), line("b", 3, 50)},
			discount:          d(50),
			paid:              d(120),
			changeReturned:    d(0),
			wantSubtotal:      d(250),
			wantTotal:         d(200),
			wantActualPaid:    d(120),
			wantChangeNotRet:  d(0),
			wantPaymentStatus: domain.PaymentStatusPartial,
		},
		{
			name:              "nothing paid",
			lines:             []domain.InvoiceLine{line("a", 1, 100)},
			discount:          d(0),
			paid:              d(0),
			changeReturned:    d(0),
			wantSubtotal:      d(100),
			wantTotal:         d(100),
			wantActualPaid:    d(0),
			wantChangeNotRet:  d(0),
			wantPaymentStatus: domain.PaymentStatusUnpaid,
		},
		{
			name:              "fully discounted sale counts as paid",
			lines:             []domain.InvoiceLine{line("a", 1, 100)},
			discount:          d(100),
			paid:              d(0),
			changeReturned:    d(0),
			wantSubtotal:      d(100),
			wantTotal:         d(0),
			wantActualPaid:    d(0),
			wantChangeNotRet:  d(0),
			wantPaymentStatus: domain.PaymentStatusPaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ComputeInvoiceTotals(tt.lines, tt.discount, tt.paid, tt.changeReturned)
			require.NoError(t, err)
			assert.True(t, tt.wantSubtotal.Equal(got.Subtotal), "subtotal %s", got.Subtotal)
			assert.True(t, tt.wantTotal.Equal(got.TotalAmount), "total %s", got.TotalAmount)
			assert.True(t, got.TotalAmount.Equal(got.Subtotal.Sub(got.Discount)))
			assert.True(t, tt.wantActualPaid.Equal(got.ActualPaid), "actual paid %s", got.ActualPaid)
			assert.True(t, tt.wantChangeNotRet.Equal(got.ChangeNotReturned), "change not returned %s", got.ChangeNotReturned)
			assert.Equal(t, tt.wantPaymentStatus, got.PaymentStatus)
		})
	}
}

func TestComputeInvoiceTotals_Rejects(t *testing.T) {
	lines := []domain.InvoiceLine{line("a", 1, 100)}

	_, err := domain.ComputeInvoiceTotals(lines, decimal.NewFromInt(101), decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrDiscountExceedsSubtotal)

	_, err = domain.ComputeInvoiceTotals(lines, decimal.Zero, decimal.NewFromInt(-1), decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
}

func TestInvoice_NetDuesEffect(t *testing.T) {
	inv := domain.Invoice{
		TotalAmount:  decimal.NewFromInt(200),
		PaidAmount:   decimal.NewFromInt(150),
		CreditAmount: decimal.Zero,
	}
	assert.True(t, decimal.NewFromInt(50).Equal(inv.NetDuesEffect()))

	inv.PaidAmount = decimal.NewFromInt(200)
	inv.CreditAmount = decimal.NewFromInt(30)
	assert.True(t, decimal.NewFromInt(-30).Equal(inv.NetDuesEffect()))
}

func TestInvoice_OriginalQuantities(t *testing.T) {
	inv := domain.Invoice{Lines: []domain.InvoiceLine{line("a", 2, 10), line("b", 1, 5), line("a", 3, 10)}}
	assert.Equal(t, map[string]int{"a": 5, "b": 1}, inv.OriginalQuantities())
}
