package domain_test

import (
	"testing"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestSequenceName_Format(t *testing.T) {
	tests := []struct {
		name string
		seq  domain.SequenceName
		n    int64
		want string
	}{
		{name: "first invoice", seq: domain.SequenceInvoice, n: 1, want: "INV-00001"},
		{name: "first return", seq: domain.SequenceReturn, n: 1, want: "RET-00001"},
		{name: "five digits", seq: domain.SequenceInvoice, n: 99999, want: "INV-99999"},
		{name: "overflows naturally", seq: domain.SequenceInvoice, n: 123456, want: "INV-123456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.seq.Format(tt.n))
		})
	}
}

func TestParseSequenceNumber(t *testing.T) {
	n, ok := domain.ParseSequenceNumber("INV-00042")
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)

	n, ok = domain.ParseSequenceNumber("RET-1000000")
	assert.True(t, ok)
	assert.Equal(t, int64(1000000), n)

	_, ok = domain.ParseSequenceNumber("INV42")
	assert.False(t, ok)

	_, ok = domain.ParseSequenceNumber("")
	assert.False(t, ok)
}

func TestNextAfter(t *testing.T) {
	assert.Equal(t, int64(1), domain.NextAfter(""))
	assert.Equal(t, int64(1), domain.NextAfter("garbage"))
	assert.Equal(t, int64(8), domain.NextAfter("INV-00007"))
}
