package domain

import (
	"fmt"
	"regexp"
	"strconv"
)

// SequenceName identifies an independent document numbering sequence.
type SequenceName string

const (
	SequenceInvoice SequenceName = "invoice"
	SequenceReturn  SequenceName = "return"
)

var sequenceNumberPattern = regexp.MustCompile(`^[A-Z]+-(\d+)$`)

// Prefix returns the human-readable prefix used when formatting numbers of this sequence.
func (s SequenceName) Prefix() string {
	switch s {
	case SequenceInvoice:
		return "INV"
	case SequenceReturn:
		return "RET"
	default:
		return "DOC"
	}
}

// Format renders n as PREFIX-00001. Numbers wider than five digits are printed in full.
func (s SequenceName) Format(n int64) string {
	return fmt.Sprintf("%s-%05d", s.Prefix(), n)
}

// ParseSequenceNumber extracts the trailing integer from a formatted document number.
// It returns false when the value does not match PREFIX-digits.
func ParseSequenceNumber(formatted string) (int64, bool) {
	m := sequenceNumberPattern.FindStringSubmatch(formatted)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NextAfter returns the number that follows the last formatted document, or 1 when none can be read.
func NextAfter(lastFormatted string) int64 {
	n, ok := ParseSequenceNumber(lastFormatted)
	if !ok {
		return 1
	}
	return n + 1
}
