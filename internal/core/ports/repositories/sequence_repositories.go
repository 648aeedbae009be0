package repositories

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
)

// SequenceAllocator hands out document numbers.
// Two callers never receive the same number for the same owner and sequence.
type SequenceAllocator interface {
	NextValue(ctx context.Context, ownerID string, sequence domain.SequenceName) (int64, error)
}
