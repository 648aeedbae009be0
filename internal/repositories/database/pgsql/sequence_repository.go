package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type sequenceRepository struct {
	BaseRepository
}

var _ portsrepo.SequenceAllocator = (*sequenceRepository)(nil)

// latestNumberQueries find the highest number already issued, for owners whose documents
// predate the counter table.
var latestNumberQueries = map[domain.SequenceName]string{
	domain.SequenceInvoice: `SELECT invoice_no FROM invoices WHERE owner_id = $1 ORDER BY length(invoice_no) DESC, invoice_no DESC LIMIT 1;`,
	domain.SequenceReturn:  `SELECT return_no FROM sales_returns WHERE owner_id = $1 ORDER BY length(return_no) DESC, return_no DESC LIMIT 1;`,
}

const incrementSequenceQuery = `
	UPDATE document_sequences
	SET last_value = last_value + 1
	WHERE owner_id = $1 AND sequence_name = $2
	RETURNING last_value;
`

const insertSequenceQuery = `
	INSERT INTO document_sequences (owner_id, sequence_name, last_value)
	VALUES ($1, $2, $3)
	ON CONFLICT (owner_id, sequence_name)
	DO UPDATE SET last_value = document_sequences.last_value + 1
	RETURNING last_value;
`

// NextValue increments the owner's counter in place. The row stays locked until the
// surrounding transaction ends, so concurrent callers queue up, and a rollback hands the
// number back.
func (r *sequenceRepository) NextValue(ctx context.Context, ownerID string, sequence domain.SequenceName) (int64, error) {
	var next int64

	// Usual path: the counter row exists and is bumped under its row lock.
	err := r.db.QueryRow(ctx, incrementSequenceQuery, ownerID, string(sequence)).Scan(&next)
	if err == nil {
		return next, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, persistenceError("failed to allocate "+string(sequence)+" number", err)
	}

	// First allocation for this owner: continue after any documents issued before the counter existed.
	seed, err := r.seedValue(ctx, ownerID, sequence)
	if err != nil {
		return 0, err
	}

	// A concurrent first allocation may have inserted the row meanwhile; ON CONFLICT then increments it.
	if err := r.db.QueryRow(ctx, insertSequenceQuery, ownerID, string(sequence), seed).Scan(&next); err != nil {
		return 0, persistenceError("failed to allocate "+string(sequence)+" number", err)
	}
	return next, nil
}

func (r *sequenceRepository) seedValue(ctx context.Context, ownerID string, sequence domain.SequenceName) (int64, error) {
	q, ok := latestNumberQueries[sequence]
	if !ok {
		return 1, nil
	}
	var latest string
	err := r.db.QueryRow(ctx, q, ownerID).Scan(&latest)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return 1, nil
	case err != nil:
		return 0, persistenceError("failed to read latest "+string(sequence)+" number", err)
	}
	return domain.NextAfter(latest), nil
}
