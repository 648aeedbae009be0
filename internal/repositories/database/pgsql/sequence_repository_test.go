package pgsql

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedRow answers Scan with a single value or an error.
type scriptedRow struct {
	value any
	err   error
}

func (r scriptedRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	switch d := dest[0].(type) {
	case *int64:
		*d = r.value.(int64)
	case *string:
		*d = r.value.(string)
	}
	return nil
}

// scriptedDB serves QueryRow by matching a fragment of the statement and records what ran.
type scriptedDB struct {
	rows     map[string]scriptedRow
	executed []string
	args     map[string][]any
}

func (db *scriptedDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	for fragment, row := range db.rows {
		if strings.Contains(sql, fragment) {
			db.executed = append(db.executed, fragment)
			db.args[fragment] = args
			return row
		}
	}
	return scriptedRow{err: errors.New("unexpected query: " + sql)}
}

func (db *scriptedDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("not scripted")
}

func (db *scriptedDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not scripted")
}

func (db *scriptedDB) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults {
	return nil
}

func newScriptedDB(rows map[string]scriptedRow) *scriptedDB {
	return &scriptedDB{rows: rows, args: map[string][]any{}}
}

func TestNextValue_ExistingCounterSkipsSeedLookup(t *testing.T) {
	db := newScriptedDB(map[string]scriptedRow{
		"UPDATE document_sequences":      {value: int64(8)},
		"FROM invoices":                  {value: "INV-00041"},
		"INSERT INTO document_sequences": {value: int64(42)},
	})
	repo := &sequenceRepository{BaseRepository{db: db}}

	n, err := repo.NextValue(context.Background(), "owner-1", domain.SequenceInvoice)

	require.NoError(t, err)
	assert.Equal(t, int64(8), n)
	assert.Equal(t, []string{"UPDATE document_sequences"}, db.executed)
}

func TestNextValue_FirstAllocationSeedsFromIssuedDocuments(t *testing.T) {
	db := newScriptedDB(map[string]scriptedRow{
		"UPDATE document_sequences":      {err: pgx.ErrNoRows},
		"FROM sales_returns":             {value: "RET-00041"},
		"INSERT INTO document_sequences": {value: int64(42)},
	})
	repo := &sequenceRepository{BaseRepository{db: db}}

	n, err := repo.NextValue(context.Background(), "owner-1", domain.SequenceReturn)

	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
	assert.Equal(t, []string{"UPDATE document_sequences", "FROM sales_returns", "INSERT INTO document_sequences"}, db.executed)
	assert.Equal(t, []any{"owner-1", string(domain.SequenceReturn), int64(42)}, db.args["INSERT INTO document_sequences"])
}

func TestNextValue_FirstAllocationWithoutHistoryStartsAtOne(t *testing.T) {
	db := newScriptedDB(map[string]scriptedRow{
		"UPDATE document_sequences":      {err: pgx.ErrNoRows},
		"FROM invoices":                  {err: pgx.ErrNoRows},
		"INSERT INTO document_sequences": {value: int64(1)},
	})
	repo := &sequenceRepository{BaseRepository{db: db}}

	n, err := repo.NextValue(context.Background(), "owner-1", domain.SequenceInvoice)

	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, int64(1), db.args["INSERT INTO document_sequences"][2])
}
