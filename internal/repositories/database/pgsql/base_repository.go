package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const defaultPageSize = 20

// dbtx is satisfied by *pgxpool.Pool and pgx.Tx, so one repository type serves both
// plain reads and writes inside a unit of work.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// rowScanner is implemented by pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db dbtx
}

func persistenceError(msg string, err error) error {
	return apperrors.NewAppError(http.StatusInternalServerError, msg, err)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// saveError maps an insert failure, reporting unique violations as duplicates.
func saveError(kind, id string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s %s already exists", apperrors.ErrDuplicate, kind, id)
	}
	return persistenceError("failed to save "+kind+" "+id, err)
}

// sendBatch runs every queued statement and reports the first failure.
func (r *BaseRepository) sendBatch(ctx context.Context, batch *pgx.Batch) error {
	if batch.Len() == 0 {
		return nil
	}
	return r.db.SendBatch(ctx, batch).Close()
}

// pageQuery appends the keyset cursor, newest-first ordering and a limit one larger than the page
// so callers can tell whether another page exists.
func pageQuery(query string, args []any, nextToken *string, createdCol, idCol string, limit int) (string, []any, int, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if nextToken != nil && *nextToken != "" {
		cursorAt, cursorID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return "", nil, 0, apperrors.NewAppError(http.StatusBadRequest, "invalid nextToken", err)
		}
		args = append(args, cursorAt, cursorID)
		query += fmt.Sprintf(" AND (%s, %s) < ($%d, $%d)", createdCol, idCol, len(args)-1, len(args))
	}
	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY %s DESC, %s DESC LIMIT $%d", createdCol, idCol, len(args))
	return query, args, limit, nil
}

// trimPage drops the look-ahead row and builds the token for the next page.
func trimPage[T any](rows []T, limit int, key func(T) (time.Time, string)) ([]T, *string) {
	if len(rows) <= limit {
		return rows, nil
	}
	at, id := key(rows[limit-1])
	return rows[:limit], pagination.NextToken(len(rows), limit, at, id)
}
