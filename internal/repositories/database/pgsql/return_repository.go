package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/pos_ledger/internal/models"
	"github.com/SscSPs/pos_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type returnRepository struct {
	BaseRepository
}

// Ensure returnRepository implements portsrepo.ReturnRepositoryFacade
var _ portsrepo.ReturnRepositoryFacade = (*returnRepository)(nil)

const returnColumns = `return_id, owner_id, return_no, invoice_id, customer_id, subtotal, tax_amount, discount_amount,
	total_return_amount, return_type, refund_method, notes, created_at, created_by, last_updated_at, last_updated_by`

const returnLineColumns = `return_id, line_no, item_id, product_name, original_qty, returned_qty, rate, tax_percent,
	subtotal, tax_amount, line_total, condition, reason, inventory_adjusted`

func scanReturn(row rowScanner) (models.SalesReturn, error) {
	var m models.SalesReturn
	err := row.Scan(
		&m.ReturnID,
		&m.OwnerID,
		&m.ReturnNo,
		&m.InvoiceID,
		&m.CustomerID,
		&m.Subtotal,
		&m.TaxAmount,
		&m.DiscountAmount,
		&m.TotalReturnAmount,
		&m.ReturnType,
		&m.RefundMethod,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanReturnLine(row rowScanner) (models.ReturnLine, error) {
	var l models.ReturnLine
	err := row.Scan(
		&l.ReturnID,
		&l.LineNo,
		&l.ItemID,
		&l.ProductName,
		&l.OriginalQty,
		&l.ReturnedQty,
		&l.Rate,
		&l.TaxPercent,
		&l.Subtotal,
		&l.TaxAmount,
		&l.LineTotal,
		&l.Condition,
		&l.Reason,
		&l.InventoryAdjusted,
	)
	return l, err
}

// SaveReturn inserts the return header and its lines.
func (r *returnRepository) SaveReturn(ctx context.Context, ret domain.SalesReturn) error {
	m := mapping.ToModelSalesReturn(ret)
	query := `
		INSERT INTO sales_returns (` + returnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.db.Exec(ctx, query,
		m.ReturnID,
		m.OwnerID,
		m.ReturnNo,
		m.InvoiceID,
		m.CustomerID,
		m.Subtotal,
		m.TaxAmount,
		m.DiscountAmount,
		m.TotalReturnAmount,
		m.ReturnType,
		m.RefundMethod,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return saveError("return", m.ReturnNo, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO sales_return_lines (` + returnLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	for _, l := range m.Lines {
		batch.Queue(lineQuery,
			l.ReturnID, l.LineNo, l.ItemID, l.ProductName, l.OriginalQty, l.ReturnedQty, l.Rate, l.TaxPercent,
			l.Subtotal, l.TaxAmount, l.LineTotal, l.Condition, l.Reason, l.InventoryAdjusted)
	}
	if err := r.sendBatch(ctx, batch); err != nil {
		return persistenceError("failed to save lines of return "+m.ReturnNo, err)
	}
	return nil
}

// attachLines loads the lines of every given return in one query.
func (r *returnRepository) attachLines(ctx context.Context, rets []models.SalesReturn) error {
	if len(rets) == 0 {
		return nil
	}
	ids := make([]string, len(rets))
	byID := make(map[string]int, len(rets))
	for i, m := range rets {
		ids[i] = m.ReturnID
		byID[m.ReturnID] = i
	}

	query := `SELECT ` + returnLineColumns + ` FROM sales_return_lines WHERE return_id = ANY($1) ORDER BY return_id, line_no;`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return persistenceError("failed to query return lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		l, err := scanReturnLine(rows)
		if err != nil {
			return persistenceError("failed to scan return line", err)
		}
		i := byID[l.ReturnID]
		rets[i].Lines = append(rets[i].Lines, l)
	}
	if err := rows.Err(); err != nil {
		return persistenceError("error iterating return lines", err)
	}
	return nil
}

// FindReturnByID retrieves a return with its lines.
func (r *returnRepository) FindReturnByID(ctx context.Context, ownerID, returnID string) (*domain.SalesReturn, error) {
	query := `SELECT ` + returnColumns + ` FROM sales_returns WHERE return_id = $1 AND owner_id = $2;`
	m, err := scanReturn(r.db.QueryRow(ctx, query, returnID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("return", returnID)
		}
		return nil, persistenceError("failed to find return "+returnID, err)
	}

	rets := []models.SalesReturn{m}
	if err := r.attachLines(ctx, rets); err != nil {
		return nil, err
	}
	ret := mapping.ToDomainSalesReturn(rets[0])
	return &ret, nil
}

// ListReturnsByInvoice retrieves every return against an invoice, oldest first, with lines.
func (r *returnRepository) ListReturnsByInvoice(ctx context.Context, ownerID, invoiceID string) ([]domain.SalesReturn, error) {
	query := `
		SELECT ` + returnColumns + `
		FROM sales_returns
		WHERE owner_id = $1 AND invoice_id = $2
		ORDER BY created_at, return_no;
	`
	rows, err := r.db.Query(ctx, query, ownerID, invoiceID)
	if err != nil {
		return nil, persistenceError("failed to list returns of invoice "+invoiceID, err)
	}
	defer rows.Close()

	var rets []models.SalesReturn
	for rows.Next() {
		m, err := scanReturn(rows)
		if err != nil {
			return nil, persistenceError("failed to scan return row", err)
		}
		rets = append(rets, m)
	}
	if err := rows.Err(); err != nil {
		return nil, persistenceError("error iterating return rows", err)
	}
	rows.Close()

	if err := r.attachLines(ctx, rets); err != nil {
		return nil, err
	}
	return mapping.ToDomainSalesReturnSlice(rets), nil
}

// ListReturns retrieves a page of return headers, newest first.
func (r *returnRepository) ListReturns(ctx context.Context, ownerID string, limit int, nextToken *string) ([]domain.SalesReturn, *string, error) {
	query, args, limit, err := pageQuery(`SELECT `+returnColumns+` FROM sales_returns WHERE owner_id = $1`,
		[]any{ownerID}, nextToken, "created_at", "return_id", limit)
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, persistenceError("failed to list returns", err)
	}
	defer rows.Close()

	rets := make([]models.SalesReturn, 0, limit+1)
	for rows.Next() {
		m, err := scanReturn(rows)
		if err != nil {
			return nil, nil, persistenceError("failed to scan return row", err)
		}
		rets = append(rets, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, persistenceError("error iterating return rows", err)
	}

	page, next := trimPage(rets, limit, func(m models.SalesReturn) (time.Time, string) { return m.CreatedAt, m.ReturnID })
	return mapping.ToDomainSalesReturnSlice(page), next, nil
}

// CountReturnsByInvoice counts returns recorded against an invoice.
func (r *returnRepository) CountReturnsByInvoice(ctx context.Context, ownerID, invoiceID string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM sales_returns WHERE owner_id = $1 AND invoice_id = $2;`, ownerID, invoiceID).Scan(&n)
	if err != nil {
		return 0, persistenceError("failed to count returns of invoice "+invoiceID, err)
	}
	return n, nil
}

// MarkLineInventoryAdjusted flags a return line as restocked.
func (r *returnRepository) MarkLineInventoryAdjusted(ctx context.Context, returnID string, lineNo int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE sales_return_lines SET inventory_adjusted = TRUE WHERE return_id = $1 AND line_no = $2;`,
		returnID, lineNo)
	if err != nil {
		return persistenceError("failed to mark return line as restocked", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("return line", fmt.Sprintf("%s/%d", returnID, lineNo))
	}
	return nil
}

// DeleteReturn removes a return; its lines go with it.
func (r *returnRepository) DeleteReturn(ctx context.Context, ownerID, returnID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sales_returns WHERE return_id = $1 AND owner_id = $2;`, returnID, ownerID)
	if err != nil {
		return persistenceError("failed to delete return "+returnID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("return", returnID)
	}
	return nil
}
