package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/core/domain"
	"github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
)

type returnRepo struct {
	st func() *state
}

func returnKey(r domain.SalesReturn) (time.Time, string) { return r.CreatedAt, r.ReturnID }

func (r *returnRepo) FindReturnByID(_ context.Context, ownerID, returnID string) (*domain.SalesReturn, error) {
	ret, ok := r.st().returns[returnID]
	if !ok || ret.OwnerID != ownerID {
		return nil, apperrors.NewNotFoundError("return", returnID)
	}
	ret = cloneReturn(ret)
	return &ret, nil
}

func (r *returnRepo) ListReturnsByInvoice(_ context.Context, ownerID, invoiceID string) ([]domain.SalesReturn, error) {
	var rows []domain.SalesReturn
	for _, ret := range r.st().returns {
		if ret.OwnerID == ownerID && ret.InvoiceID == invoiceID {
			rows = append(rows, cloneReturn(ret))
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].ReturnNo < rows[j].ReturnNo
		}
		return rows[i].CreatedAt.Before(rows[j].CreatedAt)
	})
	return rows, nil
}

func (r *returnRepo) ListReturns(_ context.Context, ownerID string, limit int, nextToken *string) ([]domain.SalesReturn, *string, error) {
	var rows []domain.SalesReturn
	for _, ret := range r.st().returns {
		if ret.OwnerID == ownerID {
			ret.Lines = nil
			rows = append(rows, ret)
		}
	}
	sortNewestFirst(rows, returnKey)
	return page(rows, limit, nextToken, returnKey)
}

func (r *returnRepo) CountReturnsByInvoice(_ context.Context, ownerID, invoiceID string) (int, error) {
	n := 0
	for _, ret := range r.st().returns {
		if ret.OwnerID == ownerID && ret.InvoiceID == invoiceID {
			n++
		}
	}
	return n, nil
}

func (r *returnRepo) SaveReturn(_ context.Context, ret domain.SalesReturn) error {
	st := r.st()
	if _, exists := st.returns[ret.ReturnID]; exists {
		return fmt.Errorf("%w: return %s", apperrors.ErrDuplicate, ret.ReturnID)
	}
	st.returns[ret.ReturnID] = cloneReturn(ret)
	return nil
}

func (r *returnRepo) MarkLineInventoryAdjusted(_ context.Context, returnID string, lineNo int) error {
	st := r.st()
	ret, ok := st.returns[returnID]
	if !ok {
		return apperrors.NewNotFoundError("return", returnID)
	}
	for i := range ret.Lines {
		if ret.Lines[i].LineNo == lineNo {
			ret.Lines[i].InventoryAdjusted = true
			st.returns[returnID] = ret
			return nil
		}
	}
	return apperrors.NewNotFoundError("return line", fmt.Sprintf("%s/%d", returnID, lineNo))
}

func (r *returnRepo) DeleteReturn(_ context.Context, ownerID, returnID string) error {
	st := r.st()
	ret, ok := st.returns[returnID]
	if !ok || ret.OwnerID != ownerID {
		return apperrors.NewNotFoundError("return", returnID)
	}
	delete(st.returns, returnID)
	return nil
}

var _ repositories.ReturnRepositoryFacade = (*returnRepo)(nil)
