package notify

import (
	"context"
	"log/slog"

	"github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/middleware"
)

// LogNotifier records notifications in the request log instead of sending them.
type LogNotifier struct{}

func (LogNotifier) NotifyInvoice(ctx context.Context, doc services.InvoiceDocument, _ *services.Artifact, location string) error {
	attrs := []any{slog.String("invoice_no", doc.Invoice.InvoiceNo), slog.String("location", location)}
	if doc.Customer != nil {
		attrs = append(attrs, slog.String("customer_id", doc.Customer.CustomerID))
	}
	middleware.GetLoggerFromCtx(ctx).Info("Invoice notification", attrs...)
	return nil
}

var _ services.Notifier = LogNotifier{}
