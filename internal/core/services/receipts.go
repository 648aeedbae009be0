package services

import (
	"context"
	"fmt"
	"log/slog"

	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
	"github.com/SscSPs/pos_ledger/internal/middleware"
)

// receiptPublisher renders, stores and sends a receipt once an invoice has been committed.
// Every step is best effort: failures are logged and never reach the caller.
type receiptPublisher struct {
	renderer  portssvc.DocumentRenderer
	artifacts portssvc.ArtifactStore
	notifier  portssvc.Notifier
}

func newReceiptPublisher(opts serviceOptions) *receiptPublisher {
	if opts.renderer == nil && opts.notifier == nil {
		return nil
	}
	return &receiptPublisher{renderer: opts.renderer, artifacts: opts.artifacts, notifier: opts.notifier}
}

func (p *receiptPublisher) publish(ctx context.Context, doc portssvc.InvoiceDocument) {
	if p == nil {
		return
	}
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("invoice_no", doc.Invoice.InvoiceNo))

	var artifact *portssvc.Artifact
	if p.renderer != nil {
		rendered, err := p.renderer.RenderInvoice(ctx, doc)
		if err != nil {
			logger.Warn("Failed to render receipt", slog.String("error", err.Error()))
		} else {
			artifact = rendered
		}
	}

	var location string
	if artifact != nil && p.artifacts != nil {
		key := fmt.Sprintf("%s/receipts/%s", doc.Invoice.OwnerID, artifact.Name)
		loc, err := p.artifacts.Put(ctx, key, artifact)
		if err != nil {
			logger.Warn("Failed to store receipt", slog.String("error", err.Error()))
		} else {
			location = loc
			logger.Info("Receipt stored", slog.String("location", location))
		}
	}

	if p.notifier != nil {
		if err := p.notifier.NotifyInvoice(ctx, doc, artifact, location); err != nil {
			logger.Warn("Failed to notify customer", slog.String("error", err.Error()))
		}
	}
}
