package services

import (
	"context"

	"github.com/SscSPs/pos_ledger/internal/core/domain"
)

// InvoiceDocument is the data a receipt is rendered from.
type InvoiceDocument struct {
	Invoice  domain.Invoice
	Customer *domain.Customer // nil for walk-in sales
}

// Artifact is a rendered document.
type Artifact struct {
	Name        string
	ContentType string
	Body        []byte
}

// DocumentRenderer turns an invoice into a printable receipt.
type DocumentRenderer interface {
	RenderInvoice(ctx context.Context, doc InvoiceDocument) (*Artifact, error)
}

// ArtifactStore keeps rendered documents and returns a location clients can fetch them from.
type ArtifactStore interface {
	Put(ctx context.Context, key string, artifact *Artifact) (string, error)
}

// Notifier tells a customer about a new invoice.
type Notifier interface {
	NotifyInvoice(ctx context.Context, doc InvoiceDocument, artifact *Artifact, location string) error
}
