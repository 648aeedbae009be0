package services

import (
	"time"

	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
)

// serviceOptions holds the optional collaborators a service may be built with.
type serviceOptions struct {
	clock     func() time.Time
	renderer  portssvc.DocumentRenderer
	artifacts portssvc.ArtifactStore
	notifier  portssvc.Notifier
}

// ServiceOption is a functional option for configuring services
type ServiceOption func(*serviceOptions)

// WithClock replaces time.Now, mainly for tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(o *serviceOptions) {
		o.clock = clock
	}
}

// WithDocumentRenderer enables receipt rendering after an invoice is committed.
func WithDocumentRenderer(renderer portssvc.DocumentRenderer) ServiceOption {
	return func(o *serviceOptions) {
		o.renderer = renderer
	}
}

// WithArtifactStore keeps rendered receipts.
func WithArtifactStore(store portssvc.ArtifactStore) ServiceOption {
	return func(o *serviceOptions) {
		o.artifacts = store
	}
}

// WithNotifier sends rendered receipts to customers.
func WithNotifier(notifier portssvc.Notifier) ServiceOption {
	return func(o *serviceOptions) {
		o.notifier = notifier
	}
}

func collectOptions(options []ServiceOption) serviceOptions {
	var o serviceOptions
	for _, option := range options {
		option(&o)
	}
	return o
}
