package services

import (
	portsrepo "github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// Options apply to every service; only the invoice service uses the document collaborators.
func NewServiceContainer(repos portsrepo.RepositoryProvider, options ...ServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Item:     NewItemService(repos, options...),
		Customer: NewCustomerService(repos, options...),
		Invoice:  NewInvoiceService(repos, options...),
		Return:   NewReturnService(repos, options...),
	}
}
