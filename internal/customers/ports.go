package customers

import (
	"context"

	"cobranca/internal/core"
)

// Ports for the customer store backends.
type (
	Lister interface {
		// ListCustomers returns every record, newest first. No pagination.
		ListCustomers(ctx context.Context) ([]core.Customer, error)
	}

	Creator interface {
		// CreateCustomer inserts one record. The id comes from the client;
		// a duplicate fails with core.ErrConflict.
		CreateCustomer(ctx context.Context, c core.Customer) error
	}

	Updater interface {
		// UpdateCustomer replaces name, phone, email and totalDebt for the
		// matching record. core.ErrNotFound when the id is unknown.
		UpdateCustomer(ctx context.Context, id string, upd core.CustomerUpdate) error
	}

	Getter interface {
		GetCustomer(ctx context.Context, id string) (core.Customer, error)
	}

	// Store is the full surface the gateway needs. Deletion is deliberately
	// absent from the contract.
	Store interface {
		Lister
		Creator
		Updater
		Getter
	}
)
