// Package worker consumes customer events and keeps the spreadsheet
// mirror in sync with the store.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cobranca/internal/amqp"
	"cobranca/internal/core"
	"cobranca/internal/customers"
	applog "cobranca/internal/log"
	"cobranca/internal/mirror"
)

// MirrorWorker reacts to customer events by re-reading the current record
// and pushing it to the mirror. Events carry only the customer id, so the
// worker always mirrors the latest state, never the event payload.
type MirrorWorker struct {
	store     customers.Store
	mirror    mirror.CustomerMirror
	batchSize int
}

func NewMirrorWorker(store customers.Store, m mirror.CustomerMirror, batchSize int) *MirrorWorker {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &MirrorWorker{
		store:     store,
		mirror:    m,
		batchSize: batchSize,
	}
}

// HandleCustomerEvent processes one event. Returning an error requeues the
// message, so unrecoverable conditions are logged and swallowed instead.
func (w *MirrorWorker) HandleCustomerEvent(ctx context.Context, msg *amqp.CustomerEventMessage) error {
	if w.mirror == nil {
		slog.DebugContext(ctx, "Mirror not configured, skipping event",
			applog.FieldCustomerID, msg.CustomerID, applog.FieldEventKind, string(msg.Kind))
		return nil
	}

	customer, err := w.store.GetCustomer(ctx, msg.CustomerID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			// The record vanished between the event and now. Requeueing
			// cannot help, drop the event.
			slog.WarnContext(ctx, "Customer from event no longer exists, dropping",
				applog.FieldCustomerID, msg.CustomerID, applog.FieldEventKind, string(msg.Kind))
			return nil
		}
		return fmt.Errorf("load customer %s: %w", msg.CustomerID, err)
	}

	if err := w.mirror.MirrorCustomer(ctx, customer); err != nil {
		return fmt.Errorf("mirror customer %s: %w", msg.CustomerID, err)
	}

	slog.InfoContext(ctx, "Mirrored customer from event",
		applog.FieldCustomerID, msg.CustomerID, applog.FieldEventKind, string(msg.Kind))
	return nil
}

// RemirrorAll pushes every stored customer to the mirror, in batches so a
// long list yields between chunks. Used for periodic reconciliation: it
// repairs rows that drifted while events were lost.
func (w *MirrorWorker) RemirrorAll(ctx context.Context) error {
	if w.mirror == nil {
		return nil
	}

	list, err := w.store.ListCustomers(ctx)
	if err != nil {
		return fmt.Errorf("list customers for remirror: %w", err)
	}

	var failed int
	for i, customer := range list {
		if i > 0 && i%w.batchSize == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		if err := w.mirror.MirrorCustomer(ctx, customer); err != nil {
			failed++
			slog.ErrorContext(ctx, "Failed to remirror customer",
				applog.FieldCustomerID, customer.ID, applog.FieldError, err)
		}
	}

	slog.InfoContext(ctx, "Remirror pass finished",
		"total", len(list), "failed", failed)

	if failed > 0 {
		return fmt.Errorf("remirror: %d of %d customers failed", failed, len(list))
	}
	return nil
}
