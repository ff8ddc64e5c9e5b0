package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"cobranca/internal/amqp"
	"cobranca/internal/core"
	"cobranca/internal/customers"
	applog "cobranca/internal/log"
)

// EventPublisher is satisfied by *amqp.Client. Publishing is best-effort:
// the write already succeeded when an event goes out.
type EventPublisher interface {
	PublishCustomerEvent(ctx context.Context, kind amqp.EventKind, customerID string) error
	Close() error
}

// CustomerService fronts a customer store and notifies the mirror worker
// about mutations. It implements customers.Store itself so the gateway can
// stay unaware of event publishing.
type CustomerService struct {
	store  customers.Store
	events EventPublisher
}

func NewCustomerService(store customers.Store, events EventPublisher) *CustomerService {
	return &CustomerService{
		store:  store,
		events: events,
	}
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]core.Customer, error) {
	return s.store.ListCustomers(ctx)
}

func (s *CustomerService) GetCustomer(ctx context.Context, id string) (core.Customer, error) {
	return s.store.GetCustomer(ctx, id)
}

// CreateCustomer writes the record, then publishes a created event.
// A failed publish never fails the request; the record is already durable.
func (s *CustomerService) CreateCustomer(ctx context.Context, c core.Customer) error {
	if err := s.store.CreateCustomer(ctx, c); err != nil {
		return fmt.Errorf("save customer: %w", err)
	}
	s.publish(ctx, amqp.CustomerCreated, c.ID)
	return nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, upd core.CustomerUpdate) error {
	if err := s.store.UpdateCustomer(ctx, id, upd); err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	s.publish(ctx, amqp.CustomerUpdated, id)
	return nil
}

func (s *CustomerService) publish(ctx context.Context, kind amqp.EventKind, customerID string) {
	if s.events == nil {
		slog.DebugContext(ctx, "Event publisher not configured, skipping customer event",
			applog.FieldCustomerID, customerID, applog.FieldEventKind, string(kind))
		return
	}
	if err := s.events.PublishCustomerEvent(ctx, kind, customerID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish customer event",
			applog.FieldCustomerID, customerID,
			applog.FieldEventKind, string(kind),
			applog.FieldError, err)
	}
}

// Close releases the store and the event publisher.
func (s *CustomerService) Close() error {
	var errs []error

	if closer, ok := s.store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if s.events != nil {
		if err := s.events.Close(); err != nil {
			errs = append(errs, fmt.Errorf("events: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close customer service: %v", errs)
	}
	return nil
}
