// Package state holds the dashboard's client-side view of the customer
// collection: cached list, search term, and derived statistics.
package state

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"cobranca/internal/advisory"
	"cobranca/internal/core"
)

// Client is the slice of the gateway API the controller needs.
// *apiclient.Client satisfies it.
type Client interface {
	ListCustomers(ctx context.Context) ([]core.Customer, error)
	CreateCustomer(ctx context.Context, customer core.Customer) error
	UpdateCustomer(ctx context.Context, id string, upd core.CustomerUpdate) error
}

// Controller caches the customer list and refreshes it after every
// mutation. Concurrent refreshes are sequence numbered so a slow, stale
// response can never overwrite a newer one.
type Controller struct {
	api     Client
	advisor advisory.Advisor

	mu         sync.Mutex
	customers  []core.Customer
	inflight   int
	lastErr    error
	search     string
	nextSeq    uint64
	appliedSeq uint64
}

func NewController(api Client) *Controller {
	return NewControllerWithAdvisor(api, advisory.Unavailable{})
}

func NewControllerWithAdvisor(api Client, advisor advisory.Advisor) *Controller {
	if advisor == nil {
		advisor = advisory.Unavailable{}
	}
	return &Controller{api: api, advisor: advisor}
}

// Refresh fetches the full customer list from the gateway. The result is
// applied only if no newer refresh has completed in the meantime.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.nextSeq++
	seq := c.nextSeq
	c.inflight++
	c.mu.Unlock()

	list, err := c.api.ListCustomers(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--

	if seq <= c.appliedSeq {
		// A newer refresh already landed; drop this result entirely.
		slog.DebugContext(ctx, "Discarding stale customer list response",
			"seq", seq, "applied_seq", c.appliedSeq)
		return nil
	}
	c.appliedSeq = seq

	if err != nil {
		// A failed load empties the view instead of showing stale rows.
		c.customers = nil
		c.lastErr = fmt.Errorf("refresh customers: %w", err)
		return c.lastErr
	}

	c.customers = list
	c.lastErr = nil
	return nil
}

// AddCustomer validates the new record, assigns it a fresh id, creates it
// through the gateway and refreshes the cached list. The list is left
// untouched when the create fails.
func (c *Controller) AddCustomer(ctx context.Context, name, phone, email string, totalDebt core.Money) (string, error) {
	customer := core.Customer{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Phone:     strings.TrimSpace(phone),
		Email:     strings.TrimSpace(email),
		TotalDebt: totalDebt,
	}

	if err := validateInput(customer.Name, customer.Email, totalDebt); err != nil {
		return "", err
	}

	if err := c.api.CreateCustomer(ctx, customer); err != nil {
		c.setErr(err)
		return "", fmt.Errorf("add customer: %w", err)
	}

	return customer.ID, c.Refresh(ctx)
}

// EditCustomer replaces the record through the gateway and refreshes.
func (c *Controller) EditCustomer(ctx context.Context, id string, upd core.CustomerUpdate) error {
	if err := validateInput(strings.TrimSpace(upd.Name), strings.TrimSpace(upd.Email), upd.TotalDebt); err != nil {
		return err
	}

	if err := c.api.UpdateCustomer(ctx, id, upd); err != nil {
		c.setErr(err)
		return fmt.Errorf("edit customer: %w", err)
	}

	return c.Refresh(ctx)
}

// validateInput rejects obviously bad records before they reach the wire.
// The email check is shallow: an address is only required to contain "@".
func validateInput(name, email string, totalDebt core.Money) error {
	if name == "" {
		return core.ErrEmptyName
	}
	if email != "" && !strings.Contains(email, "@") {
		return core.ErrInvalidEmail
	}
	if err := totalDebt.Validate(); err != nil {
		return err
	}
	return nil
}

func (c *Controller) setErr(err error) {
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()
}

// SetSearchTerm records the active search filter. Filtering itself is
// re-derived on every Filtered call, never stored.
func (c *Controller) SetSearchTerm(term string) {
	c.mu.Lock()
	c.search = term
	c.mu.Unlock()
}

func (c *Controller) SearchTerm() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.search
}

// Filtered returns the cached customers matching the current search term.
func (c *Controller) Filtered() []core.Customer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return core.FilterCustomers(c.customers, c.search)
}

// Stats derives dashboard statistics from the full cached list. The search
// filter never narrows the stats.
func (c *Controller) Stats() core.SummaryStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return core.Summarize(c.customers)
}

// Customers returns a copy of the cached list.
func (c *Controller) Customers() []core.Customer {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]core.Customer, len(c.customers))
	copy(out, c.customers)
	return out
}

// DebtStrategy asks the advisor for a collection suggestion for one loaded
// customer. An unknown id yields ErrNotFound; advisor degradation is
// expressed through the canned fallback texts, never an error.
func (c *Controller) DebtStrategy(ctx context.Context, customerID string, history []core.Transaction) (string, error) {
	c.mu.Lock()
	var found *core.Customer
	for i := range c.customers {
		if c.customers[i].ID == customerID {
			cp := c.customers[i]
			found = &cp
			break
		}
	}
	c.mu.Unlock()

	if found == nil {
		return "", fmt.Errorf("strategy for %s: %w", customerID, core.ErrNotFound)
	}
	return c.advisor.DebtStrategy(ctx, *found, history), nil
}

// Loading reports whether any refresh is still in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight > 0
}

func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}
