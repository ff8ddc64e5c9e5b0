package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"cobranca/internal/core"
)

// Store is an in-memory customer store. It backs tests and the demo
// deployment mode; the semantics mirror the SQLite repository.
type Store struct {
	mu    sync.Mutex
	items []record
}

// record pairs a customer with its insertion sequence so ties on CreatedAt
// order the same way the SQLite backend's rowid tie-break does.
type record struct {
	customer core.Customer
	seq      uint64
}

func New() *Store {
	return &Store{}
}

// NewSeeded builds a store preloaded with records. CreatedAt values are
// preserved, which lets tests pin the list order.
func NewSeeded(seed []core.Customer) *Store {
	s := New()
	for _, c := range seed {
		if c.CreatedAt.IsZero() {
			c.CreatedAt = time.Now().UTC()
		}
		s.items = append(s.items, record{customer: c, seq: uint64(len(s.items) + 1)})
	}
	return s
}

// ListCustomers returns a copy of all records ordered by CreatedAt
// descending, later insertions first on equal timestamps.
func (s *Store) ListCustomers(_ context.Context) ([]core.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sorted := make([]record, len(s.items))
	copy(sorted, s.items)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].customer.CreatedAt.Equal(sorted[j].customer.CreatedAt) {
			return sorted[i].customer.CreatedAt.After(sorted[j].customer.CreatedAt)
		}
		return sorted[i].seq > sorted[j].seq
	})
	out := make([]core.Customer, len(sorted))
	for i, r := range sorted {
		out[i] = r.customer
	}
	return out, nil
}

func (s *Store) GetCustomer(_ context.Context, id string) (core.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.items {
		if r.customer.ID == id {
			return r.customer, nil
		}
	}
	return core.Customer{}, fmt.Errorf("customer %s: %w", id, core.ErrNotFound)
}

func (s *Store) CreateCustomer(_ context.Context, c core.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.items {
		if existing.customer.ID == c.ID {
			return fmt.Errorf("customer %s: %w", c.ID, core.ErrConflict)
		}
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	s.items = append(s.items, record{customer: c, seq: uint64(len(s.items) + 1)})
	return nil
}

func (s *Store) UpdateCustomer(_ context.Context, id string, upd core.CustomerUpdate) error {
	if err := upd.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.items {
		if existing.customer.ID == id {
			// Full replace of the mutable fields; id and CreatedAt stay.
			s.items[i].customer.Name = upd.Name
			s.items[i].customer.Phone = upd.Phone
			s.items[i].customer.Email = upd.Email
			s.items[i].customer.TotalDebt = upd.TotalDebt
			return nil
		}
	}
	return fmt.Errorf("customer %s: %w", id, core.ErrNotFound)
}
