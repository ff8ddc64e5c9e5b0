package advisory

import (
	"context"
	"log/slog"
	"time"

	"cobranca/internal/cache"
	"cobranca/internal/core"
	applog "cobranca/internal/log"
)

// Cached memoizes strategies per customer so repeated dashboard views do
// not re-query the model. Fallback messages are never cached, so a
// transient outage does not pin a canned answer for the whole TTL.
type Cached struct {
	inner Advisor
	cache *cache.LRUCache[string]
}

func NewCached(inner Advisor, maxEntries int, ttl time.Duration) *Cached {
	return &Cached{
		inner: inner,
		cache: cache.NewLRUCache[string](maxEntries, ttl),
	}
}

func (c *Cached) DebtStrategy(ctx context.Context, customer core.Customer, history []core.Transaction) (strategy string) {
	if cached, ok := c.cache.Get(customer.ID); ok {
		return cached
	}

	// A misbehaving advisor must not take the dashboard down with it.
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "Advisor panicked", applog.FieldCustomerID, customer.ID, "panic", r)
			strategy = FallbackUnavailable
		}
	}()

	strategy = c.inner.DebtStrategy(ctx, customer, history)
	if strategy != FallbackUnavailable && strategy != FallbackNoKey {
		c.cache.Set(customer.ID, strategy)
	}
	return strategy
}

// Invalidate drops the cached strategy for one customer, used after a
// mutation changes the debt picture.
func (c *Cached) Invalidate(customerID string) {
	c.cache.Delete(customerID)
}
