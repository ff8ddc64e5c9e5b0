package advisory

import (
	"context"
	"strings"
	"testing"
	"time"

	"cobranca/internal/core"
)

type stubAdvisor struct {
	reply string
	calls int
	panic bool
}

func (s *stubAdvisor) DebtStrategy(context.Context, core.Customer, []core.Transaction) string {
	s.calls++
	if s.panic {
		panic("model client blew up")
	}
	return s.reply
}

func testCustomer() core.Customer {
	return core.Customer{ID: "c1", Name: "Padaria Central", TotalDebt: core.Money{Centavos: 550000}}
}

func TestUnavailableAdvisor(t *testing.T) {
	got := Unavailable{}.DebtStrategy(context.Background(), testCustomer(), nil)
	if got != FallbackNoKey {
		t.Errorf("got %q, want %q", got, FallbackNoKey)
	}
}

func TestNewFromConfigWithoutKey(t *testing.T) {
	adv, err := NewFromConfig(context.Background(), "", "models/gemini-1.5-flash")
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	if _, ok := adv.(Unavailable); !ok {
		t.Errorf("expected Unavailable advisor, got %T", adv)
	}
}

func TestCachedMemoizes(t *testing.T) {
	stub := &stubAdvisor{reply: "Negocie um parcelamento em três vezes."}
	cached := NewCached(stub, 10, time.Minute)

	first := cached.DebtStrategy(context.Background(), testCustomer(), nil)
	second := cached.DebtStrategy(context.Background(), testCustomer(), nil)

	if first != stub.reply || second != stub.reply {
		t.Errorf("replies = %q, %q", first, second)
	}
	if stub.calls != 1 {
		t.Errorf("inner advisor called %d times, want 1", stub.calls)
	}
}

func TestCachedDoesNotCacheFallbacks(t *testing.T) {
	stub := &stubAdvisor{reply: FallbackUnavailable}
	cached := NewCached(stub, 10, time.Minute)

	cached.DebtStrategy(context.Background(), testCustomer(), nil)
	cached.DebtStrategy(context.Background(), testCustomer(), nil)

	if stub.calls != 2 {
		t.Errorf("fallback was cached: inner called %d times, want 2", stub.calls)
	}
}

func TestCachedRecoversFromPanic(t *testing.T) {
	cached := NewCached(&stubAdvisor{panic: true}, 10, time.Minute)

	got := cached.DebtStrategy(context.Background(), testCustomer(), nil)
	if got != FallbackUnavailable {
		t.Errorf("got %q, want fallback", got)
	}
}

func TestCachedInvalidate(t *testing.T) {
	stub := &stubAdvisor{reply: "Ofereça um desconto para quitação à vista."}
	cached := NewCached(stub, 10, time.Minute)

	cached.DebtStrategy(context.Background(), testCustomer(), nil)
	cached.Invalidate("c1")
	cached.DebtStrategy(context.Background(), testCustomer(), nil)

	if stub.calls != 2 {
		t.Errorf("invalidate did not evict: inner called %d times, want 2", stub.calls)
	}
}

func TestBuildPromptIncludesCustomerData(t *testing.T) {
	history := []core.Transaction{{
		ID:         "t1",
		CustomerID: "c1",
		Amount:     core.Money{Centavos: 10000},
		Kind:       core.Debt,
	}}
	prompt := buildPrompt(testCustomer(), history)

	for _, want := range []string{"Padaria Central", "R$ 5500,00", "DEBT"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
