package core

import "testing"

func TestSummarizeEmptySet(t *testing.T) {
	stats := Summarize(nil)
	if stats.ActiveCustomers != 0 {
		t.Errorf("ActiveCustomers = %d, want 0", stats.ActiveCustomers)
	}
	if stats.TotalReceivable.Centavos != 0 {
		t.Errorf("TotalReceivable = %d, want 0", stats.TotalReceivable.Centavos)
	}
	if stats.HighDebtCount != 0 {
		t.Errorf("HighDebtCount = %d, want 0", stats.HighDebtCount)
	}
}

func TestSummarizeThresholdIsExclusive(t *testing.T) {
	customers := []Customer{
		{ID: "a1", Name: "Ana", TotalDebt: Money{Centavos: 550000}},       // R$ 5500
		{ID: "b2", Name: "Bruno", TotalDebt: Money{Centavos: 500000}},     // exactly R$ 5000
		{ID: "c3", Name: "Carla", TotalDebt: Money{Centavos: 120050}},     // R$ 1200,50
		{ID: "d4", Name: "Diego", TotalDebt: Money{Centavos: 0}},
	}
	stats := Summarize(customers)
	if stats.ActiveCustomers != 4 {
		t.Errorf("ActiveCustomers = %d, want 4", stats.ActiveCustomers)
	}
	if want := int64(550000 + 500000 + 120050); stats.TotalReceivable.Centavos != want {
		t.Errorf("TotalReceivable = %d, want %d", stats.TotalReceivable.Centavos, want)
	}
	if stats.HighDebtCount != 1 {
		t.Errorf("HighDebtCount = %d, want 1 (threshold is exclusive)", stats.HighDebtCount)
	}
}

func TestSummarizeIsIdempotent(t *testing.T) {
	customers := []Customer{
		{ID: "a1", Name: "Ana", TotalDebt: Money{Centavos: 100}},
		{ID: "b2", Name: "Bruno", TotalDebt: Money{Centavos: 200}},
	}
	first := Summarize(customers)
	second := Summarize(customers)
	if first != second {
		t.Errorf("Summarize not idempotent: %+v vs %+v", first, second)
	}
}

func TestFilterCustomers(t *testing.T) {
	customers := []Customer{
		{ID: "a1", Name: "Ana Maria", Email: "ana@example.com"},
		{ID: "b2", Name: "Bruno", Email: "bruno@empresa.com.br"},
		{ID: "c3", Name: "Carla", Email: "carla@example.com"},
	}

	tests := []struct {
		term string
		want int
	}{
		{"", 3},
		{"ana", 1},
		{"ANA", 1},
		{"example.com", 2},
		{"empresa", 1}, // email-only match
		{"zzz", 0},
	}
	for _, tt := range tests {
		got := FilterCustomers(customers, tt.term)
		if len(got) != tt.want {
			t.Errorf("FilterCustomers(%q): got %d customers, want %d", tt.term, len(got), tt.want)
		}
	}

	// No-match filtering must leave the underlying set untouched.
	if got := FilterCustomers(customers, "no such customer"); len(got) != 0 {
		t.Fatalf("expected empty filtered view, got %d", len(got))
	}
	if len(customers) != 3 {
		t.Fatalf("underlying set mutated: %d", len(customers))
	}
}
