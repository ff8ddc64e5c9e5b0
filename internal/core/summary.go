package core

import "strings"

// HighDebtThresholdCentavos is the cutoff above which a customer counts as
// high-debt on the dashboard. The comparison is strict: a debt of exactly
// R$ 5000,00 is not high-debt.
const HighDebtThresholdCentavos int64 = 500_000

// SummaryStats are the aggregate values derived from the loaded customer
// set. They are recomputed on every change and never persisted.
type SummaryStats struct {
	TotalReceivable Money `json:"totalReceivable"`
	ActiveCustomers int   `json:"activeCustomers"`
	HighDebtCount   int   `json:"highDebtCount"`
}

// Summarize derives the dashboard stats as a pure function of the set.
// Calling it twice on the same slice yields identical results.
func Summarize(customers []Customer) SummaryStats {
	stats := SummaryStats{ActiveCustomers: len(customers)}
	for _, c := range customers {
		stats.TotalReceivable.Centavos += c.TotalDebt.Centavos
		if c.TotalDebt.Centavos > HighDebtThresholdCentavos {
			stats.HighDebtCount++
		}
	}
	return stats
}

// FilterCustomers returns the customers whose name or email contains the
// search term, case-insensitively. An empty term returns a copy of the
// whole set. The input slice is never mutated.
func FilterCustomers(customers []Customer, term string) []Customer {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]Customer, 0, len(customers))
	for _, c := range customers {
		if term == "" ||
			strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.Email), term) {
			out = append(out, c)
		}
	}
	return out
}
