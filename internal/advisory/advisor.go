// Package advisory generates collection-strategy suggestions for a
// customer. The feature is strictly optional: every failure path resolves
// to a canned message instead of an error.
package advisory

import (
	"context"
	"encoding/json"
	"fmt"

	"cobranca/internal/core"
)

// Canned messages shown when no suggestion can be produced. The dashboard
// renders them verbatim.
const (
	FallbackNoKey       = "Análise de IA indisponível (Chave não configurada)."
	FallbackUnavailable = "Não foi possível gerar uma estratégia no momento."
)

// Advisor produces a short collection strategy for one customer. It never
// returns an error: unavailability is expressed through the fallback
// messages.
type Advisor interface {
	DebtStrategy(ctx context.Context, customer core.Customer, history []core.Transaction) string
}

// Unavailable is the advisor used when no API key is configured.
type Unavailable struct{}

func (Unavailable) DebtStrategy(context.Context, core.Customer, []core.Transaction) string {
	return FallbackNoKey
}

// buildPrompt renders the advisory prompt. The transaction history is
// embedded as JSON so the model sees amounts and dates verbatim.
func buildPrompt(customer core.Customer, history []core.Transaction) string {
	historyJSON, err := json.Marshal(history)
	if err != nil {
		historyJSON = []byte("[]")
	}

	return fmt.Sprintf(`Você é um assistente financeiro especializado em cobrança amigável.
Analise o cliente abaixo e sugira uma estratégia curta de cobrança em português.

Cliente: %s
Dívida total: %s
Histórico de transações: %s

Responda em no máximo três frases, com tom profissional e cordial.`,
		customer.Name, customer.TotalDebt.String(), historyJSON)
}
