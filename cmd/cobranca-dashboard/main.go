// The cobranca-dashboard process is the terminal rendition of the debt
// dashboard: it drives the state controller against a running gateway,
// showing the customer list, derived stats, and advisory suggestions.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"cobranca/internal/advisory"
	"cobranca/internal/apiclient"
	"cobranca/internal/config"
	"cobranca/internal/core"
	applog "cobranca/internal/log"
	"cobranca/internal/state"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentState)
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Without a key the advisor degrades to its canned message; the
	// dashboard itself stays fully usable.
	advisor, err := advisory.NewFromConfig(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Error("Failed to initialize advisor", "error", err)
		os.Exit(1)
	}
	cached := advisory.NewCached(advisor, 128, 10*time.Minute)

	ctrl := state.NewControllerWithAdvisor(apiclient.New(cfg.APIBaseURL), cached)

	if err := ctrl.Refresh(ctx); err != nil {
		logger.Error("Initial load failed", "error", err, "api_base_url", cfg.APIBaseURL)
		os.Exit(1)
	}

	fmt.Println("cobranca dashboard. Comandos: list, search <termo>, add <nome>;<telefone>;<email>;<divida>, edit <id> <nome>;<telefone>;<email>;<divida>, strategy <id>, refresh, quit")
	printDashboard(ctrl)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")

		switch cmd {
		case "quit", "exit":
			return
		case "refresh":
			if err := ctrl.Refresh(ctx); err != nil {
				fmt.Println("erro:", err)
				continue
			}
			printDashboard(ctrl)
		case "list":
			ctrl.SetSearchTerm("")
			printDashboard(ctrl)
		case "search":
			ctrl.SetSearchTerm(rest)
			printDashboard(ctrl)
		case "add":
			name, phone, email, debt, err := parseCustomerFields(rest)
			if err != nil {
				fmt.Println("erro:", err)
				continue
			}
			id, err := ctrl.AddCustomer(ctx, name, phone, email, debt)
			if err != nil {
				fmt.Println("erro:", err)
				continue
			}
			fmt.Println("cliente criado:", id)
			printDashboard(ctrl)
		case "edit":
			id, fields, ok := strings.Cut(rest, " ")
			if !ok {
				fmt.Println("uso: edit <id> <nome>;<telefone>;<email>;<divida>")
				continue
			}
			name, phone, email, debt, err := parseCustomerFields(fields)
			if err != nil {
				fmt.Println("erro:", err)
				continue
			}
			upd := core.CustomerUpdate{Name: name, Phone: phone, Email: email, TotalDebt: debt}
			if err := ctrl.EditCustomer(ctx, id, upd); err != nil {
				fmt.Println("erro:", err)
				continue
			}
			fmt.Println("cliente atualizado:", id)
			printDashboard(ctrl)
		case "strategy":
			text, err := ctrl.DebtStrategy(ctx, strings.TrimSpace(rest), nil)
			if err != nil {
				fmt.Println("erro:", err)
				continue
			}
			fmt.Println(text)
		default:
			fmt.Println("comando desconhecido:", cmd)
		}
	}
}

// parseCustomerFields splits "nome;telefone;email;divida". Trailing fields
// may be omitted; the debt accepts both "1234.56" and "1234,56".
func parseCustomerFields(s string) (name, phone, email string, debt core.Money, err error) {
	parts := strings.Split(s, ";")
	if len(parts) > 0 {
		name = strings.TrimSpace(parts[0])
	}
	if len(parts) > 1 {
		phone = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		email = strings.TrimSpace(parts[2])
	}
	if len(parts) > 3 {
		centavos, perr := core.ParseDecimalToCentavos(strings.TrimSpace(parts[3]))
		if perr != nil {
			return "", "", "", core.Money{}, fmt.Errorf("dívida inválida %q: %w", parts[3], perr)
		}
		debt = core.Money{Centavos: centavos}
	}
	return name, phone, email, debt, nil
}

func printDashboard(ctrl *state.Controller) {
	stats := ctrl.Stats()
	fmt.Printf("Total a receber: %s | Clientes ativos: %d | Dívidas altas: %d\n",
		stats.TotalReceivable, stats.ActiveCustomers, stats.HighDebtCount)

	list := ctrl.Filtered()
	if term := ctrl.SearchTerm(); term != "" {
		fmt.Printf("filtro: %q (%d resultados)\n", term, len(list))
	}
	for _, c := range list {
		fmt.Printf("  %-36s  %-30s  %-15s  %-30s  %s\n", c.ID, c.Name, c.Phone, c.Email, c.TotalDebt)
	}
	if len(list) == 0 {
		fmt.Println("  (nenhum cliente)")
	}
}
