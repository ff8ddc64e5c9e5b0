package apiclient_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"cobranca/internal/apiclient"
	"cobranca/internal/core"
	"cobranca/internal/customers/memory"
	apphttp "cobranca/internal/http"
	"cobranca/internal/state"
)

var _ state.Client = (*apiclient.Client)(nil)

func newClient(t *testing.T) *apiclient.Client {
	t.Helper()
	srv := apphttp.NewServer(":0", memory.New())
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return apiclient.New(ts.URL)
}

func TestRoundTripAgainstGateway(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	list, err := c.ListCustomers(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %v", list)
	}

	err = c.CreateCustomer(ctx, core.Customer{
		ID:        "c1",
		Name:      "Padaria Central",
		Email:     "contato@padaria.com",
		TotalDebt: core.Money{Centavos: 550000},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err = c.ListCustomers(ctx)
	if err != nil {
		t.Fatalf("list after create: %v", err)
	}
	if len(list) != 1 || list[0].ID != "c1" {
		t.Fatalf("list = %v", list)
	}
	if list[0].TotalDebt.Centavos != 550000 {
		t.Errorf("TotalDebt = %d centavos", list[0].TotalDebt.Centavos)
	}

	upd := core.CustomerUpdate{Name: "Padaria Central ME", TotalDebt: core.Money{Centavos: 100000}}
	if err := c.UpdateCustomer(ctx, "c1", upd); err != nil {
		t.Fatalf("update: %v", err)
	}

	list, _ = c.ListCustomers(ctx)
	if list[0].Name != "Padaria Central ME" || list[0].TotalDebt.Centavos != 100000 {
		t.Errorf("updated record = %+v", list[0])
	}
}

func TestConflictMapsToSentinel(t *testing.T) {
	c := newClient(t)
	ctx := context.Background()

	if err := c.CreateCustomer(ctx, core.Customer{ID: "c1", Name: "Ana"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := c.CreateCustomer(ctx, core.Customer{ID: "c1", Name: "Outra"})
	if !errors.Is(err, core.ErrConflict) {
		t.Errorf("duplicate err = %v, want ErrConflict", err)
	}
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	c := newClient(t)

	err := c.UpdateCustomer(context.Background(), "ghost", core.CustomerUpdate{Name: "Ninguem"})
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("missing err = %v, want ErrNotFound", err)
	}
}

func TestUnreachableGateway(t *testing.T) {
	c := apiclient.New("http://127.0.0.1:1")

	if _, err := c.ListCustomers(context.Background()); err == nil {
		t.Error("expected connection error")
	}
}
