package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cobranca/internal/core"
	"cobranca/internal/customers/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := NewServer(":0", memory.New())
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestListEmpty(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/customers", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}

	var list []core.Customer
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty list, got %v", list)
	}
}

func TestCreateAndListRoundTrip(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/customers",
		`{"id":"c1","name":"Padaria Central","phone":"11 99999-0000","email":"contato@padaria.com","totalDebt":5500}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}

	var ack ackResponse
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		t.Fatalf("decode ack: %v", err)
	}
	if !ack.Success || ack.Message != "customer created" {
		t.Errorf("ack = %+v", ack)
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/customers", "")
	var list []core.Customer
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want 1", len(list))
	}
	if list[0].ID != "c1" || list[0].Name != "Padaria Central" {
		t.Errorf("unexpected customer %+v", list[0])
	}
	if list[0].TotalDebt.Centavos != 550000 {
		t.Errorf("TotalDebt = %d centavos, want 550000", list[0].TotalDebt.Centavos)
	}
}

func TestCreateRequiresIDAndName(t *testing.T) {
	ts := newTestServer(t)

	for name, body := range map[string]string{
		"missing id":   `{"name":"Sem ID"}`,
		"missing name": `{"id":"c1"}`,
		"blank name":   `{"id":"c1","name":"   "}`,
	} {
		t.Run(name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, ts.URL+"/customers", body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
			var errResp map[string]string
			if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if errResp["error"] != "name and id are required" {
				t.Errorf("error = %q", errResp["error"])
			}
		})
	}
}

func TestCreateDuplicateConflicts(t *testing.T) {
	ts := newTestServer(t)

	first := doJSON(t, http.MethodPost, ts.URL+"/customers", `{"id":"c1","name":"Ana"}`)
	if first.StatusCode != http.StatusCreated {
		t.Fatalf("first create status = %d", first.StatusCode)
	}

	resp := doJSON(t, http.MethodPost, ts.URL+"/customers", `{"id":"c1","name":"Outra"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate status = %d, want 409", resp.StatusCode)
	}
	var errResp map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if errResp["error"] != "customer already exists" {
		t.Errorf("error = %q", errResp["error"])
	}
}

func TestCreateRejectsNegativeDebt(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/customers", `{"id":"c1","name":"Ana","totalDebt":-10}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestCreateRejectsMalformedBody(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/customers", `{"id":`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestUpdateMissingCustomer(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, http.MethodPut, ts.URL+"/customers/ghost", `{"name":"Ninguem"}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	var errResp map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if errResp["error"] != "customer not found" {
		t.Errorf("error = %q", errResp["error"])
	}
}

func TestUpdateReplacesRecord(t *testing.T) {
	ts := newTestServer(t)

	doJSON(t, http.MethodPost, ts.URL+"/customers",
		`{"id":"c1","name":"Ana","phone":"11 1111","email":"ana@x.com","totalDebt":100}`)

	resp := doJSON(t, http.MethodPut, ts.URL+"/customers/c1",
		`{"name":"Ana Maria","totalDebt":250.5}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d, want 200", resp.StatusCode)
	}

	list := doJSON(t, http.MethodGet, ts.URL+"/customers", "")
	var customers []core.Customer
	if err := json.NewDecoder(list.Body).Decode(&customers); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(customers) != 1 {
		t.Fatalf("len = %d, want 1", len(customers))
	}
	got := customers[0]
	if got.Name != "Ana Maria" {
		t.Errorf("Name = %q", got.Name)
	}
	if got.TotalDebt.Centavos != 25050 {
		t.Errorf("TotalDebt = %d centavos, want 25050", got.TotalDebt.Centavos)
	}
	// Full replace: fields omitted from the request are cleared.
	if got.Email != "" || got.Phone != "" {
		t.Errorf("expected cleared contact fields, got phone=%q email=%q", got.Phone, got.Email)
	}
}

func TestPreflight(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/customers", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Methods"); got != "GET, POST, PUT, DELETE" {
		t.Errorf("Allow-Methods = %q", got)
	}
	if got := resp.Header.Get("Access-Control-Allow-Headers"); got != "Content-Type, Authorization" {
		t.Errorf("Allow-Headers = %q", got)
	}
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		resp := doJSON(t, http.MethodGet, ts.URL+path, "")
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, resp.StatusCode)
		}
	}
}
