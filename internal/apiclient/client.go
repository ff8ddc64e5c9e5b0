// Package apiclient is a small typed client for the customer gateway,
// used by the dashboard state controller.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cobranca/internal/core"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *Client) ListCustomers(ctx context.Context) ([]core.Customer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/customers", nil)
	if err != nil {
		return nil, fmt.Errorf("build list request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var list []core.Customer
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode customer list: %w", err)
	}
	return list, nil
}

func (c *Client) CreateCustomer(ctx context.Context, customer core.Customer) error {
	return c.sendJSON(ctx, http.MethodPost, c.baseURL+"/customers", customer, http.StatusCreated)
}

func (c *Client) UpdateCustomer(ctx context.Context, id string, upd core.CustomerUpdate) error {
	return c.sendJSON(ctx, http.MethodPut, c.baseURL+"/customers/"+id, upd, http.StatusOK)
}

func (c *Client) sendJSON(ctx context.Context, method, url string, body any, wantStatus int) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return apiError(resp)
	}
	return nil
}

// apiError maps the gateway's {"error": msg} envelope back onto sentinel
// errors where the status makes the cause unambiguous.
func apiError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	msg := resp.Status
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		msg = body.Error
	}

	switch resp.StatusCode {
	case http.StatusConflict:
		return fmt.Errorf("%s: %w", msg, core.ErrConflict)
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", msg, core.ErrNotFound)
	default:
		return fmt.Errorf("api error (%d): %s", resp.StatusCode, msg)
	}
}
