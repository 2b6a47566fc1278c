package collector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"VexlConverter/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BackendClient wraps the converter backend REST API.
type BackendClient struct {
	BaseURL string
	Client  *http.Client
}

// NewBackendClient creates a backend client with optional proxy support.
func NewBackendClient(baseURL, proxyURL string, timeout time.Duration) *BackendClient {
	return &BackendClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  newHTTPClient(proxyURL, timeout),
	}
}

// envelope is the soft-failure wrapper every data endpoint responds with.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data"`
	Error   string `json:"error"`
}

func (e *envelope[T]) result() model.Result[T] {
	if e.Success && e.Data != nil {
		return model.Ok(*e.Data)
	}
	return model.Fail[T](e.Error)
}

type convertRequest struct {
	BTCAmount json.Number `json:"btc_amount"`
}

// Health checks backend liveness.
func (c *BackendClient) Health(ctx context.Context) (*model.Health, error) {
	var h model.Health
	if err := c.do(ctx, "health", http.MethodGet, "/api/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// LatestPrices returns the latest BTC/USD and BTC/EUR prices.
func (c *BackendClient) LatestPrices(ctx context.Context) (model.Result[model.PriceSnapshot], error) {
	var env envelope[model.PriceSnapshot]
	if err := c.do(ctx, "latest prices", http.MethodGet, "/api/prices/latest", nil, &env); err != nil {
		return model.Result[model.PriceSnapshot]{}, err
	}
	return env.result(), nil
}

// Convert asks the backend to price btc in USD and EUR. The server answers
// non-positive amounts with a failed result, not an HTTP error.
func (c *BackendClient) Convert(ctx context.Context, btc decimal.Decimal) (model.Result[model.Conversion], error) {
	var env envelope[model.Conversion]
	body := convertRequest{BTCAmount: json.Number(btc.String())}
	if err := c.do(ctx, "convert", http.MethodPost, "/api/convert", body, &env); err != nil {
		return model.Result[model.Conversion]{}, err
	}
	return env.result(), nil
}

// Currencies returns the backend's supported currency codes in server order.
func (c *BackendClient) Currencies(ctx context.Context) ([]string, error) {
	var out struct {
		Currencies []string `json:"currencies"`
	}
	if err := c.do(ctx, "currencies", http.MethodGet, "/api/currencies", nil, &out); err != nil {
		return nil, err
	}
	return out.Currencies, nil
}

// History returns the rate history of the last rangeHours hours.
func (c *BackendClient) History(ctx context.Context, rangeHours int) (model.Result[[]model.HistoryRecord], error) {
	path := "/api/history/last-24h"
	if rangeHours > 0 && rangeHours != 24 {
		path = fmt.Sprintf("/api/history/rate-history?hours=%d", rangeHours)
	}
	var env envelope[[]model.HistoryRecord]
	if err := c.do(ctx, "history", http.MethodGet, path, nil, &env); err != nil {
		return model.Result[[]model.HistoryRecord]{}, err
	}
	return env.result(), nil
}

// HistoryTotal returns the number of history records stored server side.
func (c *BackendClient) HistoryTotal(ctx context.Context) (model.Result[int64], error) {
	var out struct {
		Success bool   `json:"success"`
		Total   int64  `json:"total"`
		Error   string `json:"error"`
	}
	if err := c.do(ctx, "history total", http.MethodGet, "/api/history/total", nil, &out); err != nil {
		return model.Result[int64]{}, err
	}
	if !out.Success {
		return model.Fail[int64](out.Error), nil
	}
	return model.Ok(out.Total), nil
}

func (c *BackendClient) do(ctx context.Context, op, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("marshal request: %w", err)}
		}
		rdr = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rdr)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[WARN] %s %s failed (request %s): status %d", method, path, reqID, resp.StatusCode)
		return &TransportError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("body: %s", string(data))}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}
