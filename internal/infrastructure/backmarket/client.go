// Package backmarket is a client for the Back Market Buyback API.
package backmarket

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/circtek/backend/internal/domain/shared"
	"github.com/circtek/backend/internal/infrastructure/config"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	basePath        = "/ws/buyback/v1"
	acceptHeader    = "application/json, application/problem+json"
	defaultTimeout  = 30 * time.Second
	maxResponseSize = 10 << 20
)

// ErrNotConfigured is returned by NewClient when no token is set
var ErrNotConfigured = errors.New("backmarket: token is not configured")

// APIError is a non-2xx response from Back Market
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	detail := gjson.GetBytes(e.Body, "detail").String()
	if detail == "" {
		detail = gjson.GetBytes(e.Body, "title").String()
	}
	if detail == "" {
		detail = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("backmarket: HTTP %d: %s", e.StatusCode, detail)
}

// Unwrap lets errors.Is(err, shared.ErrNotFound) match a 404
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return shared.ErrNotFound
	}
	return nil
}

// OrderPage is one page of GET /orders
type OrderPage struct {
	Count    int64             `json:"count"`
	Next     string            `json:"next,omitempty"`
	Previous string            `json:"previous,omitempty"`
	Results  []json.RawMessage `json:"results"`
}

// Order is a buyback order. Raw keeps the full upstream document.
type Order struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Raw    json.RawMessage `json:"raw"`
}

// Client calls the Buyback API with Basic auth
type Client struct {
	baseURL        string
	token          string
	acceptLanguage string
	httpClient     *http.Client
	logger         *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient builds a client from cfg
func NewClient(cfg config.BackMarketConfig, opts ...Option) (*Client, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/") + basePath,
		token:          cfg.Token,
		acceptLanguage: cfg.AcceptLanguage,
		httpClient:     &http.Client{Timeout: timeout},
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListOrders fetches one page of orders. limit <= 0 leaves the server default.
func (c *Client) ListOrders(ctx context.Context, page, limit int) (*OrderPage, error) {
	if page < 1 {
		page = 1
	}
	q := url.Values{"page": {strconv.Itoa(page)}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	body, err := c.do(ctx, http.MethodGet, "/orders?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	doc := gjson.ParseBytes(body)
	out := &OrderPage{
		Count:    doc.Get("count").Int(),
		Next:     doc.Get("next").String(),
		Previous: doc.Get("previous").String(),
		Results:  []json.RawMessage{},
	}
	doc.Get("results").ForEach(func(_, v gjson.Result) bool {
		out.Results = append(out.Results, json.RawMessage(v.Raw))
		return true
	})
	return out, nil
}

// GetOrder fetches one order
func (c *Client) GetOrder(ctx context.Context, id string) (*Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order id is required")
	}
	body, err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return parseOrder(body, id), nil
}

// UpdateOrderStatus sets an order status and returns the updated order
// when the API echoes one
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (*Order, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(status) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order id and status are required")
	}
	payload, err := json.Marshal(map[string]string{"status": status})
	if err != nil {
		return nil, fmt.Errorf("backmarket: failed to marshal status: %w", err)
	}
	body, err := c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(id)+"/status", payload)
	if err != nil {
		return nil, err
	}
	order := parseOrder(body, id)
	if order.Status == "" {
		order.Status = status
	}
	return order, nil
}

func parseOrder(body []byte, fallbackID string) *Order {
	doc := gjson.ParseBytes(body)
	id := doc.Get("id").String()
	if id == "" {
		id = doc.Get("orderId").String()
	}
	if id == "" {
		id = fallbackID
	}
	status := doc.Get("status").String()
	if status == "" {
		status = doc.Get("state").String()
	}
	raw := json.RawMessage(doc.Raw)
	if !doc.Exists() {
		raw = json.RawMessage("null")
	}
	return &Order{ID: id, Status: status, Raw: raw}
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("backmarket: failed to create request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Authorization", "Basic "+c.token)
	if c.acceptLanguage != "" {
		req.Header.Set("Accept-Language", c.acceptLanguage)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backmarket: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("backmarket: failed to read response: %w", err)
	}
	c.logger.Debug("Back Market request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}
