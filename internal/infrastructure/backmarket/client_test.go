package backmarket

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/circtek/backend/internal/domain/shared"
	"github.com/circtek/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(config.BackMarketConfig{
		BaseURL:        srv.URL + "/",
		Token:          "dGVzdA==",
		AcceptLanguage: "fr-fr",
	})
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresToken(t *testing.T) {
	_, err := NewClient(config.BackMarketConfig{BaseURL: "http://x"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestClient_ListOrders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/ws/buyback/v1/orders", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, "Basic dGVzdA==", r.Header.Get("Authorization"))
		assert.Equal(t, acceptHeader, r.Header.Get("Accept"))
		assert.Equal(t, "fr-fr", r.Header.Get("Accept-Language"))
		_, _ = io.WriteString(w, `{"count":3,"next":"https://x/orders?page=3","previous":null,"results":[{"id":"o1"},{"id":"o2","status":"SENT"}]}`)
	})

	page, err := c.ListOrders(context.Background(), 2, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Count)
	assert.Equal(t, "https://x/orders?page=3", page.Next)
	assert.Empty(t, page.Previous)
	require.Len(t, page.Results, 2)
	assert.JSONEq(t, `{"id":"o2","status":"SENT"}`, string(page.Results[1]))
}

func TestClient_ListOrders_OmitsLimit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.False(t, r.URL.Query().Has("limit"))
		_, _ = io.WriteString(w, `{"count":0,"results":[]}`)
	})
	page, err := c.ListOrders(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, page.Results)
}

func TestClient_GetOrder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ws/buyback/v1/orders/42", r.URL.Path)
		_, _ = io.WriteString(w, `{"orderId":"42","state":"RECEIVED","listing":{"sku":"IPH-13"}}`)
	})

	order, err := c.GetOrder(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "42", order.ID)
	assert.Equal(t, "RECEIVED", order.Status)
	assert.Contains(t, string(order.Raw), "IPH-13")
}

func TestClient_GetOrder_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"title":"Not Found","detail":"No order 7"}`)
	})

	_, err := c.GetOrder(context.Background(), "7")
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Error(), "No order 7")
}

func TestClient_UpdateOrderStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/ws/buyback/v1/orders/42/status", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "PAID", body["status"])
		w.WriteHeader(http.StatusNoContent)
	})

	order, err := c.UpdateOrderStatus(context.Background(), "42", "PAID")
	require.NoError(t, err)
	assert.Equal(t, "42", order.ID)
	assert.Equal(t, "PAID", order.Status)
}

func TestClient_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := c.ListOrders(context.Background(), 1, 0)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.NotErrorIs(t, err, shared.ErrNotFound)
	assert.Contains(t, err.Error(), "Bad Gateway")
}

func TestClient_RejectsEmptyID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	_, err := c.GetOrder(context.Background(), " ")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}
