package cms

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

func decimalFromInt(i int64) decimal.Decimal {
	return decimal.NewFromInt(i)
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		BaseURL:  server.URL,
		APIToken: "test-token",
		Timeout:  5 * time.Second,
	}, zap.NewNop())
	require.NoError(t, err)
	return client, server
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(Config{}, nil)
	require.ErrorIs(t, err, ErrMissingBaseURL)
}

func TestClient_SendsBearerToken(t *testing.T) {
	var gotAuth atomic.Value
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data": []}`))
	}))

	_, _, err := client.ListProducts(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth.Load())
}

func TestClient_ListProducts_QueryParams(t *testing.T) {
	var gotQuery atomic.Value
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"data": [], "meta": {"pagination": {"page": 2, "pageSize": 10, "pageCount": 3, "total": 25}}}`))
	}))

	_, pagination, err := client.ListProducts(context.Background(), ListOptions{
		Filters:  map[string]string{"show": "true"},
		Page:     2,
		PageSize: 10,
	})
	require.NoError(t, err)

	query := gotQuery.Load().(string)
	assert.Contains(t, query, "populate=%2A")
	assert.Contains(t, query, "filters%5Bshow%5D%5B%24eq%5D=true")
	assert.Contains(t, query, "pagination%5Bpage%5D=2")

	require.NotNil(t, pagination)
	assert.Equal(t, 25, pagination.Total)
}

func TestClient_StatusErrorPreservesBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`upstream exploded`))
	}))

	_, _, err := client.ListProducts(context.Background(), ListOptions{})
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.Status)
	assert.Contains(t, statusErr.Body, "upstream exploded")
	assert.False(t, errors.Is(err, shared.ErrNotFound))
}

func TestClient_NotFoundMatchesSentinel(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetProduct(context.Background(), "42")
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestFallback_NumericIDNeverIssuesLookup(t *testing.T) {
	var lookups atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.RawQuery, "documentId") {
			lookups.Add(1)
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetProduct(context.Background(), "42")
	require.Error(t, err)
	assert.Equal(t, int32(0), lookups.Load())
}

func TestFallback_ResolvesDocumentIDAndRetriesOnce(t *testing.T) {
	var directGets, lookups, retriedGets atomic.Int32

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.RawQuery, "documentId"):
			lookups.Add(1)
			_, _ = w.Write([]byte(`{"data": [{"id": 42, "documentId": "doc-abc"}]}`))
		case strings.HasSuffix(r.URL.Path, "/doc-abc"):
			directGets.Add(1)
			w.WriteHeader(http.StatusNotFound)
		case strings.HasSuffix(r.URL.Path, "/42"):
			retriedGets.Add(1)
			_, _ = w.Write([]byte(`{"data": {"id": 42, "documentId": "doc-abc", "name": "Remera", "price": 100, "stock": 3, "show": true}}`))
		default:
			w.WriteHeader(http.StatusTeapot)
		}
	}))

	p, err := client.GetProduct(context.Background(), "doc-abc")
	require.NoError(t, err)

	assert.Equal(t, 42, p.ID)
	assert.Equal(t, int32(1), directGets.Load(), "direct attempt happens once")
	assert.Equal(t, int32(1), lookups.Load(), "exactly one filter lookup")
	assert.Equal(t, int32(1), retriedGets.Load(), "exactly one retry with resolved id")
}

func TestFallback_NoMatchFailsWithNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.RawQuery, "documentId") {
			_, _ = w.Write([]byte(`{"data": []}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetProduct(context.Background(), "doc-missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
	assert.Contains(t, err.Error(), "doc-missing")
	assert.Contains(t, err.Error(), "products")
}

func TestFallback_NonNotFoundErrorsPropagateWithoutRetry(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.GetProduct(context.Background(), "doc-abc")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_UpdateProductEmptyEnvelopeFails(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": null}`))
	}))

	stock := 5
	p, err := client.UpdateProduct(context.Background(), "42", ProductInput{Stock: &stock})
	require.Error(t, err)
	assert.Nil(t, p)
	assert.Contains(t, err.Error(), "returned no data")
}

func TestClient_CreateOrderWrapsBody(t *testing.T) {
	var gotBody atomic.Value
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf, _ := io.ReadAll(r.Body)
		gotBody.Store(string(buf))
		_, _ = w.Write([]byte(`{"data": {"id": 1, "documentId": "o1", "order": "ORD-AAAA", "total": 200}}`))
	}))

	rec, err := client.CreateOrder(context.Background(), mustOrder(t))
	require.NoError(t, err)
	assert.Equal(t, "ORD-AAAA", rec.Order.Number)

	body := gotBody.Load().(string)
	assert.True(t, strings.HasPrefix(body, `{"data":`), "write bodies are wrapped in a data envelope, got %s", body)
}

func mustOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.New(
		order.Customer{Name: "Ana", LastName: "Pérez", DNI: 30123456, Email: "ana@example.com"},
		[]order.LineItem{{ProductID: 1, DocumentID: "p1", Name: "Remera", UnitPrice: decimalFromInt(100), Quantity: 2}},
		decimalFromInt(200),
	)
	require.NoError(t, err)
	return o
}

func TestClient_Me_UsesSessionToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer session-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"data": {"id": 9, "email": "admin@example.com"}}`))
	}))

	user, err := client.Me(context.Background(), "session-token")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", user.Email)

	_, err = client.Me(context.Background(), "wrong")
	require.Error(t, err)
}
