package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/programthis/order-cart-service/internal/domains/catalog"
)

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient("   ", nil)
	require.Error(t, err)
}

func TestGetProduct_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/products/101", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":101,"name":"Laptop","price":1200.50}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, srv.Client())
	require.NoError(t, err)

	product, err := client.GetProduct(context.Background(), 101)
	require.NoError(t, err)
	require.Equal(t, int64(101), product.ID)
	require.Equal(t, "Laptop", product.Name)
	require.True(t, product.Price.Equal(decimal.RequireFromString("1200.50")))
}

func TestGetProduct_QuotedDecimalPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":101,"name":"Laptop","price":"19.99"}`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, srv.Client())
	require.NoError(t, err)

	product, err := client.GetProduct(context.Background(), 101)
	require.NoError(t, err)
	require.True(t, product.Price.Equal(decimal.RequireFromString("19.99")))
}

func TestGetProduct_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, srv.Client())
	require.NoError(t, err)

	_, err = client.GetProduct(context.Background(), 999)
	require.ErrorIs(t, err, catalogdomain.ErrProductNotFound)
}

func TestGetProduct_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, srv.Client())
	require.NoError(t, err)

	_, err = client.GetProduct(context.Background(), 101)
	require.ErrorIs(t, err, catalogdomain.ErrCatalogUnavailable)
}

func TestGetProduct_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, &http.Client{Timeout: 20 * time.Millisecond})
	require.NoError(t, err)

	_, err = client.GetProduct(context.Background(), 101)
	require.ErrorIs(t, err, catalogdomain.ErrCatalogUnavailable)
}

func TestGetProduct_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, srv.Client())
	require.NoError(t, err)

	_, err = client.GetProduct(context.Background(), 101)
	require.ErrorIs(t, err, catalogdomain.ErrCatalogUnavailable)
}
