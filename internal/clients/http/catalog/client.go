// Package catalog implements the product catalog gateway over HTTP.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/programthis/order-cart-service/internal/domains/catalog"
)

// DefaultTimeout bounds a catalog lookup when the caller supplies no client.
const DefaultTimeout = 5 * time.Second

var _ catalogdomain.Gateway = (*Client)(nil)

// Client calls the Product Catalog Service's REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient instantiates the catalog client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("catalog base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{baseURL: baseURL, http: httpClient}, nil
}

type productPayload struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// GetProduct looks up product metadata by id. A 404 maps to
// ErrProductNotFound; transport failures, timeouts, and server errors map to
// ErrCatalogUnavailable.
func (c *Client) GetProduct(ctx context.Context, productID int64) (catalogdomain.Product, error) {
	if c == nil || c.http == nil {
		return catalogdomain.Product{}, errors.New("catalog client not configured")
	}
	url := fmt.Sprintf("%s/api/products/%d", c.baseURL, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return catalogdomain.Product{}, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return catalogdomain.Product{}, fmt.Errorf("%w: %w", catalogdomain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var payload productPayload
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return catalogdomain.Product{}, fmt.Errorf("%w: decode response: %w", catalogdomain.ErrCatalogUnavailable, err)
		}
		return catalogdomain.Product{ID: payload.ID, Name: payload.Name, Price: payload.Price}, nil
	case resp.StatusCode == http.StatusNotFound:
		return catalogdomain.Product{}, fmt.Errorf("%w: id %d", catalogdomain.ErrProductNotFound, productID)
	default:
		return catalogdomain.Product{}, fmt.Errorf("%w: unexpected status %s", catalogdomain.ErrCatalogUnavailable, resp.Status)
	}
}
