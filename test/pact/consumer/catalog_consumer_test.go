//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogclient "github.com/programthis/order-cart-service/internal/clients/http/catalog"
	catalogdomain "github.com/programthis/order-cart-service/internal/domains/catalog"
	pacttest "github.com/programthis/order-cart-service/test/pact"
)

func TestProductCatalogContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json", "application\\/json(?:;\\s?charset=utf-8)?")
	productBodyMatcher := matchers.Map{
		"id":    matchers.Like(pacttest.ExistingProductID),
		"name":  matchers.Like("Pact Laptop"),
		"price": matchers.Decimal(1200.50),
	}

	pact.AddInteraction().
		Given(pacttest.StateProductExists).
		UponReceiving("a request for an existing product").
		WithRequest("GET", fmt.Sprintf("/api/products/%d", pacttest.ExistingProductID)).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(productBodyMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateProductMissing).
		UponReceiving("a request for a missing product").
		WithRequest("GET", fmt.Sprintf("/api/products/%d", pacttest.MissingProductID)).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		baseURL := fmt.Sprintf("http://%s:%d", config.Host, config.Port)
		client, err := catalogclient.NewClient(baseURL, &http.Client{Timeout: 5 * time.Second})
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		product, err := client.GetProduct(ctx, pacttest.ExistingProductID)
		if err != nil {
			return fmt.Errorf("existing product lookup: %w", err)
		}
		if product.ID != pacttest.ExistingProductID {
			return fmt.Errorf("unexpected product id %d", product.ID)
		}
		if !product.Price.Equal(decimal.RequireFromString("1200.5")) {
			return fmt.Errorf("unexpected product price %s", product.Price)
		}

		_, err = client.GetProduct(ctx, pacttest.MissingProductID)
		if !errors.Is(err, catalogdomain.ErrProductNotFound) {
			return fmt.Errorf("missing product should map to not-found, got %v", err)
		}
		return nil
	})
	require.NoError(t, err)
}
