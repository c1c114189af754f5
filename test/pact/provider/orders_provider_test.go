//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	pacttest "github.com/Apurer/go-commerce-api/test/pact"

	catalogmemory "github.com/Apurer/go-commerce-api/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/Apurer/go-commerce-api/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/go-commerce-api/internal/domains/catalog/domain"
	customermemory "github.com/Apurer/go-commerce-api/internal/domains/customers/adapters/memory"
	customerapp "github.com/Apurer/go-commerce-api/internal/domains/customers/application"
	customerdomain "github.com/Apurer/go-commerce-api/internal/domains/customers/domain"
	ordersmemory "github.com/Apurer/go-commerce-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-commerce-api/internal/domains/orders/adapters/observability"
	ordersworkflows "github.com/Apurer/go-commerce-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/Apurer/go-commerce-api/internal/domains/orders/application"
	commerceserver "github.com/Apurer/go-commerce-api/server"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCommerceProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			return nil, nil
		},
		pacttest.StateCatalogSeeded: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			if setup {
				app.seedCustomer(t)
				app.seedProduct(t, pacttest.KeyboardProductID, pacttest.KeyboardProductName, pacttest.KeyboardProductPrice, 10)
			}
			return nil, nil
		},
		pacttest.StateStockDepleted: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			if setup {
				app.seedCustomer(t)
				app.seedProduct(t, pacttest.ScarceProductID, pacttest.ScarceProductName, pacttest.ScarceProductPrice, 1)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	customers *customermemory.Repository
	catalog   *catalogmemory.Repository
	server    *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	customers := customermemory.NewRepository()
	catalog := catalogmemory.NewRepository()
	orders := ordersmemory.NewRepository()

	customerService := customerapp.NewService(customers)
	catalogService := catalogapp.NewService(catalog)
	orderService := ordersobs.New(ordersapp.NewService(orders, customers, catalog, ordersmemory.NewTransactor()))
	workflows := ordersworkflows.NewInlineOrderWorkflows(orderService)

	handlers := commerceserver.ApiHandleFunctions{
		CustomerAPI: commerceserver.NewCustomerAPI(customerService),
		CatalogAPI:  commerceserver.NewCatalogAPI(catalogService),
		OrderAPI:    commerceserver.NewOrderAPI(orderService, workflows),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = commerceserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		customers: customers,
		catalog:   catalog,
		server:    server,
	}
}

// seedCustomer upserts the pact customer under its fixed identifier. Saving
// the same id twice is an overwrite in the memory adapter, so state handlers
// stay idempotent across interactions.
func (a *contractProviderApp) seedCustomer(t testing.TB) {
	t.Helper()
	customer, err := customerdomain.NewCustomer(
		uuid.MustParse(pacttest.ExistingCustomerID),
		pacttest.ExampleCustomerName,
		pacttest.ExampleCustomerEmail,
	)
	require.NoError(t, err)
	_, err = a.customers.Save(context.Background(), customer)
	require.NoError(t, err)
}

func (a *contractProviderApp) seedProduct(t testing.TB, id, name, price string, quantity int64) {
	t.Helper()
	product, err := catalogdomain.NewProduct(
		uuid.MustParse(id),
		name,
		decimal.RequireFromString(price),
		quantity,
	)
	require.NoError(t, err)
	_, err = a.catalog.Save(context.Background(), product)
	require.NoError(t, err)
}
