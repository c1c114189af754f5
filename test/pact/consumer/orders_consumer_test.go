//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/go-commerce-api/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type orderRequest struct {
	CustomerID string             `json:"customer_id"`
	Products   []orderLineRequest `json:"products"`
}

type orderLineRequest struct {
	ID       string `json:"id"`
	Quantity int64  `json:"quantity"`
}

type orderPayload struct {
	ID         string             `json:"id"`
	CustomerID string             `json:"customer_id"`
	Lines      []orderLinePayload `json:"lines"`
	Total      string             `json:"total"`
	CreatedAt  string             `json:"created_at"`
}

type orderLinePayload struct {
	ProductID string `json:"product_id"`
	Price     string `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type productPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int64  `json:"quantity"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status      int
	problemType string
	title       string
	detail      string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func (e apiError) Status() int { return e.status }

const (
	uuidPattern    = "[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}"
	decimalPattern = `\d+(\.\d+)?`
)

func TestStorefrontContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	orderBodyMatcher := matchers.Map{
		"id":          matchers.Regex("b5c07ab2-0b46-4a0c-9a27-e0b788b6a62f", uuidPattern),
		"customer_id": matchers.S(pacttest.ExistingCustomerID),
		"lines": matchers.ArrayMinLike(matchers.Map{
			"product_id": matchers.S(pacttest.KeyboardProductID),
			"price":      matchers.Term(pacttest.KeyboardProductPrice, decimalPattern),
			"quantity":   matchers.Like(2),
		}, 1),
		"total":      matchers.Term("99.80", decimalPattern),
		"created_at": matchers.Like("2026-09-01T12:00:00Z"),
	}

	pact.AddInteraction().
		Given(pacttest.StateCatalogSeeded).
		UponReceiving("a request to place an order").
		WithRequest("POST", "/v1/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"customer_id": matchers.S(pacttest.ExistingCustomerID),
				"products": matchers.ArrayMinLike(matchers.Map{
					"id":       matchers.S(pacttest.KeyboardProductID),
					"quantity": matchers.Like(2),
				}, 1),
			})
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(orderBodyMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateStockDepleted).
		UponReceiving("a request exceeding the available stock").
		WithRequest("POST", "/v1/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"customer_id": matchers.S(pacttest.ExistingCustomerID),
				"products": matchers.ArrayMinLike(matchers.Map{
					"id":       matchers.S(pacttest.ScarceProductID),
					"quantity": matchers.Like(5),
				}, 1),
			})
		}).
		WillRespondWith(http.StatusConflict, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/insufficient-stock"),
				"title":  matchers.S("Insufficient Stock"),
				"status": matchers.Like(http.StatusConflict),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateCatalogSeeded).
		UponReceiving("a request to place an order for an unknown customer").
		WithRequest("POST", "/v1/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.Map{
				"customer_id": matchers.S(pacttest.MissingCustomerID),
				"products": matchers.ArrayMinLike(matchers.Map{
					"id":       matchers.S(pacttest.KeyboardProductID),
					"quantity": matchers.Like(1),
				}, 1),
			})
		}).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateCatalogSeeded).
		UponReceiving("a request to fetch a product").
		WithRequest("GET", fmt.Sprintf("/v1/products/%s", pacttest.KeyboardProductID)).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"id":       matchers.S(pacttest.KeyboardProductID),
				"name":     matchers.Like(pacttest.KeyboardProductName),
				"price":    matchers.Term(pacttest.KeyboardProductPrice, decimalPattern),
				"quantity": matchers.Like(10),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newStorefrontClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		placed, err := client.PlaceOrder(ctx, orderRequest{
			CustomerID: pacttest.ExistingCustomerID,
			Products:   []orderLineRequest{{ID: pacttest.KeyboardProductID, Quantity: 2}},
		})
		if err != nil {
			return fmt.Errorf("place order: %w", err)
		}
		if placed == nil || placed.ID == "" {
			return fmt.Errorf("expected placed order id to be set")
		}

		if _, err := client.PlaceOrder(ctx, orderRequest{
			CustomerID: pacttest.ExistingCustomerID,
			Products:   []orderLineRequest{{ID: pacttest.ScarceProductID, Quantity: 5}},
		}); err == nil {
			return fmt.Errorf("expected 409 for depleted stock")
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusConflict {
			return fmt.Errorf("expected 409, got %d", apiErr.Status())
		}

		if _, err := client.PlaceOrder(ctx, orderRequest{
			CustomerID: pacttest.MissingCustomerID,
			Products:   []orderLineRequest{{ID: pacttest.KeyboardProductID, Quantity: 1}},
		}); err == nil {
			return fmt.Errorf("expected 404 for unknown customer")
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.Status())
		}

		product, err := client.GetProduct(ctx, pacttest.KeyboardProductID)
		if err != nil {
			return fmt.Errorf("get product: %w", err)
		}
		if product == nil || product.ID != pacttest.KeyboardProductID {
			return fmt.Errorf("expected product %s, got %+v", pacttest.KeyboardProductID, product)
		}

		return nil
	})
	require.NoError(t, err)
}

type storefrontClient struct {
	baseURL    string
	httpClient *http.Client
}

func newStorefrontClient(config pactconsumer.MockServerConfig) *storefrontClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &storefrontClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *storefrontClient) PlaceOrder(ctx context.Context, order orderRequest) (*orderPayload, error) {
	body, err := json.Marshal(order)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}

	var payload orderPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *storefrontClient) GetProduct(ctx context.Context, id string) (*productPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/v1/products/%s", c.baseURL, id), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}

	var payload productPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{
		status:      status,
		problemType: problem.Type,
		title:       problem.Title,
		detail:      problem.Detail,
	}
}
