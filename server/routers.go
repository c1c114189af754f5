// Package commerceserver wires the gin transport for the commerce API.
package commerceserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route binds one HTTP operation to its handler.
type Route struct {
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the per-context APIs served by the router.
type ApiHandleFunctions struct {
	CustomerAPI CustomerAPI
	CatalogAPI  CatalogAPI
	OrderAPI    OrderAPI
}

// NewRouter returns a new router with default middleware.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the API routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = defaultHandler
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{http.MethodPost, "/v1/customers", handleFunctions.CustomerAPI.CreateCustomer},
		{http.MethodGet, "/v1/customers", handleFunctions.CustomerAPI.ListCustomers},
		{http.MethodGet, "/v1/customers/:customerId", handleFunctions.CustomerAPI.GetCustomer},
		{http.MethodGet, "/v1/customers/:customerId/orders", handleFunctions.OrderAPI.ListOrdersByCustomer},
		{http.MethodPost, "/v1/products", handleFunctions.CatalogAPI.CreateProduct},
		{http.MethodGet, "/v1/products", handleFunctions.CatalogAPI.ListProducts},
		{http.MethodGet, "/v1/products/:productId", handleFunctions.CatalogAPI.GetProduct},
		{http.MethodPost, "/v1/orders", handleFunctions.OrderAPI.PlaceOrder},
		{http.MethodGet, "/v1/orders/:orderId", handleFunctions.OrderAPI.GetOrder},
	}
}

func defaultHandler(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"error": "not implemented"})
}
