package commerceserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/Apurer/go-commerce-api/internal/domains/orders/adapters/http/mapper"
	ordersapp "github.com/Apurer/go-commerce-api/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/go-commerce-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-commerce-api/internal/domains/orders/ports"
	apierrors "github.com/Apurer/go-commerce-api/internal/shared/errors"
)

// OrderAPI wires HTTP transport with the orders bounded context service and workflows.
type OrderAPI struct {
	service   ordersports.Service
	workflows ordersports.WorkflowOrchestrator
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service ordersports.Service, workflows ordersports.WorkflowOrchestrator) OrderAPI {
	return OrderAPI{service: service, workflows: workflows}
}

// Post /v1/orders
// Place an order for a customer
func (api *OrderAPI) PlaceOrder(c *gin.Context) {
	var payload ordermapper.PlaceOrderBody
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	req, err := ordermapper.ToPlaceOrderRequest(payload)
	if err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	order, err := api.placeOrder(c.Request.Context(), req)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordermapper.FromDomainOrder(order))
}

func (api *OrderAPI) placeOrder(ctx context.Context, req ordersports.PlaceOrderRequest) (*ordersdomain.Order, error) {
	if api.workflows != nil {
		return api.workflows.PlaceOrder(ctx, req)
	}
	return api.service.PlaceOrder(ctx, req)
}

// Get /v1/orders/:orderId
// Load a single order with its lines
func (api *OrderAPI) GetOrder(c *gin.Context) {
	id, ok := parseUUIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.GetOrderByID(c.Request.Context(), id)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(order))
}

// Get /v1/customers/:customerId/orders
// List the orders placed by one customer
func (api *OrderAPI) ListOrdersByCustomer(c *gin.Context) {
	customerID, ok := parseUUIDParam(c, "customerId")
	if !ok {
		return
	}
	orders, err := api.service.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrderList(orders))
}

// respondOrderServiceError maps the placement workflow's domain errors to
// distinct problem responses so clients can tell the failure modes apart.
func respondOrderServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, ordersports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, ordersapp.ErrCustomerNotFound):
		respondProblem(c, apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "customer"))
	case errors.Is(err, ordersapp.ErrProductNotFound):
		respondProblem(c, apierrors.ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", "product"))
	case errors.Is(err, ordersapp.ErrInsufficientStock):
		respondProblem(c, apierrors.ErrInsufficientStock.WithDetail(err.Error()))
	case errors.Is(err, ordersapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
