package commerceserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	customermapper "github.com/Apurer/go-commerce-api/internal/domains/customers/adapters/http/mapper"
	customerapp "github.com/Apurer/go-commerce-api/internal/domains/customers/application"
	customerports "github.com/Apurer/go-commerce-api/internal/domains/customers/ports"
	apierrors "github.com/Apurer/go-commerce-api/internal/shared/errors"
)

// CustomerAPI wires HTTP transport with the customers bounded context service.
type CustomerAPI struct {
	service customerports.Service
}

// NewCustomerAPI creates a CustomerAPI backed by the provided service.
func NewCustomerAPI(service customerports.Service) CustomerAPI {
	return CustomerAPI{service: service}
}

type createCustomerBody struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// Post /v1/customers
// Register a new customer
func (api *CustomerAPI) CreateCustomer(c *gin.Context) {
	var payload createCustomerBody
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	customer, err := api.service.CreateCustomer(c.Request.Context(), payload.Name, payload.Email)
	if err != nil {
		respondCustomerServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customermapper.FromDomainCustomer(customer))
}

// Get /v1/customers/:customerId
// Load a single customer
func (api *CustomerAPI) GetCustomer(c *gin.Context) {
	id, ok := parseUUIDParam(c, "customerId")
	if !ok {
		return
	}
	customer, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondCustomerServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customermapper.FromDomainCustomer(customer))
}

// Get /v1/customers
// List registered customers
func (api *CustomerAPI) ListCustomers(c *gin.Context) {
	customers, err := api.service.List(c.Request.Context())
	if err != nil {
		respondCustomerServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customermapper.FromDomainCustomerList(customers))
}

func respondCustomerServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, customerports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, customerports.ErrEmailTaken):
		respondError(c, http.StatusConflict, err)
	case errors.Is(err, customerapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
