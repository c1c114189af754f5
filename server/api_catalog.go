package commerceserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	productmapper "github.com/Apurer/go-commerce-api/internal/domains/catalog/adapters/http/mapper"
	catalogapp "github.com/Apurer/go-commerce-api/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-commerce-api/internal/domains/catalog/ports"
	apierrors "github.com/Apurer/go-commerce-api/internal/shared/errors"
)

// CatalogAPI wires HTTP transport with the catalog bounded context service.
type CatalogAPI struct {
	service catalogports.Service
}

// NewCatalogAPI creates a CatalogAPI backed by the provided service.
func NewCatalogAPI(service catalogports.Service) CatalogAPI {
	return CatalogAPI{service: service}
}

type createProductBody struct {
	Name     string          `json:"name" binding:"required"`
	Price    decimal.Decimal `json:"price" binding:"required"`
	Quantity int64           `json:"quantity"`
}

// Post /v1/products
// Register a new sellable product
func (api *CatalogAPI) CreateProduct(c *gin.Context) {
	var payload createProductBody
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	product, err := api.service.CreateProduct(c.Request.Context(), payload.Name, payload.Price, payload.Quantity)
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, productmapper.FromDomainProduct(product))
}

// Get /v1/products/:productId
// Load a single product
func (api *CatalogAPI) GetProduct(c *gin.Context) {
	id, ok := parseUUIDParam(c, "productId")
	if !ok {
		return
	}
	product, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, productmapper.FromDomainProduct(product))
}

// Get /v1/products
// List catalog products
func (api *CatalogAPI) ListProducts(c *gin.Context) {
	products, err := api.service.List(c.Request.Context())
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, productmapper.FromDomainProductList(products))
}

func respondCatalogServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, catalogports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, catalogports.ErrNameTaken):
		respondError(c, http.StatusConflict, err)
	case errors.Is(err, catalogapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
