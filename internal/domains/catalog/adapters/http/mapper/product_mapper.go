package mapper

import (
	"github.com/shopspring/decimal"

	catalogdomain "github.com/Apurer/go-commerce-api/internal/domains/catalog/domain"
)

// Product represents the transport-layer shape used by the HTTP handlers.
type Product struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

// FromDomainProduct converts a domain product to the transport representation.
func FromDomainProduct(product *catalogdomain.Product) Product {
	if product == nil {
		return Product{}
	}
	return Product{
		ID:       product.ID.String(),
		Name:     product.Name,
		Price:    product.Price,
		Quantity: product.Quantity,
	}
}

// FromDomainProductList converts a slice of domain products.
func FromDomainProductList(products []*catalogdomain.Product) []Product {
	list := make([]Product, 0, len(products))
	for _, product := range products {
		list = append(list, FromDomainProduct(product))
	}
	return list
}
