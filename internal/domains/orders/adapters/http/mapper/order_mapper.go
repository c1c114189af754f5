package mapper

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	ordersdomain "github.com/Apurer/go-commerce-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-commerce-api/internal/domains/orders/ports"
)

// PlaceOrderBody is the request payload accepted by the orders endpoint.
// It mirrors the workflow's ephemeral request: a customer plus product
// id/quantity pairs.
type PlaceOrderBody struct {
	CustomerID string            `json:"customer_id" binding:"required"`
	Products   []ProductLineBody `json:"products" binding:"required,min=1,dive"`
}

// ProductLineBody is one requested product.
type ProductLineBody struct {
	ID       string `json:"id" binding:"required"`
	Quantity int64  `json:"quantity" binding:"required"`
}

// ToPlaceOrderRequest parses the transport payload into the workflow request.
func ToPlaceOrderRequest(body PlaceOrderBody) (ordersports.PlaceOrderRequest, error) {
	customerID, err := uuid.Parse(body.CustomerID)
	if err != nil {
		return ordersports.PlaceOrderRequest{}, fmt.Errorf("invalid customer id %q: %w", body.CustomerID, err)
	}
	req := ordersports.PlaceOrderRequest{
		CustomerID: customerID,
		Lines:      make([]ordersports.LineRequest, 0, len(body.Products)),
	}
	for _, product := range body.Products {
		productID, err := uuid.Parse(product.ID)
		if err != nil {
			return ordersports.PlaceOrderRequest{}, fmt.Errorf("invalid product id %q: %w", product.ID, err)
		}
		req.Lines = append(req.Lines, ordersports.LineRequest{ProductID: productID, Quantity: product.Quantity})
	}
	return req, nil
}

// Order represents the transport-layer shape used by the HTTP handlers.
type Order struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Lines      []OrderLine     `json:"lines"`
	Total      decimal.Decimal `json:"total"`
	CreatedAt  time.Time       `json:"created_at"`
}

// OrderLine is one immutable purchased line with its price snapshot.
type OrderLine struct {
	ProductID string          `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *ordersdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	result := Order{
		ID:         order.ID.String(),
		CustomerID: order.CustomerID.String(),
		Total:      order.Total(),
		CreatedAt:  order.CreatedAt,
		Lines:      make([]OrderLine, 0, len(order.Lines)),
	}
	for _, line := range order.Lines {
		result.Lines = append(result.Lines, OrderLine{
			ProductID: line.ProductID.String(),
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}
	return result
}

// FromDomainOrderList converts a slice of domain orders.
func FromDomainOrderList(orders []*ordersdomain.Order) []Order {
	list := make([]Order, 0, len(orders))
	for _, order := range orders {
		list = append(list, FromDomainOrder(order))
	}
	return list
}
