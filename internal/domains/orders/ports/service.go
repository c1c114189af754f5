package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/Apurer/go-commerce-api/internal/domains/orders/domain"
)

// LineRequest is one requested product and quantity.
type LineRequest struct {
	ProductID uuid.UUID
	Quantity  int64
}

// PlaceOrderRequest is the ephemeral input of the placement workflow; it is
// never persisted.
type PlaceOrderRequest struct {
	CustomerID uuid.UUID
	Lines      []LineRequest
}

// Service exposes order use cases to adapters.
type Service interface {
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*domain.Order, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.Order, error)
}
