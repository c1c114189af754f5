package ports

import (
	"context"

	"github.com/Apurer/go-commerce-api/internal/domains/orders/domain"
)

// WorkflowOrchestrator exposes durable workflow operations for the orders
// bounded context.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*domain.Order, error)
}
