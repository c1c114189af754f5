package ports

import (
	"context"

	"github.com/Apurer/go-commerce-api/internal/domains/orders/domain"
)

// FulfillmentNotifier pushes placed orders to the external fulfillment API.
type FulfillmentNotifier interface {
	NotifyPlaced(ctx context.Context, order *domain.Order) error
}
