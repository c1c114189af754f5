package fulfillment

import (
	"context"
	"errors"

	fulfillmentclient "github.com/Apurer/go-commerce-api/internal/clients/http/fulfillment"
	"github.com/Apurer/go-commerce-api/internal/domains/orders/domain"
	"github.com/Apurer/go-commerce-api/internal/domains/orders/ports"
)

var _ ports.FulfillmentNotifier = (*Notifier)(nil)

// Notifier implements the outbound fulfillment port.
type Notifier struct {
	client *fulfillmentclient.Client
}

// NewNotifier wires a fulfillment HTTP client into a notifier adapter.
func NewNotifier(client *fulfillmentclient.Client) *Notifier {
	return &Notifier{client: client}
}

// NotifyPlaced pushes the placed order to the fulfillment API.
func (n *Notifier) NotifyPlaced(ctx context.Context, order *domain.Order) error {
	if n == nil || n.client == nil {
		return errors.New("fulfillment notifier not configured")
	}
	if order == nil {
		return errors.New("order is nil")
	}
	return n.client.SubmitOrder(ctx, toPayload(order))
}

func toPayload(order *domain.Order) fulfillmentclient.OrderPayload {
	payload := fulfillmentclient.OrderPayload{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		PlacedAt:   order.CreatedAt,
		Lines:      make([]fulfillmentclient.LinePayload, 0, len(order.Lines)),
	}
	for _, line := range order.Lines {
		payload.Lines = append(payload.Lines, fulfillmentclient.LinePayload{
			ProductID: line.ProductID,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}
	return payload
}
