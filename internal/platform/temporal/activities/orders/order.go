package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/Apurer/go-commerce-api/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/go-commerce-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-commerce-api/internal/domains/orders/ports"
)

const (
	// PlaceOrderActivityName runs the transactional placement workflow.
	PlaceOrderActivityName = "orders.activities.PlaceOrder"
	// NotifyFulfillmentActivityName pushes a placed order to the fulfillment API.
	NotifyFulfillmentActivityName = "orders.activities.NotifyFulfillment"
)

// Application error types for domain rejections. They keep the rejection
// kind intact across the Temporal wire and mark it non-retryable.
const (
	CustomerNotFoundErrorType  = "OrderCustomerNotFound"
	ProductNotFoundErrorType   = "OrderProductNotFound"
	InsufficientStockErrorType = "OrderInsufficientStock"
	InvalidRequestErrorType    = "OrderInvalidRequest"
)

// RejectionErrorTypes lists every non-retryable domain rejection type.
var RejectionErrorTypes = []string{
	CustomerNotFoundErrorType,
	ProductNotFoundErrorType,
	InsufficientStockErrorType,
	InvalidRequestErrorType,
}

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service  ordersports.Service
	notifier ordersports.FulfillmentNotifier
}

// NewActivities wires the orders collaborators into the Temporal activities bundle.
func NewActivities(service ordersports.Service, notifier ordersports.FulfillmentNotifier) *Activities {
	return &Activities{service: service, notifier: notifier}
}

// PlaceOrder executes the placement workflow once. Domain rejections
// (customer missing, product missing, insufficient stock, invalid input)
// are returned as non-retryable application errors; infrastructure errors
// stay retryable.
func (a *Activities) PlaceOrder(ctx context.Context, req ordersports.PlaceOrderRequest) (*ordersdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("place order activity not initialized", "customerId", req.CustomerID)
		return nil, errors.New("place order activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "customerId", req.CustomerID, "lines", len(req.Lines))
	order, err := a.service.PlaceOrder(ctx, req)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "customerId", req.CustomerID, "error", err)
		if kind, ok := rejectionType(err); ok {
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), kind, err)
		}
		return nil, err
	}
	logger.Info("PlaceOrder activity completed", "orderId", order.ID)
	return order, nil
}

// NotifyFulfillment loads nothing; it forwards the already-placed order to
// the fulfillment API. A heartbeat records completion so a retried attempt
// does not notify twice.
func (a *Activities) NotifyFulfillment(ctx context.Context, order *ordersdomain.Order) error {
	logger := activity.GetLogger(ctx)
	if a == nil {
		return errors.New("fulfillment activity not initialized")
	}
	if order == nil {
		return errors.New("order is nil")
	}
	if a.notifier == nil {
		logger.Info("fulfillment notifier not configured; skipping", "orderId", order.ID)
		return nil
	}

	var hb notifyHeartbeat
	if activity.HasHeartbeatDetails(ctx) {
		_ = activity.GetHeartbeatDetails(ctx, &hb)
	}
	if hb.Completed {
		logger.Info("NotifyFulfillment already completed in prior attempt; skipping", "orderId", order.ID)
		return nil
	}

	logger.Info("NotifyFulfillment activity started", "orderId", order.ID)
	if err := a.notifier.NotifyPlaced(ctx, order); err != nil {
		logger.Error("NotifyFulfillment activity failed", "orderId", order.ID, "error", err)
		return err
	}
	activity.RecordHeartbeat(ctx, notifyHeartbeat{Completed: true})
	logger.Info("NotifyFulfillment activity completed", "orderId", order.ID)
	return nil
}

type notifyHeartbeat struct {
	Completed bool
}

func rejectionType(err error) (string, bool) {
	switch {
	case errors.Is(err, ordersapp.ErrCustomerNotFound):
		return CustomerNotFoundErrorType, true
	case errors.Is(err, ordersapp.ErrProductNotFound):
		return ProductNotFoundErrorType, true
	case errors.Is(err, ordersapp.ErrInsufficientStock):
		return InsufficientStockErrorType, true
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return InvalidRequestErrorType, true
	default:
		return "", false
	}
}
