package orders

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	ordersdomain "github.com/Apurer/go-commerce-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-commerce-api/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/go-commerce-api/internal/platform/temporal/activities/orders"
)

const (
	// OrderPlacementWorkflowName is the public identifier for registering the workflow.
	OrderPlacementWorkflowName = "orders.workflows.Placement"
	// OrderPlacementTaskQueue is the queue consumed by the worker processing order workflows.
	OrderPlacementTaskQueue = "ORDER_PLACEMENT"
)

// OrderPlacementWorkflowInput captures the payload required to place an order.
type OrderPlacementWorkflowInput struct {
	Request ordersports.PlaceOrderRequest
	TraceID string
}

// OrderPlacementWorkflow runs the transactional placement activity and then
// notifies fulfillment. The notification is best effort: its failure never
// unwinds an already-committed order.
func OrderPlacementWorkflow(ctx workflow.Context, input OrderPlacementWorkflowInput) (*ordersdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	customerID := input.Request.CustomerID
	logger.Info("OrderPlacementWorkflow started", withTraceID(input.TraceID, "customerId", customerID)...)

	placeOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        2 * time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        10 * time.Second,
			MaximumAttempts:        5,
			NonRetryableErrorTypes: orderactivities.RejectionErrorTypes,
		},
	}

	var order ordersdomain.Order
	err := workflow.ExecuteActivity(
		workflow.WithActivityOptions(ctx, placeOptions),
		orderactivities.PlaceOrderActivityName,
		input.Request,
	).Get(ctx, &order)
	if err != nil {
		logger.Error("OrderPlacementWorkflow failed", withTraceID(input.TraceID, "customerId", customerID, "error", err)...)
		return nil, err
	}

	notifyOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		HeartbeatTimeout:    15 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    3,
		},
	}
	notifyErr := workflow.ExecuteActivity(
		workflow.WithActivityOptions(ctx, notifyOptions),
		orderactivities.NotifyFulfillmentActivityName,
		&order,
	).Get(ctx, nil)
	if notifyErr != nil {
		logger.Warn("fulfillment notification failed; order remains placed",
			withTraceID(input.TraceID, "orderId", order.ID, "error", notifyErr)...)
	}

	logger.Info("OrderPlacementWorkflow completed", withTraceID(input.TraceID, "orderId", order.ID)...)
	return &order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
