package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/Apurer/go-commerce-api/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/go-commerce-api/internal/domains/orders/domain"
	"github.com/Apurer/go-commerce-api/internal/domains/orders/ports"
	orderactivities "github.com/Apurer/go-commerce-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Apurer/go-commerce-api/internal/platform/temporal/workflows/orders"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineOrderWorkflows)(nil)
)

// TemporalOrderWorkflows starts order workflows on a Temporal cluster.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalOrderWorkflows wires a Temporal client into the orchestrator.
func NewTemporalOrderWorkflows(c client.Client) *TemporalOrderWorkflows {
	return &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.OrderPlacementTaskQueue}
}

// PlaceOrder starts the durable workflow that places an order and waits for
// its result.
func (o *TemporalOrderWorkflows) PlaceOrder(ctx context.Context, req ports.PlaceOrderRequest) (*ordersdomain.Order, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	// The workflow ID carries the trace component, so a client retry of the
	// same traced request reattaches to the running workflow instead of
	// placing the order twice.
	options := client.StartWorkflowOptions{
		ID:                    fmt.Sprintf("order-placement-%s-%s", req.CustomerID, traceComponent),
		TaskQueue:             o.taskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderPlacementWorkflow,
		orderworkflows.OrderPlacementWorkflowInput{Request: req, TraceID: traceComponent},
	)
	if err != nil {
		return nil, err
	}
	var order ordersdomain.Order
	if err := run.Get(ctx, &order); err != nil {
		return nil, translateWorkflowError(err)
	}
	return &order, nil
}

// translateWorkflowError restores the domain rejection sentinel from the
// application error type the activity attached. Sentinels do not survive
// serialization across the Temporal wire on their own.
func translateWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case orderactivities.CustomerNotFoundErrorType:
		return fmt.Errorf("%w: %s", ordersapp.ErrCustomerNotFound, appErr.Message())
	case orderactivities.ProductNotFoundErrorType:
		return fmt.Errorf("%w: %s", ordersapp.ErrProductNotFound, appErr.Message())
	case orderactivities.InsufficientStockErrorType:
		return fmt.Errorf("%w: %s", ordersapp.ErrInsufficientStock, appErr.Message())
	case orderactivities.InvalidRequestErrorType:
		return fmt.Errorf("%w: %s", ordersapp.ErrInvalidInput, appErr.Message())
	default:
		return err
	}
}

// InlineOrderWorkflows executes the service directly without Temporal,
// useful for tests or dev fallbacks.
type InlineOrderWorkflows struct {
	service ports.Service
}

// NewInlineOrderWorkflows wraps the orders service for synchronous execution.
func NewInlineOrderWorkflows(service ports.Service) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{service: service}
}

// PlaceOrder delegates to the application service without durable orchestration.
func (o *InlineOrderWorkflows) PlaceOrder(ctx context.Context, req ports.PlaceOrderRequest) (*ordersdomain.Order, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	return o.service.PlaceOrder(ctx, req)
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() || !spanCtx.TraceID().IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
