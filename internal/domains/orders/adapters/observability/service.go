package observability

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersapp "github.com/Apurer/go-commerce-api/internal/domains/orders/application"
	ordersdomain "github.com/Apurer/go-commerce-api/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-commerce-api/internal/domains/orders/ports"
)

const tracerName = "github.com/Apurer/go-commerce-api/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core orders service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) PlaceOrder(ctx context.Context, req ordersports.PlaceOrderRequest) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.PlaceOrder",
		trace.WithAttributes(
			attribute.String("order.customer_id", req.CustomerID.String()),
			attribute.Int("order.requested_lines", len(req.Lines)),
		))
	defer span.End()

	s.logInfo(ctx, "placing order",
		slog.String("customer.id", req.CustomerID.String()),
		slog.Int("lines", len(req.Lines)))
	result, err := s.inner.PlaceOrder(ctx, req)
	if err != nil {
		s.metrics.recordRejected(ctx, rejectionReason(err))
		return nil, s.handleError(ctx, span, err, "failed to place order",
			slog.String("customer.id", req.CustomerID.String()))
	}
	s.metrics.recordPlaced(ctx)
	span.SetAttributes(attribute.String("order.id", result.ID.String()))
	s.logInfo(ctx, "order placed",
		slog.String("order.id", result.ID.String()),
		slog.String("order.total", result.Total().String()))
	return result, nil
}

func (s *Service) GetOrderByID(ctx context.Context, id uuid.UUID) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrderByID",
		trace.WithAttributes(attribute.String("order.id", id.String())))
	defer span.End()

	result, err := s.inner.GetOrderByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id.String()))
	}
	return result, nil
}

func (s *Service) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListByCustomer",
		trace.WithAttributes(attribute.String("order.customer_id", customerID.String())))
	defer span.End()

	result, err := s.inner.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.String("customer.id", customerID.String()))
	}
	span.SetAttributes(attribute.Int("order.count", len(result)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ordersapp.ErrCustomerNotFound):
		return "customer_not_found"
	case errors.Is(err, ordersapp.ErrProductNotFound):
		return "product_not_found"
	case errors.Is(err, ordersapp.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}

type serviceMetrics struct {
	ordersPlaced   metric.Int64Counter
	ordersRejected metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("orders.service.placed", metric.WithDescription("Number of orders placed"))
	ordersRejected, _ := m.Int64Counter("orders.service.rejected", metric.WithDescription("Number of order requests rejected"))
	return serviceMetrics{ordersPlaced: ordersPlaced, ordersRejected: ordersRejected}
}

func (m serviceMetrics) recordPlaced(ctx context.Context) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context, reason string) {
	if m.ordersRejected != nil {
		m.ordersRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
	}
}

var _ ordersports.Service = (*Service)(nil)
