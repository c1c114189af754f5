package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	catalogdomain "github.com/Apurer/go-commerce-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-commerce-api/internal/domains/catalog/ports"
	customerports "github.com/Apurer/go-commerce-api/internal/domains/customers/ports"
	"github.com/Apurer/go-commerce-api/internal/domains/orders/domain"
	"github.com/Apurer/go-commerce-api/internal/domains/orders/ports"
)

// Service orchestrates the order placement workflow. It holds no state of
// its own between invocations; every call is an independent sequence of
// collaborator calls.
type Service struct {
	orders    ports.Repository
	customers customerports.Repository
	catalog   catalogports.Repository
	tx        ports.Transactor
}

// NewService wires the workflow with its constructor-injected collaborators.
func NewService(orders ports.Repository, customers customerports.Repository, catalog catalogports.Repository, tx ports.Transactor) *Service {
	return &Service{orders: orders, customers: customers, catalog: catalog, tx: tx}
}

// PlaceOrder validates the customer and the requested products, checks
// stock, snapshots prices into order lines, persists the order, and
// decrements stock. Validation happens entirely before any durable write;
// the order create and the stock write-back run inside one transaction so
// both take effect or neither does.
//
// Duplicate product ids in the request are merged by summing their
// quantities before validation, preserving first-seen position.
func (s *Service) PlaceOrder(ctx context.Context, req ports.PlaceOrderRequest) (*domain.Order, error) {
	lines, err := normalizeRequest(req)
	if err != nil {
		return nil, err
	}

	var placed *domain.Order
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		customer, err := s.customers.GetByID(ctx, req.CustomerID)
		if err != nil {
			if errors.Is(err, customerports.ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrCustomerNotFound, req.CustomerID)
			}
			return err
		}

		ids := make([]uuid.UUID, 0, len(lines))
		for _, line := range lines {
			ids = append(ids, line.ProductID)
		}
		products, err := s.catalog.FindAllByIDs(ctx, ids)
		if err != nil {
			return err
		}
		if len(products) != len(lines) {
			return fmt.Errorf("%w: missing %v", ErrProductNotFound, missingIDs(ids, products))
		}
		byID := make(map[uuid.UUID]*catalogdomain.Product, len(products))
		for _, product := range products {
			byID[product.ID] = product
		}

		orderLines := make([]domain.OrderLine, 0, len(lines))
		updates := make([]catalogports.QuantityUpdate, 0, len(lines))
		var short []uuid.UUID
		for _, line := range lines {
			product, ok := byID[line.ProductID]
			if !ok {
				// The cardinality check passed, so a miss here means the
				// catalog answered with a product that was never requested.
				return fmt.Errorf("%w: %s", ErrCatalogMismatch, line.ProductID)
			}
			remaining := product.Quantity - line.Quantity
			if remaining < 0 {
				short = append(short, line.ProductID)
				continue
			}
			orderLine, err := domain.NewOrderLine(line.ProductID, product.Price, line.Quantity)
			if err != nil {
				return err
			}
			orderLines = append(orderLines, orderLine)
			updates = append(updates, catalogports.QuantityUpdate{ID: line.ProductID, Quantity: remaining})
		}
		// All-or-nothing: a single short line rejects the whole request.
		if len(short) > 0 {
			return fmt.Errorf("%w: %v", ErrInsufficientStock, short)
		}

		order, err := domain.NewOrder(customer.ID, orderLines)
		if err != nil {
			return err
		}
		placed, err = s.orders.Create(ctx, order)
		if err != nil {
			return err
		}
		return s.catalog.UpdateQuantities(ctx, updates)
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

// GetOrderByID loads a single order with its lines.
func (s *Service) GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// ListByCustomer returns the orders placed by one customer.
func (s *Service) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.Order, error) {
	return s.orders.ListByCustomer(ctx, customerID)
}

// normalizeRequest applies the input preconditions and merges duplicate
// product ids by summing their quantities, keeping first-seen order.
func normalizeRequest(req ports.PlaceOrderRequest) ([]ports.LineRequest, error) {
	if req.CustomerID == uuid.Nil {
		return nil, fmt.Errorf("%w: customer id is required", ErrInvalidInput)
	}
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: at least one product is required", ErrInvalidInput)
	}
	index := make(map[uuid.UUID]int, len(req.Lines))
	merged := make([]ports.LineRequest, 0, len(req.Lines))
	for _, line := range req.Lines {
		if line.ProductID == uuid.Nil {
			return nil, fmt.Errorf("%w: product id is required", ErrInvalidInput)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity for product %s must be greater than zero", ErrInvalidInput, line.ProductID)
		}
		if at, ok := index[line.ProductID]; ok {
			merged[at].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(merged)
		merged = append(merged, line)
	}
	return merged, nil
}

func missingIDs(requested []uuid.UUID, found []*catalogdomain.Product) []uuid.UUID {
	present := make(map[uuid.UUID]bool, len(found))
	for _, product := range found {
		present[product.ID] = true
	}
	var missing []uuid.UUID
	for _, id := range requested {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

var _ ports.Service = (*Service)(nil)
