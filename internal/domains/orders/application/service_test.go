package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/Apurer/go-commerce-api/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/Apurer/go-commerce-api/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-commerce-api/internal/domains/catalog/ports"
	customermemory "github.com/Apurer/go-commerce-api/internal/domains/customers/adapters/memory"
	customerdomain "github.com/Apurer/go-commerce-api/internal/domains/customers/domain"
	ordersmemory "github.com/Apurer/go-commerce-api/internal/domains/orders/adapters/memory"
	"github.com/Apurer/go-commerce-api/internal/domains/orders/ports"
)

type fixture struct {
	svc       *Service
	customers *customermemory.Repository
	catalog   *catalogmemory.Repository
	orders    *ordersmemory.Repository
	customer  *customerdomain.Customer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	customers := customermemory.NewRepository()
	catalog := catalogmemory.NewRepository()
	orders := ordersmemory.NewRepository()
	customer, err := customers.Save(context.Background(), &customerdomain.Customer{
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
	})
	require.NoError(t, err)
	return &fixture{
		svc:       NewService(orders, customers, catalog, ordersmemory.NewTransactor()),
		customers: customers,
		catalog:   catalog,
		orders:    orders,
		customer:  customer,
	}
}

func (f *fixture) seedProduct(t *testing.T, name string, price string, quantity int64) *catalogdomain.Product {
	t.Helper()
	product, err := f.catalog.Save(context.Background(), &catalogdomain.Product{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Quantity: quantity,
	})
	require.NoError(t, err)
	return product
}

func (f *fixture) stockOf(t *testing.T, id uuid.UUID) int64 {
	t.Helper()
	product, err := f.catalog.GetByID(context.Background(), id)
	require.NoError(t, err)
	return product.Quantity
}

func (f *fixture) ordersOfCustomer(t *testing.T) int {
	t.Helper()
	orders, err := f.orders.ListByCustomer(context.Background(), f.customer.ID)
	require.NoError(t, err)
	return len(orders)
}

func TestPlaceOrder_Success(t *testing.T) {
	f := newFixture(t)
	keyboard := f.seedProduct(t, "Keyboard", "49.90", 10)
	mouse := f.seedProduct(t, "Mouse", "19.90", 4)

	order, err := f.svc.PlaceOrder(context.Background(), ports.PlaceOrderRequest{
		CustomerID: f.customer.ID,
		Lines: []ports.LineRequest{
			{ProductID: keyboard.ID, Quantity: 2},
			{ProductID: mouse.ID, Quantity: 1},
		},
	})

	require.NoError(t, err)
	require.NotNil(t, order)
	require.NotEqual(t, uuid.Nil, order.ID)
	require.Equal(t, f.customer.ID, order.CustomerID)
	require.False(t, order.CreatedAt.IsZero())
	require.Len(t, order.Lines, 2)
	require.Equal(t, keyboard.ID, order.Lines[0].ProductID)
	require.True(t, order.Lines[0].Price.Equal(decimal.RequireFromString("49.90")))
	require.Equal(t, int64(2), order.Lines[0].Quantity)
	require.True(t, order.Total().Equal(decimal.RequireFromString("119.70")))

	require.Equal(t, int64(8), f.stockOf(t, keyboard.ID))
	require.Equal(t, int64(3), f.stockOf(t, mouse.ID))

	loaded, err := f.svc.GetOrderByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, order.ID, loaded.ID)
	require.Equal(t, order.Lines, loaded.Lines)
}

func TestPlaceOrder_ExactStockDepletesToZero(t *testing.T) {
	f := newFixture(t)
	cable := f.seedProduct(t, "Cable", "5.00", 3)

	_, err := f.svc.PlaceOrder(context.Background(), ports.PlaceOrderRequest{
		CustomerID: f.customer.ID,
		Lines:      []ports.LineRequest{{ProductID: cable.ID, Quantity: 3}},
	})

	require.NoError(t, err)
	require.Equal(t, int64(0), f.stockOf(t, cable.ID))
}

func TestPlaceOrder_CustomerNotFound(t *testing.T) {
	f := newFixture(t)
	keyboard := f.seedProduct(t, "Keyboard", "49.90", 10)

	_, err := f.svc.PlaceOrder(context.Background(), ports.PlaceOrderRequest{
		CustomerID: uuid.New(),
		Lines:      []ports.LineRequest{{ProductID: keyboard.ID, Quantity: 1}},
	})

	require.ErrorIs(t, err, ErrCustomerNotFound)
	require.Equal(t, int64(10), f.stockOf(t, keyboard.ID))
	require.Equal(t, 0, f.ordersOfCustomer(t))
}

func TestPlaceOrder_ProductNotFound(t *testing.T) {
	f := newFixture(t)
	keyboard := f.seedProduct(t, "Keyboard", "49.90", 10)

	_, err := f.svc.PlaceOrder(context.Background(), ports.PlaceOrderRequest{
		CustomerID: f.customer.ID,
		Lines: []ports.LineRequest{
			{ProductID: keyboard.ID, Quantity: 1},
			{ProductID: uuid.New(), Quantity: 1},
		},
	})

	require.ErrorIs(t, err, ErrProductNotFound)
	require.Equal(t, int64(10), f.stockOf(t, keyboard.ID))
	require.Equal(t, 0, f.ordersOfCustomer(t))
}

func TestPlaceOrder_InsufficientStockRejectsWholeRequest(t *testing.T) {
	f := newFixture(t)
	keyboard := f.seedProduct(t, "Keyboard", "49.90", 10)
	mouse := f.seedProduct(t, "Mouse", "19.90", 2)

	_, err := f.svc.PlaceOrder(context.Background(), ports.PlaceOrderRequest{
		CustomerID: f.customer.ID,
		Lines: []ports.LineRequest{
			{ProductID: keyboard.ID, Quantity: 1},
			{ProductID: mouse.ID, Quantity: 3},
		},
	})

	require.ErrorIs(t, err, ErrInsufficientStock)
	require.Equal(t, int64(10), f.stockOf(t, keyboard.ID))
	require.Equal(t, int64(2), f.stockOf(t, mouse.ID))
	require.Equal(t, 0, f.ordersOfCustomer(t))
}

func TestPlaceOrder_PriceSnapshotSurvivesCatalogChange(t *testing.T) {
	f := newFixture(t)
	keyboard := f.seedProduct(t, "Keyboard", "49.90", 10)

	order, err := f.svc.PlaceOrder(context.Background(), ports.PlaceOrderRequest{
		CustomerID: f.customer.ID,
		Lines:      []ports.LineRequest{{ProductID: keyboard.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	keyboard.Price = decimal.RequireFromString("99.90")
	_, err = f.catalog.Save(context.Background(), keyboard)
	require.NoError(t, err)

	loaded, err := f.svc.GetOrderByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.True(t, loaded.Lines[0].Price.Equal(decimal.RequireFromString("49.90")))
}

func TestPlaceOrder_MergesDuplicateProductLines(t *testing.T) {
	f := newFixture(t)
	keyboard := f.seedProduct(t, "Keyboard", "49.90", 10)

	order, err := f.svc.PlaceOrder(context.Background(), ports.PlaceOrderRequest{
		CustomerID: f.customer.ID,
		Lines: []ports.LineRequest{
			{ProductID: keyboard.ID, Quantity: 2},
			{ProductID: keyboard.ID, Quantity: 3},
		},
	})

	require.NoError(t, err)
	require.Len(t, order.Lines, 1)
	require.Equal(t, int64(5), order.Lines[0].Quantity)
	require.Equal(t, int64(5), f.stockOf(t, keyboard.ID))
}

func TestPlaceOrder_MergedDuplicatesExceedingStockRejected(t *testing.T) {
	f := newFixture(t)
	keyboard := f.seedProduct(t, "Keyboard", "49.90", 4)

	_, err := f.svc.PlaceOrder(context.Background(), ports.PlaceOrderRequest{
		CustomerID: f.customer.ID,
		Lines: []ports.LineRequest{
			{ProductID: keyboard.ID, Quantity: 2},
			{ProductID: keyboard.ID, Quantity: 3},
		},
	})

	require.ErrorIs(t, err, ErrInsufficientStock)
	require.Equal(t, int64(4), f.stockOf(t, keyboard.ID))
}

func TestPlaceOrder_InvalidInput(t *testing.T) {
	f := newFixture(t)
	keyboard := f.seedProduct(t, "Keyboard", "49.90", 10)

	cases := map[string]ports.PlaceOrderRequest{
		"missing customer id": {
			Lines: []ports.LineRequest{{ProductID: keyboard.ID, Quantity: 1}},
		},
		"no lines": {
			CustomerID: f.customer.ID,
		},
		"missing product id": {
			CustomerID: f.customer.ID,
			Lines:      []ports.LineRequest{{Quantity: 1}},
		},
		"zero quantity": {
			CustomerID: f.customer.ID,
			Lines:      []ports.LineRequest{{ProductID: keyboard.ID, Quantity: 0}},
		},
		"negative quantity": {
			CustomerID: f.customer.ID,
			Lines:      []ports.LineRequest{{ProductID: keyboard.ID, Quantity: -2}},
		},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.PlaceOrder(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	require.Equal(t, int64(10), f.stockOf(t, keyboard.ID))
	require.Equal(t, 0, f.ordersOfCustomer(t))
}

// mismatchedCatalog answers FindAllByIDs with a product that was never
// requested, simulating an internally inconsistent catalog backend.
type mismatchedCatalog struct {
	catalogports.Repository
	stray *catalogdomain.Product
}

func (c *mismatchedCatalog) FindAllByIDs(_ context.Context, ids []uuid.UUID) ([]*catalogdomain.Product, error) {
	found := make([]*catalogdomain.Product, 0, len(ids))
	for range ids {
		found = append(found, c.stray)
	}
	return found, nil
}

func TestPlaceOrder_CatalogMismatchIsAnError(t *testing.T) {
	f := newFixture(t)
	stray := f.seedProduct(t, "Stray", "1.00", 100)
	svc := NewService(
		f.orders,
		f.customers,
		&mismatchedCatalog{Repository: f.catalog, stray: stray},
		ordersmemory.NewTransactor(),
	)

	_, err := svc.PlaceOrder(context.Background(), ports.PlaceOrderRequest{
		CustomerID: f.customer.ID,
		Lines:      []ports.LineRequest{{ProductID: uuid.New(), Quantity: 1}},
	})

	require.ErrorIs(t, err, ErrCatalogMismatch)
	require.Equal(t, 0, f.ordersOfCustomer(t))
}

func TestGetOrderByID_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetOrderByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListByCustomer_ReturnsOnlyOwnOrders(t *testing.T) {
	f := newFixture(t)
	keyboard := f.seedProduct(t, "Keyboard", "49.90", 10)
	other, err := f.customers.Save(context.Background(), &customerdomain.Customer{
		Name:  "Grace Hopper",
		Email: "grace@example.com",
	})
	require.NoError(t, err)

	for _, customerID := range []uuid.UUID{f.customer.ID, other.ID, f.customer.ID} {
		_, err := f.svc.PlaceOrder(context.Background(), ports.PlaceOrderRequest{
			CustomerID: customerID,
			Lines:      []ports.LineRequest{{ProductID: keyboard.ID, Quantity: 1}},
		})
		require.NoError(t, err)
	}

	mine, err := f.svc.ListByCustomer(context.Background(), f.customer.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, order := range mine {
		require.Equal(t, f.customer.ID, order.CustomerID)
	}
}
