package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	customermemory "github.com/Apurer/go-commerce-api/internal/domains/customers/adapters/memory"
	"github.com/Apurer/go-commerce-api/internal/domains/customers/ports"
)

func TestCreateCustomer_Success(t *testing.T) {
	svc := NewService(customermemory.NewRepository())

	customer, err := svc.CreateCustomer(context.Background(), "Ada Lovelace", "ada@example.com")

	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, customer.ID)
	require.Equal(t, "Ada Lovelace", customer.Name)
	require.Equal(t, "ada@example.com", customer.Email)
}

func TestCreateCustomer_TrimsWhitespace(t *testing.T) {
	svc := NewService(customermemory.NewRepository())

	customer, err := svc.CreateCustomer(context.Background(), "  Ada  ", " ada@example.com ")

	require.NoError(t, err)
	require.Equal(t, "Ada", customer.Name)
	require.Equal(t, "ada@example.com", customer.Email)
}

func TestCreateCustomer_InvalidInput(t *testing.T) {
	svc := NewService(customermemory.NewRepository())

	_, err := svc.CreateCustomer(context.Background(), "", "ada@example.com")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateCustomer(context.Background(), "Ada", "not-an-email")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateCustomer_DuplicateEmail(t *testing.T) {
	svc := NewService(customermemory.NewRepository())

	_, err := svc.CreateCustomer(context.Background(), "Ada", "ada@example.com")
	require.NoError(t, err)

	_, err = svc.CreateCustomer(context.Background(), "Another Ada", "ADA@example.com")
	require.ErrorIs(t, err, ports.ErrEmailTaken)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(customermemory.NewRepository())

	_, err := svc.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestList_ReturnsAllCustomers(t *testing.T) {
	svc := NewService(customermemory.NewRepository())
	for _, email := range []string{"a@example.com", "b@example.com"} {
		_, err := svc.CreateCustomer(context.Background(), "Customer", email)
		require.NoError(t, err)
	}

	customers, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 2)
}
