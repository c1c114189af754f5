package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Apurer/go-commerce-api/internal/domains/catalog/domain"
)

var (
	ErrNotFound  = errors.New("product not found")
	ErrNameTaken = errors.New("product name already registered")
)

// QuantityUpdate carries the new absolute stock level for one product.
type QuantityUpdate struct {
	ID       uuid.UUID
	Quantity int64
}

// Repository persists catalog products and serves batched stock reads/writes
// for the order placement workflow.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	// FindAllByIDs returns only the products that exist; callers compare
	// cardinality against the requested set.
	FindAllByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Product, error)
	// UpdateQuantities writes new stock levels for every listed product.
	UpdateQuantities(ctx context.Context, updates []QuantityUpdate) error
	List(ctx context.Context) ([]*domain.Product, error)
}
