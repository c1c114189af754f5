package application

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-commerce-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-commerce-api/internal/domains/catalog/ports"
)

// Service orchestrates catalog use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateProduct registers a new sellable product. Product names are unique
// across the catalog.
func (s *Service) CreateProduct(ctx context.Context, name string, price decimal.Decimal, quantity int64) (*domain.Product, error) {
	product, err := domain.NewProduct(uuid.New(), name, price, quantity)
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, product)
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.List(ctx)
}

var _ ports.Service = (*Service)(nil)
