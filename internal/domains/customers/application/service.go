package application

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Apurer/go-commerce-api/internal/domains/customers/domain"
	"github.com/Apurer/go-commerce-api/internal/domains/customers/ports"
)

// Service orchestrates customer use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// CreateCustomer registers a new customer. Email addresses are unique
// across the store.
func (s *Service) CreateCustomer(ctx context.Context, name, email string) (*domain.Customer, error) {
	customer, err := domain.NewCustomer(uuid.New(), name, email)
	if err != nil {
		return nil, mapError(err)
	}
	if existing, err := s.repo.GetByEmail(ctx, customer.Email); err == nil && existing != nil {
		return nil, ports.ErrEmailTaken
	} else if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	return s.repo.Save(ctx, customer)
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*domain.Customer, error) {
	return s.repo.List(ctx)
}

var _ ports.Service = (*Service)(nil)
