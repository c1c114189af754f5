package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Apurer/go-commerce-api/internal/domains/catalog/domain"
	"github.com/Apurer/go-commerce-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*domain.Product
}

func NewRepository() *Repository {
	return &Repository{products: map[uuid.UUID]*domain.Product{}}
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == uuid.Nil {
		clone.ID = uuid.New()
	}
	for id, existing := range r.products {
		if id != clone.ID && strings.EqualFold(existing.Name, clone.Name) {
			return nil, ports.ErrNameTaken
		}
	}
	r.products[clone.ID] = &clone
	return &clone, nil
}

func (r *Repository) GetByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *Repository) FindAllByIDs(_ context.Context, ids []uuid.UUID) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	found := make([]*domain.Product, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if product, ok := r.products[id]; ok {
			clone := *product
			found = append(found, &clone)
		}
	}
	return found, nil
}

func (r *Repository) UpdateQuantities(_ context.Context, updates []ports.QuantityUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, update := range updates {
		if _, ok := r.products[update.ID]; !ok {
			return fmt.Errorf("%w: %s", ports.ErrNotFound, update.ID)
		}
	}
	for _, update := range updates {
		r.products[update.ID].Quantity = update.Quantity
	}
	return nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		clone := *product
		list = append(list, &clone)
	}
	return list, nil
}
