package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName        = errors.New("product name is required")
	ErrNegativePrice    = errors.New("product price must not be negative")
	ErrNegativeQuantity = errors.New("product quantity must not be negative")
)

// Product is a sellable catalog item. Quantity is the available stock and
// is the only field the order placement workflow mutates.
type Product struct {
	ID       uuid.UUID
	Name     string
	Price    decimal.Decimal
	Quantity int64
}

// NewProduct validates and constructs a catalog product.
func NewProduct(id uuid.UUID, name string, price decimal.Decimal, quantity int64) (*Product, error) {
	product := &Product{ID: id}
	if err := product.SetName(name); err != nil {
		return nil, err
	}
	if err := product.SetPrice(price); err != nil {
		return nil, err
	}
	if err := product.SetQuantity(quantity); err != nil {
		return nil, err
	}
	return product, nil
}

// SetName trims and validates the product name.
func (p *Product) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// SetPrice rejects negative prices.
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrNegativePrice
	}
	p.Price = price
	return nil
}

// SetQuantity rejects negative stock levels.
func (p *Product) SetQuantity(quantity int64) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	p.Quantity = quantity
	return nil
}

// Validate re-applies core invariants for persistence.
func (p *Product) Validate() error {
	if err := p.SetName(p.Name); err != nil {
		return err
	}
	if err := p.SetPrice(p.Price); err != nil {
		return err
	}
	return p.SetQuantity(p.Quantity)
}
