package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyName    = errors.New("customer name is required")
	ErrInvalidEmail = errors.New("customer email must contain '@'")
)

// Customer represents a registered buyer. Existence is the only fact the
// order placement workflow needs; profile data is kept for registration.
type Customer struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// NewCustomer builds a customer ensuring required invariants.
func NewCustomer(id uuid.UUID, name, email string) (*Customer, error) {
	customer := &Customer{ID: id}
	if err := customer.SetName(name); err != nil {
		return nil, err
	}
	if err := customer.SetEmail(email); err != nil {
		return nil, err
	}
	return customer, nil
}

// SetName trims and validates the display name.
func (c *Customer) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	c.Name = name
	return nil
}

// SetEmail trims and validates the contact email.
func (c *Customer) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	c.Email = email
	return nil
}

// Validate re-applies core invariants for persistence.
func (c *Customer) Validate() error {
	if err := c.SetName(c.Name); err != nil {
		return err
	}
	return c.SetEmail(c.Email)
}
