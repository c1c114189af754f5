package mapper

import (
	customerdomain "github.com/Apurer/go-commerce-api/internal/domains/customers/domain"
)

// Customer represents the transport-layer shape used by the HTTP handlers.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FromDomainCustomer converts a domain customer to the transport representation.
func FromDomainCustomer(customer *customerdomain.Customer) Customer {
	if customer == nil {
		return Customer{}
	}
	return Customer{
		ID:    customer.ID.String(),
		Name:  customer.Name,
		Email: customer.Email,
	}
}

// FromDomainCustomerList converts a slice of domain customers.
func FromDomainCustomerList(customers []*customerdomain.Customer) []Customer {
	list := make([]Customer, 0, len(customers))
	for _, customer := range customers {
		list = append(list, FromDomainCustomer(customer))
	}
	return list
}
