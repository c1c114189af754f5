package application

import "errors"

// Domain errors of the placement workflow. All but ErrCatalogMismatch are
// expected, caller-reportable outcomes; infrastructure errors from the
// store collaborators pass through untranslated.
var (
	// ErrInvalidInput signals the request violated a precondition before
	// any store was consulted.
	ErrInvalidInput = errors.New("invalid order request")
	// ErrCustomerNotFound signals the customer id does not resolve.
	ErrCustomerNotFound = errors.New("customer does not exist")
	// ErrProductNotFound signals one or more requested products do not resolve.
	ErrProductNotFound = errors.New("one or more products do not exist")
	// ErrInsufficientStock signals a requested quantity exceeds availability.
	ErrInsufficientStock = errors.New("one or more products do not have the requested quantity available")
	// ErrCatalogMismatch signals the catalog answered the batched lookup
	// with a product set that does not cover the request even though the
	// cardinality check passed. This is an internal consistency fault, not
	// a caller error.
	ErrCatalogMismatch = errors.New("catalog lookup returned an inconsistent product set")
)
