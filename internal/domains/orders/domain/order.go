package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrMissingCustomer = errors.New("order customer is required")
	ErrNoLines         = errors.New("order must contain at least one line")
	ErrInvalidProduct  = errors.New("order line product id is required")
	ErrInvalidQuantity = errors.New("order line quantity must be greater than zero")
	ErrNegativePrice   = errors.New("order line price must not be negative")
)

// OrderLine captures one purchased product. Price is the catalog price at
// the moment the order was evaluated, not at display time. Lines are
// immutable once the order is created.
type OrderLine struct {
	ProductID uuid.UUID
	Price     decimal.Decimal
	Quantity  int64
}

// NewOrderLine validates and constructs an order line snapshot.
func NewOrderLine(productID uuid.UUID, price decimal.Decimal, quantity int64) (OrderLine, error) {
	if productID == uuid.Nil {
		return OrderLine{}, ErrInvalidProduct
	}
	if quantity <= 0 {
		return OrderLine{}, ErrInvalidQuantity
	}
	if price.IsNegative() {
		return OrderLine{}, ErrNegativePrice
	}
	return OrderLine{ProductID: productID, Price: price, Quantity: quantity}, nil
}

// Subtotal is the line price times its quantity.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(l.Quantity))
}

// Order aggregates the purchase of one customer. Lines keep their insertion
// order for display.
type Order struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Lines      []OrderLine
	CreatedAt  time.Time
}

// NewOrder validates and constructs an order aggregate. Identity and
// timestamps are assigned by the repository on create.
func NewOrder(customerID uuid.UUID, lines []OrderLine) (*Order, error) {
	order := &Order{CustomerID: customerID, Lines: append([]OrderLine{}, lines...)}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.CustomerID == uuid.Nil {
		return ErrMissingCustomer
	}
	if len(o.Lines) == 0 {
		return ErrNoLines
	}
	for _, line := range o.Lines {
		if _, err := NewOrderLine(line.ProductID, line.Price, line.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// Total sums the subtotals of all lines.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}
