package ports

import "context"

// Transactor is the transactional boundary around the placement workflow's
// two durable writes (order create and stock decrement). Implementations
// guarantee that repository calls made with the derived context either all
// commit or all roll back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
