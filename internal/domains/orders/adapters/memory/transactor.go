package memory

import (
	"context"
	"sync"

	"github.com/Apurer/go-commerce-api/internal/domains/orders/ports"
)

var _ ports.Transactor = (*Transactor)(nil)

// Transactor serializes placement workflows against the in-memory stores.
// It provides the isolation half of the transactional seam (two concurrent
// placements cannot interleave between stock check and write-back) but no
// rollback: memory adapters are expected not to fail after validation.
type Transactor struct {
	mu sync.Mutex
}

func NewTransactor() *Transactor {
	return &Transactor{}
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}
